package extract

import (
	"errors"
	"testing"

	"ai-lessonplan-be/internal/pkg/apperrors"
)

func TestInto(t *testing.T) {
	type payload struct {
		Objectives []string `json:"objectives"`
	}

	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{
			name: "bare json",
			raw:  `{"objectives": ["a", "b"]}`,
			want: []string{"a", "b"},
		},
		{
			name: "json fence",
			raw:  "```json\n{\"objectives\": [\"a\"]}\n```",
			want: []string{"a"},
		},
		{
			name: "anonymous fence",
			raw:  "```\n{\"objectives\": [\"a\"]}\n```",
			want: []string{"a"},
		},
		{
			name: "surrounding prose",
			raw:  "Here is the result you asked for:\n{\"objectives\": [\"a\"]}\nHope this helps!",
			want: []string{"a"},
		},
		{
			name: "braces inside string literal",
			raw:  `intro {"objectives": ["contains } and { chars"]} outro`,
			want: []string{"contains } and { chars"},
		},
		{
			name: "escaped quote inside string",
			raw:  `{"objectives": ["say \"hi\""]}`,
			want: []string{`say "hi"`},
		},
		{
			name: "stray brace pair before payload",
			raw:  `ผลลัพธ์ {ดังนี้} คือ {"objectives": ["ข้อ 1"]}`,
			want: []string{"ข้อ 1"},
		},
		{
			name: "unterminated brace before payload",
			raw:  `{ broken {"objectives": ["a"]}`,
			want: []string{"a"},
		},
		{
			name: "thai content",
			raw:  "ผลลัพธ์:\n{\"objectives\": [\"อธิบายการทำงานของระบบหายใจได้\"]}",
			want: []string{"อธิบายการทำงานของระบบหายใจได้"},
		},
		{
			name:    "no json at all",
			raw:     "I could not produce the requested structure.",
			wantErr: true,
		},
		{
			name:    "unbalanced json",
			raw:     `{"objectives": ["a"`,
			wantErr: true,
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload
			err := Into(tt.raw, &got)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Into(%q) succeeded, want error", tt.raw)
				}
				if !errors.Is(err, apperrors.ErrMalformedOutput) {
					t.Errorf("error = %v, want ErrMalformedOutput", err)
				}
				var malformed *apperrors.MalformedOutputError
				if !errors.As(err, &malformed) {
					t.Errorf("error does not carry the raw output")
				} else if malformed.Raw != tt.raw {
					t.Errorf("Raw = %q, want %q", malformed.Raw, tt.raw)
				}
				return
			}

			if err != nil {
				t.Fatalf("Into(%q) error = %v", tt.raw, err)
			}
			if len(got.Objectives) != len(tt.want) {
				t.Fatalf("objectives = %v, want %v", got.Objectives, tt.want)
			}
			for i := range tt.want {
				if got.Objectives[i] != tt.want[i] {
					t.Errorf("objectives[%d] = %q, want %q", i, got.Objectives[i], tt.want[i])
				}
			}
		})
	}
}

func TestJSONFirstValueWins(t *testing.T) {
	raw := `first {"a": 1} second {"b": 2}`
	got, err := JSON(raw)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	m, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("JSON() = %T, want map", got)
	}
	if _, ok := m["a"]; !ok {
		t.Errorf("expected first object to win, got %v", m)
	}
}

func TestJSONArray(t *testing.T) {
	got, err := JSON("result: [1, 2, 3]")
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	arr, ok := got.([]interface{})
	if !ok || len(arr) != 3 {
		t.Fatalf("JSON() = %v, want 3-element array", got)
	}
}
