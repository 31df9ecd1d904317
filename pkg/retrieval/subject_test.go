package retrieval

import "testing"

func TestResolveCorpusExactMatch(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{"คณิตศาสตร์", "math.csv"},
		{"วิทยาศาสตร์", "science.csv"},
		{"ภาษาไทย", "thai.csv"},
		{"ภาษาอังกฤษ", "english.csv"},
		{"สุขศึกษา", "health.csv"},
		{"สังคมศึกษา", "social_study.csv"},
		{"ศิลปะ", "art.csv"},
		{"การงานอาชีพ", "career_academic.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			if got := ResolveCorpus(tt.subject, 0.6); got != tt.want {
				t.Errorf("ResolveCorpus(%q) = %q, want %q", tt.subject, got, tt.want)
			}
		})
	}
}

func TestResolveCorpusFuzzy(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    string
	}{
		{
			name:    "typo variant close to science",
			subject: "วิทยาศาสตร", // trailing character dropped
			want:    "science.csv",
		},
		{
			name:    "whitespace padded exact name",
			subject: "  คณิตศาสตร์  ",
			want:    "math.csv",
		},
		{
			name:    "unrelated subject falls back to combined corpus",
			subject: "ดาราศาสตร์ขั้นสูงระดับมหาวิทยาลัย",
			want:    DefaultCorpus,
		},
		{
			name:    "empty subject falls back",
			subject: "",
			want:    DefaultCorpus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveCorpus(tt.subject, 0.6); got != tt.want {
				t.Errorf("ResolveCorpus(%q) = %q, want %q", tt.subject, got, tt.want)
			}
		})
	}
}

func TestResolveCorpusThresholdBoundary(t *testing.T) {
	// Fixtures built from prefixes of วิทยาศาสตร์ (10 bigrams) padded
	// with Latin filler that shares no bigram with any subject name:
	// วิทยาศา keeps 6 of 10 bigrams (12/20 = 0.60), วิทยาศาส keeps 7
	// (14/23 ≈ 0.609 with 6 fillers, 14/24 ≈ 0.583 with 7).
	tests := []struct {
		name    string
		subject string
		score   float64
		want    string
	}{
		{"just above threshold", "วิทยาศาสqqqqqq", 14.0 / 23.0, "science.csv"},
		{"exactly at threshold", "วิทยาศาqqqq", 0.6, "science.csv"},
		{"just below threshold", "วิทยาศาสqqqqqqq", 14.0 / 24.0, DefaultCorpus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiceSimilarity(tt.subject, "วิทยาศาสตร์"); got != tt.score {
				t.Fatalf("DiceSimilarity(%q) = %v, want %v", tt.subject, got, tt.score)
			}
			if got := ResolveCorpus(tt.subject, 0.6); got != tt.want {
				t.Errorf("ResolveCorpus(%q, 0.6) = %q, want %q", tt.subject, got, tt.want)
			}
		})
	}
}

func TestDiceSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "night", "night", 1.0},
		{"disjoint", "abcd", "wxyz", 0.0},
		{"empty left", "", "abc", 0.0},
		{"both single rune", "a", "a", 1.0},
		{"single rune mismatch", "a", "b", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiceSimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("DiceSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDiceSimilaritySymmetric(t *testing.T) {
	a, b := "ภาษาไทย", "ภาษาอังกฤษ"
	if DiceSimilarity(a, b) != DiceSimilarity(b, a) {
		t.Errorf("similarity is not symmetric for %q and %q", a, b)
	}
}
