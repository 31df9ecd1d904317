package prompt

import (
	"errors"
	"strings"
	"testing"

	"ai-lessonplan-be/internal/pkg/apperrors"
)

func TestRenderInterpolation(t *testing.T) {
	r := NewRegistry()
	r.Register("greeting", Template{
		System: "You teach {subject}.",
		User:   "Plan a lesson on {topic} for {level}. Subject again: {subject}.",
	})

	system, user, err := r.Render("greeting", map[string]string{
		"subject": "วิทยาศาสตร์",
		"topic":   "ระบบหายใจ",
		"level":   "ม.2",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if system != "You teach วิทยาศาสตร์." {
		t.Errorf("system = %q", system)
	}
	if !strings.Contains(user, "ระบบหายใจ") || !strings.Contains(user, "ม.2") {
		t.Errorf("user missing interpolated values: %q", user)
	}
	if strings.Contains(user, "{") {
		t.Errorf("user still carries placeholders: %q", user)
	}
}

func TestRenderMissingVariable(t *testing.T) {
	r := NewRegistry()
	r.Register("needs-topic", Template{
		User: "Teach {topic} to {level}.",
	})

	_, _, err := r.Render("needs-topic", map[string]string{"level": "ม.1"})
	if err == nil {
		t.Fatal("Render() succeeded, want missing variable error")
	}
	if !errors.Is(err, apperrors.ErrMissingVariable) {
		t.Errorf("error = %v, want ErrMissingVariable", err)
	}

	var missing *apperrors.MissingVariableError
	if !errors.As(err, &missing) {
		t.Fatalf("error type = %T", err)
	}
	if missing.Template != "needs-topic" || missing.Variable != "topic" {
		t.Errorf("missing = %+v", missing)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r := NewRegistry()
	if _, _, err := r.Render("nope", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestRenderIgnoresJsonSkeletons(t *testing.T) {
	// Quoted JSON keys in an output example must not be treated as
	// placeholders.
	r := NewRegistry()
	r.Register("skeleton", Template{
		User: `Answer as {"objectives": ["..."]} about {topic}.`,
	})

	_, user, err := r.Render("skeleton", map[string]string{"topic": "เซลล์"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(user, `{"objectives": ["..."]}`) {
		t.Errorf("json skeleton was mangled: %q", user)
	}
	if !strings.Contains(user, "เซลล์") {
		t.Errorf("placeholder not interpolated: %q", user)
	}
}

func TestRenderExtraVarsAllowed(t *testing.T) {
	r := NewRegistry()
	r.Register("simple", Template{User: "Only {topic}."})

	_, user, err := r.Render("simple", map[string]string{
		"topic":  "x",
		"unused": "y",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if user != "Only x." {
		t.Errorf("user = %q", user)
	}
}
