package agent

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"ai-lessonplan-be/internal/constant"
	"ai-lessonplan-be/pkg/llm"
	"ai-lessonplan-be/pkg/search"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// scriptedProvider answers every prompt with the same canned response.
type scriptedProvider struct {
	response string
	err      error
	calls    int
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	p.calls++
	return p.response, p.err
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, nil, opts...)
}

type scriptedSearch struct {
	available bool
	results   []search.Result
	err       error
}

func (s *scriptedSearch) Search(ctx context.Context, query string) ([]search.Result, error) {
	return s.results, s.err
}

func (s *scriptedSearch) Available() bool { return s.available }

func assertBundleComplete(t *testing.T, b *Bundle) {
	t.Helper()
	if b == nil {
		t.Fatal("bundle is nil")
	}
	if len(b.TeachingProcessExamples) == 0 {
		t.Error("teaching process examples empty")
	}
	if len(b.UDLStrategies) == 0 {
		t.Error("UDL strategies empty")
	}
	if len(b.InclusiveStrategies) == 0 {
		t.Error("inclusive strategies empty")
	}
	if b.LessonDetails == "" {
		t.Error("lesson details empty")
	}
	if b.Metadata.CompletedAt.IsZero() {
		t.Error("metadata missing completion time")
	}
}

func TestSearchDisabledLLMDownStillCompletes(t *testing.T) {
	gateway := llm.NewGateway(&scriptedProvider{err: errors.New("provider unreachable")})
	a := NewSearchAgent(gateway, &scriptedSearch{available: false}, constant.NewPromptRegistry(), nopLogger{})

	bundle := a.PerformEnhancedSearch(context.Background(), "วิทยาศาสตร์", "ระบบหายใจ", "ม.2", "นักเรียนทั่วไป ร้อยละ 100")

	assertBundleComplete(t, bundle)
	if bundle.Metadata.SearchPerformed {
		t.Error("metadata claims search ran while disabled")
	}
	if bundle.Metadata.QueriesRun != 0 {
		t.Errorf("queries run = %d, want 0", bundle.Metadata.QueriesRun)
	}
	if !bundle.Metadata.FallbackUsed {
		t.Error("metadata should record the fallback")
	}
}

func TestSearchDisabledReasoningWorks(t *testing.T) {
	provider := &scriptedProvider{response: `{"insights": ["ใช้สื่อหลายรูปแบบ", "จับคู่เพื่อนช่วยเพื่อน"]}`}
	a := NewSearchAgent(llm.NewGateway(provider), &scriptedSearch{available: false}, constant.NewPromptRegistry(), nopLogger{})

	bundle := a.PerformEnhancedSearch(context.Background(), "คณิตศาสตร์", "เศษส่วน", "ป.5", "")

	assertBundleComplete(t, bundle)
	if !bundle.Metadata.FallbackUsed {
		t.Error("reasoning path should still count as fallback")
	}
	if provider.calls == 0 {
		t.Error("expected reasoning calls to the model")
	}
	if bundle.UDLStrategies[0] != "ใช้สื่อหลายรูปแบบ" {
		t.Errorf("unexpected insight: %q", bundle.UDLStrategies[0])
	}
}

func TestSearchResultsDistilled(t *testing.T) {
	provider := &scriptedProvider{response: `{"insights": ["สอนแบบสืบเสาะ 5 ขั้น"]}`}
	client := &scriptedSearch{
		available: true,
		results: []search.Result{
			{Title: "แนวทางการสอน", Snippet: "ใช้กระบวนการสืบเสาะ", Relevance: 1.0},
		},
	}
	a := NewSearchAgent(llm.NewGateway(provider), client, constant.NewPromptRegistry(), nopLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	bundle := a.PerformEnhancedSearch(ctx, "วิทยาศาสตร์", "ระบบหายใจ", "ม.2", "")

	assertBundleComplete(t, bundle)
	if !bundle.Metadata.SearchPerformed {
		t.Error("metadata should record the search")
	}
	if bundle.Metadata.QueriesRun == 0 {
		t.Error("queries run should be positive")
	}
	if bundle.Metadata.FallbackUsed {
		t.Error("distill succeeded, no fallback expected")
	}
	if bundle.TeachingProcessExamples[0] != "สอนแบบสืบเสาะ 5 ขั้น" {
		t.Errorf("unexpected distilled insight: %q", bundle.TeachingProcessExamples[0])
	}
}

func TestSearchErrorsFallThrough(t *testing.T) {
	provider := &scriptedProvider{response: `{"insights": ["ข้อแนะนำจากการใช้เหตุผล"]}`}
	client := &scriptedSearch{available: true, err: errors.New("quota exceeded")}
	a := NewSearchAgent(llm.NewGateway(provider), client, constant.NewPromptRegistry(), nopLogger{})

	bundle := a.PerformEnhancedSearch(context.Background(), "ศิลปะ", "สีน้ำ", "ป.3", "")

	assertBundleComplete(t, bundle)
	if !bundle.Metadata.FallbackUsed {
		t.Error("search failures should mark fallback")
	}
}

// recordingSearch captures every query it is asked to run.
type recordingSearch struct {
	mu      sync.Mutex
	queries []string
	results []search.Result
}

func (s *recordingSearch) Search(ctx context.Context, query string) ([]search.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	return s.results, nil
}

func (s *recordingSearch) Available() bool { return true }

// focusProvider answers distill prompts differently depending on the
// category focus embedded in the prompt.
type focusProvider struct{}

func (focusProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	var b strings.Builder
	for _, m := range history {
		b.WriteString(m.Content)
	}
	if strings.Contains(b.String(), "รายละเอียดบทเรียน") {
		return `{"insights": ["แนวคิดหลักคือการแลกเปลี่ยนแก๊ส", "นักเรียนมักสับสนระหว่างหายใจเข้าและหายใจออก"]}`, nil
	}
	return `{"insights": ["สอนแบบสืบเสาะ 5 ขั้น"]}`, nil
}

func (p focusProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Content: prompt}}, opts...)
}

func TestLessonDetailsUsesOwnContentSearch(t *testing.T) {
	client := &recordingSearch{
		results: []search.Result{
			{Title: "บทเรียน", Snippet: "เนื้อหาระบบหายใจ", Relevance: 1.0},
		},
	}
	a := NewSearchAgent(llm.NewGateway(focusProvider{}), client, constant.NewPromptRegistry(), nopLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	bundle := a.PerformEnhancedSearch(ctx, "วิทยาศาสตร์", "ระบบหายใจ", "ม.2", "")

	assertBundleComplete(t, bundle)
	want := "แนวคิดหลักคือการแลกเปลี่ยนแก๊ส นักเรียนมักสับสนระหว่างหายใจเข้าและหายใจออก"
	if bundle.LessonDetails != want {
		t.Errorf("lesson details = %q, want the content synthesis %q", bundle.LessonDetails, want)
	}
	if bundle.TeachingProcessExamples[0] == bundle.LessonDetails {
		t.Error("lesson details must not mirror the teaching-process category")
	}

	client.mu.Lock()
	defer client.mu.Unlock()
	var sawDetailQuery bool
	for _, q := range client.queries {
		if strings.Contains(q, "รายละเอียดบทเรียน") {
			sawDetailQuery = true
		}
	}
	if !sawDetailQuery {
		t.Errorf("no lesson-detail query issued, got %v", client.queries)
	}
}

func TestFallbackResultsAlwaysNonEmpty(t *testing.T) {
	queries := []string{
		"กระบวนการจัดการเรียนรู้ อะไรก็ได้",
		"UDL design",
		"ห้องเรียนรวม",
		"totally unrelated query",
	}
	for _, q := range queries {
		if got := search.FallbackResults(q); len(got) == 0 {
			t.Errorf("FallbackResults(%q) is empty", q)
		}
	}
}
