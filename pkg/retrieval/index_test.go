package retrieval

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"ai-lessonplan-be/internal/pkg/apperrors"
	"ai-lessonplan-be/pkg/embedding"
)

// fakeEmbedder returns deterministic vectors keyed by text content so
// similarity ordering is predictable without a real model.
type fakeEmbedder struct {
	calls   atomic.Int64
	vectors map[string][]float32
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.calls.Add(1)
	vec, ok := f.vectors[text]
	if !ok {
		vec = []float32{0.1, 0.1, 0.1}
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: vec},
	}, nil
}

func writeCorpus(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIndexMissingCorpus(t *testing.T) {
	r := NewRetriever(&fakeEmbedder{}, t.TempDir(), 1000, 200, 0.6)

	_, err := r.Index(context.Background(), "คณิตศาสตร์")
	if !errors.Is(err, apperrors.ErrCurriculumNotFound) {
		t.Fatalf("error = %v, want ErrCurriculumNotFound", err)
	}
}

func TestIndexCachedPerCorpus(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, "science.csv", "ว 1.1,อธิบายโครงสร้างเซลล์\nว 1.2,อธิบายระบบหายใจ")

	emb := &fakeEmbedder{}
	r := NewRetriever(emb, dir, 1000, 200, 0.6)

	first, err := r.Index(context.Background(), "วิทยาศาสตร์")
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	callsAfterFirst := emb.calls.Load()
	if callsAfterFirst == 0 {
		t.Fatal("expected embedding calls on first build")
	}

	second, err := r.Index(context.Background(), "วิทยาศาสตร์")
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if second != first {
		t.Error("expected the cached index instance")
	}
	if emb.calls.Load() != callsAfterFirst {
		t.Error("cached index rebuilt the embeddings")
	}
}

func TestQueryOrdersByScore(t *testing.T) {
	dir := t.TempDir()
	// Small chunk size so each row becomes roughly one chunk.
	writeCorpus(t, dir, "curriculum.csv", "alpha\nbeta")

	emb := &fakeEmbedder{
		vectors: map[string][]float32{
			"alpha": {1, 0, 0},
			"beta":  {0, 1, 0},
			"query": {0.9, 0.1, 0},
		},
	}
	r := NewRetriever(emb, dir, 5, 0, 0.6)

	idx, err := r.Index(context.Background(), "ไม่มีวิชานี้")
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	passages, err := r.Query(context.Background(), idx, "query", 2)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(passages) != 2 {
		t.Fatalf("got %d passages, want 2", len(passages))
	}
	if passages[0].Score < passages[1].Score {
		t.Errorf("passages not sorted by score: %v then %v", passages[0].Score, passages[1].Score)
	}
	if passages[0].Content != "alpha" {
		t.Errorf("top passage = %q, want alpha", passages[0].Content)
	}
}

func TestQueryTopKBound(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, "curriculum.csv", "aaa\nbbb\nccc\nddd")

	r := NewRetriever(&fakeEmbedder{}, dir, 3, 0, 0.6)

	idx, err := r.Index(context.Background(), "อื่นๆ")
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	passages, err := r.Query(context.Background(), idx, "query", 2)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(passages) > 2 {
		t.Errorf("got %d passages, want at most 2", len(passages))
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"thai latin boundary", "วิทยาศาสตร์Science", "วิทยาศาสตร์ Science"},
		{"latin thai boundary", "Scienceวิทยาศาสตร์", "Science วิทยาศาสตร์"},
		{"digit thai boundary", "1ชั้น", "1 ชั้น"},
		{"thai digit boundary", "ชั้น1", "ชั้น 1"},
		{"delimiters", "a,b;c|d", "a b c d"},
		{"whitespace collapse", "a   b\t\nc", "a b c"},
		{"trim", "  กลาง  ", "กลาง"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.in); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
