package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"ai-lessonplan-be/pkg/embedding"
	"ai-lessonplan-be/pkg/utils"
)

// Passage is a scored chunk of curriculum text.
type Passage struct {
	Content string
	Score   float64
}

// Index holds the embedded chunks of one corpus file.
type Index struct {
	Corpus  string
	chunks  []string
	vectors [][]float32
}

// Size returns the number of chunks in the index.
func (idx *Index) Size() int {
	return len(idx.chunks)
}

// Retriever builds and queries in-memory vector indexes over the
// curriculum corpora. Indexes are cached per corpus file so repeated
// sessions against the same subject embed each corpus only once.
type Retriever struct {
	embedder     embedding.EmbeddingProvider
	cache        *gocache.Cache
	dataDir      string
	chunkSize    int
	chunkOverlap int
	threshold    float64
}

func NewRetriever(embedder embedding.EmbeddingProvider, dataDir string, chunkSize, chunkOverlap int, subjectThreshold float64) *Retriever {
	return &Retriever{
		embedder:     embedder,
		cache:        gocache.New(gocache.NoExpiration, 10*time.Minute),
		dataDir:      dataDir,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		threshold:    subjectThreshold,
	}
}

// Index returns the vector index for the subject's corpus, building and
// caching it on first use.
func (r *Retriever) Index(ctx context.Context, subject string) (*Index, error) {
	corpus := ResolveCorpus(subject, r.threshold)

	if cached, found := r.cache.Get(corpus); found {
		return cached.(*Index), nil
	}

	lines, err := LoadCorpus(r.dataDir, corpus)
	if err != nil {
		return nil, err
	}

	chunks := utils.SplitText(strings.Join(lines, "\n"), r.chunkSize, r.chunkOverlap)

	idx := &Index{
		Corpus:  corpus,
		chunks:  chunks,
		vectors: make([][]float32, 0, len(chunks)),
	}

	for _, chunk := range chunks {
		res, err := r.embedder.Generate(ctx, chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return nil, fmt.Errorf("embedding corpus %s: %w", corpus, err)
		}
		idx.vectors = append(idx.vectors, res.Embedding.Values)
	}

	r.cache.Set(corpus, idx, gocache.NoExpiration)
	return idx, nil
}

// Query embeds the query text and returns the top k passages by cosine
// similarity, highest score first.
func (r *Retriever) Query(ctx context.Context, idx *Index, text string, k int) ([]Passage, error) {
	res, err := r.embedder.Generate(ctx, text, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	queryVec := res.Embedding.Values

	passages := make([]Passage, 0, len(idx.chunks))
	for i, chunk := range idx.chunks {
		passages = append(passages, Passage{
			Content: chunk,
			Score:   cosineSimilarity(queryVec, idx.vectors[i]),
		})
	}

	sort.SliceStable(passages, func(i, j int) bool {
		return passages[i].Score > passages[j].Score
	})

	if k > 0 && len(passages) > k {
		passages = passages[:k]
	}
	return passages, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
