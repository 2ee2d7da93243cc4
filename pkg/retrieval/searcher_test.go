package retrieval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/repository/contract"
	"hr-assistant-be/internal/repository/unitofwork"
	"hr-assistant-be/pkg/agent"
	"hr-assistant-be/pkg/embedding"

	"github.com/google/uuid"
)

type fakeEmbedder struct {
	calls int
	err   error
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

type fakePolicyRepo struct {
	contract.PolicyEmbeddingRepository
	chunks    []*contract.ScoredPolicyChunk
	err       error
	gotLimit  int
	gotThresh float64
}

func (f *fakePolicyRepo) SearchSimilarWithScore(ctx context.Context, emb []float32, limit int, threshold float64) ([]*contract.ScoredPolicyChunk, error) {
	f.gotLimit = limit
	f.gotThresh = threshold
	if f.err != nil {
		return nil, f.err
	}
	if len(f.chunks) > limit {
		return f.chunks[:limit], nil
	}
	return f.chunks, nil
}

type fakeUow struct {
	unitofwork.UnitOfWork
	policyRepo *fakePolicyRepo
}

func (f *fakeUow) PolicyEmbeddingRepository() contract.PolicyEmbeddingRepository {
	return f.policyRepo
}

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func scoredChunks(n int) []*contract.ScoredPolicyChunk {
	chunks := make([]*contract.ScoredPolicyChunk, 0, n)
	for i := 0; i < n; i++ {
		chunks = append(chunks, &contract.ScoredPolicyChunk{
			Chunk: &entity.PolicyChunk{
				Id:         uuid.New(),
				DocumentId: "leave-policy",
				Title:      "Annual Leave Policy",
				ChunkIndex: i,
				Content:    fmt.Sprintf("passage %d", i),
			},
			Similarity: 0.9 - float64(i)*0.05,
		})
	}
	return chunks
}

func newTestSearcher(embedder *fakeEmbedder, repo *fakePolicyRepo, cfg Config) *Searcher {
	return NewSearcher(
		embedder,
		&fakeUowFactory{uow: &fakeUow{policyRepo: repo}},
		cfg,
		log.New(io.Discard, "", 0),
	)
}

func TestSearchReturnsPassagesWithCitations(t *testing.T) {
	repo := &fakePolicyRepo{chunks: scoredChunks(3)}
	searcher := newTestSearcher(&fakeEmbedder{}, repo, DefaultConfig())

	result := searcher.Search(context.Background(), "annual leave carry-over")

	if result.Status != agent.StatusOK {
		t.Fatalf("Status = %s, want ok (err: %v)", result.Status, result.Err)
	}
	if len(result.Citations) != 3 {
		t.Fatalf("citations = %d, want 3", len(result.Citations))
	}
	for i, citation := range result.Citations {
		if citation.DocumentId != "leave-policy" || citation.ChunkIndex != i {
			t.Errorf("citation %d = %+v", i, citation)
		}
	}
	if !strings.Contains(result.Content, "passage 0") {
		t.Errorf("content missing passage text: %q", result.Content)
	}
}

func TestSearchCapsTopK(t *testing.T) {
	repo := &fakePolicyRepo{chunks: scoredChunks(20)}
	cfg := DefaultConfig()
	cfg.TopK = 50
	cfg.MaxTopK = 8
	searcher := newTestSearcher(&fakeEmbedder{}, repo, cfg)

	result := searcher.Search(context.Background(), "everything")

	if repo.gotLimit != 8 {
		t.Errorf("limit passed to store = %d, want capped at 8", repo.gotLimit)
	}
	if len(result.Citations) > 8 {
		t.Errorf("citations = %d, want <= 8", len(result.Citations))
	}
}

func TestSearchEmptyIndexIsNotAnError(t *testing.T) {
	searcher := newTestSearcher(&fakeEmbedder{}, &fakePolicyRepo{}, DefaultConfig())

	result := searcher.Search(context.Background(), "something obscure")

	if result.Status != agent.StatusOK {
		t.Fatalf("Status = %s, want ok", result.Status)
	}
	if result.Content != "" || len(result.Citations) != 0 {
		t.Errorf("empty index should produce empty content, got %q", result.Content)
	}
}

func TestSearchScoresNonIncreasing(t *testing.T) {
	repo := &fakePolicyRepo{chunks: scoredChunks(5)}
	for i := 1; i < len(repo.chunks); i++ {
		if repo.chunks[i].Similarity > repo.chunks[i-1].Similarity {
			t.Fatal("fixture must be sorted by similarity")
		}
	}
	searcher := newTestSearcher(&fakeEmbedder{}, repo, DefaultConfig())

	result := searcher.Search(context.Background(), "leave")
	// Passage order in the content follows store order, which is score order
	first := strings.Index(result.Content, "passage 0")
	last := strings.Index(result.Content, "passage 4")
	if first == -1 || last == -1 || first > last {
		t.Errorf("passages out of score order in content")
	}
}

func TestSearchCachesResults(t *testing.T) {
	embedder := &fakeEmbedder{}
	searcher := newTestSearcher(embedder, &fakePolicyRepo{chunks: scoredChunks(2)}, DefaultConfig())

	first := searcher.Search(context.Background(), "Sick Leave")
	second := searcher.Search(context.Background(), "  sick leave ")

	if embedder.calls != 1 {
		t.Errorf("embedding calls = %d, want 1 (second hit served from cache)", embedder.calls)
	}
	if first.Content != second.Content {
		t.Errorf("cached result differs from original")
	}
}

func TestSearchEmbeddingFailureIsUpstream(t *testing.T) {
	searcher := newTestSearcher(&fakeEmbedder{err: errors.New("provider down")}, &fakePolicyRepo{}, DefaultConfig())

	result := searcher.Search(context.Background(), "anything")

	if result.Status != agent.StatusFailed {
		t.Fatalf("Status = %s, want failed", result.Status)
	}
	if !agent.IsUpstream(result.Err) {
		t.Errorf("err = %v, want upstream", result.Err)
	}
}

func TestSearchStoreFailureIsUpstream(t *testing.T) {
	repo := &fakePolicyRepo{err: errors.New("db gone")}
	searcher := newTestSearcher(&fakeEmbedder{}, repo, DefaultConfig())

	result := searcher.Search(context.Background(), "anything")

	if result.Status != agent.StatusFailed || !agent.IsUpstream(result.Err) {
		t.Fatalf("want failed upstream result, got %s / %v", result.Status, result.Err)
	}
}
