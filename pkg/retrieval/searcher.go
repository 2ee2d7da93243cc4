package retrieval

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"hr-assistant-be/internal/repository/contract"
	"hr-assistant-be/internal/repository/unitofwork"
	"hr-assistant-be/pkg/agent"
	"hr-assistant-be/pkg/embedding"

	gocache "github.com/patrickmn/go-cache"
)

// Config encapsulates search parameters.
type Config struct {
	TopK      int
	MaxTopK   int
	Threshold float64
	CacheTTL  time.Duration
}

func DefaultConfig() Config {
	return Config{
		TopK:      5,
		MaxTopK:   8,
		Threshold: 0.35,
		CacheTTL:  2 * time.Minute,
	}
}

// Searcher is the document retrieval capability: embed the query, run a
// cosine search over policy chunks, return passages with citations. Policy
// documents carry no per-role restrictions; authentication alone gates
// access here.
type Searcher struct {
	embeddingProvider embedding.EmbeddingProvider
	uowFactory        unitofwork.RepositoryFactory
	cache             *gocache.Cache
	config            Config
	logger            *log.Logger
}

func NewSearcher(
	embeddingProvider embedding.EmbeddingProvider,
	uowFactory unitofwork.RepositoryFactory,
	config Config,
	logger *log.Logger,
) *Searcher {
	return &Searcher{
		embeddingProvider: embeddingProvider,
		uowFactory:        uowFactory,
		cache:             gocache.New(config.CacheTTL, 2*config.CacheTTL),
		config:            config,
		logger:            logger,
	}
}

// Search implements agent.DocumentCapability. An empty result set is a
// normal outcome, not an error.
func (s *Searcher) Search(ctx context.Context, query string) agent.Result {
	cacheKey := strings.ToLower(strings.TrimSpace(query))
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(agent.Result)
	}

	embeddingRes, err := s.embeddingProvider.Generate(query, embedding.TaskTypeRetrievalQuery)
	if err != nil {
		return agent.FailedResult(agent.CapabilityDocumentSearch,
			agent.NewUpstreamError("query embedding", err))
	}

	topK := s.config.TopK
	if topK > s.config.MaxTopK {
		topK = s.config.MaxTopK
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.PolicyEmbeddingRepository().SearchSimilarWithScore(
		ctx,
		embeddingRes.Embedding.Values,
		topK,
		s.config.Threshold,
	)
	if err != nil {
		return agent.FailedResult(agent.CapabilityDocumentSearch,
			agent.NewUpstreamError("vector search", err))
	}

	s.logger.Printf("[DEBUG] policy search %q returned %d passages", query, len(scored))

	result := buildResult(scored)
	s.cache.Set(cacheKey, result, gocache.DefaultExpiration)

	return result
}

func buildResult(scored []*contract.ScoredPolicyChunk) agent.Result {
	if len(scored) == 0 {
		return agent.OkResult(agent.CapabilityDocumentSearch, "")
	}

	var content strings.Builder
	citations := make([]agent.Citation, 0, len(scored))

	for _, hit := range scored {
		content.WriteString(fmt.Sprintf("--- %s (passage %d) ---\n", hit.Chunk.Title, hit.Chunk.ChunkIndex))
		content.WriteString(hit.Chunk.Content)
		content.WriteString("\n")

		citations = append(citations, agent.Citation{
			DocumentId: hit.Chunk.DocumentId,
			Title:      hit.Chunk.Title,
			ChunkIndex: hit.Chunk.ChunkIndex,
		})
	}

	return agent.OkResult(agent.CapabilityDocumentSearch, content.String(), citations...)
}
