package contract

import (
	"context"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredPolicyChunk pairs a chunk with its cosine similarity to a query.
type ScoredPolicyChunk struct {
	Chunk      *entity.PolicyChunk
	Similarity float64
}

type PolicyEmbeddingRepository interface {
	Create(ctx context.Context, chunk *entity.PolicyChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.PolicyChunk) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByDocumentId(ctx context.Context, documentId string) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PolicyChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredPolicyChunk, error)
}
