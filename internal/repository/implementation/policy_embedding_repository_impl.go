package implementation

import (
	"context"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/mapper"
	"hr-assistant-be/internal/model"
	"hr-assistant-be/internal/repository/contract"
	"hr-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type PolicyEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PolicyMapper
}

func NewPolicyEmbeddingRepository(db *gorm.DB) contract.PolicyEmbeddingRepository {
	return &PolicyEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewPolicyMapper(),
	}
}

func (r *PolicyEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PolicyEmbeddingRepositoryImpl) Create(ctx context.Context, chunk *entity.PolicyChunk) error {
	m := r.mapper.ToModel(chunk)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ToEntity(m)
	return nil
}

func (r *PolicyEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.PolicyChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.PolicyChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *PolicyEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PolicyChunk{}, id).Error
}

func (r *PolicyEmbeddingRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId string) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.PolicyChunk{}).Error
}

func (r *PolicyEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PolicyChunk, error) {
	var models []*model.PolicyChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.PolicyChunk, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *PolicyEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.PolicyChunk{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore returns chunks with cosine similarity scores in
// non-increasing order, filtered by threshold.
// Cosine distance in pgvector is 1 - cosine_similarity, so we compute
// 1 - (embedding_value <=> query_vector) = cosine_similarity.
func (r *PolicyEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredPolicyChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.PolicyChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("policy_chunks").
		Select("policy_chunks.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredPolicyChunk, len(results))
	for i, res := range results {
		chunk := res.PolicyChunk
		scored[i] = &contract.ScoredPolicyChunk{
			Chunk:      r.mapper.ToEntity(&chunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
