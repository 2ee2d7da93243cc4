package mapper

import (
	"time"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type PolicyMapper struct{}

func NewPolicyMapper() *PolicyMapper {
	return &PolicyMapper{}
}

func (m *PolicyMapper) ToEntity(c *model.PolicyChunk) *entity.PolicyChunk {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.PolicyChunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		Title:      c.Title,
		ChunkIndex: c.ChunkIndex,
		Content:    c.Content,
		Embedding:  c.EmbeddingValue.Slice(),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *PolicyMapper) ToModel(c *entity.PolicyChunk) *model.PolicyChunk {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.PolicyChunk{
		Id:             c.Id,
		DocumentId:     c.DocumentId,
		Title:          c.Title,
		ChunkIndex:     c.ChunkIndex,
		Content:        c.Content,
		EmbeddingValue: pgvector.NewVector(c.Embedding),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}
