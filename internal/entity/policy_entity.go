package entity

import (
	"time"

	"github.com/google/uuid"
)

// PolicyChunk is one embedded passage of a policy document. DocumentId and
// ChunkIndex together form the citation location for retrieval results.
type PolicyChunk struct {
	Id         uuid.UUID
	DocumentId string
	Title      string
	ChunkIndex int
	Content    string
	Embedding  []float32
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
