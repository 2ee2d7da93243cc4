package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=1400"`
}

type CitationDTO struct {
	DocumentId string `json:"document_id"`
	Title      string `json:"title"`
	ChunkIndex int    `json:"chunk_index"`
}

type SendMessageResponse struct {
	Reply            string        `json:"reply"`
	Citations        []CitationDTO `json:"citations,omitempty"`
	CapabilitiesUsed []string      `json:"capabilities_used,omitempty"`
}

type GetHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Seq       int64     `json:"seq"`
	CreatedAt time.Time `json:"created_at"`
}
