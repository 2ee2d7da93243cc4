package dto

type IngestPolicyRequest struct {
	DocumentId string `json:"document_id" validate:"required"`
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

type IngestPolicyResponse struct {
	DocumentId string `json:"document_id"`
	Queued     bool   `json:"queued"`
}

// PublishEmbedPolicyMessage is the ingestion bus payload.
type PublishEmbedPolicyMessage struct {
	DocumentId string `json:"document_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}
