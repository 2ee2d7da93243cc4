package unitofwork

import (
	"context"

	"hr-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	RecordRepository() contract.RecordRepository
	ConversationRepository() contract.ConversationRepository
	PolicyEmbeddingRepository() contract.PolicyEmbeddingRepository
}
