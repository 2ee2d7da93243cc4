package contract

import (
	"context"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ConversationRepository is the append-only persisted conversation log.
// There is no Update or Delete: turns are immutable once written.
type ConversationRepository interface {
	Append(ctx context.Context, turns ...*entity.Turn) error
	FindAllByUserId(ctx context.Context, userId uuid.UUID) ([]*entity.Turn, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Turn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
