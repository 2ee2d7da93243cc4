package memory

import (
	"context"
	"fmt"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Store persists conversation turns. The log is append-only and never
// truncated; bounding is the reader's concern via Window.
type Store struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewStore(uowFactory unitofwork.RepositoryFactory) *Store {
	return &Store{
		uowFactory: uowFactory,
	}
}

// Read returns the user's full conversation, most recent last.
func (s *Store) Read(ctx context.Context, userId uuid.UUID) ([]*entity.Turn, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ConversationRepository().FindAllByUserId(ctx, userId)
}

// Append writes the given turns in order inside one transaction. Either all
// turns land or none do.
func (s *Store) Append(ctx context.Context, userId uuid.UUID, turns ...*entity.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	for _, turn := range turns {
		turn.UserId = userId
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := uow.ConversationRepository().Append(ctx, turns...); err != nil {
		uow.Rollback()
		return err
	}

	return uow.Commit()
}

// Window returns the last n turns, preserving order. The persisted log is
// untouched; this is purely the reader-side bound. A non-positive n yields an
// empty window rather than an unbounded one.
func Window(turns []*entity.Turn, n int) []*entity.Turn {
	if n <= 0 {
		return nil
	}
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}
