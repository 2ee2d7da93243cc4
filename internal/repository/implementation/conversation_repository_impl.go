package implementation

import (
	"context"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/mapper"
	"hr-assistant-be/internal/model"
	"hr-assistant-be/internal/repository/contract"
	"hr-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TurnMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewTurnMapper(),
	}
}

func (r *ConversationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Append writes turns in argument order. Insertion order matters: the Seq
// column is assigned by the database, so turns handed in together land in
// the order given.
func (r *ConversationRepositoryImpl) Append(ctx context.Context, turns ...*entity.Turn) error {
	for _, turn := range turns {
		m := r.mapper.ToModel(turn)
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			return err
		}
		*turn = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ConversationRepositoryImpl) FindAllByUserId(ctx context.Context, userId uuid.UUID) ([]*entity.Turn, error) {
	return r.FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "seq", Desc: false},
	)
}

func (r *ConversationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Turn, error) {
	var models []*model.ConversationTurn
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Turn, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ConversationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ConversationTurn{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
