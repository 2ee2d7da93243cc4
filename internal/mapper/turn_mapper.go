package mapper

import (
	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/model"
)

type TurnMapper struct{}

func NewTurnMapper() *TurnMapper {
	return &TurnMapper{}
}

func (m *TurnMapper) ToEntity(t *model.ConversationTurn) *entity.Turn {
	if t == nil {
		return nil
	}
	return &entity.Turn{
		Id:        t.Id,
		UserId:    t.UserId,
		Role:      t.Role,
		Content:   t.Content,
		Seq:       t.Seq,
		CreatedAt: t.CreatedAt,
	}
}

func (m *TurnMapper) ToModel(t *entity.Turn) *model.ConversationTurn {
	if t == nil {
		return nil
	}
	return &model.ConversationTurn{
		Id:        t.Id,
		UserId:    t.UserId,
		Role:      t.Role,
		Content:   t.Content,
		Seq:       t.Seq,
		CreatedAt: t.CreatedAt,
	}
}
