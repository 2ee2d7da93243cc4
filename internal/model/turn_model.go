package model

import (
	"time"

	"github.com/google/uuid"
)

type ConversationTurn struct {
	Id      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId  uuid.UUID `gorm:"type:uuid;not null;index:idx_turns_user_seq,priority:1"`
	Role    string    `gorm:"type:text;not null"`
	Content string    `gorm:"type:text;not null"`
	// Seq is a global monotonic sequence; per-user ordering follows from it
	// because appends for one user are serialized by the agent core.
	Seq       int64     `gorm:"autoIncrement;index:idx_turns_user_seq,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ConversationTurn) TableName() string {
	return "conversation_turns"
}
