package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	TurnRoleUser      = "user"
	TurnRoleAssistant = "assistant"
)

// Turn is a single entry in a user's conversation log. Turns are immutable
// once created; Seq is assigned by the store and defines conversational time.
type Turn struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Role      string
	Content   string
	Seq       int64
	CreatedAt time.Time
}
