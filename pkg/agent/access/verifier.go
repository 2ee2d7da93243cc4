package access

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LimitExceededError signals the user has spent their daily message budget.
type LimitExceededError struct {
	Limit int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("daily message limit of %d reached", e.Limit)
}

// Verifier enforces per-user daily usage limits backed by Redis counters.
// A nil client disables limiting entirely.
type Verifier struct {
	client     *redis.Client
	dailyLimit int
}

func NewVerifier(client *redis.Client, dailyLimit int) *Verifier {
	return &Verifier{
		client:     client,
		dailyLimit: dailyLimit,
	}
}

// VerifyAndCount increments today's counter for the user and fails once the
// limit is crossed. Limit <= 0 means unlimited. A Redis outage does not
// block chat; limiting is best effort.
func (v *Verifier) VerifyAndCount(ctx context.Context, userId uuid.UUID) error {
	if v.client == nil || v.dailyLimit <= 0 {
		return nil
	}

	key := fmt.Sprintf("chat_usage:%s:%s", userId, time.Now().Format("2006-01-02"))

	count, err := v.client.Incr(ctx, key).Result()
	if err != nil {
		return nil
	}
	if count == 1 {
		// Counters expire on their own, no reset job needed
		v.client.Expire(ctx, key, 25*time.Hour)
	}

	if count > int64(v.dailyLimit) {
		return &LimitExceededError{Limit: v.dailyLimit}
	}

	return nil
}
