package cache

import (
	"context"
	"fmt"
	"time"
)

const UserKeyPrefix = "agora:user:%s"

// UserTTL bounds how long a user snapshot is served from cache. Users are
// immutable once created, so the TTL only limits memory use.
const UserTTL = 10 * time.Minute

func UserKey(userID string) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID string) {
	Invalidate(ctx, UserKey(userID))
}
