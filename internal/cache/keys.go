package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix = "user:%d"
	PinKeyPrefix  = "pin:%d"
)

const (
	UserTTL = 5 * time.Minute
	PinTTL  = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PinKey(pinID uint) string {
	return fmt.Sprintf(PinKeyPrefix, pinID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePin(ctx context.Context, pinID uint) {
	Invalidate(ctx, PinKey(pinID))
}
