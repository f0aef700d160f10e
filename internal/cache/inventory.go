package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	FeedFirstPageKey = "feed:page:1"
	TopUsersKey      = "users:top"
	StoriesActiveKey = "stories:active"
)

const (
	UserTTL        = 5 * time.Minute
	FeedTTL        = 1 * time.Minute
	LeaderboardTTL = 30 * time.Second
	StoriesTTL     = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateFeed drops the cached first feed page. Called after any write
// that changes what the feed shows (new post, like, comment).
func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, FeedFirstPageKey)
}

func InvalidateTopUsers(ctx context.Context) {
	Invalidate(ctx, TopUsersKey)
}

func InvalidateStories(ctx context.Context) {
	Invalidate(ctx, StoriesActiveKey)
}
