package cache

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

// MemberCache caches the member set of each group.
type MemberCache interface {
	// MemberIDs returns the cached member set, or ErrCacheMiss when the
	// group has no cached entry.
	MemberIDs(ctx context.Context, groupID int64) ([]int64, error)
	SetMembers(ctx context.Context, groupID int64, userIDs []int64, ttl time.Duration) error
	AddMember(ctx context.Context, groupID, userID int64) error
	Invalidate(ctx context.Context, groupID int64) error
	Close() error
}
