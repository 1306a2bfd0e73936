package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ykwizera/studysync/internal/cache"
)

// fakeMemberCache is an in-memory MemberCache with switchable failures.
type fakeMemberCache struct {
	mu       sync.Mutex
	sets     map[int64][]int64
	failRead bool
	reads    int
	writes   int
}

func newFakeMemberCache() *fakeMemberCache {
	return &fakeMemberCache{sets: make(map[int64][]int64)}
}

func (c *fakeMemberCache) MemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	if c.failRead {
		return nil, errors.New("connection refused")
	}
	ids, ok := c.sets[groupID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return append([]int64(nil), ids...), nil
}

func (c *fakeMemberCache) SetMembers(ctx context.Context, groupID int64, userIDs []int64, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes++
	c.sets[groupID] = append([]int64(nil), userIDs...)
	return nil
}

func (c *fakeMemberCache) AddMember(ctx context.Context, groupID, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.sets[groupID]; ok {
		c.sets[groupID] = append(c.sets[groupID], userID)
	}
	return nil
}

func (c *fakeMemberCache) Invalidate(ctx context.Context, groupID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sets, groupID)
	return nil
}

func (c *fakeMemberCache) Close() error { return nil }

func TestMembershipIndex_MembersOf(t *testing.T) {
	t.Run("cache miss falls back to repository and backfills", func(t *testing.T) {
		repo := newFakeGroupRepo()
		repo.addGroup(7, "CODE7", 1, 2)
		memberCache := newFakeMemberCache()
		index := NewMembershipIndex(repo, memberCache, time.Minute)

		members, err := index.MembersOf(context.Background(), 7)
		if err != nil {
			t.Fatalf("MembersOf error: %v", err)
		}
		if len(members) != 2 {
			t.Fatalf("len(members) = %d, want 2", len(members))
		}
		if memberCache.writes != 1 {
			t.Errorf("cache writes = %d, want 1 backfill", memberCache.writes)
		}
	})

	t.Run("cache hit serves the set without the repository", func(t *testing.T) {
		repo := newFakeGroupRepo()
		memberCache := newFakeMemberCache()
		memberCache.sets[7] = []int64{1, 2, 3}
		index := NewMembershipIndex(repo, memberCache, time.Minute)

		members, err := index.MembersOf(context.Background(), 7)
		if err != nil {
			t.Fatalf("MembersOf error: %v", err)
		}
		if len(members) != 3 {
			t.Fatalf("len(members) = %d, want 3", len(members))
		}
	})

	t.Run("cache failure degrades to repository", func(t *testing.T) {
		repo := newFakeGroupRepo()
		repo.addGroup(7, "CODE7", 1)
		memberCache := newFakeMemberCache()
		memberCache.failRead = true
		index := NewMembershipIndex(repo, memberCache, time.Minute)

		members, err := index.MembersOf(context.Background(), 7)
		if err != nil {
			t.Fatalf("MembersOf error: %v", err)
		}
		if _, ok := members[1]; !ok {
			t.Fatal("member 1 missing after cache failure")
		}
	})

	t.Run("nil cache reads the repository directly", func(t *testing.T) {
		repo := newFakeGroupRepo()
		repo.addGroup(7, "CODE7", 1)
		index := NewMembershipIndex(repo, nil, 0)

		members, err := index.MembersOf(context.Background(), 7)
		if err != nil {
			t.Fatalf("MembersOf error: %v", err)
		}
		if len(members) != 1 {
			t.Fatalf("len(members) = %d, want 1", len(members))
		}
	})

	t.Run("empty group is not cached", func(t *testing.T) {
		repo := newFakeGroupRepo()
		repo.addGroup(7, "CODE7")
		memberCache := newFakeMemberCache()
		index := NewMembershipIndex(repo, memberCache, time.Minute)

		members, err := index.MembersOf(context.Background(), 7)
		if err != nil {
			t.Fatalf("MembersOf error: %v", err)
		}
		if len(members) != 0 {
			t.Fatalf("len(members) = %d, want 0", len(members))
		}
		if memberCache.writes != 0 {
			t.Errorf("cache writes = %d, want 0", memberCache.writes)
		}
	})
}

func TestMembershipIndex_MemberAdded(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.addGroup(7, "CODE7", 1)
	memberCache := newFakeMemberCache()
	memberCache.sets[7] = []int64{1}
	index := NewMembershipIndex(repo, memberCache, time.Minute)

	index.MemberAdded(context.Background(), 7, 2)

	members, err := index.MembersOf(context.Background(), 7)
	if err != nil {
		t.Fatalf("MembersOf error: %v", err)
	}
	if _, ok := members[2]; !ok {
		t.Fatal("added member missing from cached set")
	}
}
