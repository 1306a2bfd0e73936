package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ykwizera/studysync/internal/cache"
	"github.com/ykwizera/studysync/internal/repository"
	"github.com/ykwizera/studysync/pkg/log"
)

// MembershipIndex resolves the member set of a group. Reads go through
// the Redis cache with a repository fallback that backfills the cache;
// with a nil cache every read hits the repository directly. Concurrent
// fallback reads for the same group are collapsed into one query.
type MembershipIndex struct {
	repo  repository.GroupRepository
	cache cache.MemberCache
	ttl   time.Duration
	sf    singleflight.Group
}

// NewMembershipIndex creates a membership index. The cache may be nil.
func NewMembershipIndex(repo repository.GroupRepository, memberCache cache.MemberCache, ttl time.Duration) *MembershipIndex {
	return &MembershipIndex{
		repo:  repo,
		cache: memberCache,
		ttl:   ttl,
	}
}

// MembersOf returns the member set of a group as one atomic snapshot.
func (idx *MembershipIndex) MembersOf(ctx context.Context, groupID int64) (map[int64]struct{}, error) {
	l := log.Ctx(ctx)

	if idx.cache != nil {
		ids, err := idx.cache.MemberIDs(ctx, groupID)
		if err == nil {
			return toSet(ids), nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			l.Warn().Err(err).Int64(log.FieldGroupID, groupID).Msg("member cache read failed, falling back to db")
		}
	}

	result, err, _ := idx.sf.Do(strconv.FormatInt(groupID, 10), func() (interface{}, error) {
		ids, err := idx.repo.MemberIDs(ctx, groupID)
		if err != nil {
			return nil, err
		}

		if idx.cache != nil && len(ids) > 0 {
			if err := idx.cache.SetMembers(ctx, groupID, ids, idx.ttl); err != nil {
				l.Warn().Err(err).Int64(log.FieldGroupID, groupID).Msg("member cache backfill failed")
			}
		}
		return ids, nil
	})
	if err != nil {
		return nil, err
	}

	return toSet(result.([]int64)), nil
}

// MemberAdded keeps the cached set coherent after a successful join.
func (idx *MembershipIndex) MemberAdded(ctx context.Context, groupID, userID int64) {
	if idx.cache == nil {
		return
	}
	if err := idx.cache.AddMember(ctx, groupID, userID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Int64(log.FieldGroupID, groupID).Msg("member cache update failed")
	}
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
