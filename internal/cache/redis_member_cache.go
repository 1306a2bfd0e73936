package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ykwizera/studysync/internal/config"
)

// RedisMemberCache implements MemberCache on Redis sets.
//
// Key pattern:
//   {prefix}:group:{group_id}:members   SET<user_id>
type RedisMemberCache struct {
	client *redis.Client
	prefix string
}

// NewRedisMemberCache creates a new Redis-backed member cache.
func NewRedisMemberCache(cfg config.RedisConfig) (*RedisMemberCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisMemberCache{
		client: client,
		prefix: cfg.MemberPrefix,
	}, nil
}

func (c *RedisMemberCache) membersKey(groupID int64) string {
	return fmt.Sprintf("%s:group:%d:members", c.prefix, groupID)
}

// MemberIDs returns the cached member set.
func (c *RedisMemberCache) MemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	members, err := c.client.SMembers(ctx, c.membersKey(groupID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get members from redis: %w", err)
	}
	if len(members) == 0 {
		return nil, ErrCacheMiss
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt member id %q in cache: %w", m, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SetMembers replaces the cached member set for a group.
func (c *RedisMemberCache) SetMembers(ctx context.Context, groupID int64, userIDs []int64, ttl time.Duration) error {
	key := c.membersKey(groupID)

	members := make([]interface{}, len(userIDs))
	for i, id := range userIDs {
		members[i] = strconv.FormatInt(id, 10)
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(members) > 0 {
		pipe.SAdd(ctx, key, members...)
		pipe.Expire(ctx, key, ttl)
	}
	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set members in redis: %w", err)
	}
	return nil
}

// AddMember adds one user to a cached member set. A no-op when the set
// is not cached, so a stale partial set is never created.
func (c *RedisMemberCache) AddMember(ctx context.Context, groupID, userID int64) error {
	key := c.membersKey(groupID)

	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check member set in redis: %w", err)
	}
	if exists == 0 {
		return nil
	}

	if err := c.client.SAdd(ctx, key, strconv.FormatInt(userID, 10)).Err(); err != nil {
		return fmt.Errorf("failed to add member in redis: %w", err)
	}
	return nil
}

// Invalidate drops the cached member set of a group.
func (c *RedisMemberCache) Invalidate(ctx context.Context, groupID int64) error {
	if err := c.client.Del(ctx, c.membersKey(groupID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate member set in redis: %w", err)
	}
	return nil
}

func (c *RedisMemberCache) Close() error {
	return c.client.Close()
}
