package redis

import (
	"context"
	"encoding/json"
	"time"

	userPort "socialfeed/internal/ports/user"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const profileKeyPrefix = "profile:"

// ProfileCacheRedis کش پروفایل عمومی نویسنده‌ها (بدون فیلدهای محرمانه)
type ProfileCacheRedis struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func NewProfileCacheRedis(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ProfileCacheRedis {
	return &ProfileCacheRedis{
		Client: client,
		TTL:    ttl,
		Logger: logger,
	}
}

// GetMany returns only the ids that were cached; misses are simply absent.
func (c *ProfileCacheRedis) GetMany(ctx context.Context, ids []string) (map[string]*userPort.UserDTO, error) {
	out := make(map[string]*userPort.UserDTO, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = profileKeyPrefix + id
	}

	vals, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var dto userPort.UserDTO
		if err := json.Unmarshal([]byte(s), &dto); err != nil {
			c.Logger.Warn("⚠️ Dropping unreadable cached profile", zap.String("key", keys[i]), zap.Error(err))
			continue
		}
		out[ids[i]] = &dto
	}
	return out, nil
}

func (c *ProfileCacheRedis) SetMany(ctx context.Context, profiles []*userPort.UserDTO) error {
	if len(profiles) == 0 {
		return nil
	}
	pipe := c.Client.Pipeline()
	for _, p := range profiles {
		b, err := json.Marshal(p)
		if err != nil {
			return err
		}
		pipe.Set(ctx, profileKeyPrefix+p.ID, b, c.TTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}
