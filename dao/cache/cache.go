package cache

import (
	"context"
	"time"

	"Memeow/config"
	"Memeow/pkg/client"
	"Memeow/pkg/log"

	"go.uber.org/zap"
)

// Cache 带过期时间的 kv 缓存
// Get 未命中返回 ok=false, err=nil；err 只表示传输层故障
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// NewCache 按 cache.driver 选择实现，memory 驱动不会连接 redis
func NewCache(conf *config.Config) Cache {
	switch conf.Cache.Driver {
	case config.CacheDriverMemory:
		log.L.Info("cache driver", zap.String("driver", config.CacheDriverMemory))
		return NewMemoryCache(conf.Ranking.PickTTL)
	default:
		log.L.Info("cache driver", zap.String("driver", config.CacheDriverRedis))
		return NewRedisCache(client.NewRedisClient(conf))
	}
}
