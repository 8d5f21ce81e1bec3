package keylock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultRedisTTL время жизни ключа блокировки, если владелец пропал
	DefaultRedisTTL = 10 * time.Second

	// DefaultRetryInterval пауза между попытками захвата
	DefaultRetryInterval = 20 * time.Millisecond
)

// releaseScript удаляет ключ, только если он все еще принадлежит владельцу
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisOptions параметры распределенной блокировки
type RedisOptions struct {
	Prefix        string
	TTL           time.Duration
	RetryInterval time.Duration
}

// Redis распределенная блокировка по ключу (SET NX PX + освобождение Lua-скриптом)
type Redis struct {
	client        redis.Cmdable
	prefix        string
	ttl           time.Duration
	retryInterval time.Duration
}

// NewRedis создает распределенную блокировку
func NewRedis(client redis.Cmdable, opts RedisOptions) *Redis {
	if opts.TTL <= 0 {
		opts.TTL = DefaultRedisTTL
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultRetryInterval
	}
	return &Redis{
		client:        client,
		prefix:        opts.Prefix,
		ttl:           opts.TTL,
		retryInterval: opts.RetryInterval,
	}
}

// Lock захватывает блокировку key, повторяя попытки до отмены ctx
func (r *Redis) Lock(ctx context.Context, key string) (Unlock, error) {
	redisKey := r.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(r.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("keylock: redis SETNX %s: %w", redisKey, err)
		}
		if ok {
			break
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: key=%s: %v", ErrNotAcquired, redisKey, ctx.Err())
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// Контекст запроса мог уже завершиться, ключ все равно нужно освободить
			releaseCtx, cancel := context.WithTimeout(context.Background(), r.ttl)
			defer cancel()
			_ = releaseScript.Run(releaseCtx, r.client, []string{redisKey}, token).Err()
		})
	}, nil
}
