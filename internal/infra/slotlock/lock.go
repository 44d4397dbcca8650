package slotlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotAcquired возвращается, когда слот уже обрабатывается другим запросом
var ErrLockNotAcquired = errors.New("slotlock: lock not acquired")

// Locker рекомендательная блокировка слота на время бронирования/переноса
// Снижает число конфликтов сериализуемых транзакций при конкурентных запросах
// на один и тот же слот; авторитетная проверка все равно происходит в транзакции.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// redisLocker блокировка через Redis SET NX с токеном владельца
type redisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocker создает Redis-блокировщик слотов
func NewRedisLocker(client *redis.Client, ttl time.Duration) Locker {
	return &redisLocker{
		client: client,
		ttl:    ttl,
	}
}

// NewRedisClient создает и проверяет подключение к Redis
func NewRedisClient(addr, username, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Username:     username,
		Password:     password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("slotlock: ping redis: %w", err)
	}

	return rdb, nil
}

// SlotKey ключ блокировки для конкретного окна на дату
func SlotKey(date string, windowID int64) string {
	return fmt.Sprintf("lock:slot:%s:%d", date, windowID)
}

// DateKey ключ блокировки для свободных бронирований (без привязки к окну)
func DateKey(date string) string {
	return fmt.Sprintf("lock:date:%s", date)
}

func (l *redisLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("slotlock: acquire: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		_ = l.release(ctx, key, token)
	}()

	lockCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockCtx)
}

// unlockScript удаляет ключ, только если блокировкой владеет этот токен
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("slotlock: release: %w", err)
	}
	return nil
}

// noopLocker заглушка, когда Redis отключен в конфигурации
// Консистентность в этом случае обеспечивает только сериализуемая транзакция.
type noopLocker struct{}

// NewNoopLocker создает блокировщик-заглушку
func NewNoopLocker() Locker {
	return noopLocker{}
}

func (noopLocker) WithLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
