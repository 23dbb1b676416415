package kv

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store 通用键值存储能力接口，承载缓存、限流计数器与批处理水位等共享状态。
// 所有组件只依赖本接口，不直接持有 redis 客户端
type Store interface {
	// Get 读取键值，键不存在时第二个返回值为 false
	Get(ctx context.Context, key string) (string, bool, error)
	// Set 写入键值，ttl 为 0 表示不过期
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Del 删除一个或多个键
	Del(ctx context.Context, keys ...string) error
	// Incr 原子自增，键不存在时创建并置为 1
	Incr(ctx context.Context, key string) (int64, error)
	// Expire 设置键的过期时间
	Expire(ctx context.Context, key string, ttl time.Duration) error
	// Exists 判断键是否存在
	Exists(ctx context.Context, key string) (bool, error)
}

// RedisStore 基于 go-redis 的 Store 实现
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

func (s *RedisStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.rdb.Incr(ctx, key).Result()
}

func (s *RedisStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.rdb.Expire(ctx, key, ttl).Err()
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
