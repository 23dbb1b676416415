package base

import (
	"astrolink/pkg/core/logger"
	"astrolink/pkg/core/security"
	"astrolink/pkg/core/start"
	"astrolink/pkg/kv"
	"astrolink/pkg/scheduler"

	"github.com/bsm/redislock"
	"github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	Configures *start.Configures
	Logger     *logger.Log
	ENV        string
	UserAuth   *security.UserAuth
	DB         *gorm.DB
	RDB        *redis.Client
	KV         kv.Store
	Cache      *cache.Cache
	Locker     *redislock.Client
	Scheduler  *scheduler.Scheduler
)
