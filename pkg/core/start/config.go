package start

import (
	"fmt"
	"time"

	"astrolink/pkg/core/config"
	"astrolink/pkg/core/logger"
	"astrolink/pkg/core/security"

	"github.com/bsm/redislock"
	"github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type Config struct {
	AppName  string             `yaml:"app-name"`
	Env      string             `yaml:"env"`
	Port     int                `yaml:"port"`
	Domain   string             `yaml:"domain"`
	LogLevel string             `yaml:"log-level"`
	Jwt      config.JwtConfig   `yaml:"jwt"`
	Redis    config.RedisConfig `yaml:"redis"`
	Database config.Database    `yaml:"db"`
}

type Configures struct {
	Config   Config
	Logger   *logger.Log
	UserAuth *security.UserAuth
}

func NewConfigures(file []byte, env string) *Configures {
	var cfg Config
	err := yaml.Unmarshal(file, &cfg)
	if err != nil {
		panic(fmt.Sprintf("读取配置文件失败，因为%v", err))
	}

	cfg.Env = env
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	c := &Configures{
		Config: cfg,
		Logger: logger.InitLogger(cfg.LogLevel),
	}

	c.UserAuth = c.EnableUserAuth()

	return c
}

func (c *Configures) EnableUserAuth() *security.UserAuth {
	return security.NewUserAuth([]byte(c.Config.Jwt.Secret), time.Duration(c.Config.Jwt.ExpireTime)*24*time.Hour)
}

func (c *Configures) EnableRedis() *redis.Client {
	return config.InitRDB(c.Config.Redis)
}

func (c *Configures) EnableCache(rdb *redis.Client) *cache.Cache {
	return config.InitCache(rdb)
}

func (c *Configures) EnableLocker(rdb *redis.Client) *redislock.Client {
	return redislock.New(rdb)
}

func (c *Configures) EnableMysql() *gorm.DB {
	db, err := config.InitMysql(c.Config.Database)
	if err != nil {
		c.Logger.WithField("database", c.Config.Database.Host).WithField("err", err).Panic("failed connect database")
	}
	c.Logger.Info("connect database success")
	return db
}
