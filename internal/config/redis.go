package config

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
)

// RedisConfig locates the redis server holding the token buckets of the
// review submission limiter.  REDIS_HOST and REDIS_PORT, when both set, take
// precedence over REDIS_ADDR.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT"`
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	TLS      bool   `env:"REDIS_TLS" envDefault:"false"`
}

// LoadRedisConfig parses the REDIS_* variables.  Malformed values fall back
// to the defaults, which point at a local server.
func LoadRedisConfig() RedisConfig {
	var c RedisConfig
	if err := env.Parse(&c); err != nil {
		c = RedisConfig{}
		_ = env.ParseWithOptions(&c, env.Options{Environment: map[string]string{}})
	}
	return c
}

// Options converts c into go-redis client options.
func (c RedisConfig) Options() *redis.Options {
	addr := c.Addr
	if c.Host != "" && c.Port != "" {
		addr = c.Host + ":" + c.Port
	}
	opts := &redis.Options{
		Addr:     addr,
		Password: c.Password,
		DB:       c.DB,
	}
	if c.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts
}

// NewRedisClient connects to the server described by the REDIS_* variables.
// It returns nil when the server does not answer a ping within two seconds;
// the review route then runs without a limiter rather than refusing
// submissions.
func NewRedisClient(ctx context.Context) *redis.Client {
	client := redis.NewClient(LoadRedisConfig().Options())
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
