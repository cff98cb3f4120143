package redis

import (
	"context"
	"net"
	"time"

	"github.com/lucasaveiro/service-scheduler/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Options maps the primary node settings onto the client options.
func Options(cfg *config.Config) *goRedis.Options {
	primary := cfg.Cache.Redis.Primary
	dialTimeout := time.Duration(cfg.Cache.Redis.DialTimeoutSeconds) * time.Second

	return &goRedis.Options{
		Addr:        net.JoinHostPort(primary.Host, primary.Port),
		Password:    primary.Password,
		DB:          primary.DB,
		PoolSize:    cfg.Cache.Redis.PoolSize,
		DialTimeout: dialTimeout,
	}
}

// New connects to the primary node and exits when it does not answer a ping.
func New(cfg *config.Config) *goRedis.Client {
	opts := Options(cfg)
	client := goRedis.NewClient(opts)

	ctx := context.Background()
	if opts.DialTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, opts.DialTimeout)
		defer cancel()
	}

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", opts.Addr).Msg("Failed to connect to Redis")
	}

	log.Info().
		Int("db", opts.DB).
		Str("addr", opts.Addr).
		Int("poolSize", opts.PoolSize).
		Msg("Connected to Redis")

	return client
}
