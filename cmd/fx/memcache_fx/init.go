package memcache_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/infra"
	mem "tripplanner/pkg/memcache"
)

var Module = fx.Provide(provideShareLinkCache)

// provideShareLinkCache uses Redis when REDIS_URL is set, so several API
// instances see the same evictions, and the in-process cache otherwise.
func provideShareLinkCache(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (mem.ShareLinkCache, error) {
	rdb, err := infra.InitRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	if rdb == nil {
		log.Info("share link cache: in-process")
		return mem.NewShareLinks(), nil
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return rdb.Close()
		},
	})
	log.Info("share link cache: redis")
	return mem.NewRedisShareLinks(rdb), nil
}
