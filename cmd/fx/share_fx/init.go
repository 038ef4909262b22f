package share_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/repositories"
	"tripplanner/internal/services"
	mem "tripplanner/pkg/memcache"
)

var Module = fx.Provide(
	repositories.NewShareRepository,
	provideShareService,
)

func provideShareService(
	shareRepo repositories.ShareRepository,
	tripRepo repositories.TripRepository,
	trips services.TripServiceInterface,
	cache mem.ShareLinkCache,
	mailer services.IMailService,
	cfg *config.Config,
	log *zap.Logger,
) services.ShareServiceInterface {
	return services.NewShareService(shareRepo, tripRepo, trips, cache, mailer, cfg, log)
}
