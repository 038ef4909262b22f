package transfer_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/infra"
	"tripplanner/internal/repositories"
	"tripplanner/internal/services"
)

var Module = fx.Provide(provideTransferService)

func provideTransferService(
	trips services.TripServiceInterface,
	tripRepo repositories.TripRepository,
	destinationRepo repositories.DestinationRepository,
	transportRepo repositories.TransportRepository,
	accommodationRepo repositories.AccommodationRepository,
	store infra.ObjectStore,
	cfg *config.Config,
	log *zap.Logger,
) services.TransferServiceInterface {
	return services.NewTransferService(trips, tripRepo, destinationRepo, transportRepo, accommodationRepo, store, cfg, log)
}
