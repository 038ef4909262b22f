package trip_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/repositories"
	"tripplanner/internal/services"
)

var Module = fx.Provide(
	repositories.NewTripRepository,
	repositories.NewDestinationRepository,
	repositories.NewTransportRepository,
	repositories.NewAccommodationRepository,
	provideTripService,
	provideDestinationService,
	services.NewSubEntityService,
)

func provideTripService(
	tripRepo repositories.TripRepository,
	destinationRepo repositories.DestinationRepository,
	transportRepo repositories.TransportRepository,
	accommodationRepo repositories.AccommodationRepository,
	cfg *config.Config,
	log *zap.Logger,
) services.TripServiceInterface {
	return services.NewTripService(tripRepo, destinationRepo, transportRepo, accommodationRepo, cfg, log)
}

func provideDestinationService(
	tripRepo repositories.TripRepository,
	destinationRepo repositories.DestinationRepository,
	transportRepo repositories.TransportRepository,
	accommodationRepo repositories.AccommodationRepository,
	log *zap.Logger,
) services.DestinationServiceInterface {
	return services.NewDestinationService(tripRepo, destinationRepo, transportRepo, accommodationRepo, log)
}
