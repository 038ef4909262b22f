package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/infra"
	"tripplanner/internal/itinerary"
	dbm "tripplanner/internal/models/db_models"
	resp "tripplanner/internal/models/response_models"
	"tripplanner/internal/repositories"
	"tripplanner/internal/transfer"
	"tripplanner/pkg/utils"
)

const archiveURLTTL = 15 * time.Minute

type TransferServiceInterface interface {
	// ExportTrip returns the portable document and a download file name.
	ExportTrip(ctx context.Context, ownerID, tripID uuid.UUID) (*transfer.Document, string, error)
	// ApplyImport creates a new trip from a document. The document is fully
	// validated and size-checked before the first write; later steps are not
	// rolled back if one of them fails.
	ApplyImport(ctx context.Context, ownerID uuid.UUID, raw []byte) (uuid.UUID, error)
	ArchiveExport(ctx context.Context, ownerID, tripID uuid.UUID) (*resp.ExportArchiveResponse, error)
}

type TransferService struct {
	trips             TripServiceInterface
	tripRepo          repositories.TripRepository
	destinationRepo   repositories.DestinationRepository
	transportRepo     repositories.TransportRepository
	accommodationRepo repositories.AccommodationRepository
	store             infra.ObjectStore
	cfg               *config.Config
	log               *zap.Logger
	now               utils.Clock
}

// NewTransferService accepts a nil store; archives are then disabled.
func NewTransferService(
	trips TripServiceInterface,
	tripRepo repositories.TripRepository,
	destinationRepo repositories.DestinationRepository,
	transportRepo repositories.TransportRepository,
	accommodationRepo repositories.AccommodationRepository,
	store infra.ObjectStore,
	cfg *config.Config,
	log *zap.Logger,
) TransferServiceInterface {
	return &TransferService{
		trips:             trips,
		tripRepo:          tripRepo,
		destinationRepo:   destinationRepo,
		transportRepo:     transportRepo,
		accommodationRepo: accommodationRepo,
		store:             store,
		cfg:               cfg,
		log:               log.Named("transfer"),
		now:               utils.SystemClock,
	}
}

func (s *TransferService) ExportTrip(ctx context.Context, ownerID, tripID uuid.UUID) (*transfer.Document, string, error) {
	trip, err := s.trips.GetTrip(ctx, ownerID, tripID)
	if err != nil {
		return nil, "", err
	}
	doc := transfer.Export(trip)
	return &doc, transfer.Filename(trip.Title), nil
}

func (s *TransferService) ApplyImport(ctx context.Context, ownerID uuid.UUID, raw []byte) (uuid.UUID, error) {
	if ownerID == uuid.Nil {
		return uuid.Nil, utils.ErrUnauthorized
	}

	doc, err := transfer.Decode(raw)
	if err != nil {
		return uuid.Nil, utils.Validationf("%s", err.Error())
	}
	if limit := s.cfg.MaxImportDestinations; len(doc.Destinations) > limit {
		return uuid.Nil, utils.Validationf("import has %d destinations, the maximum is %d", len(doc.Destinations), limit)
	}

	trip := s.tripFromDocument(ownerID, doc)
	if err := s.tripRepo.Insert(ctx, trip); err != nil {
		return uuid.Nil, utils.Storage("insert trip", err)
	}
	log := s.log.With(zap.Stringer("trip_id", trip.ID))

	if doc.Departure != nil {
		if _, err := upsertTransport(ctx, s.transportRepo, itinerary.DepartureParent(trip.ID), doc.Departure.Transport.Details()); err != nil {
			log.Error("import stopped at departure transport", zap.Error(err))
			return uuid.Nil, err
		}
	}
	if doc.Return != nil {
		if _, err := upsertTransport(ctx, s.transportRepo, itinerary.ReturnParent(trip.ID), doc.Return.Transport.Details()); err != nil {
			log.Error("import stopped at return transport", zap.Error(err))
			return uuid.Nil, err
		}
	}

	for i, d := range doc.Destinations {
		if err := s.importDestination(ctx, trip.ID, i, d); err != nil {
			log.Error("import stopped", zap.Int("destination_index", i), zap.Error(err))
			return uuid.Nil, err
		}
	}

	log.Info("trip imported", zap.Int("destinations", len(doc.Destinations)))
	return trip.ID, nil
}

func (s *TransferService) tripFromDocument(ownerID uuid.UUID, doc *transfer.Document) *dbm.Trip {
	trip := &dbm.Trip{
		OwnerID:       ownerID,
		Title:         strings.TrimSpace(doc.Title),
		DepartureCity: s.cfg.HomeCity,
	}
	if trip.Title == "" {
		trip.Title = s.cfg.DefaultTripTitle
	}

	startDate := doc.StartDate
	if doc.Departure != nil {
		if city := strings.TrimSpace(doc.Departure.City); city != "" {
			trip.DepartureCity = city
		}
		if trimmedOrNil(startDate) == nil {
			startDate = doc.Departure.Date
		}
	}
	if doc.Return != nil {
		trip.ReturnCity = trimmedOrNil(&doc.Return.City)
	}
	trip.StartDate = itinerary.ParseOptionalDate(startDate)
	return trip
}

func (s *TransferService) importDestination(ctx context.Context, tripID uuid.UUID, index int, d transfer.Destination) error {
	position := float64(index)
	dest, err := newDestination(ctx, s.destinationRepo, tripID, d.City, d.Duration, &position)
	if err != nil {
		return err
	}

	changes := map[string]any{}
	if notes := trimmedOrNil(d.Notes); notes != nil {
		changes["notes"] = *notes
	}
	if d.Budget != nil {
		if err := itinerary.ValidateBudget(d.Budget); err != nil {
			return utils.Validationf("%s", err.Error())
		}
		changes["budget"] = *d.Budget
	}
	if len(changes) > 0 {
		if _, err := s.destinationRepo.Update(ctx, tripID, dest.ID, changes); err != nil {
			return utils.Storage("update destination", err)
		}
	}

	if _, err := upsertTransport(ctx, s.transportRepo, itinerary.DestinationParent(dest.ID), d.Transport.Details()); err != nil {
		return err
	}
	_, err = upsertAccommodation(ctx, s.accommodationRepo, dest.ID, d.Accommodation.Details())
	return err
}

// ArchiveExport stores the export document in the object store and returns a
// short-lived download URL.
func (s *TransferService) ArchiveExport(ctx context.Context, ownerID, tripID uuid.UUID) (*resp.ExportArchiveResponse, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: export archive storage is not configured", utils.ErrFeatureDisabled)
	}

	doc, filename, err := s.ExportTrip(ctx, ownerID, tripID)
	if err != nil {
		return nil, err
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	now := s.now()
	key := fmt.Sprintf("exports/%s/%s/%d-%s", ownerID, tripID, now.Unix(), filename)
	if err := s.store.Put(ctx, key, body, "application/json"); err != nil {
		s.log.Error("export archive upload failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("upload export: %w", err)
	}
	url, err := s.store.PresignGet(ctx, key, archiveURLTTL)
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}

	return &resp.ExportArchiveResponse{
		Key:       key,
		URL:       url,
		ExpiresAt: now.Add(archiveURLTTL),
	}, nil
}
