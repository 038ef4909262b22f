package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/yeqown/go-qrcode"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	dbm "tripplanner/internal/models/db_models"
	"tripplanner/internal/models/request_models"
	resp "tripplanner/internal/models/response_models"
	"tripplanner/internal/repositories"
	mem "tripplanner/pkg/memcache"
	"tripplanner/pkg/utils"
)

const (
	shareTokenLength   = 12
	shareTokenAttempts = 3
)

type ShareServiceInterface interface {
	IssueShareLink(ctx context.Context, ownerID, tripID uuid.UUID, locale string) (*resp.ShareLinkResponse, error)
	// ResolveSharedTrip never mutates a link. Missing, inactive and expired
	// links are all reported as not found.
	ResolveSharedTrip(ctx context.Context, token string) (*resp.TripDetailResponse, error)
	DeactivateShareLink(ctx context.Context, ownerID, shareID uuid.UUID) error
	ListShareLinks(ctx context.Context, ownerID, tripID uuid.UUID) ([]resp.ShareLinkResponse, error)
	ShareLinkQRCode(ctx context.Context, ownerID, shareID uuid.UUID) ([]byte, error)
	SendShareInvite(ctx context.Context, ownerID, shareID uuid.UUID, req request_models.ShareInviteRequest) error
}

type ShareService struct {
	shareRepo repositories.ShareRepository
	tripRepo  repositories.TripRepository
	trips     TripServiceInterface
	cache     mem.ShareLinkCache
	mailer    IMailService
	cfg       *config.Config
	log       *zap.Logger

	newToken func() (string, error)
	now      utils.Clock
}

// NewShareService accepts a nil mailer; invitations are then disabled.
func NewShareService(
	shareRepo repositories.ShareRepository,
	tripRepo repositories.TripRepository,
	trips TripServiceInterface,
	cache mem.ShareLinkCache,
	mailer IMailService,
	cfg *config.Config,
	log *zap.Logger,
) ShareServiceInterface {
	return &ShareService{
		shareRepo: shareRepo,
		tripRepo:  tripRepo,
		trips:     trips,
		cache:     cache,
		mailer:    mailer,
		cfg:       cfg,
		log:       log.Named("shares"),
		newToken:  func() (string, error) { return gonanoid.New(shareTokenLength) },
		now:       utils.SystemClock,
	}
}

func (s *ShareService) normalizeLocale(locale string) string {
	l := strings.ToLower(strings.TrimSpace(locale))
	if slices.Contains(s.cfg.ShareLocales, l) {
		return l
	}
	return s.cfg.DefaultLocale()
}

func (s *ShareService) shareURL(locale, token string) string {
	return fmt.Sprintf("%s/%s/share/%s", s.cfg.AppBaseURL, locale, token)
}

func (s *ShareService) toResponse(link *dbm.ShareLink) resp.ShareLinkResponse {
	return resp.ShareLinkResponse{
		ShareID:    link.ID,
		ShareToken: link.Token,
		ShareURL:   s.shareURL(link.Locale, link.Token),
		Locale:     link.Locale,
		IsActive:   link.IsActive,
		ExpiresAt:  link.ExpiresAt,
		CreatedAt:  link.CreatedAt,
	}
}

func cacheEntry(link *dbm.ShareLink) mem.ShareLinkEntry {
	return mem.ShareLinkEntry{
		ShareID:   link.ID,
		TripID:    link.TripID,
		ExpiresAt: link.ExpiresAt,
	}
}

// IssueShareLink inserts a link under a fresh random token, retrying with a
// new token on a uniqueness conflict up to shareTokenAttempts times.
func (s *ShareService) IssueShareLink(ctx context.Context, ownerID, tripID uuid.UUID, locale string) (*resp.ShareLinkResponse, error) {
	trip, err := ownedTrip(ctx, s.tripRepo, ownerID, tripID)
	if err != nil {
		return nil, err
	}

	var expiresAt *time.Time
	if s.cfg.ShareLinkTTL > 0 {
		exp := s.now().Add(s.cfg.ShareLinkTTL).UTC()
		expiresAt = &exp
	}
	locale = s.normalizeLocale(locale)

	for attempt := 1; attempt <= shareTokenAttempts; attempt++ {
		token, err := s.newToken()
		if err != nil {
			return nil, fmt.Errorf("generate share token: %w", err)
		}

		link := &dbm.ShareLink{
			TripID:    trip.ID,
			Token:     token,
			Locale:    locale,
			IsActive:  true,
			ExpiresAt: expiresAt,
		}
		err = s.shareRepo.Insert(ctx, link)
		if errors.Is(err, utils.ErrConflict) {
			s.log.Warn("share token collision", zap.Int("attempt", attempt), zap.Stringer("trip_id", trip.ID))
			continue
		}
		if err != nil {
			return nil, utils.Storage("insert share link", err)
		}

		s.remember(ctx, token, cacheEntry(link))
		s.log.Info("share link issued", zap.Stringer("share_id", link.ID), zap.Stringer("trip_id", trip.ID))

		out := s.toResponse(link)
		return &out, nil
	}

	return nil, fmt.Errorf("%w after %d attempts", utils.ErrShareTokenExhausted, shareTokenAttempts)
}

// lookup maps a token to its link. Only immutable fields are cached, so a
// deactivation racing with a cache fill cannot resurrect the link.
func (s *ShareService) lookup(ctx context.Context, token string) (*mem.ShareLinkEntry, error) {
	entry, ok, err := s.cache.Get(ctx, token)
	if err != nil {
		s.log.Warn("share link cache read failed", zap.Error(err))
	}
	if ok {
		return &entry, nil
	}

	link, err := s.shareRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, utils.Storage("find share link", err)
	}
	if link == nil {
		return nil, nil
	}
	entry = cacheEntry(link)
	s.remember(ctx, token, entry)
	return &entry, nil
}

// remember caches a lookup. A zero SHARE_CACHE_TTL turns caching off.
func (s *ShareService) remember(ctx context.Context, token string, entry mem.ShareLinkEntry) {
	if s.cfg.ShareCacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, token, entry, s.cfg.ShareCacheTTL); err != nil {
		s.log.Warn("share link cache write failed", zap.Error(err))
	}
}

func (s *ShareService) ResolveSharedTrip(ctx context.Context, token string) (*resp.TripDetailResponse, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, utils.NotFoundf("share link")
	}

	entry, err := s.lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, utils.NotFoundf("share link")
	}
	if entry.ExpiresAt != nil && !s.now().Before(*entry.ExpiresAt) {
		return nil, utils.NotFoundf("share link")
	}

	link, err := s.shareRepo.FindByID(ctx, entry.ShareID)
	if err != nil {
		return nil, utils.Storage("find share link", err)
	}
	if link == nil || !link.IsActive {
		return nil, utils.NotFoundf("share link")
	}

	return s.trips.GetSnapshot(ctx, entry.TripID)
}

// ownedLink loads a link whose trip belongs to the owner.
func (s *ShareService) ownedLink(ctx context.Context, ownerID, shareID uuid.UUID) (*dbm.ShareLink, error) {
	if shareID == uuid.Nil {
		return nil, utils.Validationf("share id is required")
	}
	link, err := s.shareRepo.FindByID(ctx, shareID)
	if err != nil {
		return nil, utils.Storage("find share link", err)
	}
	if link == nil {
		return nil, utils.NotFoundf("share link %s", shareID)
	}
	if _, err := ownedTrip(ctx, s.tripRepo, ownerID, link.TripID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.NotFoundf("share link %s", shareID)
		}
		return nil, err
	}
	return link, nil
}

func (s *ShareService) DeactivateShareLink(ctx context.Context, ownerID, shareID uuid.UUID) error {
	link, err := s.ownedLink(ctx, ownerID, shareID)
	if err != nil {
		return err
	}
	if link.IsActive {
		if err := s.shareRepo.Deactivate(ctx, link.ID); err != nil {
			return utils.Storage("deactivate share link", err)
		}
		s.log.Info("share link deactivated", zap.Stringer("share_id", link.ID))
	}
	if err := s.cache.Delete(ctx, link.Token); err != nil {
		s.log.Warn("share link cache evict failed", zap.Error(err))
	}
	return nil
}

func (s *ShareService) ListShareLinks(ctx context.Context, ownerID, tripID uuid.UUID) ([]resp.ShareLinkResponse, error) {
	trip, err := ownedTrip(ctx, s.tripRepo, ownerID, tripID)
	if err != nil {
		return nil, err
	}
	links, err := s.shareRepo.ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, utils.Storage("list share links", err)
	}
	out := make([]resp.ShareLinkResponse, 0, len(links))
	for i := range links {
		out = append(out, s.toResponse(&links[i]))
	}
	return out, nil
}

// ShareLinkQRCode renders the share URL as a JPEG QR code.
func (s *ShareService) ShareLinkQRCode(ctx context.Context, ownerID, shareID uuid.UUID) ([]byte, error) {
	link, err := s.ownedLink(ctx, ownerID, shareID)
	if err != nil {
		return nil, err
	}
	qrc, err := qrcode.New(s.shareURL(link.Locale, link.Token))
	if err != nil {
		return nil, fmt.Errorf("qrcode: %w", err)
	}
	var buf bytes.Buffer
	if err := qrc.SaveTo(&buf); err != nil {
		return nil, fmt.Errorf("qrcode: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ShareService) SendShareInvite(ctx context.Context, ownerID, shareID uuid.UUID, req request_models.ShareInviteRequest) error {
	if s.mailer == nil {
		return fmt.Errorf("%w: mail disabled", utils.ErrFeatureDisabled)
	}
	link, err := s.ownedLink(ctx, ownerID, shareID)
	if err != nil {
		return err
	}
	if !link.IsActive {
		return utils.Validationf("share link is not active")
	}
	trip, err := s.tripRepo.FindByID(ctx, link.TripID)
	if err != nil {
		return utils.Storage("find trip", err)
	}
	if trip == nil {
		return utils.NotFoundf("trip %s", link.TripID)
	}

	if err := s.mailer.SendShareInvite(ctx, req.Email, trip.Title, s.shareURL(link.Locale, link.Token), req.Message); err != nil {
		s.log.Error("share invite failed", zap.Stringer("share_id", link.ID), zap.Error(err))
		return fmt.Errorf("send share invite: %w", err)
	}
	return nil
}
