package storage_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/infra"
)

var Module = fx.Provide(provideObjectStore)

func provideObjectStore(cfg *config.Config, log *zap.Logger) (infra.ObjectStore, error) {
	store, err := infra.NewS3ObjectStore(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	if store == nil {
		log.Info("export archives disabled: S3_BUCKET is not set")
	}
	return store, nil
}
