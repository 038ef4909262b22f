package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/cmd/fx/account_fx"
	"tripplanner/cmd/fx/config_fx"
	"tripplanner/cmd/fx/controllers_fx"
	"tripplanner/cmd/fx/db_fx"
	"tripplanner/cmd/fx/logger_fx"
	"tripplanner/cmd/fx/mail_fx"
	"tripplanner/cmd/fx/memcache_fx"
	"tripplanner/cmd/fx/share_fx"
	"tripplanner/cmd/fx/storage_fx"
	"tripplanner/cmd/fx/transfer_fx"
	"tripplanner/cmd/fx/trip_fx"
	"tripplanner/internal/api"
	"tripplanner/internal/config"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		storage_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		trip_fx.Module,
		share_fx.Module,
		transfer_fx.Module,
		controllers_fx.Module,

		fx.Provide(api.NewEngine),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
