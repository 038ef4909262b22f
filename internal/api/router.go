// Package api wires the HTTP controllers onto a gin engine.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/api/controllers"
	"tripplanner/internal/config"
	"tripplanner/internal/models/request_models"
	"tripplanner/pkg/middleware"
	"tripplanner/pkg/utils"
)

type Controllers struct {
	fx.In

	Account     *controllers.AccountController
	Trip        *controllers.TripController
	Destination *controllers.DestinationController
	SubEntity   *controllers.SubEntityController
	Share       *controllers.ShareController
	Transfer    *controllers.TransferController
}

// RegisterBindingValidations installs the custom request tags on gin's
// validator.
func RegisterBindingValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator is not go-playground/validator")
	}
	return request_models.RegisterValidations(v)
}

// NewEngine builds the gin engine with the shared middleware chain and every
// route mounted.
func NewEngine(cfg *config.Config, log *zap.Logger, tokens middleware.TokenValidator, ctl Controllers) (*gin.Engine, error) {
	if err := RegisterBindingValidations(); err != nil {
		return nil, err
	}
	if cfg.AppEnv != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	RegisterRoutes(r, middleware.JWTAuthMiddleware(tokens), ctl)
	return r, nil
}

// RegisterRoutes mounts every endpoint. auth guards everything except
// registration, login, health and public share pages.
func RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc, ctl Controllers) {
	r.GET("/healthz", func(c *gin.Context) {
		utils.RespondSuccess(c, nil, "ok")
	})
	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, http.StatusNotFound, "Route not found")
	})

	accounts := r.Group("/accounts")
	accounts.POST("/register", ctl.Account.Register)
	accounts.POST("/login", ctl.Account.Login)
	accounts.GET("/me", auth, ctl.Account.Me)

	r.GET("/public/shares/:token", ctl.Share.ResolveSharedTrip)

	trips := r.Group("/trips", auth)
	trips.GET("", ctl.Trip.ListTrips)
	trips.POST("", ctl.Trip.CreateTrip)
	trips.POST("/import", ctl.Transfer.ImportTrip)
	trips.POST("/import/validate", ctl.Transfer.ValidateImport)
	trips.GET("/:tripId", ctl.Trip.GetTrip)
	trips.PATCH("/:tripId", ctl.Trip.UpdateTrip)
	trips.DELETE("/:tripId", ctl.Trip.DeleteTrip)
	trips.POST("/:tripId/end-date", ctl.Trip.AdjustEndDate)
	trips.GET("/:tripId/export", ctl.Transfer.ExportTrip)
	trips.POST("/:tripId/export/archive", ctl.Transfer.ArchiveExport)

	trips.POST("/:tripId/destinations", ctl.Destination.CreateDestination)
	trips.PUT("/:tripId/destinations/order", ctl.Destination.ReorderDestinations)
	trips.PATCH("/:tripId/destinations/:destinationId", ctl.Destination.UpdateDestination)
	trips.DELETE("/:tripId/destinations/:destinationId", ctl.Destination.DeleteDestination)
	trips.PUT("/:tripId/destinations/:destinationId/details", ctl.Destination.SaveDestinationDetails)

	trips.GET("/:tripId/transports", ctl.SubEntity.GetTripTransports)
	trips.PUT("/:tripId/transports/:role", ctl.SubEntity.UpsertTripTransport)

	trips.GET("/:tripId/shares", ctl.Share.ListShareLinks)
	trips.POST("/:tripId/shares", ctl.Share.IssueShareLink)

	destinations := r.Group("/destinations", auth)
	destinations.GET("/:destinationId/transport", ctl.SubEntity.GetDestinationTransport)
	destinations.PUT("/:destinationId/transport", ctl.SubEntity.UpsertDestinationTransport)
	destinations.GET("/:destinationId/accommodation", ctl.SubEntity.GetDestinationAccommodation)
	destinations.PUT("/:destinationId/accommodation", ctl.SubEntity.UpsertDestinationAccommodation)

	shares := r.Group("/shares", auth)
	shares.DELETE("/:shareId", ctl.Share.DeactivateShareLink)
	shares.GET("/:shareId/qr", ctl.Share.ShareLinkQRCode)
	shares.POST("/:shareId/invite", ctl.Share.SendShareInvite)
}
