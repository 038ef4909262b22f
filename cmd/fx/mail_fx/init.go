package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config, log *zap.Logger) (services.IMailService, error) {
	mailService, err := services.NewSMTPMailService(services.SMTPConfigFrom(cfg))
	if err != nil {
		return nil, err
	}
	if mailService == nil {
		log.Info("share invitations disabled: SMTP_HOST is not set")
	}
	return mailService, nil
}
