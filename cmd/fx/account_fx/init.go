package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tripplanner/internal/config"
	"tripplanner/internal/repositories"
	"tripplanner/internal/services"
	"tripplanner/pkg/middleware"
	"tripplanner/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideTokenIssuer,
	func(t *utils.TokenIssuer) middleware.TokenValidator { return t },
)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideTokenIssuer(cfg *config.Config) *utils.TokenIssuer {
	return utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
}

func provideAccountService(accountRepo repositories.AccountRepository, tokens *utils.TokenIssuer, log *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, tokens, log)
}
