package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripplanner/internal/models/db_models"
	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
	"tripplanner/internal/repositories"
	"tripplanner/pkg/utils"
)

const defaultRole = "user"

// TokenCreator is satisfied by *utils.TokenIssuer.
type TokenCreator interface {
	CreateToken(userId uuid.UUID, role string) (string, error)
}

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error)
	Me(ctx context.Context, accountID uuid.UUID) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	tokens      TokenCreator
	log         *zap.Logger
}

func NewAccountService(accountRepo repositories.AccountRepository, tokens TokenCreator, log *zap.Logger) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		tokens:      tokens,
		log:         log.Named("accounts"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toAccountResponse(a *db_models.Account) *response_models.AccountResponse {
	return &response_models.AccountResponse{
		ID:    a.ID.String(),
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, utils.Storage("find account", err)
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.tokens.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, err
	}

	a.log.Debug("login", zap.Stringer("account_id", account.ID), zap.Duration("took", time.Since(startTime)))
	return &response_models.AccountLoginResponse{Token: token}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	email := normalizeEmail(request.Email)

	existingAccount, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.Storage("find account", err)
	}
	if existingAccount != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	newAccount := &db_models.Account{
		Name:         strings.TrimSpace(request.DisplayName),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         defaultRole,
	}
	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, utils.Storage("insert account", err)
	}

	a.log.Info("account created", zap.Stringer("account_id", newAccount.ID))
	return toAccountResponse(newAccount), nil
}

func (a *AccountService) Me(ctx context.Context, accountID uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return nil, utils.Storage("find account", err)
	}
	if account == nil {
		return nil, utils.NotFoundf("account %s", accountID)
	}
	return toAccountResponse(account), nil
}
