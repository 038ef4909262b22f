package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripplanner/internal/models/db_models"
)

type AccountRepository interface {
	Insert(ctx context.Context, account *db_models.Account) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	return mapError(a.db.WithContext(ctx).Create(account).Error)
}

func (a *accountRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	return first[db_models.Account](a.db.WithContext(ctx), "id = ?", id)
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	return first[db_models.Account](a.db.WithContext(ctx), "email = ?", email)
}
