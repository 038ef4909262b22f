package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"tripplanner/pkg/utils"
)

const uniqueViolation = "23505"

// mapError turns unique violations into utils.ErrConflict and passes every
// other driver error through untouched.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", utils.ErrConflict, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", utils.ErrConflict, pgErr.ConstraintName)
	}
	return err
}

// first runs a single-row query and maps gorm.ErrRecordNotFound to (nil, nil).
func first[T any](q *gorm.DB, conds ...any) (*T, error) {
	var out T
	if err := q.First(&out, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
