package counter

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const (
	CounterEmployeeCode     = "employee_code"
	CounterPaymentReference = "payment_reference"
)

var ErrUnknownCounter = errors.New("unknown counter type")

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// The first call for a (company, type) pair creates the row at 1.
const nextValueSQL = `
INSERT INTO company_counters (company_id, counter_type, last_value, updated_at)
VALUES (?, ?, 1, now())
ON CONFLICT (company_id, counter_type)
DO UPDATE SET last_value = company_counters.last_value + 1, updated_at = now()
RETURNING last_value`

// GetNextValue bumps and returns the company's counter in a single statement,
// so concurrent callers never see the same value.
func (r *repository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	switch counterType {
	case CounterEmployeeCode, CounterPaymentReference:
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCounter, counterType)
	}

	var next int64
	if err := r.db.WithContext(ctx).Raw(nextValueSQL, companyID, counterType).Scan(&next).Error; err != nil {
		return 0, fmt.Errorf("next %s value: %w", counterType, err)
	}
	return next, nil
}
