package programs

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/masjid-digital/admin-backend/pkg/db/models"
)

// Repository exposes persistence helpers for donation programs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, program *models.DonationProgram) error
	Find(ctx context.Context, id uuid.UUID) (*models.DonationProgram, error)
	List(ctx context.Context, onlyActive bool) ([]models.DonationProgram, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error)
	IncrementCollected(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a programs repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, program *models.DonationProgram) error {
	if program.ID == uuid.Nil {
		program.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(program).Error
}

func (r *repositoryImpl) Find(ctx context.Context, id uuid.UUID) (*models.DonationProgram, error) {
	var program models.DonationProgram
	if err := r.db.WithContext(ctx).First(&program, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *repositoryImpl) List(ctx context.Context, onlyActive bool) ([]models.DonationProgram, error) {
	query := r.db.WithContext(ctx).Model(&models.DonationProgram{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	var programs []models.DonationProgram
	if err := query.Order("created_at DESC").Find(&programs).Error; err != nil {
		return nil, err
	}
	return programs, nil
}

func (r *repositoryImpl) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.DonationProgram{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementCollected adds amount to the running total with a single SQL
// arithmetic update. Reading the current value first would race with
// concurrent approvals, so callers never get that option.
func (r *repositoryImpl) IncrementCollected(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.DonationProgram{}).
		Where("id = ?", id).
		Updates(map[string]any{"collected": gorm.Expr("collected + ?", amount)})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
