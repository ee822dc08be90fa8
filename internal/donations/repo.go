package donations

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/masjid-digital/admin-backend/pkg/db/models"
	"github.com/masjid-digital/admin-backend/pkg/enums"
	"github.com/masjid-digital/admin-backend/pkg/pagination"
)

// DonationFilters narrows donation listings.
type DonationFilters struct {
	Status    *enums.DonationStatus
	ProgramID *uuid.UUID
}

// DonationList is one page of donations.
type DonationList struct {
	Donations  []models.Donation
	NextCursor *pagination.Cursor
}

// Repository exposes persistence helpers for donations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, donation *models.Donation) error
	Find(ctx context.Context, id uuid.UUID) (*models.Donation, error)
	List(ctx context.Context, params pagination.Params, filters DonationFilters) (*DonationList, error)
	TransitionFromPending(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error)
	SumVerifiedByProgram(ctx context.Context, programID uuid.UUID) (decimal.Decimal, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a donations repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, donation *models.Donation) error {
	if donation.ID == uuid.Nil {
		donation.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *repositoryImpl) Find(ctx context.Context, id uuid.UUID) (*models.Donation, error) {
	var donation models.Donation
	if err := r.db.WithContext(ctx).
		Preload("Program").
		First(&donation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *repositoryImpl) List(ctx context.Context, params pagination.Params, filters DonationFilters) (*DonationList, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Donation{}).Preload("Program")
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.ProgramID != nil {
		query = query.Where("program_id = ?", *filters.ProgramID)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var donations []models.Donation
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&donations).Error; err != nil {
		return nil, err
	}

	list := &DonationList{Donations: donations}
	if len(donations) > normalized {
		next := donations[normalized]
		list.Donations = donations[:normalized]
		list.NextCursor = &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}
	}
	return list, nil
}

// TransitionFromPending applies updates only while the row is still pending.
// The WHERE clause carries the pending guard, so when two admins race, the
// database picks exactly one winner and the loser sees zero rows affected.
func (r *repositoryImpl) TransitionFromPending(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("id = ? AND status = ?", id, enums.DonationStatusPending).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repositoryImpl) SumVerifiedByProgram(ctx context.Context, programID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("program_id = ? AND status = ?", programID, enums.DonationStatusVerified).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
