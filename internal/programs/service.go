package programs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/masjid-digital/admin-backend/pkg/db/models"
	pkgerrors "github.com/masjid-digital/admin-backend/pkg/errors"
)

// CreateProgramInput carries the fields for a new fundraising program.
type CreateProgramInput struct {
	Title       string
	Description *string
	Target      decimal.Decimal
}

// UpdateProgramInput carries the mutable program fields. Nil means keep.
// Collected is deliberately absent: the running total only moves through
// AddCollected.
type UpdateProgramInput struct {
	Title       *string
	Description *string
	Target      *decimal.Decimal
	IsActive    *bool
}

// Service defines donation program operations.
type Service interface {
	Create(ctx context.Context, input CreateProgramInput) (*models.DonationProgram, error)
	Get(ctx context.Context, id uuid.UUID) (*models.DonationProgram, error)
	List(ctx context.Context, onlyActive bool) ([]models.DonationProgram, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProgramInput) (*models.DonationProgram, error)
	AddCollected(ctx context.Context, tx *gorm.DB, programID uuid.UUID, amount decimal.Decimal) error
}

type service struct {
	repo Repository
}

// NewService builds a programs service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("programs repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateProgramInput) (*models.DonationProgram, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "program title required")
	}
	if input.Target.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "program target must not be negative")
	}

	program := models.DonationProgram{
		Title:       title,
		Description: input.Description,
		Target:      input.Target,
		Collected:   decimal.Zero,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, &program); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create program")
	}
	return &program, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.DonationProgram, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "program id required")
	}
	program, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "program not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load program")
	}
	return program, nil
}

func (s *service) List(ctx context.Context, onlyActive bool) ([]models.DonationProgram, error) {
	programs, err := s.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list programs")
	}
	return programs, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProgramInput) (*models.DonationProgram, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "program id required")
	}

	updates := map[string]any{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "program title required")
		}
		updates["title"] = title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Target != nil {
		if input.Target.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "program target must not be negative")
		}
		updates["target"] = *input.Target
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no program fields to update")
	}

	affected, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update program")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "program not found")
	}

	program, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload program")
	}
	return program, nil
}

// AddCollected moves the program's running total inside the caller's
// transaction. Zero rows affected means the program vanished, which has to
// fail the whole approval rather than silently drop the increment.
func (s *service) AddCollected(ctx context.Context, tx *gorm.DB, programID uuid.UUID, amount decimal.Decimal) error {
	if programID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "program id required")
	}
	if !amount.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	affected, err := s.repo.WithTx(tx).IncrementCollected(ctx, programID, amount)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment collected")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeDependency, "program missing during approval")
	}
	return nil
}
