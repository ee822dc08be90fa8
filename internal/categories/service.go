package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/masjid-digital/admin-backend/pkg/db"
	"github.com/masjid-digital/admin-backend/pkg/db/models"
	"github.com/masjid-digital/admin-backend/pkg/enums"
	pkgerrors "github.com/masjid-digital/admin-backend/pkg/errors"
)

func dbIsUniqueViolation(err error) bool {
	return db.IsUniqueViolation(err, "idx_categories_name")
}

// CategorySpec describes the category a caller wants to exist. Only Name and
// Type participate in lookup; the rest seed the row when it has to be created.
type CategorySpec struct {
	Name        string
	Type        enums.CategoryType
	Description string
	Color       string
	Icon        string
}

// CreateCategoryInput carries the fields for an admin-created category.
type CreateCategoryInput struct {
	Name        string
	Type        enums.CategoryType
	Description *string
	Color       string
	Icon        string
}

// UpdateCategoryInput carries the mutable category fields. Nil means keep.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
	IsActive    *bool
}

// Service defines category operations.
type Service interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, spec CategorySpec) (*models.Category, error)
	Create(ctx context.Context, input CreateCategoryInput) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*models.Category, error)
	List(ctx context.Context, includeInactive bool) ([]models.Category, error)
}

type service struct {
	repo Repository
}

// NewService builds a categories service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("categories repository required")
	}
	return &service{repo: repo}, nil
}

// GetOrCreate resolves the named category, creating it when missing. The
// insert uses an on-conflict-do-nothing upsert so two concurrent callers both
// end up reading the single surviving row instead of one of them aborting the
// surrounding transaction.
func (s *service) GetOrCreate(ctx context.Context, tx *gorm.DB, spec CategorySpec) (*models.Category, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	if !spec.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category type")
	}

	repo := s.repo.WithTx(tx)
	category, err := repo.FindByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup category")
	}

	candidate := models.Category{
		Name:     name,
		Type:     spec.Type,
		Color:    spec.Color,
		Icon:     spec.Icon,
		IsActive: true,
	}
	if spec.Description != "" {
		candidate.Description = &spec.Description
	}
	if err := repo.Upsert(ctx, &candidate); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}

	category, err = repo.FindByName(ctx, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload category")
	}
	return category, nil
}

func (s *service) Create(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category type")
	}

	category := models.Category{
		Name:        name,
		Type:        input.Type,
		Description: input.Description,
		Color:       input.Color,
		Icon:        input.Icon,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		if dbIsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return &category, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*models.Category, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
		}
		updates["name"] = name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Color != nil {
		updates["color"] = *input.Color
	}
	if input.Icon != nil {
		updates["icon"] = *input.Icon
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no category fields to update")
	}

	affected, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if dbIsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload category")
	}
	return category, nil
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	categories, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categories, nil
}
