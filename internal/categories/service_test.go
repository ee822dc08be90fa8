package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/masjid-digital/admin-backend/pkg/db/models"
	"github.com/masjid-digital/admin-backend/pkg/enums"
	pkgerrors "github.com/masjid-digital/admin-backend/pkg/errors"
)

type stubCategoriesRepo struct {
	byName     map[string]*models.Category
	upserts    int
	createErr  error
	updated    map[string]any
	updateRows int64
}

func (s *stubCategoriesRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubCategoriesRepo) Create(ctx context.Context, category *models.Category) error {
	if s.createErr != nil {
		return s.createErr
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if s.byName == nil {
		s.byName = make(map[string]*models.Category)
	}
	s.byName[category.Name] = category
	return nil
}

func (s *stubCategoriesRepo) Upsert(ctx context.Context, category *models.Category) error {
	s.upserts++
	if s.byName == nil {
		s.byName = make(map[string]*models.Category)
	}
	if _, exists := s.byName[category.Name]; exists {
		return nil
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	s.byName[category.Name] = category
	return nil
}

func (s *stubCategoriesRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	for _, category := range s.byName {
		if category.ID == id {
			return category, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCategoriesRepo) FindByName(ctx context.Context, name string) (*models.Category, error) {
	category, ok := s.byName[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return category, nil
}

func (s *stubCategoriesRepo) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	var out []models.Category
	for _, category := range s.byName {
		if !includeInactive && !category.IsActive {
			continue
		}
		out = append(out, *category)
	}
	return out, nil
}

func (s *stubCategoriesRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	s.updated = updates
	return s.updateRows, nil
}

func TestGetOrCreateReturnsExisting(t *testing.T) {
	existing := &models.Category{ID: uuid.New(), Name: "Donasi Program", Type: enums.CategoryTypeIncome}
	repo := &stubCategoriesRepo{byName: map[string]*models.Category{existing.Name: existing}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	category, err := svc.GetOrCreate(context.Background(), nil, CategorySpec{Name: "Donasi Program", Type: enums.CategoryTypeIncome})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if category.ID != existing.ID {
		t.Fatalf("expected existing category, got %s", category.ID)
	}
	if repo.upserts != 0 {
		t.Fatalf("expected no upsert, got %d", repo.upserts)
	}
}

func TestGetOrCreateCreatesMissing(t *testing.T) {
	repo := &stubCategoriesRepo{}
	svc, _ := NewService(repo)

	category, err := svc.GetOrCreate(context.Background(), nil, CategorySpec{
		Name:        "Donasi Program",
		Type:        enums.CategoryTypeIncome,
		Description: "Donasi yang diverifikasi",
		Color:       "#10B981",
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if repo.upserts != 1 {
		t.Fatalf("expected one upsert, got %d", repo.upserts)
	}
	if !category.IsActive {
		t.Fatal("expected created category to be active")
	}
	if category.Description == nil || *category.Description != "Donasi yang diverifikasi" {
		t.Fatal("expected description to seed new category")
	}
}

func TestGetOrCreateValidation(t *testing.T) {
	svc, _ := NewService(&stubCategoriesRepo{})

	_, err := svc.GetOrCreate(context.Background(), nil, CategorySpec{Name: "  ", Type: enums.CategoryTypeIncome})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.GetOrCreate(context.Background(), nil, CategorySpec{Name: "Donasi", Type: enums.CategoryType("bogus")})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateMissingCategory(t *testing.T) {
	repo := &stubCategoriesRepo{updateRows: 0}
	svc, _ := NewService(repo)

	active := false
	_, err := svc.Update(context.Background(), uuid.New(), UpdateCategoryInput{IsActive: &active})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
