package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/masjid-digital/admin-backend/pkg/db/models"
	"github.com/masjid-digital/admin-backend/pkg/enums"
)

func setupCategoriesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  description TEXT,
  color TEXT NOT NULL DEFAULT '',
  icon TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	index := `CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name ON categories(name);`
	require.NoError(t, db.Exec(categories).Error)
	require.NoError(t, db.Exec(index).Error)
	return db
}

func uniqueName(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func TestRepositoryUpsertKeepsSingleRow(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	name := uniqueName("Donasi Program")

	first := models.Category{Name: name, Type: enums.CategoryTypeIncome, IsActive: true}
	require.NoError(t, repo.Upsert(ctx, &first))

	second := models.Category{Name: name, Type: enums.CategoryTypeIncome, IsActive: true}
	require.NoError(t, repo.Upsert(ctx, &second))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	found, err := repo.FindByName(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
}

func TestRepositoryCreateRejectsDuplicateName(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	name := uniqueName("Operasional")

	require.NoError(t, repo.Create(ctx, &models.Category{Name: name, Type: enums.CategoryTypeExpense, IsActive: true}))

	err := repo.Create(ctx, &models.Category{Name: name, Type: enums.CategoryTypeExpense, IsActive: true})
	require.Error(t, err)
	assert.True(t, dbIsUniqueViolation(err))
}

func TestRepositoryUpdateReportsMissingRow(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)

	affected, err := repo.Update(context.Background(), uuid.New(), map[string]any{"is_active": false})
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestRepositoryListFiltersInactive(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	active := models.Category{Name: uniqueName("Zakat"), Type: enums.CategoryTypeIncome, IsActive: true}
	inactive := models.Category{Name: uniqueName("Lama"), Type: enums.CategoryTypeExpense, IsActive: false}
	require.NoError(t, repo.Create(ctx, &active))
	require.NoError(t, repo.Create(ctx, &inactive))

	visible, err := repo.List(ctx, false)
	require.NoError(t, err)
	names := make(map[string]bool, len(visible))
	for _, category := range visible {
		names[category.Name] = true
	}
	assert.True(t, names[active.Name])
	assert.False(t, names[inactive.Name])

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	names = make(map[string]bool, len(all))
	for _, category := range all {
		names[category.Name] = true
	}
	assert.True(t, names[inactive.Name])
}
