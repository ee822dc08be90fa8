package programs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/masjid-digital/admin-backend/pkg/db/models"
)

func setupProgramsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	programs := `
CREATE TABLE IF NOT EXISTS donation_programs (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT,
  target NUMERIC NOT NULL,
  collected NUMERIC NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(programs).Error)
	return db
}

func newProgram(t *testing.T, db *gorm.DB, title string, collected decimal.Decimal) *models.DonationProgram {
	t.Helper()

	program := &models.DonationProgram{
		ID:        uuid.New(),
		Title:     title,
		Target:    decimal.NewFromInt(10_000_000),
		Collected: collected,
		IsActive:  true,
	}
	require.NoError(t, db.Create(program).Error)
	return program
}

func TestIncrementCollectedIsArithmetic(t *testing.T) {
	db := setupProgramsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	program := newProgram(t, db, "Renovasi Masjid", decimal.NewFromInt(100_000))

	affected, err := repo.IncrementCollected(ctx, program.ID, decimal.NewFromInt(50_000))
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.IncrementCollected(ctx, program.ID, decimal.NewFromInt(25_000))
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	reloaded, err := repo.Find(ctx, program.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Collected.Equal(decimal.NewFromInt(175_000)),
		"collected = %s", reloaded.Collected)
}

func TestIncrementCollectedMissingProgram(t *testing.T) {
	db := setupProgramsTestDB(t)
	repo := NewRepository(db)

	affected, err := repo.IncrementCollected(context.Background(), uuid.New(), decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestListOnlyActivePrograms(t *testing.T) {
	db := setupProgramsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	active := newProgram(t, db, "Program Aktif "+uuid.NewString()[:8], decimal.Zero)
	retired := newProgram(t, db, "Program Selesai "+uuid.NewString()[:8], decimal.Zero)
	require.NoError(t, db.Model(&models.DonationProgram{}).Where("id = ?", retired.ID).Update("is_active", false).Error)

	listed, err := repo.List(ctx, true)
	require.NoError(t, err)

	ids := make(map[uuid.UUID]bool, len(listed))
	for _, program := range listed {
		ids[program.ID] = true
	}
	assert.True(t, ids[active.ID])
	assert.False(t, ids[retired.ID])
}
