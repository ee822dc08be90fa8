package transactions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/masjid-digital/admin-backend/pkg/db/models"
	"github.com/masjid-digital/admin-backend/pkg/enums"
	"github.com/masjid-digital/admin-backend/pkg/pagination"
)

// TransactionFilters narrows ledger listings.
type TransactionFilters struct {
	Type       *enums.TransactionType
	CategoryID *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// TransactionList is one page of ledger entries.
type TransactionList struct {
	Transactions []models.Transaction
	NextCursor   *pagination.Cursor
}

// Summary aggregates the ledger over a window.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Balance is income minus expense for the window.
func (s Summary) Balance() decimal.Decimal {
	return s.Income.Sub(s.Expense)
}

// Repository exposes persistence helpers for the transaction ledger.
// There is no update or delete: ledger rows are immutable once written.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, transaction *models.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	FindByReceiptNumber(ctx context.Context, receiptNumber string) (*models.Transaction, error)
	List(ctx context.Context, params pagination.Params, filters TransactionFilters) (*TransactionList, error)
	Summarize(ctx context.Context, from, to time.Time) (*Summary, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a transactions repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, transaction *models.Transaction) error {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Category").
		First(&transaction, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *repositoryImpl) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.WithContext(ctx).
		First(&transaction, "receipt_number = ?", receiptNumber).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *repositoryImpl) List(ctx context.Context, params pagination.Params, filters TransactionFilters) (*TransactionList, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Transaction{}).Preload("Category")
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.From != nil {
		query = query.Where("date >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("date < ?", *filters.To)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&transactions).Error; err != nil {
		return nil, err
	}

	list := &TransactionList{Transactions: transactions}
	if len(transactions) > normalized {
		next := transactions[normalized]
		list.Transactions = transactions[:normalized]
		list.NextCursor = &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}
	}
	return list, nil
}

func (r *repositoryImpl) Summarize(ctx context.Context, from, to time.Time) (*Summary, error) {
	type row struct {
		Type  enums.TransactionType
		Total decimal.Decimal
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("date >= ? AND date < ?", from, to).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &Summary{Income: decimal.Zero, Expense: decimal.Zero}
	for _, r := range rows {
		switch r.Type {
		case enums.TransactionTypeIncome:
			summary.Income = r.Total
		case enums.TransactionTypeExpense:
			summary.Expense = r.Total
		}
	}
	return summary, nil
}
