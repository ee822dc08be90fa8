package transactions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/masjid-digital/admin-backend/pkg/db/models"
	"github.com/masjid-digital/admin-backend/pkg/enums"
	pkgerrors "github.com/masjid-digital/admin-backend/pkg/errors"
	"github.com/masjid-digital/admin-backend/pkg/pagination"
)

type stubLedgerRepo struct {
	created       []*models.Transaction
	summarizeFrom time.Time
	summarizeTo   time.Time
}

func (s *stubLedgerRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubLedgerRepo) Create(ctx context.Context, transaction *models.Transaction) error {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	s.created = append(s.created, transaction)
	return nil
}

func (s *stubLedgerRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	for _, entry := range s.created {
		if entry.ID == id {
			return entry, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubLedgerRepo) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*models.Transaction, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubLedgerRepo) List(ctx context.Context, params pagination.Params, filters TransactionFilters) (*TransactionList, error) {
	return &TransactionList{}, nil
}

func (s *stubLedgerRepo) Summarize(ctx context.Context, from, to time.Time) (*Summary, error) {
	s.summarizeFrom = from
	s.summarizeTo = to
	return &Summary{Income: decimal.NewFromInt(100), Expense: decimal.NewFromInt(40)}, nil
}

func TestCreateValidatesInput(t *testing.T) {
	svc, err := NewService(&stubLedgerRepo{})
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	cases := []struct {
		name  string
		input CreateTransactionInput
		code  pkgerrors.Code
	}{
		{
			name:  "bad type",
			input: CreateTransactionInput{Type: "transfer", Amount: decimal.NewFromInt(10), Description: "x", CategoryID: uuid.New(), CreatedByID: uuid.New()},
			code:  pkgerrors.CodeValidation,
		},
		{
			name:  "zero amount",
			input: CreateTransactionInput{Type: enums.TransactionTypeIncome, Amount: decimal.Zero, Description: "x", CategoryID: uuid.New(), CreatedByID: uuid.New()},
			code:  pkgerrors.CodeValidation,
		},
		{
			name:  "blank description",
			input: CreateTransactionInput{Type: enums.TransactionTypeIncome, Amount: decimal.NewFromInt(10), Description: "  ", CategoryID: uuid.New(), CreatedByID: uuid.New()},
			code:  pkgerrors.CodeValidation,
		},
		{
			name:  "missing actor",
			input: CreateTransactionInput{Type: enums.TransactionTypeIncome, Amount: decimal.NewFromInt(10), Description: "x", CategoryID: uuid.New()},
			code:  pkgerrors.CodeUnauthorized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			coded := pkgerrors.As(err)
			if coded == nil || coded.Code() != tc.code {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestCreateDefaultsDate(t *testing.T) {
	repo := &stubLedgerRepo{}
	svc, _ := NewService(repo)

	entry, err := svc.Create(context.Background(), CreateTransactionInput{
		Type:        enums.TransactionTypeExpense,
		Amount:      decimal.NewFromInt(150_000),
		Description: "Pembelian karpet",
		CategoryID:  uuid.New(),
		CreatedByID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if entry.Date.IsZero() {
		t.Fatal("expected default date")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created entry, got %d", len(repo.created))
	}
}

func TestMonthlySummaryWindow(t *testing.T) {
	repo := &stubLedgerRepo{}
	svc, _ := NewService(repo)

	summary, err := svc.MonthlySummary(context.Background(), 2026, time.February)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if !summary.Balance().Equal(decimal.NewFromInt(60)) {
		t.Fatalf("unexpected balance %s", summary.Balance())
	}
	wantFrom := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	if !repo.summarizeFrom.Equal(wantFrom) {
		t.Fatalf("unexpected window start %s", repo.summarizeFrom)
	}
	if !repo.summarizeTo.Equal(wantFrom.AddDate(0, 1, 0)) {
		t.Fatalf("unexpected window end %s", repo.summarizeTo)
	}
}

func TestRecordRequiresCategory(t *testing.T) {
	svc, _ := NewService(&stubLedgerRepo{})

	err := svc.Record(context.Background(), nil, &models.Transaction{
		Type:        enums.TransactionTypeIncome,
		Amount:      decimal.NewFromInt(10),
		Description: "x",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
