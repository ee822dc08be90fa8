package transactions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/masjid-digital/admin-backend/pkg/db/models"
	"github.com/masjid-digital/admin-backend/pkg/enums"
	pkgerrors "github.com/masjid-digital/admin-backend/pkg/errors"
	"github.com/masjid-digital/admin-backend/pkg/pagination"
)

// CreateTransactionInput carries the fields for a manually recorded ledger
// entry, for example an expense or an offline cash donation.
type CreateTransactionInput struct {
	Type        enums.TransactionType
	Amount      decimal.Decimal
	Description string
	Donor       *string
	Recipient   *string
	Date        time.Time
	Notes       *string
	CategoryID  uuid.UUID
	CreatedByID uuid.UUID
}

// ListTransactionsInput carries pagination plus filters for ledger listings.
type ListTransactionsInput struct {
	Params  pagination.Params
	Filters TransactionFilters
}

// Service defines ledger operations. Entries can be created and read but
// never changed, so reporting stays trustworthy.
type Service interface {
	Create(ctx context.Context, input CreateTransactionInput) (*models.Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	List(ctx context.Context, input ListTransactionsInput) (*TransactionList, error)
	MonthlySummary(ctx context.Context, year int, month time.Month) (*Summary, error)
	Record(ctx context.Context, tx *gorm.DB, entry *models.Transaction) error
}

type service struct {
	repo Repository
}

// NewService builds a transactions service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("transactions repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateTransactionInput) (*models.Transaction, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction type")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description required")
	}
	if input.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if input.CreatedByID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	transaction := models.Transaction{
		Type:        input.Type,
		Amount:      input.Amount,
		Description: description,
		Donor:       input.Donor,
		Recipient:   input.Recipient,
		Date:        date,
		Notes:       input.Notes,
		CategoryID:  input.CategoryID,
		CreatedByID: input.CreatedByID,
	}
	if err := s.repo.Create(ctx, &transaction); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transaction")
	}
	return &transaction, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id required")
	}
	transaction, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transaction")
	}
	return transaction, nil
}

func (s *service) List(ctx context.Context, input ListTransactionsInput) (*TransactionList, error) {
	if input.Filters.Type != nil && !input.Filters.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction type filter")
	}
	list, err := s.repo.List(ctx, input.Params, input.Filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
	}
	return list, nil
}

func (s *service) MonthlySummary(ctx context.Context, year int, month time.Month) (*Summary, error) {
	if year < 2000 || month < time.January || month > time.December {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid summary period")
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	summary, err := s.repo.Summarize(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summarize transactions")
	}
	return summary, nil
}

// Record writes a workflow-generated ledger entry inside the caller's
// transaction, so it commits or rolls back with the rest of the approval.
func (s *service) Record(ctx context.Context, tx *gorm.DB, entry *models.Transaction) error {
	if entry == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "transaction entry required")
	}
	if !entry.Amount.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if entry.CategoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if err := s.repo.WithTx(tx).Create(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record ledger entry")
	}
	return nil
}
