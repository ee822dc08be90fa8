package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/masjid-digital/admin-backend/api/responses"
	"github.com/masjid-digital/admin-backend/api/validators"
	"github.com/masjid-digital/admin-backend/internal/transactions"
	"github.com/masjid-digital/admin-backend/pkg/enums"
	pkgerrors "github.com/masjid-digital/admin-backend/pkg/errors"
	"github.com/masjid-digital/admin-backend/pkg/logger"
	"github.com/masjid-digital/admin-backend/pkg/pagination"
)

// CreateTransactionRequest is the payload for a manually recorded ledger
// entry, for example an expense or an offline cash donation.
type CreateTransactionRequest struct {
	Type        string          `json:"type" validate:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"required,max=500"`
	Donor       *string         `json:"donor"`
	Recipient   *string         `json:"recipient"`
	Date        *time.Time      `json:"date"`
	Notes       *string         `json:"notes"`
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
}

// TransactionsList returns a cursor-paginated page of ledger entries.
func TransactionsList(transactionService transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := transactions.TransactionFilters{}
		if raw := r.URL.Query().Get("type"); raw != "" {
			txType, err := enums.ParseTransactionType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction type filter"))
				return
			}
			filters.Type = &txType
		}
		categoryID, err := validators.ParseQueryUUID(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.CategoryID = categoryID

		list, err := transactionService.List(r.Context(), transactions.ListTransactionsInput{
			Params: pagination.Params{
				Limit:  limit,
				Cursor: r.URL.Query().Get("cursor"),
			},
			Filters: filters,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := map[string]any{"transactions": list.Transactions}
		if list.NextCursor != nil {
			payload["next_cursor"] = pagination.EncodeCursor(*list.NextCursor)
		}
		responses.WriteSuccess(w, payload)
	}
}

// TransactionGet returns one ledger entry with its category.
func TransactionGet(transactionService transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "transactionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		transaction, err := transactionService.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transaction)
	}
}

// TransactionCreate records a manual ledger entry on behalf of the caller.
func TransactionCreate(transactionService transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTransactionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txType, err := enums.ParseTransactionType(req.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction type"))
			return
		}
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category_id must be a valid uuid"))
			return
		}
		caller, err := actorFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := transactions.CreateTransactionInput{
			Type:        txType,
			Amount:      req.Amount,
			Description: req.Description,
			Donor:       req.Donor,
			Recipient:   req.Recipient,
			Notes:       req.Notes,
			CategoryID:  categoryID,
			CreatedByID: caller.UserID,
		}
		if req.Date != nil {
			input.Date = *req.Date
		}

		transaction, err := transactionService.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, transaction)
	}
}

// TransactionsSummary returns income, expense and balance for a month.
// Defaults to the current month when year or month are absent.
func TransactionsSummary(transactionService transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, month, err := validators.ParseQueryMonth(r, time.Now().UTC())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := transactionService.MonthlySummary(r.Context(), year, month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"year":    year,
			"month":   int(month),
			"income":  summary.Income,
			"expense": summary.Expense,
			"balance": summary.Balance(),
		})
	}
}
