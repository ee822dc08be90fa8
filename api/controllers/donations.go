package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/masjid-digital/admin-backend/api/responses"
	"github.com/masjid-digital/admin-backend/api/validators"
	"github.com/masjid-digital/admin-backend/internal/donations"
	"github.com/masjid-digital/admin-backend/pkg/enums"
	pkgerrors "github.com/masjid-digital/admin-backend/pkg/errors"
	"github.com/masjid-digital/admin-backend/pkg/logger"
	"github.com/masjid-digital/admin-backend/pkg/metrics"
	"github.com/masjid-digital/admin-backend/pkg/pagination"
)

const (
	maxDonorNameLength = 120
	maxMessageLength   = 1000
)

// SubmitDonationRequest is the public donation form payload.
type SubmitDonationRequest struct {
	ProgramID       string          `json:"program_id" validate:"required,uuid"`
	Amount          decimal.Decimal `json:"amount"`
	DonorName       *string         `json:"donor_name"`
	DonorEmail      *string         `json:"donor_email" validate:"omitempty,email"`
	DonorPhone      *string         `json:"donor_phone"`
	IsAnonymous     bool            `json:"is_anonymous"`
	Message         *string         `json:"message"`
	PaymentProofURL string          `json:"payment_proof_url" validate:"required,url"`
}

// VerifyDonationRequest is the admin decision payload.
type VerifyDonationRequest struct {
	Action       string `json:"action" validate:"required,oneof=approve reject"`
	RejectReason string `json:"reject_reason"`
}

// DonationSubmit accepts a donor's pledge with its transfer proof. Public,
// no authentication.
func DonationSubmit(donationService donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitDonationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		programID, err := parseBodyUUID(req.ProgramID, "program_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := donations.SubmitInput{
			ProgramID:       programID,
			Amount:          req.Amount,
			DonorName:       sanitizeOptional(req.DonorName, maxDonorNameLength),
			DonorEmail:      req.DonorEmail,
			DonorPhone:      req.DonorPhone,
			IsAnonymous:     req.IsAnonymous,
			Message:         sanitizeOptional(req.Message, maxMessageLength),
			PaymentProofURL: req.PaymentProofURL,
		}
		donation, err := donationService.Submit(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, donation)
	}
}

// DonationsList returns a cursor-paginated page of donations for admins.
func DonationsList(donationService donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := donations.DonationFilters{}
		if raw := r.URL.Query().Get("status"); raw != "" {
			status, err := enums.ParseDonationStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid donation status filter"))
				return
			}
			filters.Status = &status
		}
		programID, err := validators.ParseQueryUUID(r, "program_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.ProgramID = programID

		list, err := donationService.List(r.Context(), donations.ListDonationsInput{
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

		payload := map[string]any{"donations": list.Donations}
		if list.NextCursor != nil {
			payload["next_cursor"] = pagination.EncodeCursor(*list.NextCursor)
		}
		responses.WriteSuccess(w, payload)
	}
}

// DonationGet returns one donation with its program.
func DonationGet(donationService donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "donationID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		donation, err := donationService.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, donation)
	}
}

// DonationVerify applies an admin's approve or reject decision.
func DonationVerify(donationService donations.Service, verifyMetrics *metrics.VerificationMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "donationID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req VerifyDonationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		caller, err := actorFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start := time.Now()
		result, err := donationService.Verify(r.Context(), donations.VerifyInput{
			DonationID:   id,
			Action:       donations.VerifyAction(req.Action),
			RejectReason: req.RejectReason,
			ActorID:      caller.UserID,
			ActorRole:    caller.Role,
		})
		if verifyMetrics != nil {
			verifyMetrics.ObserveDuration(req.Action, time.Since(start))
			verifyMetrics.IncOutcome(req.Action, verifyOutcome(err))
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithDonationID(r.Context(), result.DonationID.String())
			logg.Info(ctx, "donation decided")
		}
		responses.WriteSuccess(w, result)
	}
}

func verifyOutcome(err error) string {
	if err == nil {
		return "success"
	}
	if coded := pkgerrors.As(err); coded != nil && coded.Code() == pkgerrors.CodeStateConflict {
		return "conflict"
	}
	return "error"
}

func sanitizeOptional(value *string, maxLen int) *string {
	if value == nil {
		return nil
	}
	clean := validators.SanitizeString(*value, maxLen)
	if clean == "" {
		return nil
	}
	return &clean
}

func parseBodyUUID(raw, field string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, field+" must be a valid uuid")
	}
	return parsed, nil
}
