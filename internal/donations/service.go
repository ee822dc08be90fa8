package donations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/masjid-digital/admin-backend/internal/categories"
	"github.com/masjid-digital/admin-backend/pkg/db/models"
	"github.com/masjid-digital/admin-backend/pkg/enums"
	pkgerrors "github.com/masjid-digital/admin-backend/pkg/errors"
	"github.com/masjid-digital/admin-backend/pkg/outbox"
	"github.com/masjid-digital/admin-backend/pkg/pagination"
)

const (
	donationCategoryName = "Donasi Program"
	anonymousDonorLabel  = "Hamba Allah"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type activityPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type categoryResolver interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, spec categories.CategorySpec) (*models.Category, error)
}

// programDirectory is the slice of the programs service the workflow needs:
// campaign lookups plus the atomic running-total increment.
type programDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*models.DonationProgram, error)
	AddCollected(ctx context.Context, tx *gorm.DB, programID uuid.UUID, amount decimal.Decimal) error
}

type ledgerRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, entry *models.Transaction) error
}

// VerifyAction is the decision an admin takes on a pending donation.
type VerifyAction string

const (
	VerifyActionApprove VerifyAction = "approve"
	VerifyActionReject  VerifyAction = "reject"
)

// VerifyInput captures the data required to decide a donation.
type VerifyInput struct {
	DonationID   uuid.UUID
	Action       VerifyAction
	RejectReason string
	ActorID      uuid.UUID
	ActorRole    string
}

// VerifyResult is what the verification endpoint returns to the admin.
type VerifyResult struct {
	DonationID    uuid.UUID            `json:"donation_id"`
	Status        enums.DonationStatus `json:"status"`
	ReceiptNumber string               `json:"receipt_number,omitempty"`
	Message       string               `json:"message"`
}

// SubmitInput carries a donor's pledge toward a program.
type SubmitInput struct {
	ProgramID       uuid.UUID
	Amount          decimal.Decimal
	DonorName       *string
	DonorEmail      *string
	DonorPhone      *string
	IsAnonymous     bool
	Message         *string
	PaymentProofURL string
}

// ListDonationsInput carries pagination plus filters for donation listings.
type ListDonationsInput struct {
	Params  pagination.Params
	Filters DonationFilters
}

// DonationVerifiedEvent is emitted when an approval commits.
type DonationVerifiedEvent struct {
	DonationID    uuid.UUID            `json:"donation_id"`
	ProgramID     uuid.UUID            `json:"program_id"`
	Amount        decimal.Decimal      `json:"amount"`
	ReceiptNumber string               `json:"receipt_number"`
	Status        enums.DonationStatus `json:"status"`
}

// DonationRejectedEvent is emitted when a rejection commits.
type DonationRejectedEvent struct {
	DonationID   uuid.UUID            `json:"donation_id"`
	ProgramID    uuid.UUID            `json:"program_id"`
	RejectReason string               `json:"reject_reason"`
	Status       enums.DonationStatus `json:"status"`
}

// Service defines donation operations.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.Donation, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Donation, error)
	List(ctx context.Context, input ListDonationsInput) (*DonationList, error)
	Verify(ctx context.Context, input VerifyInput) (*VerifyResult, error)
}

type service struct {
	repo       Repository
	tx         txRunner
	categories categoryResolver
	programs   programDirectory
	ledger     ledgerRecorder
	outbox     activityPublisher
	now        func() time.Time
}

// NewService builds the donation service with the required collaborators.
func NewService(repo Repository, tx txRunner, cats categoryResolver, programs programDirectory, ledger ledgerRecorder, publisher activityPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("donations repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if cats == nil {
		return nil, fmt.Errorf("category resolver required")
	}
	if programs == nil {
		return nil, fmt.Errorf("program directory required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("ledger recorder required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("activity publisher required")
	}
	return &service{
		repo:       repo,
		tx:         tx,
		categories: cats,
		programs:   programs,
		ledger:     ledger,
		outbox:     publisher,
		now:        time.Now,
	}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.Donation, error) {
	if input.ProgramID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "program id required")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if strings.TrimSpace(input.PaymentProofURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment proof required")
	}

	program, err := s.programs.Get(ctx, input.ProgramID)
	if err != nil {
		return nil, err
	}
	if !program.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "program is not accepting donations")
	}

	donation := models.Donation{
		ProgramID:       input.ProgramID,
		Amount:          input.Amount,
		DonorName:       input.DonorName,
		DonorEmail:      input.DonorEmail,
		DonorPhone:      input.DonorPhone,
		IsAnonymous:     input.IsAnonymous,
		Message:         input.Message,
		Status:          enums.DonationStatusPending,
		PaymentProofURL: strings.TrimSpace(input.PaymentProofURL),
	}
	if err := s.repo.Create(ctx, &donation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create donation")
	}
	return &donation, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Donation, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "donation id required")
	}
	donation, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "donation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load donation")
	}
	return donation, nil
}

func (s *service) List(ctx context.Context, input ListDonationsInput) (*DonationList, error) {
	if input.Filters.Status != nil && !input.Filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid donation status filter")
	}
	list, err := s.repo.List(ctx, input.Params, input.Filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list donations")
	}
	return list, nil
}

// Verify decides a pending donation. The whole decision, including the
// category lookup, the status flip, the running-total increment and the
// ledger entry, runs in one database transaction; a failure at any step
// leaves no trace of the attempt.
func (s *service) Verify(ctx context.Context, input VerifyInput) (*VerifyResult, error) {
	if input.DonationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "donation id required")
	}
	if input.ActorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	switch input.Action {
	case VerifyActionApprove, VerifyActionReject:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "action must be approve or reject")
	}
	reason := strings.TrimSpace(input.RejectReason)
	if input.Action == VerifyActionReject && reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reject reason required")
	}

	var result *VerifyResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		donation, err := repo.Find(ctx, input.DonationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "donation not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load donation")
		}
		if donation.Status != enums.DonationStatusPending {
			return alreadyProcessed(donation.Status)
		}

		now := s.now()
		if input.Action == VerifyActionReject {
			result, err = s.reject(ctx, tx, repo, donation, reason, input, now)
			return err
		}
		result, err = s.approve(ctx, tx, repo, donation, input, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) approve(ctx context.Context, tx *gorm.DB, repo Repository, donation *models.Donation, input VerifyInput, now time.Time) (*VerifyResult, error) {
	category, err := s.categories.GetOrCreate(ctx, tx, donationCategorySpec())
	if err != nil {
		return nil, err
	}

	affected, err := repo.TransitionFromPending(ctx, donation.ID, map[string]any{
		"status":         enums.DonationStatusVerified,
		"verified_by_id": input.ActorID,
		"verified_at":    now,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update donation status")
	}
	if affected == 0 {
		return nil, alreadyProcessed(donation.Status)
	}

	if donation.Program == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "donation program missing")
	}
	if err := s.programs.AddCollected(ctx, tx, donation.ProgramID, donation.Amount); err != nil {
		return nil, err
	}

	receipt := ReceiptNumber(donation.ID)
	donor := donorLabel(donation)
	description := fmt.Sprintf("Donasi untuk program: %s", donation.Program.Title)
	entry := models.Transaction{
		Type:          enums.TransactionTypeIncome,
		Amount:        donation.Amount,
		Description:   description,
		Donor:         &donor,
		Date:          now,
		ReceiptNumber: &receipt,
		Notes:         donation.Message,
		CategoryID:    category.ID,
		CreatedByID:   input.ActorID,
	}
	if err := s.ledger.Record(ctx, tx, &entry); err != nil {
		return nil, err
	}

	event := outbox.DomainEvent{
		EventType:     enums.EventDonationVerified,
		AggregateType: enums.AggregateDonation,
		AggregateID:   donation.ID,
		Version:       1,
		Actor:         buildActor(input.ActorID, input.ActorRole),
		Data: DonationVerifiedEvent{
			DonationID:    donation.ID,
			ProgramID:     donation.ProgramID,
			Amount:        donation.Amount,
			ReceiptNumber: receipt,
			Status:        enums.DonationStatusVerified,
		},
	}
	if err := s.outbox.Emit(ctx, tx, event); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue activity event")
	}

	return &VerifyResult{
		DonationID:    donation.ID,
		Status:        enums.DonationStatusVerified,
		ReceiptNumber: receipt,
		Message:       "Donasi berhasil diverifikasi",
	}, nil
}

func (s *service) reject(ctx context.Context, tx *gorm.DB, repo Repository, donation *models.Donation, reason string, input VerifyInput, now time.Time) (*VerifyResult, error) {
	affected, err := repo.TransitionFromPending(ctx, donation.ID, map[string]any{
		"status":         enums.DonationStatusCancelled,
		"reject_reason":  reason,
		"verified_by_id": input.ActorID,
		"verified_at":    now,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update donation status")
	}
	if affected == 0 {
		return nil, alreadyProcessed(donation.Status)
	}

	event := outbox.DomainEvent{
		EventType:     enums.EventDonationRejected,
		AggregateType: enums.AggregateDonation,
		AggregateID:   donation.ID,
		Version:       1,
		Actor:         buildActor(input.ActorID, input.ActorRole),
		Data: DonationRejectedEvent{
			DonationID:   donation.ID,
			ProgramID:    donation.ProgramID,
			RejectReason: reason,
			Status:       enums.DonationStatusCancelled,
		},
	}
	if err := s.outbox.Emit(ctx, tx, event); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue activity event")
	}

	return &VerifyResult{
		DonationID: donation.ID,
		Status:     enums.DonationStatusCancelled,
		Message:    "Donasi berhasil ditolak",
	}, nil
}

func donationCategorySpec() categories.CategorySpec {
	return categories.CategorySpec{
		Name:        donationCategoryName,
		Type:        enums.CategoryTypeIncome,
		Description: "Donasi program yang telah diverifikasi",
		Color:       "#10B981",
		Icon:        "heart",
	}
}

func donorLabel(donation *models.Donation) string {
	if donation.IsAnonymous {
		return anonymousDonorLabel
	}
	if donation.DonorName == nil || strings.TrimSpace(*donation.DonorName) == "" {
		return anonymousDonorLabel
	}
	return strings.TrimSpace(*donation.DonorName)
}

func alreadyProcessed(status enums.DonationStatus) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "donation already processed").
		WithDetails(map[string]string{"status": status.String()})
}

func buildActor(userID uuid.UUID, role string) *outbox.ActorRef {
	return &outbox.ActorRef{UserID: userID.String(), Role: role}
}
