package donations

import (
	"context"
	"testing"
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

type stubDonationsRepo struct {
	donation       *models.Donation
	transitionRows int64
	transitions    []map[string]any
}

func (s *stubDonationsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubDonationsRepo) Create(ctx context.Context, donation *models.Donation) error {
	if donation.ID == uuid.Nil {
		donation.ID = uuid.New()
	}
	s.donation = donation
	return nil
}

func (s *stubDonationsRepo) Find(ctx context.Context, id uuid.UUID) (*models.Donation, error) {
	if s.donation == nil || s.donation.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.donation, nil
}

func (s *stubDonationsRepo) List(ctx context.Context, params pagination.Params, filters DonationFilters) (*DonationList, error) {
	return &DonationList{}, nil
}

func (s *stubDonationsRepo) TransitionFromPending(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	s.transitions = append(s.transitions, updates)
	return s.transitionRows, nil
}

func (s *stubDonationsRepo) SumVerifiedByProgram(ctx context.Context, programID uuid.UUID) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type stubCategoryResolver struct {
	category *models.Category
	err      error
	calls    int
}

func (s *stubCategoryResolver) GetOrCreate(ctx context.Context, tx *gorm.DB, spec categories.CategorySpec) (*models.Category, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.category == nil {
		s.category = &models.Category{ID: uuid.New(), Name: spec.Name, Type: spec.Type, IsActive: true}
	}
	return s.category, nil
}

type stubProgramDirectory struct {
	program    *models.DonationProgram
	addErr     error
	increments []decimal.Decimal
}

func (s *stubProgramDirectory) Get(ctx context.Context, id uuid.UUID) (*models.DonationProgram, error) {
	if s.program == nil || s.program.ID != id {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "program not found")
	}
	return s.program, nil
}

func (s *stubProgramDirectory) AddCollected(ctx context.Context, tx *gorm.DB, programID uuid.UUID, amount decimal.Decimal) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.increments = append(s.increments, amount)
	return nil
}

type stubLedgerRecorder struct {
	entries []*models.Transaction
	err     error
}

func (s *stubLedgerRecorder) Record(ctx context.Context, tx *gorm.DB, entry *models.Transaction) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

type stubActivityPublisher struct {
	events []outbox.DomainEvent
	err    error
}

func (s *stubActivityPublisher) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type verifyFixture struct {
	repo     *stubDonationsRepo
	cats     *stubCategoryResolver
	programs *stubProgramDirectory
	ledger   *stubLedgerRecorder
	outbox   *stubActivityPublisher
	svc      Service
	donation *models.Donation
	actorID  uuid.UUID
}

func newVerifyFixture(t *testing.T, status enums.DonationStatus) *verifyFixture {
	t.Helper()

	program := &models.DonationProgram{
		ID:        uuid.New(),
		Title:     "Renovasi Masjid",
		Target:    decimal.NewFromInt(10_000_000),
		Collected: decimal.NewFromInt(500_000),
		IsActive:  true,
	}
	name := "Ahmad Fauzi"
	message := "Semoga bermanfaat"
	donation := &models.Donation{
		ID:              uuid.New(),
		ProgramID:       program.ID,
		Amount:          decimal.NewFromInt(250_000),
		DonorName:       &name,
		Message:         &message,
		Status:          status,
		PaymentProofURL: "https://cdn.example.com/bukti.jpg",
		Program:         program,
	}

	f := &verifyFixture{
		repo:     &stubDonationsRepo{donation: donation, transitionRows: 1},
		cats:     &stubCategoryResolver{},
		programs: &stubProgramDirectory{program: program},
		ledger:   &stubLedgerRecorder{},
		outbox:   &stubActivityPublisher{},
		donation: donation,
		actorID:  uuid.New(),
	}
	svc, err := NewService(f.repo, stubTxRunner{}, f.cats, f.programs, f.ledger, f.outbox)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	f.svc = svc
	return f
}

func TestVerifyApprove(t *testing.T) {
	f := newVerifyFixture(t, enums.DonationStatusPending)

	result, err := f.svc.Verify(context.Background(), VerifyInput{
		DonationID: f.donation.ID,
		Action:     VerifyActionApprove,
		ActorID:    f.actorID,
		ActorRole:  enums.UserRoleAdmin.String(),
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if result.Status != enums.DonationStatusVerified {
		t.Fatalf("unexpected status %s", result.Status)
	}
	if result.ReceiptNumber != ReceiptNumber(f.donation.ID) {
		t.Fatalf("unexpected receipt %q", result.ReceiptNumber)
	}

	if f.cats.calls != 1 {
		t.Fatalf("expected category resolution, got %d calls", f.cats.calls)
	}
	if len(f.repo.transitions) != 1 {
		t.Fatalf("expected one transition, got %d", len(f.repo.transitions))
	}
	updates := f.repo.transitions[0]
	if updates["status"] != enums.DonationStatusVerified {
		t.Fatalf("unexpected status update %v", updates["status"])
	}
	if updates["verified_by_id"] != f.actorID {
		t.Fatal("expected verifier recorded")
	}
	if _, ok := updates["verified_at"].(time.Time); !ok {
		t.Fatal("expected verification timestamp")
	}

	if len(f.programs.increments) != 1 || !f.programs.increments[0].Equal(f.donation.Amount) {
		t.Fatalf("expected collected increment of %s, got %v", f.donation.Amount, f.programs.increments)
	}

	if len(f.ledger.entries) != 1 {
		t.Fatalf("expected one ledger entry, got %d", len(f.ledger.entries))
	}
	entry := f.ledger.entries[0]
	if entry.Type != enums.TransactionTypeIncome {
		t.Fatalf("unexpected entry type %s", entry.Type)
	}
	if !entry.Amount.Equal(f.donation.Amount) {
		t.Fatalf("unexpected entry amount %s", entry.Amount)
	}
	if entry.Description != "Donasi untuk program: Renovasi Masjid" {
		t.Fatalf("unexpected description %q", entry.Description)
	}
	if entry.Donor == nil || *entry.Donor != "Ahmad Fauzi" {
		t.Fatalf("unexpected donor %v", entry.Donor)
	}
	if entry.ReceiptNumber == nil || *entry.ReceiptNumber != result.ReceiptNumber {
		t.Fatal("expected matching receipt on ledger entry")
	}
	if entry.Notes == nil || *entry.Notes != "Semoga bermanfaat" {
		t.Fatalf("expected donor message carried as notes, got %v", entry.Notes)
	}
	if entry.CategoryID != f.cats.category.ID {
		t.Fatal("expected resolved category on ledger entry")
	}
	if entry.CreatedByID != f.actorID {
		t.Fatal("expected actor on ledger entry")
	}

	if len(f.outbox.events) != 1 || f.outbox.events[0].EventType != enums.EventDonationVerified {
		t.Fatalf("expected verified activity event, got %v", f.outbox.events)
	}
}

func TestVerifyApproveAnonymousDonor(t *testing.T) {
	f := newVerifyFixture(t, enums.DonationStatusPending)
	f.donation.IsAnonymous = true
	f.donation.Message = nil

	_, err := f.svc.Verify(context.Background(), VerifyInput{
		DonationID: f.donation.ID,
		Action:     VerifyActionApprove,
		ActorID:    f.actorID,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	entry := f.ledger.entries[0]
	if entry.Donor == nil || *entry.Donor != anonymousDonorLabel {
		t.Fatalf("expected anonymous label, got %v", entry.Donor)
	}
	if entry.Notes != nil {
		t.Fatalf("expected no notes without a donor message, got %q", *entry.Notes)
	}
}

func TestVerifyReject(t *testing.T) {
	f := newVerifyFixture(t, enums.DonationStatusPending)

	result, err := f.svc.Verify(context.Background(), VerifyInput{
		DonationID:   f.donation.ID,
		Action:       VerifyActionReject,
		RejectReason: "Bukti transfer tidak terbaca",
		ActorID:      f.actorID,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if result.Status != enums.DonationStatusCancelled {
		t.Fatalf("unexpected status %s", result.Status)
	}
	if result.ReceiptNumber != "" {
		t.Fatal("reject must not produce a receipt")
	}

	updates := f.repo.transitions[0]
	if updates["status"] != enums.DonationStatusCancelled {
		t.Fatalf("unexpected status update %v", updates["status"])
	}
	if updates["reject_reason"] != "Bukti transfer tidak terbaca" {
		t.Fatalf("unexpected reason %v", updates["reject_reason"])
	}

	if f.cats.calls != 0 {
		t.Fatal("reject must not touch categories")
	}
	if len(f.programs.increments) != 0 {
		t.Fatal("reject must not move collected totals")
	}
	if len(f.ledger.entries) != 0 {
		t.Fatal("reject must not write ledger entries")
	}
	if len(f.outbox.events) != 1 || f.outbox.events[0].EventType != enums.EventDonationRejected {
		t.Fatalf("expected rejected activity event, got %v", f.outbox.events)
	}
}

func TestVerifyValidation(t *testing.T) {
	f := newVerifyFixture(t, enums.DonationStatusPending)

	cases := []struct {
		name  string
		input VerifyInput
		code  pkgerrors.Code
	}{
		{
			name:  "missing donation id",
			input: VerifyInput{Action: VerifyActionApprove, ActorID: uuid.New()},
			code:  pkgerrors.CodeValidation,
		},
		{
			name:  "missing actor",
			input: VerifyInput{DonationID: f.donation.ID, Action: VerifyActionApprove},
			code:  pkgerrors.CodeUnauthorized,
		},
		{
			name:  "bad action",
			input: VerifyInput{DonationID: f.donation.ID, Action: "archive", ActorID: uuid.New()},
			code:  pkgerrors.CodeValidation,
		},
		{
			name:  "reject without reason",
			input: VerifyInput{DonationID: f.donation.ID, Action: VerifyActionReject, RejectReason: "  ", ActorID: uuid.New()},
			code:  pkgerrors.CodeValidation,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Verify(context.Background(), tc.input)
			coded := pkgerrors.As(err)
			if coded == nil || coded.Code() != tc.code {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestVerifyUnknownDonation(t *testing.T) {
	f := newVerifyFixture(t, enums.DonationStatusPending)

	_, err := f.svc.Verify(context.Background(), VerifyInput{
		DonationID: uuid.New(),
		Action:     VerifyActionApprove,
		ActorID:    f.actorID,
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestVerifyAlreadyProcessed(t *testing.T) {
	for _, status := range []enums.DonationStatus{enums.DonationStatusVerified, enums.DonationStatusCancelled} {
		f := newVerifyFixture(t, status)

		_, err := f.svc.Verify(context.Background(), VerifyInput{
			DonationID: f.donation.ID,
			Action:     VerifyActionApprove,
			ActorID:    f.actorID,
		})
		coded := pkgerrors.As(err)
		if coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
			t.Fatalf("status %s: expected state conflict, got %v", status, err)
		}
		if len(f.repo.transitions) != 0 {
			t.Fatalf("status %s: no transition should be attempted", status)
		}
	}
}

func TestVerifyLostRace(t *testing.T) {
	f := newVerifyFixture(t, enums.DonationStatusPending)
	// the read sees pending but another admin wins the conditional update
	f.repo.transitionRows = 0

	_, err := f.svc.Verify(context.Background(), VerifyInput{
		DonationID: f.donation.ID,
		Action:     VerifyActionApprove,
		ActorID:    f.actorID,
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if len(f.programs.increments) != 0 {
		t.Fatal("loser must not increment collected")
	}
	if len(f.ledger.entries) != 0 {
		t.Fatal("loser must not write ledger entries")
	}
}

func TestSubmitInactiveProgram(t *testing.T) {
	f := newVerifyFixture(t, enums.DonationStatusPending)
	f.programs.program.IsActive = false

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		ProgramID:       f.programs.program.ID,
		Amount:          decimal.NewFromInt(50_000),
		PaymentProofURL: "https://cdn.example.com/bukti.jpg",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}
