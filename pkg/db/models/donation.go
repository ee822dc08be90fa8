package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/masjid-digital/admin-backend/pkg/enums"
)

// Donation is a donor's pledge toward one program. Rows are created pending by
// the donor-facing submission, transitioned exactly once by the verification
// workflow, and never deleted.
type Donation struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProgramID       uuid.UUID            `gorm:"column:program_id;type:uuid;not null;index"`
	Amount          decimal.Decimal      `gorm:"column:amount;type:numeric(14,2);not null"`
	DonorName       *string              `gorm:"column:donor_name"`
	DonorEmail      *string              `gorm:"column:donor_email"`
	DonorPhone      *string              `gorm:"column:donor_phone"`
	IsAnonymous     bool                 `gorm:"column:is_anonymous;not null;default:false"`
	Message         *string              `gorm:"column:message"`
	Status          enums.DonationStatus `gorm:"column:status;type:text;not null;default:'pending';index"`
	PaymentProofURL string               `gorm:"column:payment_proof_url;not null"`
	RejectReason    *string              `gorm:"column:reject_reason"`
	VerifiedByID    *uuid.UUID           `gorm:"column:verified_by_id;type:uuid"`
	VerifiedAt      *time.Time           `gorm:"column:verified_at"`
	Program         *DonationProgram     `gorm:"foreignKey:ProgramID"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
}
