package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/masjid-digital/admin-backend/pkg/enums"
)

// Transaction is an immutable ledger entry used for financial reporting.
// Rows created by the verification workflow carry a receipt number derived
// from the donation id and are never edited or deleted afterward.
type Transaction struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Type          enums.TransactionType `gorm:"column:type;type:text;not null;index"`
	Amount        decimal.Decimal       `gorm:"column:amount;type:numeric(14,2);not null"`
	Description   string                `gorm:"column:description;not null"`
	Donor         *string               `gorm:"column:donor"`
	Recipient     *string               `gorm:"column:recipient"`
	Date          time.Time             `gorm:"column:date;not null;index"`
	ReceiptNumber *string               `gorm:"column:receipt_number"`
	Notes         *string               `gorm:"column:notes"`
	CategoryID    uuid.UUID             `gorm:"column:category_id;type:uuid;not null;index"`
	CreatedByID   uuid.UUID             `gorm:"column:created_by_id;type:uuid;not null"`
	Category      *Category             `gorm:"foreignKey:CategoryID"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
}
