package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DonationProgram is a fundraising campaign. Collected is the cumulative sum
// of all verified donations; the verification workflow is its only writer and
// always mutates it with an arithmetic increment, never a read-modify-write.
type DonationProgram struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string          `gorm:"column:title;not null"`
	Description *string         `gorm:"column:description"`
	Target      decimal.Decimal `gorm:"column:target;type:numeric(14,2);not null"`
	Collected   decimal.Decimal `gorm:"column:collected;type:numeric(14,2);not null;default:0"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
