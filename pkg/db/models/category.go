package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/masjid-digital/admin-backend/pkg/enums"
)

// Category is a named, typed bucket transactions are filed under. Name is
// globally unique regardless of type; the unique index backs the race-safe
// get-or-create in the verification workflow.
type Category struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string             `gorm:"column:name;uniqueIndex:idx_categories_name;not null"`
	Type        enums.CategoryType `gorm:"column:type;type:text;not null"`
	Description *string            `gorm:"column:description"`
	Color       string             `gorm:"column:color;not null;default:''"`
	Icon        string             `gorm:"column:icon;not null;default:''"`
	IsActive    bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
