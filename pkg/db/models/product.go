package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is the canonical item identity shared across distributors.
// The SKU glues together the same product sold by different distributors.
type Product struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	SKU       string    `gorm:"column:sku;size:100;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
