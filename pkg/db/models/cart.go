package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/distrocart/backend/pkg/enums"
)

// Cart holds one user's current line items.
type Cart struct {
	ID                    uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID                uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	Status                enums.CartStatus `gorm:"column:status;not null;default:'active';index"`
	OptimizationAppliedAt *time.Time       `gorm:"column:optimization_applied_at"`
	Items                 []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// TotalCents sums quantity-weighted snapshot prices across items.
func (c Cart) TotalCents() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity * item.UnitPriceCents
	}
	return total
}
