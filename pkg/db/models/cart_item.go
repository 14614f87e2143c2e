package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem binds a cart to one chosen offering. At most one row exists per
// (cart, offering) pair; adding the same offering again increments quantity,
// clamped to the offering's stock.
type CartItem struct {
	ID                           uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID                       uuid.UUID           `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:idx_cart_item_offering"`
	DistributorProductID         uuid.UUID           `gorm:"column:distributor_product_id;type:uuid;not null;uniqueIndex:idx_cart_item_offering"`
	OriginalDistributorProductID *uuid.UUID          `gorm:"column:original_distributor_product_id;type:uuid"`
	Quantity                     int                 `gorm:"column:quantity;not null;default:1"`
	UnitPriceCents               int                 `gorm:"column:unit_price_cents;not null"`
	IsOptimized                  bool                `gorm:"column:is_optimized;not null;default:false"`
	DistributorProduct           *DistributorProduct `gorm:"foreignKey:DistributorProductID"`
	CreatedAt                    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
