package models

import (
	"time"

	"github.com/google/uuid"
)

// DistributorProduct is an offering: one distributor's priced, stocked
// instance of a product. Unique per (product, distributor) pair. Mutated by
// external sync processes; every write must invalidate cached alternative
// sets referencing it.
type DistributorProduct struct {
	ID             uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID      uuid.UUID    `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_offering_product_distributor"`
	DistributorID  uuid.UUID    `gorm:"column:distributor_id;type:uuid;not null;uniqueIndex:idx_offering_product_distributor"`
	DistributorSKU *string      `gorm:"column:distributor_sku;size:100"`
	PriceCents     int          `gorm:"column:price_cents;not null;index"`
	DeliveryDays   int          `gorm:"column:delivery_days;not null;default:3"`
	InStock        bool         `gorm:"column:in_stock;not null;default:true;index"`
	StockQuantity  int          `gorm:"column:stock_quantity;not null;default:0"`
	LastSyncedAt   *time.Time   `gorm:"column:last_synced_at"`
	Product        *Product     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Distributor    *Distributor `gorm:"foreignKey:DistributorID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}
