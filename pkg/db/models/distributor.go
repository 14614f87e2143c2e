package models

import (
	"time"

	"github.com/google/uuid"
)

// Distributor is a seller supplying offerings of canonical products.
type Distributor struct {
	ID                  uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name                string    `gorm:"column:name;not null"`
	Code                string    `gorm:"column:code;size:50;not null;uniqueIndex"`
	AverageDeliveryDays int       `gorm:"column:average_delivery_days;not null;default:3"`
	ReliabilityScore    float64   `gorm:"column:reliability_score;type:numeric(3,2);not null;default:0.95"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
