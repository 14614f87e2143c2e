package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/distrocart/backend/pkg/types"
)

// OptimizationWeight is a named preset of scoring weights. Read-only
// reference data, seeded by migration.
type OptimizationWeight struct {
	ID                  uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name                string    `gorm:"column:name;size:50;not null;uniqueIndex"`
	DisplayName         *string   `gorm:"column:display_name;size:100"`
	PriceWeight         float64   `gorm:"column:price_weight;type:numeric(3,2);not null"`
	SpeedWeight         float64   `gorm:"column:speed_weight;type:numeric(3,2);not null"`
	AvailabilityWeight  float64   `gorm:"column:availability_weight;type:numeric(3,2);not null"`
	ConsolidationWeight float64   `gorm:"column:consolidation_weight;type:numeric(3,2);not null"`
	IsDefault           bool      `gorm:"column:is_default;not null;default:false"`
	IsActive            bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Weights converts the preset into the scoring weight set.
func (w OptimizationWeight) Weights() types.WeightSet {
	return types.WeightSet{
		Price:         w.PriceWeight,
		Speed:         w.SpeedWeight,
		Availability:  w.AvailabilityWeight,
		Consolidation: w.ConsolidationWeight,
	}
}
