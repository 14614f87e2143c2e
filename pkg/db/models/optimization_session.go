package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/distrocart/backend/pkg/types"
)

// OptimizationSession is the immutable audit record of one optimize run.
// Write-once; only the advisory user_accepted flag may change later.
type OptimizationSession struct {
	ID                uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID            uuid.UUID            `gorm:"column:cart_id;type:uuid;not null;index"`
	UserID            uuid.UUID            `gorm:"column:user_id;type:uuid;not null"`
	AlgorithmVersion  string               `gorm:"column:algorithm_version;size:20;not null;default:'quickwins_v1'"`
	WeightsUsed       types.WeightSet      `gorm:"column:weights_used;type:jsonb;serializer:json"`
	ItemsAnalyzed     int                  `gorm:"column:items_analyzed;not null;default:0"`
	ItemsOptimized    int                  `gorm:"column:items_optimized;not null;default:0"`
	TotalSavingsCents int                  `gorm:"column:total_savings_cents;not null;default:0"`
	ExecutionTimeMs   int64                `gorm:"column:execution_time_ms;not null;default:0"`
	UserAccepted      *bool                `gorm:"column:user_accepted"`
	Changes           []OptimizationChange `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time            `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt         time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
