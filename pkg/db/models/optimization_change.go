package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OptimizationChange is one suggested substitution within a session.
// Immutable once created.
type OptimizationChange struct {
	ID                            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID                     uuid.UUID      `gorm:"column:session_id;type:uuid;not null;index"`
	OriginalDistributorProductID  uuid.UUID      `gorm:"column:original_distributor_product_id;type:uuid;not null"`
	SuggestedDistributorProductID uuid.UUID      `gorm:"column:suggested_distributor_product_id;type:uuid;not null"`
	OriginalScore                 float64        `gorm:"column:original_score;type:numeric(5,4);not null"`
	SuggestedScore                float64        `gorm:"column:suggested_score;type:numeric(5,4);not null"`
	PriceDifferenceCents          int            `gorm:"column:price_difference_cents;not null;default:0"`
	DeliveryDaysDifference        int            `gorm:"column:delivery_days_difference;not null;default:0"`
	ReasonCodes                   pq.StringArray `gorm:"column:reason_codes;type:text[]"`
	UserAccepted                  *bool          `gorm:"column:user_accepted"`
	CreatedAt                     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
