package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/distrocart/backend/pkg/cache"
	"github.com/distrocart/backend/pkg/db/models"
	pkgerrors "github.com/distrocart/backend/pkg/errors"
	"github.com/distrocart/backend/pkg/logger"
)

type offeringRepository interface {
	FindOfferingByPair(ctx context.Context, productID, distributorID uuid.UUID) (*models.DistributorProduct, error)
	SaveOffering(ctx context.Context, offering *models.DistributorProduct) (*models.DistributorProduct, error)
}

// Service exposes the catalog sync surface used by external feed processes.
type Service interface {
	UpsertOffering(ctx context.Context, input OfferingSyncInput) (*models.DistributorProduct, error)
	SyncOfferings(ctx context.Context, inputs []OfferingSyncInput) error
}

type service struct {
	repo  offeringRepository
	cache cache.Store
	log   *logger.Logger
	now   func() time.Time
}

// NewService builds a catalog sync service.
func NewService(repo offeringRepository, store cache.Store, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if store == nil {
		return nil, fmt.Errorf("cache store required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: store, log: log, now: time.Now}, nil
}

// OfferingSyncInput is one distributor feed row: the distributor's current
// price, stock and delivery promise for a product.
type OfferingSyncInput struct {
	ProductID      uuid.UUID
	DistributorID  uuid.UUID
	DistributorSKU *string
	PriceCents     int
	DeliveryDays   int
	InStock        bool
	StockQuantity  int
}

// UpsertOffering creates or refreshes the offering for the input's
// (product, distributor) pair, then invalidates every cached alternative
// set that referenced it. Cached sets fingerprint the offerings they were
// computed from; a stale entry surviving an offering write would let the
// optimizer suggest prices that no longer exist.
func (s *service) UpsertOffering(ctx context.Context, input OfferingSyncInput) (*models.DistributorProduct, error) {
	if input.ProductID == uuid.Nil || input.DistributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id and distributor id are required")
	}
	if input.PriceCents < 0 || input.StockQuantity < 0 || input.DeliveryDays < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price, stock and delivery days must be non-negative")
	}

	syncedAt := s.now()

	offering, err := s.repo.FindOfferingByPair(ctx, input.ProductID, input.DistributorID)
	switch {
	case err == nil:
		offering.DistributorSKU = input.DistributorSKU
		offering.PriceCents = input.PriceCents
		offering.DeliveryDays = input.DeliveryDays
		offering.InStock = input.InStock
		offering.StockQuantity = input.StockQuantity
		offering.LastSyncedAt = &syncedAt
	case errors.Is(err, gorm.ErrRecordNotFound):
		offering = &models.DistributorProduct{
			ProductID:      input.ProductID,
			DistributorID:  input.DistributorID,
			DistributorSKU: input.DistributorSKU,
			PriceCents:     input.PriceCents,
			DeliveryDays:   input.DeliveryDays,
			InStock:        input.InStock,
			StockQuantity:  input.StockQuantity,
			LastSyncedAt:   &syncedAt,
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offering")
	}

	saved, err := s.repo.SaveOffering(ctx, offering)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save offering")
	}

	if err := s.cache.InvalidateTag(ctx, cache.OfferingTag(saved.ID.String())); err != nil {
		// the write landed; degraded cache is a warning, not a failure
		s.log.Warn(s.log.WithField(ctx, "offering_id", saved.ID.String()), "offering cache invalidation failed")
	}

	return saved, nil
}

// SyncOfferings applies a feed batch row by row. One bad row does not stop
// the rest of the feed; failures come back combined.
func (s *service) SyncOfferings(ctx context.Context, inputs []OfferingSyncInput) error {
	var errs []error
	for _, input := range inputs {
		if _, err := s.UpsertOffering(ctx, input); err != nil {
			errs = append(errs, fmt.Errorf("offering %s/%s: %w", input.ProductID, input.DistributorID, err))
		}
	}
	return multierr.Combine(errs...)
}
