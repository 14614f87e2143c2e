package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/distrocart/backend/pkg/db/models"
	pkgerrors "github.com/distrocart/backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type offeringLoader interface {
	FindOfferingByID(ctx context.Context, id uuid.UUID) (*models.DistributorProduct, error)
}

// Service exposes cart operations.
type Service interface {
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*CartSummary, error)
	GetActiveCart(ctx context.Context, userID uuid.UUID) (*CartSummary, error)
}

type service struct {
	repo    CartRepository
	catalog offeringLoader
	tx      txRunner
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, catalog offeringLoader, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("offering loader required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, catalog: catalog, tx: tx}, nil
}

// AddItemInput is the add-to-cart payload.
type AddItemInput struct {
	OfferingID uuid.UUID
	Quantity   int
}

// AddItem puts an offering into the user's active cart, creating the cart on
// first use. Repeat adds of the same offering increment the existing line
// instead of creating a duplicate; the resulting quantity never exceeds the
// offering's stock on hand. Sold-out offerings produce a zero-quantity line,
// not an error.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*CartSummary, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.OfferingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "offering id is required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	offering, err := s.catalog.FindOfferingByID(ctx, input.OfferingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offering not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offering")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := repo.FindActiveByUser(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cart, err = repo.Create(ctx, &models.Cart{UserID: userID})
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}

		item, err := repo.FindItemForUpdate(ctx, cart.ID, offering.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item, err = repo.CreateItem(ctx, &models.CartItem{
				CartID:               cart.ID,
				DistributorProductID: offering.ID,
				Quantity:             0,
				UnitPriceCents:       offering.PriceCents,
			})
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
		}

		item.Quantity = clampQuantity(item.Quantity+input.Quantity, offering)
		if _, err := repo.UpdateItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetActiveCart(ctx, userID)
}

// GetActiveCart returns the user's active cart.
func (s *service) GetActiveCart(ctx context.Context, userID uuid.UUID) (*CartSummary, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	cart, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active cart")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	summary := NewCartSummary(cart)
	return &summary, nil
}

func clampQuantity(requested int, offering *models.DistributorProduct) int {
	if !offering.InStock {
		return 0
	}
	if requested > offering.StockQuantity {
		return offering.StockQuantity
	}
	return requested
}
