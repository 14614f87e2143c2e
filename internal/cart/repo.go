package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/distrocart/backend/pkg/db/models"
	"github.com/distrocart/backend/pkg/enums"
)

// CartRepository exposes persistence operations for carts and their items.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	Create(ctx context.Context, cart *models.Cart) (*models.Cart, error)
	Update(ctx context.Context, cart *models.Cart) (*models.Cart, error)
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	FindItemForUpdate(ctx context.Context, cartID, offeringID uuid.UUID) (*models.CartItem, error)
	CreateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	UpdateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
}

// Repository is the GORM-backed CartRepository.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new cart.
func (r *Repository) Create(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if cart.Status == "" {
		cart.Status = enums.CartStatusActive
	}
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// Update saves the provided cart.
func (r *Repository) Update(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if err := r.db.WithContext(ctx).Save(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// FindActiveByUser loads the latest active cart for the user with items and
// their offerings fully hydrated.
func (r *Repository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.DistributorProduct").
		Preload("Items.DistributorProduct.Product").
		Preload("Items.DistributorProduct.Distributor").
		Where("user_id = ? AND status = ?", userID, enums.CartStatusActive).
		Order("created_at DESC").
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindItemForUpdate loads the cart item for one (cart, offering) pair under
// a row lock. Concurrent adds of the same offering serialize here instead of
// racing the unique index.
func (r *Repository) FindItemForUpdate(ctx context.Context, cartID, offeringID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("cart_id = ? AND distributor_product_id = ?", cartID, offeringID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new cart item.
func (r *Repository) CreateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem saves the provided cart item.
func (r *Repository) UpdateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}
