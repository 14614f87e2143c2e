package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/distrocart/backend/pkg/db/models"
)

// Repository wires together catalog persistence: products, distributors,
// and the per-distributor offerings the optimizer scores.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindProductByID loads a product without associations.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindOfferingByID loads an offering with its product and distributor.
func (r *Repository) FindOfferingByID(ctx context.Context, id uuid.UUID) (*models.DistributorProduct, error) {
	var offering models.DistributorProduct
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Distributor").
		First(&offering, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &offering, nil
}

// ListCandidates returns every purchasable offering of the given products:
// flagged in stock with at least one unit on hand. Distributors come
// preloaded so callers can score delivery and reliability without extra
// round trips. Ordered cheapest first for stable iteration.
func (r *Repository) ListCandidates(ctx context.Context, productIDs []uuid.UUID) ([]models.DistributorProduct, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var rows []models.DistributorProduct
	err := r.db.WithContext(ctx).
		Preload("Distributor").
		Where("product_id IN ?", productIDs).
		Where("in_stock = ? AND stock_quantity > 0", true).
		Order("price_cents ASC").
		Find(&rows).
		Error
	return rows, err
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// CreateDistributor inserts a new distributor row.
func (r *Repository) CreateDistributor(ctx context.Context, distributor *models.Distributor) (*models.Distributor, error) {
	if err := r.db.WithContext(ctx).Create(distributor).Error; err != nil {
		return nil, err
	}
	return distributor, nil
}

// ListDistributors returns all distributors ordered by code.
func (r *Repository) ListDistributors(ctx context.Context) ([]models.Distributor, error) {
	var rows []models.Distributor
	err := r.db.WithContext(ctx).Order("code ASC").Find(&rows).Error
	return rows, err
}

// SaveOffering inserts or updates an offering row.
func (r *Repository) SaveOffering(ctx context.Context, offering *models.DistributorProduct) (*models.DistributorProduct, error) {
	if err := r.db.WithContext(ctx).Save(offering).Error; err != nil {
		return nil, err
	}
	return offering, nil
}

// FindOfferingByPair looks up the offering for one (product, distributor)
// pair, used by sync upserts.
func (r *Repository) FindOfferingByPair(ctx context.Context, productID, distributorID uuid.UUID) (*models.DistributorProduct, error) {
	var offering models.DistributorProduct
	err := r.db.WithContext(ctx).
		First(&offering, "product_id = ? AND distributor_id = ?", productID, distributorID).
		Error
	if err != nil {
		return nil, err
	}
	return &offering, nil
}
