package optimizer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/distrocart/backend/pkg/cache"
	"github.com/distrocart/backend/pkg/db/models"
	"github.com/distrocart/backend/pkg/logger"
)

type candidateLister interface {
	WithTx(tx *gorm.DB) candidateLister
	ListCandidates(ctx context.Context, productIDs []uuid.UUID) ([]models.DistributorProduct, error)
}

// Finder resolves the pool of purchasable alternative offerings for a set of
// cart items, cached by the exact offering-set fingerprint. Two carts
// referencing the same offerings share one cache entry regardless of owner.
type Finder struct {
	repo  candidateLister
	cache cache.Store
	ttl   time.Duration
	log   *logger.Logger
}

// NewFinder builds an alternative finder.
func NewFinder(repo candidateLister, store cache.Store, ttl time.Duration, log *logger.Logger) (*Finder, error) {
	if repo == nil {
		return nil, fmt.Errorf("candidate lister required")
	}
	if store == nil {
		return nil, fmt.Errorf("cache store required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Finder{repo: repo, cache: store, ttl: ttl, log: log}, nil
}

// Fingerprint hashes the sorted distinct offering ids referenced by the
// items. It identifies the exact offering set, nothing else.
func Fingerprint(items []models.CartItem) string {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.DistributorProductID]; ok {
			continue
		}
		seen[item.DistributorProductID] = struct{}{}
		ids = append(ids, item.DistributorProductID.String())
	}
	sort.Strings(ids)

	sum := sha256.Sum256([]byte(strings.Join(ids, ",")))
	return hex.EncodeToString(sum[:])
}

func alternativesCacheKey(fingerprint string) string {
	return "cart_alternatives:" + fingerprint
}

// cachedOffering is the serialized cache shape; it keeps just the offering
// fields scoring and rendering need.
type cachedOffering struct {
	ID              uuid.UUID `json:"id"`
	ProductID       uuid.UUID `json:"product_id"`
	DistributorID   uuid.UUID `json:"distributor_id"`
	DistributorName string    `json:"distributor_name"`
	DistributorCode string    `json:"distributor_code"`
	PriceCents      int       `json:"price_cents"`
	DeliveryDays    int       `json:"delivery_days"`
	InStock         bool      `json:"in_stock"`
	StockQuantity   int       `json:"stock_quantity"`
}

func encodePool(pool []*models.DistributorProduct) (string, error) {
	rows := make([]cachedOffering, 0, len(pool))
	for _, offering := range pool {
		row := cachedOffering{
			ID:            offering.ID,
			ProductID:     offering.ProductID,
			DistributorID: offering.DistributorID,
			PriceCents:    offering.PriceCents,
			DeliveryDays:  offering.DeliveryDays,
			InStock:       offering.InStock,
			StockQuantity: offering.StockQuantity,
		}
		if offering.Distributor != nil {
			row.DistributorName = offering.Distributor.Name
			row.DistributorCode = offering.Distributor.Code
		}
		rows = append(rows, row)
	}
	encoded, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func decodePool(raw string) ([]*models.DistributorProduct, error) {
	var rows []cachedOffering
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, err
	}
	pool := make([]*models.DistributorProduct, 0, len(rows))
	for _, row := range rows {
		pool = append(pool, &models.DistributorProduct{
			ID:            row.ID,
			ProductID:     row.ProductID,
			DistributorID: row.DistributorID,
			PriceCents:    row.PriceCents,
			DeliveryDays:  row.DeliveryDays,
			InStock:       row.InStock,
			StockQuantity: row.StockQuantity,
			Distributor: &models.Distributor{
				ID:   row.DistributorID,
				Name: row.DistributorName,
				Code: row.DistributorCode,
			},
		})
	}
	return pool, nil
}

// FindPool returns every in-stock, positive-quantity offering of the
// products the items reference. Results are cached for the finder's TTL
// under tags covering each involved offering, so catalog writes evict every
// pool that could have included them. Cache failures degrade to a direct
// fetch. The database fetch binds to tx when one is given; cache reads and
// writes always go through the shared client.
func (f *Finder) FindPool(ctx context.Context, tx *gorm.DB, items []models.CartItem) ([]*models.DistributorProduct, error) {
	if len(items) == 0 {
		return nil, nil
	}

	key := alternativesCacheKey(Fingerprint(items))

	raw, ok, err := f.cache.Get(ctx, key)
	if err != nil {
		f.log.Warn(f.log.WithField(ctx, "cache_key", key), "alternatives cache read failed")
	} else if ok {
		pool, err := decodePool(raw)
		if err == nil {
			return pool, nil
		}
		f.log.Warn(f.log.WithField(ctx, "cache_key", key), "alternatives cache entry malformed")
	}

	rows, err := f.repo.WithTx(tx).ListCandidates(ctx, productIDs(items))
	if err != nil {
		return nil, err
	}
	pool := make([]*models.DistributorProduct, len(rows))
	for i := range rows {
		pool[i] = &rows[i]
	}

	encoded, err := encodePool(pool)
	if err != nil {
		return pool, nil
	}
	if err := f.cache.SetWithTags(ctx, key, encoded, f.ttl, poolTags(items, pool)); err != nil {
		f.log.Warn(f.log.WithField(ctx, "cache_key", key), "alternatives cache write failed")
	}

	return pool, nil
}

// AlternativesFor filters the pool down to offerings of the item's product
// other than the item's own offering.
func AlternativesFor(item models.CartItem, pool []*models.DistributorProduct) []*models.DistributorProduct {
	if item.DistributorProduct == nil {
		return nil
	}
	var out []*models.DistributorProduct
	for _, offering := range pool {
		if offering.ID == item.DistributorProductID {
			continue
		}
		if offering.ProductID != item.DistributorProduct.ProductID {
			continue
		}
		out = append(out, offering)
	}
	return out
}

func productIDs(items []models.CartItem) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.DistributorProduct == nil {
			continue
		}
		productID := item.DistributorProduct.ProductID
		if _, ok := seen[productID]; ok {
			continue
		}
		seen[productID] = struct{}{}
		ids = append(ids, productID)
	}
	return ids
}

// poolTags names every tag the cached pool must be evicted under: the
// global alternatives tag plus one per offering involved, covering both the
// items' current offerings and every fetched candidate.
func poolTags(items []models.CartItem, pool []*models.DistributorProduct) []string {
	seen := make(map[uuid.UUID]struct{}, len(items)+len(pool))
	tags := []string{cache.TagAlternatives}
	add := func(id uuid.UUID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		tags = append(tags, cache.OfferingTag(id.String()))
	}
	for _, item := range items {
		add(item.DistributorProductID)
	}
	for _, offering := range pool {
		add(offering.ID)
	}
	return tags
}
