package optimizer

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	cartsvc "github.com/distrocart/backend/internal/cart"
	"github.com/distrocart/backend/pkg/cache"
	"github.com/distrocart/backend/pkg/db/models"
	"github.com/distrocart/backend/pkg/enums"
	pkgerrors "github.com/distrocart/backend/pkg/errors"
	"github.com/distrocart/backend/pkg/logger"
)

func TestOptimizeGreedyCorrectness(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	current := offeringAt(productID, 10995, 5)
	current.Product = &models.Product{ID: productID, Name: "Widget", SKU: "WID-1"}
	alternative := offeringAt(productID, 10000, 3)

	cart := cartWith(items(itemFor(current, 1)))
	harness := newOptimizeHarness(t, cart, budgetPreset(), alternative, current)

	result, err := harness.svc.Optimize(context.Background(), cart.UserID, OptimizeInput{WeightPreset: "budget"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ItemsAnalyzed != 1 || result.ItemsOptimized != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(result.Changes) != 1 {
		t.Fatalf("expected one change, got %d", len(result.Changes))
	}

	change := result.Changes[0]
	if change.PriceDifference != 9.95 {
		t.Fatalf("expected price difference 9.95, got %f", change.PriceDifference)
	}
	if change.DeliveryDaysDifference != 2 {
		t.Fatalf("expected delivery difference 2, got %d", change.DeliveryDaysDifference)
	}
	if result.TotalSavings != 9.95 {
		t.Fatalf("expected total savings 9.95, got %f", result.TotalSavings)
	}
	if change.Original.ProductName != "Widget" || change.Suggested.ProductName != "Widget" {
		t.Fatalf("expected product name on both snapshots: %+v", change)
	}
	if change.Suggested.ID != alternative.ID || change.Suggested.Price != 100.00 {
		t.Fatalf("unexpected suggested snapshot: %+v", change.Suggested)
	}

	if len(change.Reasons) != 2 {
		t.Fatalf("expected two reasons, got %v", change.Reasons)
	}
	if change.Reasons[0].Code != enums.ReasonPriceSavings || change.Reasons[0].Impact != enums.ImpactMedium {
		t.Fatalf("unexpected first reason: %+v", change.Reasons[0])
	}
	if change.Reasons[1].Code != enums.ReasonFasterDelivery || change.Reasons[1].Impact != enums.ImpactMedium {
		t.Fatalf("unexpected second reason: %+v", change.Reasons[1])
	}

	if len(harness.sessions.created) != 1 {
		t.Fatalf("expected one persisted session, got %d", len(harness.sessions.created))
	}
	session := harness.sessions.created[0]
	if session.TotalSavingsCents != 995 || session.ItemsOptimized != 1 || session.ItemsAnalyzed != 1 {
		t.Fatalf("unexpected session: %+v", session)
	}
	if session.AlgorithmVersion != "quickwins_v1" {
		t.Fatalf("unexpected algorithm version: %s", session.AlgorithmVersion)
	}
	if len(session.Changes) != 1 {
		t.Fatalf("expected one persisted change, got %d", len(session.Changes))
	}
	persisted := session.Changes[0]
	if persisted.OriginalDistributorProductID != current.ID || persisted.SuggestedDistributorProductID != alternative.ID {
		t.Fatalf("unexpected persisted change ids: %+v", persisted)
	}
	if persisted.SuggestedScore <= persisted.OriginalScore {
		t.Fatalf("suggested score must strictly beat original: %+v", persisted)
	}
	if len(persisted.ReasonCodes) != 2 || persisted.ReasonCodes[0] != "PRICE_SAVINGS" || persisted.ReasonCodes[1] != "FASTER_DELIVERY" {
		t.Fatalf("unexpected persisted reason codes: %v", persisted.ReasonCodes)
	}
}

func TestOptimizeQuantityMultipliesSavings(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	current := offeringAt(productID, 10995, 5)
	alternative := offeringAt(productID, 10000, 3)

	cart := cartWith(items(itemFor(current, 3)))
	harness := newOptimizeHarness(t, cart, budgetPreset(), alternative, current)

	result, err := harness.svc.Optimize(context.Background(), cart.UserID, OptimizeInput{WeightPreset: "budget"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalSavings != 29.85 {
		t.Fatalf("expected savings 29.85 for quantity 3, got %f", result.TotalSavings)
	}
}

func TestOptimizeNeverSuggestsSameDistributor(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	current := offeringAt(productID, 10000, 5)
	cheaperSameDistributor := offeringAt(productID, 8000, 2)
	cheaperSameDistributor.DistributorID = current.DistributorID
	cheaperSameDistributor.Distributor = current.Distributor

	cart := cartWith(items(itemFor(current, 1)))
	harness := newOptimizeHarness(t, cart, budgetPreset(), cheaperSameDistributor, current)

	result, err := harness.svc.Optimize(context.Background(), cart.UserID, OptimizeInput{WeightPreset: "budget"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ItemsOptimized != 0 || len(result.Changes) != 0 {
		t.Fatalf("same-distributor alternative must never be suggested: %+v", result)
	}
	if result.ItemsAnalyzed != 1 {
		t.Fatalf("skipped items still count as analyzed: %+v", result)
	}
}

func TestOptimizeScoreDominatesRawPrice(t *testing.T) {
	t.Parallel()

	// cheaper but much slower; under the urgent profile speed dominates
	productID := uuid.New()
	current := offeringAt(productID, 10000, 2)
	alternative := offeringAt(productID, 8000, 7)

	cart := cartWith(items(itemFor(current, 1)))
	harness := newOptimizeHarness(t, cart, urgentPreset(), alternative, current)

	result, err := harness.svc.Optimize(context.Background(), cart.UserID, OptimizeInput{WeightPreset: "urgent"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Changes) != 0 {
		t.Fatalf("expected no change despite cheaper price, got %+v", result.Changes)
	}
}

func TestOptimizeConsolidationReason(t *testing.T) {
	t.Parallel()

	primaryDistributor := &models.Distributor{ID: uuid.New(), Name: "Primary Co", Code: "PRIM"}

	anchorA := offeringAt(uuid.New(), 500, 3)
	anchorA.DistributorID = primaryDistributor.ID
	anchorA.Distributor = primaryDistributor
	anchorB := offeringAt(uuid.New(), 500, 3)
	anchorB.DistributorID = primaryDistributor.ID
	anchorB.Distributor = primaryDistributor

	outlierProduct := uuid.New()
	outlier := offeringAt(outlierProduct, 1000, 3)
	fromPrimary := offeringAt(outlierProduct, 900, 3)
	fromPrimary.DistributorID = primaryDistributor.ID
	fromPrimary.Distributor = primaryDistributor

	cart := cartWith(items(itemFor(anchorA, 1), itemFor(anchorB, 1), itemFor(outlier, 1)))
	harness := newOptimizeHarness(t, cart, balancedPreset(), fromPrimary)

	result, err := harness.svc.Optimize(context.Background(), cart.UserID, OptimizeInput{WeightPreset: "balanced"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Changes) != 1 {
		t.Fatalf("expected one change, got %+v", result)
	}

	change := result.Changes[0]
	if change.Suggested.ID != fromPrimary.ID {
		t.Fatalf("expected switch to the primary distributor, got %+v", change.Suggested)
	}
	found := false
	for _, reason := range change.Reasons {
		if reason.Code == enums.ReasonConsolidation {
			found = true
			if reason.Impact != enums.ImpactMedium {
				t.Fatalf("consolidation impact must be medium, got %+v", reason)
			}
		}
	}
	if !found {
		t.Fatalf("expected a consolidation reason, got %v", change.Reasons)
	}
}

func TestOptimizeEmptyCartStillRecordsSession(t *testing.T) {
	t.Parallel()

	cart := cartWith(nil)
	harness := newOptimizeHarness(t, cart, balancedPreset())

	result, err := harness.svc.Optimize(context.Background(), cart.UserID, OptimizeInput{WeightPreset: "balanced"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ItemsAnalyzed != 0 || result.ItemsOptimized != 0 || result.TotalSavings != 0 || len(result.Changes) != 0 {
		t.Fatalf("expected an all-zero result, got %+v", result)
	}
	if len(harness.sessions.created) != 1 {
		t.Fatal("an empty cart still records a session")
	}
	if harness.lister.calls != 0 {
		t.Fatal("no candidates should be fetched for an empty cart")
	}
}

func TestOptimizeNoAlternativesNoChanges(t *testing.T) {
	t.Parallel()

	current := offeringAt(uuid.New(), 1000, 3)
	cart := cartWith(items(itemFor(current, 1)))
	harness := newOptimizeHarness(t, cart, balancedPreset())

	result, err := harness.svc.Optimize(context.Background(), cart.UserID, OptimizeInput{WeightPreset: "balanced"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ItemsAnalyzed != 1 || result.ItemsOptimized != 0 || len(result.Changes) != 0 {
		t.Fatalf("expected analyzed-but-unchanged result, got %+v", result)
	}
}

func TestOptimizeIdempotentViaCache(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	current := offeringAt(productID, 10995, 5)
	alternative := offeringAt(productID, 10000, 3)

	cart := cartWith(items(itemFor(current, 1)))
	harness := newOptimizeHarness(t, cart, budgetPreset(), alternative, current)

	ctx := context.Background()
	first, err := harness.svc.Optimize(ctx, cart.UserID, OptimizeInput{WeightPreset: "budget"})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := harness.svc.Optimize(ctx, cart.UserID, OptimizeInput{WeightPreset: "budget"})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if harness.lister.calls != 1 {
		t.Fatalf("second run must hit the cache, fetches = %d", harness.lister.calls)
	}
	if first.TotalSavings != second.TotalSavings || len(first.Changes) != len(second.Changes) {
		t.Fatalf("runs disagree: %+v vs %+v", first, second)
	}
	if first.Changes[0].Suggested.ID != second.Changes[0].Suggested.ID {
		t.Fatal("runs suggest different offerings")
	}
	if len(harness.sessions.created) != 2 {
		t.Fatalf("each run records its own session, got %d", len(harness.sessions.created))
	}
}

func TestOptimizeUnknownPreset(t *testing.T) {
	t.Parallel()

	cart := cartWith(nil)
	harness := newOptimizeHarness(t, cart, balancedPreset())

	_, err := harness.svc.Optimize(context.Background(), cart.UserID, OptimizeInput{WeightPreset: "maximal"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(harness.sessions.created) != 0 {
		t.Fatal("no session may persist for an unknown preset")
	}
}

func TestOptimizeNoActiveCart(t *testing.T) {
	t.Parallel()

	harness := newOptimizeHarnessWithCart(t, nil, balancedPreset())

	_, err := harness.svc.Optimize(context.Background(), uuid.New(), OptimizeInput{WeightPreset: "balanced"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOptimizeReadsRunInsideTransaction(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	current := offeringAt(productID, 1000, 3)
	activeCart := cartWith(items(itemFor(current, 1)))

	lister := &countingLister{}
	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	finder, err := NewFinder(lister, cache.NewMemoryStore(), 15*time.Minute, log)
	if err != nil {
		t.Fatalf("NewFinder: %v", err)
	}

	weights := &stubWeightRepo{preset: balancedPreset()}
	sessions := &stubSessionRepo{}
	carts := &stubCartRepo{cart: activeCart}
	tx := &gorm.DB{}

	svc, err := NewService(Params{
		Weights:  weights,
		Sessions: sessions,
		Carts:    carts,
		Finder:   finder,
		Tx:       stubTxRunner{tx: tx},
		Log:      log,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if _, err := svc.Optimize(context.Background(), activeCart.UserID, OptimizeInput{WeightPreset: "balanced"}); err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	for name, got := range map[string]*gorm.DB{
		"weight preset": weights.boundTx,
		"active cart":   carts.boundTx,
		"candidates":    lister.boundTx,
		"session write": sessions.boundTx,
	} {
		if got != tx {
			t.Fatalf("%s access did not bind to the run transaction", name)
		}
	}
}

// --- harness ---

type optimizeHarness struct {
	svc      Service
	sessions *stubSessionRepo
	lister   *countingLister
}

func newOptimizeHarness(t *testing.T, cart *models.Cart, preset *models.OptimizationWeight, pool ...*models.DistributorProduct) *optimizeHarness {
	t.Helper()
	return newOptimizeHarnessWithCart(t, cart, preset, pool...)
}

func newOptimizeHarnessWithCart(t *testing.T, cart *models.Cart, preset *models.OptimizationWeight, pool ...*models.DistributorProduct) *optimizeHarness {
	t.Helper()

	rows := make([]models.DistributorProduct, 0, len(pool))
	for _, offering := range pool {
		rows = append(rows, *offering)
	}
	lister := &countingLister{rows: rows}

	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	finder, err := NewFinder(lister, cache.NewMemoryStore(), 15*time.Minute, log)
	if err != nil {
		t.Fatalf("NewFinder: %v", err)
	}

	sessions := &stubSessionRepo{}
	svc, err := NewService(Params{
		Weights:  &stubWeightRepo{preset: preset},
		Sessions: sessions,
		Carts:    &stubCartRepo{cart: cart},
		Finder:   finder,
		Tx:       stubTxRunner{},
		Log:      log,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	return &optimizeHarness{svc: svc, sessions: sessions, lister: lister}
}

func cartWith(cartItems []models.CartItem) *models.Cart {
	return &models.Cart{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: enums.CartStatusActive,
		Items:  cartItems,
	}
}

func items(list ...models.CartItem) []models.CartItem {
	return list
}

func itemFor(offering *models.DistributorProduct, quantity int) models.CartItem {
	return models.CartItem{
		ID:                   uuid.New(),
		DistributorProductID: offering.ID,
		Quantity:             quantity,
		UnitPriceCents:       offering.PriceCents,
		DistributorProduct:   offering,
	}
}

func offeringAt(productID uuid.UUID, priceCents, deliveryDays int) *models.DistributorProduct {
	distributor := &models.Distributor{ID: uuid.New(), Name: "Distributor " + uuid.NewString()[:4], Code: uuid.NewString()[:8]}
	return &models.DistributorProduct{
		ID:            uuid.New(),
		ProductID:     productID,
		DistributorID: distributor.ID,
		PriceCents:    priceCents,
		DeliveryDays:  deliveryDays,
		InStock:       true,
		StockQuantity: 10,
		Distributor:   distributor,
	}
}

func balancedPreset() *models.OptimizationWeight {
	return &models.OptimizationWeight{
		ID: uuid.New(), Name: "balanced", IsActive: true,
		PriceWeight: 0.50, SpeedWeight: 0.30, AvailabilityWeight: 0.15, ConsolidationWeight: 0.05,
	}
}

func budgetPreset() *models.OptimizationWeight {
	return &models.OptimizationWeight{
		ID: uuid.New(), Name: "budget", IsActive: true,
		PriceWeight: 0.70, SpeedWeight: 0.15, AvailabilityWeight: 0.10, ConsolidationWeight: 0.05,
	}
}

func urgentPreset() *models.OptimizationWeight {
	return &models.OptimizationWeight{
		ID: uuid.New(), Name: "urgent", IsActive: true,
		PriceWeight: 0.20, SpeedWeight: 0.60, AvailabilityWeight: 0.15, ConsolidationWeight: 0.05,
	}
}

type stubWeightRepo struct {
	preset  *models.OptimizationWeight
	boundTx *gorm.DB
}

func (s *stubWeightRepo) WithTx(tx *gorm.DB) WeightRepository {
	s.boundTx = tx
	return s
}

func (s *stubWeightRepo) FindActiveByName(ctx context.Context, name string) (*models.OptimizationWeight, error) {
	if s.preset == nil || s.preset.Name != name {
		return nil, gorm.ErrRecordNotFound
	}
	return s.preset, nil
}

func (s *stubWeightRepo) ListActive(ctx context.Context) ([]models.OptimizationWeight, error) {
	if s.preset == nil {
		return nil, nil
	}
	return []models.OptimizationWeight{*s.preset}, nil
}

type stubSessionRepo struct {
	created []*models.OptimizationSession
	boundTx *gorm.DB
}

func (s *stubSessionRepo) WithTx(tx *gorm.DB) SessionRepository {
	s.boundTx = tx
	return s
}

func (s *stubSessionRepo) CreateWithChanges(ctx context.Context, session *models.OptimizationSession) (*models.OptimizationSession, error) {
	session.ID = uuid.New()
	s.created = append(s.created, session)
	return session, nil
}

type stubCartRepo struct {
	cart    *models.Cart
	boundTx *gorm.DB
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) cartsvc.CartRepository {
	s.boundTx = tx
	return s
}

func (s *stubCartRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if s.cart == nil || s.cart.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.cart, nil
}

func (s *stubCartRepo) Create(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCartRepo) Update(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCartRepo) FindItemForUpdate(ctx context.Context, cartID, offeringID uuid.UUID) (*models.CartItem, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCartRepo) CreateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCartRepo) UpdateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	return nil, errors.New("not implemented")
}

type stubTxRunner struct {
	tx *gorm.DB
}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(s.tx)
}
