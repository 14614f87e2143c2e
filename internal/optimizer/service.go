package optimizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	cartsvc "github.com/distrocart/backend/internal/cart"
	"github.com/distrocart/backend/pkg/db/models"
	pkgerrors "github.com/distrocart/backend/pkg/errors"
	"github.com/distrocart/backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service runs cart optimization passes.
type Service interface {
	Optimize(ctx context.Context, userID uuid.UUID, input OptimizeInput) (*Result, error)
	ListWeightPresets(ctx context.Context) ([]models.OptimizationWeight, error)
}

// Params collects the service dependencies.
type Params struct {
	Weights          WeightRepository
	Sessions         SessionRepository
	Carts            cartsvc.CartRepository
	Finder           *Finder
	Tx               txRunner
	Log              *logger.Logger
	AlgorithmVersion string
}

type service struct {
	weights          WeightRepository
	sessions         SessionRepository
	carts            cartsvc.CartRepository
	finder           *Finder
	tx               txRunner
	log              *logger.Logger
	algorithmVersion string
	now              func() time.Time
}

// NewService builds the optimizer service.
func NewService(params Params) (Service, error) {
	if params.Weights == nil {
		return nil, fmt.Errorf("weight repository required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session repository required")
	}
	if params.Carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Finder == nil {
		return nil, fmt.Errorf("alternative finder required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.AlgorithmVersion == "" {
		params.AlgorithmVersion = "quickwins_v1"
	}
	return &service{
		weights:          params.Weights,
		sessions:         params.Sessions,
		carts:            params.Carts,
		finder:           params.Finder,
		tx:               params.Tx,
		log:              params.Log,
		algorithmVersion: params.AlgorithmVersion,
		now:              time.Now,
	}, nil
}

// OptimizeInput selects the weight preset for a run.
type OptimizeInput struct {
	WeightPreset string
}

// Optimize runs one greedy pass over the user's active cart: per item,
// score the current offering and every in-stock alternative from another
// distributor, and suggest the highest-scoring alternative that strictly
// beats the current one. The preset, cart, and candidate reads share the
// transaction that persists the session and its changes, so a run sees one
// consistent snapshot and a failure anywhere rolls back the entire write
// set. Only the alternatives cache lookup stays outside the transaction.
func (s *service) Optimize(ctx context.Context, userID uuid.UUID, input OptimizeInput) (*Result, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.WeightPreset == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "weight preset is required")
	}

	start := s.now()

	var result *Result
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		preset, err := s.weights.WithTx(tx).FindActiveByName(ctx, input.WeightPreset)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("weight preset %q not found", input.WeightPreset))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load weight preset")
		}

		cart, err := s.carts.WithTx(tx).FindActiveByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no active cart")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}

		primary := primaryDistributor(cart.Items)

		pool, err := s.finder.FindPool(ctx, tx, cart.Items)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load alternatives")
		}

		drafts, totalSavings := s.pickChanges(cart.Items, pool, preset, primary)

		session := &models.OptimizationSession{
			CartID:            cart.ID,
			UserID:            cart.UserID,
			AlgorithmVersion:  s.algorithmVersion,
			WeightsUsed:       preset.Weights(),
			ItemsAnalyzed:     len(cart.Items),
			ItemsOptimized:    len(drafts),
			TotalSavingsCents: totalSavings,
			ExecutionTimeMs:   s.now().Sub(start).Milliseconds(),
			Changes:           draftedChanges(drafts),
		}

		if _, err := s.sessions.WithTx(tx).CreateWithChanges(ctx, session); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist optimization session")
		}

		result = buildResult(session, drafts)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.log.WithFields(ctx, map[string]any{
		"session_id":      result.SessionID.String(),
		"items_optimized": result.ItemsOptimized,
		"items_analyzed":  result.ItemsAnalyzed,
	})
	s.log.Info(ctx, "cart optimization completed")

	return result, nil
}

// ListWeightPresets returns the active presets for client display.
func (s *service) ListWeightPresets(ctx context.Context) ([]models.OptimizationWeight, error) {
	presets, err := s.weights.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list weight presets")
	}
	return presets, nil
}

// pickChanges applies the greedy per-item pass and accumulates savings.
func (s *service) pickChanges(items []models.CartItem, pool []*models.DistributorProduct, preset *models.OptimizationWeight, primary *uuid.UUID) ([]changeDraft, int) {
	weights := preset.Weights()

	itemAlternatives := make([][]*models.DistributorProduct, len(items))
	currents := make([]*models.DistributorProduct, 0, len(items))
	for i, item := range items {
		itemAlternatives[i] = AlternativesFor(item, pool)
		if item.DistributorProduct != nil {
			currents = append(currents, item.DistributorProduct)
		}
	}

	sets := append([][]*models.DistributorProduct{currents}, itemAlternatives...)
	sctx := BuildScoringContext(sets...)

	var drafts []changeDraft
	totalSavings := 0

	for i, item := range items {
		current := item.DistributorProduct
		alternatives := itemAlternatives[i]
		if current == nil || len(alternatives) == 0 {
			continue
		}

		currentScore := Score(current, weights, sctx, primary)

		var best *models.DistributorProduct
		bestScore := 0.0
		for _, alternative := range alternatives {
			// staying with the same distributor is not a suggestion
			if alternative.DistributorID == current.DistributorID {
				continue
			}
			score := Score(alternative, weights, sctx, primary)
			if best == nil || score > bestScore {
				best = alternative
				bestScore = score
			}
		}

		if best == nil || bestScore <= currentScore {
			continue
		}

		priceDiff := current.PriceCents - best.PriceCents
		daysDiff := current.DeliveryDays - best.DeliveryDays

		drafts = append(drafts, changeDraft{
			item:             item,
			original:         current,
			suggested:        best,
			originalScore:    currentScore,
			suggestedScore:   bestScore,
			priceDiffCents:   priceDiff,
			deliveryDaysDiff: daysDiff,
			codes:            buildReasonCodes(current, best, primary),
		})
		totalSavings += priceDiff * item.Quantity
	}

	return drafts, totalSavings
}

// primaryDistributor is the distributor behind the most cart lines; ties go
// to the distributor seen first. Nil for an empty cart.
func primaryDistributor(items []models.CartItem) *uuid.UUID {
	counts := make(map[uuid.UUID]int, len(items))
	var order []uuid.UUID

	for _, item := range items {
		if item.DistributorProduct == nil {
			continue
		}
		id := item.DistributorProduct.DistributorID
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}
	if len(order) == 0 {
		return nil
	}

	best := order[0]
	for _, id := range order[1:] {
		if counts[id] > counts[best] {
			best = id
		}
	}
	return &best
}

func draftedChanges(drafts []changeDraft) []models.OptimizationChange {
	if len(drafts) == 0 {
		return nil
	}
	changes := make([]models.OptimizationChange, 0, len(drafts))
	for _, draft := range drafts {
		codes := make(pq.StringArray, 0, len(draft.codes))
		for _, code := range draft.codes {
			codes = append(codes, string(code))
		}
		changes = append(changes, models.OptimizationChange{
			OriginalDistributorProductID:  draft.original.ID,
			SuggestedDistributorProductID: draft.suggested.ID,
			OriginalScore:                 draft.originalScore,
			SuggestedScore:                draft.suggestedScore,
			PriceDifferenceCents:          draft.priceDiffCents,
			DeliveryDaysDifference:        draft.deliveryDaysDiff,
			ReasonCodes:                   codes,
		})
	}
	return changes
}
