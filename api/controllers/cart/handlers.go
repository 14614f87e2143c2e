package cart

import (
	"net/http"

	"github.com/google/uuid"

	cartdto "github.com/distrocart/backend/api/controllers/cart/dto"
	"github.com/distrocart/backend/api/middleware"
	"github.com/distrocart/backend/api/responses"
	"github.com/distrocart/backend/api/validators"
	cartsvc "github.com/distrocart/backend/internal/cart"
	"github.com/distrocart/backend/internal/optimizer"
	pkgerrors "github.com/distrocart/backend/pkg/errors"
	"github.com/distrocart/backend/pkg/logger"
)

// CartAdd puts an offering into the caller's active cart, creating the cart
// on first use.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.AddItem(r.Context(), userID, cartsvc.AddItemInput{
			OfferingID: payload.DistributorProductID,
			Quantity:   payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, summary)
	}
}

// CartFetch exposes the caller's active cart record.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.GetActiveCart(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

// CartOptimize runs the optimization engine over the caller's active cart
// and returns the recorded session with its suggested changes.
func CartOptimize(svc optimizer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "optimizer service unavailable"))
			return
		}

		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.OptimizeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Optimize(r.Context(), userID, optimizer.OptimizeInput{
			WeightPreset: payload.WeightPreset,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// WeightPresets lists the active scoring profiles for client display.
func WeightPresets(svc optimizer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "optimizer service unavailable"))
			return
		}

		presets, err := svc.ListWeightPresets(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newWeightPresets(presets))
	}
}

func userIDFromContext(r *http.Request) (uuid.UUID, error) {
	if r == nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return userID, nil
}
