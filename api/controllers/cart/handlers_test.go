package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/distrocart/backend/api/middleware"
	cartsvc "github.com/distrocart/backend/internal/cart"
	"github.com/distrocart/backend/internal/optimizer"
	"github.com/distrocart/backend/pkg/db/models"
	pkgerrors "github.com/distrocart/backend/pkg/errors"
	"github.com/distrocart/backend/pkg/types"
)

type stubCartService struct {
	summary *cartsvc.CartSummary
	err     error

	gotUser  uuid.UUID
	gotInput cartsvc.AddItemInput
}

func (s *stubCartService) AddItem(_ context.Context, userID uuid.UUID, input cartsvc.AddItemInput) (*cartsvc.CartSummary, error) {
	s.gotUser = userID
	s.gotInput = input
	return s.summary, s.err
}

func (s *stubCartService) GetActiveCart(_ context.Context, userID uuid.UUID) (*cartsvc.CartSummary, error) {
	s.gotUser = userID
	return s.summary, s.err
}

type stubOptimizerService struct {
	result  *optimizer.Result
	presets []models.OptimizationWeight
	err     error

	gotUser  uuid.UUID
	gotInput optimizer.OptimizeInput
}

func (s *stubOptimizerService) Optimize(_ context.Context, userID uuid.UUID, input optimizer.OptimizeInput) (*optimizer.Result, error) {
	s.gotUser = userID
	s.gotInput = input
	return s.result, s.err
}

func (s *stubOptimizerService) ListWeightPresets(context.Context) ([]models.OptimizationWeight, error) {
	return s.presets, s.err
}

func authedRequest(method, target, body string, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func TestCartAddDecodesAndDelegates(t *testing.T) {
	userID := uuid.New()
	offeringID := uuid.New()
	svc := &stubCartService{summary: &cartsvc.CartSummary{ID: uuid.New(), ItemsCount: 1}}

	body := `{"distributor_product_id":"` + offeringID.String() + `","quantity":3}`
	resp := httptest.NewRecorder()
	CartAdd(svc, nil)(resp, authedRequest(http.MethodPost, "/api/v1/cart/items", body, userID))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotUser != userID {
		t.Fatalf("expected user %s got %s", userID, svc.gotUser)
	}
	if svc.gotInput.OfferingID != offeringID || svc.gotInput.Quantity != 3 {
		t.Fatalf("unexpected input %+v", svc.gotInput)
	}

	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	data := envelope.Data.(map[string]any)
	if data["items_count"].(float64) != 1 {
		t.Fatalf("unexpected payload %v", envelope.Data)
	}
}

func TestCartAddRejectsMissingQuantity(t *testing.T) {
	svc := &stubCartService{}
	body := `{"distributor_product_id":"` + uuid.NewString() + `"}`
	resp := httptest.NewRecorder()
	CartAdd(svc, nil)(resp, authedRequest(http.MethodPost, "/api/v1/cart/items", body, uuid.New()))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.gotInput.Quantity != 0 {
		t.Fatal("service should not be called on invalid payload")
	}
}

func TestCartAddRequiresUserContext(t *testing.T) {
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{}`))
	CartAdd(&stubCartService{}, nil)(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCartFetchPropagatesNotFound(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "no active cart")}
	resp := httptest.NewRecorder()
	CartFetch(svc, nil)(resp, authedRequest(http.MethodGet, "/api/v1/cart", "", uuid.New()))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}

	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Message != "no active cart" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestCartOptimizeDelegatesPreset(t *testing.T) {
	userID := uuid.New()
	svc := &stubOptimizerService{result: &optimizer.Result{SessionID: uuid.New(), ItemsAnalyzed: 2}}

	resp := httptest.NewRecorder()
	CartOptimize(svc, nil)(resp, authedRequest(http.MethodPost, "/api/v1/cart/optimize", `{"weight_preset":"budget"}`, userID))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotUser != userID {
		t.Fatalf("expected user %s got %s", userID, svc.gotUser)
	}
	if svc.gotInput.WeightPreset != "budget" {
		t.Fatalf("unexpected preset %q", svc.gotInput.WeightPreset)
	}
}

func TestCartOptimizeRejectsMissingPreset(t *testing.T) {
	resp := httptest.NewRecorder()
	CartOptimize(&stubOptimizerService{}, nil)(resp, authedRequest(http.MethodPost, "/api/v1/cart/optimize", `{}`, uuid.New()))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestWeightPresetsPrefersDisplayName(t *testing.T) {
	display := "Budget Maximizer"
	svc := &stubOptimizerService{presets: []models.OptimizationWeight{
		{ID: uuid.New(), Name: "budget", DisplayName: &display, PriceWeight: 0.70, IsDefault: false},
		{ID: uuid.New(), Name: "balanced", PriceWeight: 0.50, IsDefault: true},
	}}

	resp := httptest.NewRecorder()
	WeightPresets(svc, nil)(resp, authedRequest(http.MethodGet, "/api/v1/cart/optimize/presets", "", uuid.New()))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 presets got %d", len(envelope.Data))
	}
	if envelope.Data[0]["display_name"] != "Budget Maximizer" {
		t.Fatalf("unexpected display name %v", envelope.Data[0]["display_name"])
	}
	if envelope.Data[1]["display_name"] != "balanced" {
		t.Fatalf("expected fallback to name, got %v", envelope.Data[1]["display_name"])
	}
}
