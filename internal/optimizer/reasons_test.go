package optimizer

import (
	"testing"

	"github.com/google/uuid"

	"github.com/distrocart/backend/pkg/db/models"
	"github.com/distrocart/backend/pkg/enums"
)

func TestBuildReasonCodesFixedOrder(t *testing.T) {
	t.Parallel()

	primary := uuid.New()
	original := &models.DistributorProduct{
		DistributorID: uuid.New(),
		PriceCents:    2000,
		DeliveryDays:  6,
		InStock:       false,
	}
	suggested := &models.DistributorProduct{
		DistributorID: primary,
		PriceCents:    1500,
		DeliveryDays:  2,
		InStock:       true,
	}

	codes := buildReasonCodes(original, suggested, &primary)
	want := []enums.ReasonCode{
		enums.ReasonPriceSavings,
		enums.ReasonFasterDelivery,
		enums.ReasonInStock,
		enums.ReasonConsolidation,
	}
	if len(codes) != len(want) {
		t.Fatalf("expected %d codes, got %v", len(want), codes)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("expected %v at %d, got %v", want[i], i, codes[i])
		}
	}
}

func TestBuildReasonCodesOmitsInapplicable(t *testing.T) {
	t.Parallel()

	original := &models.DistributorProduct{DistributorID: uuid.New(), PriceCents: 1000, DeliveryDays: 2, InStock: true}
	suggested := &models.DistributorProduct{DistributorID: uuid.New(), PriceCents: 1200, DeliveryDays: 2, InStock: true}

	if codes := buildReasonCodes(original, suggested, nil); len(codes) != 0 {
		t.Fatalf("expected no codes, got %v", codes)
	}
}

func TestBuildReasonCodesConsolidationNeedsForeignOriginal(t *testing.T) {
	t.Parallel()

	primary := uuid.New()
	original := &models.DistributorProduct{DistributorID: primary, PriceCents: 1000, DeliveryDays: 3, InStock: true}
	suggested := &models.DistributorProduct{DistributorID: primary, PriceCents: 900, DeliveryDays: 3, InStock: true}

	codes := buildReasonCodes(original, suggested, &primary)
	for _, code := range codes {
		if code == enums.ReasonConsolidation {
			t.Fatal("consolidation must not apply when the original already belongs to the primary distributor")
		}
	}
}

func TestDescribeReasonPriceSavings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		diffCents int
		message   string
		impact    enums.Impact
	}{
		{1250, "Save $12.50 on this item", enums.ImpactHigh},
		{995, "Save $9.95 on this item", enums.ImpactMedium},
		{500, "Save $5.00 on this item", enums.ImpactMedium},
		{499, "Save $4.99 on this item", enums.ImpactLow},
		{-995, "Save $9.95 on this item", enums.ImpactMedium},
	}
	for _, tc := range cases {
		reason := DescribeReason(enums.ReasonPriceSavings, tc.diffCents, 0)
		if reason.Message != tc.message || reason.Impact != tc.impact {
			t.Fatalf("diff %d: got %+v", tc.diffCents, reason)
		}
	}
}

func TestDescribeReasonFasterDelivery(t *testing.T) {
	t.Parallel()

	cases := []struct {
		daysDiff int
		message  string
		impact   enums.Impact
	}{
		{4, "Arrives 4 days sooner", enums.ImpactHigh},
		{3, "Arrives 3 days sooner", enums.ImpactHigh},
		{2, "Arrives 2 days sooner", enums.ImpactMedium},
		{1, "Arrives 1 day sooner", enums.ImpactLow},
	}
	for _, tc := range cases {
		reason := DescribeReason(enums.ReasonFasterDelivery, 0, tc.daysDiff)
		if reason.Message != tc.message || reason.Impact != tc.impact {
			t.Fatalf("days %d: got %+v", tc.daysDiff, reason)
		}
	}
}

func TestDescribeReasonFixedMessages(t *testing.T) {
	t.Parallel()

	inStock := DescribeReason(enums.ReasonInStock, 0, 0)
	if inStock.Message != "Item is in stock" || inStock.Impact != enums.ImpactHigh {
		t.Fatalf("unexpected in-stock reason: %+v", inStock)
	}

	consolidation := DescribeReason(enums.ReasonConsolidation, 0, 0)
	if consolidation.Message != "Consolidate with primary distributor" || consolidation.Impact != enums.ImpactMedium {
		t.Fatalf("unexpected consolidation reason: %+v", consolidation)
	}
}
