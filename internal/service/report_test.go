package service

import (
	"context"
	"testing"

	"github.com/prudhivi99/storefront/internal/models"
)

func TestPurchaseDetails_Empty(t *testing.T) {
	orders := newFakeOrderStore()
	svc := NewReportService(orders)

	report, err := svc.PurchaseDetails(context.Background())
	if err != nil {
		t.Fatalf("PurchaseDetails failed: %v", err)
	}

	if report.TotalItemsPurchased != 0 {
		t.Errorf("expected 0 items, got %d", report.TotalItemsPurchased)
	}
	if !report.TotalPurchaseAmount.IsZero() {
		t.Errorf("expected zero purchase amount, got %s", report.TotalPurchaseAmount)
	}
	if !report.TotalDiscountAmount.IsZero() {
		t.Errorf("expected zero discount amount, got %s", report.TotalDiscountAmount)
	}
	if report.DiscountCodes == nil || len(report.DiscountCodes) != 0 {
		t.Errorf("expected empty code list, got %v", report.DiscountCodes)
	}
}

func TestPurchaseDetails_OnlyDiscountedOrdersCount(t *testing.T) {
	orders := newFakeOrderStore()
	products := newFakeProductStore()
	cart := NewCartService(orders, products, nil)
	svc := NewReportService(orders)
	ctx := context.Background()

	p := products.addProduct("Laptop", "10.00")

	// Executed order with a discount code.
	discounted, err := cart.AddToCart(ctx, NewOrderSentinel, 1, &models.AddToCartRequest{ProductID: p.ID, Quantity: float64(3)})
	if err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}
	if err := orders.SetDiscountCode(ctx, discounted.ID, "DISCOUNT_1"); err != nil {
		t.Fatalf("SetDiscountCode failed: %v", err)
	}
	if _, err := cart.Checkout(ctx, discounted.ID, "DISCOUNT_1"); err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	// Executed order without a code: its items count, its amount does not.
	plain, err := cart.AddToCart(ctx, NewOrderSentinel, 1, &models.AddToCartRequest{ProductID: p.ID, Quantity: float64(2)})
	if err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}
	if _, err := cart.Checkout(ctx, plain.ID, ""); err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	// Open cart: invisible to the report.
	if _, err := cart.AddToCart(ctx, NewOrderSentinel, 1, &models.AddToCartRequest{ProductID: p.ID, Quantity: float64(9)}); err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}

	report, err := svc.PurchaseDetails(ctx)
	if err != nil {
		t.Fatalf("PurchaseDetails failed: %v", err)
	}

	if report.TotalItemsPurchased != 5 {
		t.Errorf("expected 5 items across executed orders, got %d", report.TotalItemsPurchased)
	}
	if got := report.TotalPurchaseAmount.String(); got != "27" {
		t.Errorf("expected purchase amount 27 (discounted orders only), got %s", got)
	}
	if got := report.TotalDiscountAmount.String(); got != "2.7" {
		t.Errorf("expected discount amount 2.7, got %s", got)
	}
	if len(report.DiscountCodes) != 1 || report.DiscountCodes[0] != "DISCOUNT_1" {
		t.Errorf("expected [DISCOUNT_1], got %v", report.DiscountCodes)
	}
}
