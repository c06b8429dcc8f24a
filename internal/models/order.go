package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	DiscountCode *string         `json:"discount_code"`
	IsExecuted   bool            `json:"is_executed"`
	Items        []OrderItem     `json:"products"`
	CreatedAt    time.Time       `json:"created_at"`
}

// OrderItem is one (order, product) line. At most one row exists per pair;
// repeat add-to-cart calls bump the quantity instead of adding rows.
type OrderItem struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"order"`
	ProductID int64 `json:"product"`
	Quantity  int   `json:"quantity"`
}

type CreateOrderRequest struct {
	TotalAmount  *decimal.Decimal `json:"total_amount"`
	DiscountCode *string          `json:"discount_code"`
}

type UpdateOrderRequest struct {
	TotalAmount  *decimal.Decimal `json:"total_amount"`
	DiscountCode *string          `json:"discount_code"`
	IsExecuted   *bool            `json:"is_executed"`
}

// AddToCartRequest accepts quantity as a JSON number or a numeric string;
// parsing happens in the service layer.
type AddToCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  any   `json:"quantity"`
}

type CheckoutRequest struct {
	DiscountCode string `json:"discount_code"`
}
