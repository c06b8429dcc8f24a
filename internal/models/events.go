package models

import "github.com/shopspring/decimal"

// OrderExecutedEvent is published after a checkout completes.
type OrderExecutedEvent struct {
	OrderID      int64            `json:"order_id"`
	UserID       int64            `json:"user_id"`
	TotalAmount  decimal.Decimal  `json:"total_amount"`
	DiscountCode *string          `json:"discount_code"`
	Items        []OrderItemEvent `json:"items"`
}

type OrderItemEvent struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// DiscountIssuedEvent is published when a new discount code is minted.
type DiscountIssuedEvent struct {
	Code    string `json:"code"`
	OrderID int64  `json:"order_id"`
}
