package models

import "github.com/shopspring/decimal"

// PurchaseReport aggregates executed orders. Sums default to zero and
// DiscountCodes to an empty list when nothing matches.
type PurchaseReport struct {
	TotalItemsPurchased int64           `json:"total_items_purchased"`
	TotalPurchaseAmount decimal.Decimal `json:"total_purchase_amount"`
	DiscountCodes       []string        `json:"discount_codes"`
	TotalDiscountAmount decimal.Decimal `json:"total_discount_amount"`
}
