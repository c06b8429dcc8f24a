package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/prudhivi99/storefront/internal/models"
)

// NewOrderSentinel is the add-to-cart path segment meaning "no order yet".
const NewOrderSentinel = "null"

// CartService owns the order lifecycle: CRUD, add-to-cart and checkout.
type CartService struct {
	orders    OrderStore
	products  ProductStore
	publisher EventPublisher
}

func NewCartService(orders OrderStore, products ProductStore, publisher EventPublisher) *CartService {
	return &CartService{
		orders:    orders,
		products:  products,
		publisher: publisher,
	}
}

func (s *CartService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

func (s *CartService) Get(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, notFound("order", id)
	}
	return order, nil
}

func (s *CartService) Create(ctx context.Context, userID int64, req *models.CreateOrderRequest) (*models.Order, error) {
	order, err := s.orders.Create(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.TotalAmount == nil && req.DiscountCode == nil {
		return order, nil
	}

	if req.TotalAmount != nil {
		order.TotalAmount = *req.TotalAmount
	}
	order.DiscountCode = req.DiscountCode
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Update is deliberately permissive: executed orders still accept mutation.
func (s *CartService) Update(ctx context.Context, id int64, req *models.UpdateOrderRequest) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, notFound("order", id)
	}

	if req.TotalAmount != nil {
		order.TotalAmount = *req.TotalAmount
	}
	if req.DiscountCode != nil {
		order.DiscountCode = req.DiscountCode
	}
	if req.IsExecuted != nil {
		order.IsExecuted = *req.IsExecuted
	}

	if err := s.orders.Update(ctx, order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("order", id)
		}
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *CartService) Delete(ctx context.Context, id int64) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("order", id)
		}
		return err
	}
	return nil
}

// AddToCart resolves the order (creating one when orderRef is the sentinel),
// resolves the product, then delegates the quantity/total increments to one
// atomic store operation.
func (s *CartService) AddToCart(ctx context.Context, orderRef string, userID int64, req *models.AddToCartRequest) (*models.Order, error) {
	if req.ProductID == 0 {
		return nil, invalid("product_id", "product_id is required")
	}

	quantity, err := ParseQuantity(req.Quantity)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	if orderRef == NewOrderSentinel {
		order, err = s.orders.Create(ctx, userID)
		if err != nil {
			return nil, err
		}
	} else {
		orderID, parseErr := strconv.ParseInt(orderRef, 10, 64)
		if parseErr != nil {
			return nil, invalid("order", "order id must be an integer or \"null\"")
		}
		order, err = s.orders.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, notFound("order", orderID)
		}
	}

	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, notFound("product", req.ProductID)
	}

	lineTotal := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
	if err := s.orders.AddItem(ctx, order.ID, product.ID, quantity, lineTotal); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("order", order.ID)
		}
		return nil, err
	}

	return s.Get(ctx, order.ID)
}

// Checkout marks the order executed. A supplied discount code must equal the
// code stored on the order; the comparison and the 10% reduction happen in a
// single compare-and-swap so a concurrent code change cannot slip between
// validation and pricing.
func (s *CartService) Checkout(ctx context.Context, orderID int64, discountCode string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, notFound("order", orderID)
	}

	if discountCode != "" {
		ok, err := s.orders.ExecuteWithDiscount(ctx, orderID, discountCode)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, invalid("discount_code", "Invalid discount code")
		}
	} else {
		if err := s.orders.Execute(ctx, orderID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, notFound("order", orderID)
			}
			return nil, err
		}
	}

	executed, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderExecuted(executed); err != nil {
			// The order is already committed; the event is best effort.
			log.Warn().Err(err).Int64("order_id", orderID).Msg("failed to publish order executed event")
		}
	}

	return executed, nil
}

// ParseQuantity coerces a JSON number or numeric string to an integer
// quantity. Missing means 1; anything non-numeric or negative is rejected.
func ParseQuantity(raw any) (int, error) {
	switch v := raw.(type) {
	case nil:
		return 1, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, invalid("quantity", "quantity must be a whole number")
		}
		if v < 0 {
			return 0, invalid("quantity", "quantity must not be negative")
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, invalid("quantity", "quantity must be numeric")
		}
		if n < 0 {
			return 0, invalid("quantity", "quantity must not be negative")
		}
		return n, nil
	default:
		return 0, invalid("quantity", "quantity must be a number or numeric string")
	}
}
