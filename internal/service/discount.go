package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ErrNoDiscountAvailable is returned when the order count is not at a
// multiple-of-N boundary.
var ErrNoDiscountAvailable = &ValidationError{Message: "No discount code available for the current order."}

// DiscountService mints discount codes. Every Nth order earns one, derived
// from the live order count rather than a stored counter, and the code is
// assigned to the most recently created order.
type DiscountService struct {
	orders    OrderStore
	publisher EventPublisher
	every     int64
}

func NewDiscountService(orders OrderStore, publisher EventPublisher, every int64) *DiscountService {
	if every <= 0 {
		every = 3
	}
	return &DiscountService{
		orders:    orders,
		publisher: publisher,
		every:     every,
	}
}

// GenerateDiscountCode re-evaluates the boundary condition on every call;
// repeated calls at the same count re-assign the same code to whichever
// order is currently latest.
func (s *DiscountService) GenerateDiscountCode(ctx context.Context) (string, error) {
	count, latestID, err := s.orders.CountAndLatest(ctx)
	if err != nil {
		return "", err
	}

	code, ok := CodeForCount(count, s.every)
	if !ok {
		return "", ErrNoDiscountAvailable
	}

	if err := s.orders.SetDiscountCode(ctx, latestID, code); err != nil {
		return "", err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishDiscountIssued(code, latestID); err != nil {
			log.Warn().Err(err).Str("code", code).Msg("failed to publish discount issued event")
		}
	}

	return code, nil
}

// CodeForCount applies the boundary rule: a positive multiple of every
// yields DISCOUNT_<count/every>.
func CodeForCount(count, every int64) (string, bool) {
	if count <= 0 || count%every != 0 {
		return "", false
	}
	return fmt.Sprintf("DISCOUNT_%d", count/every), true
}
