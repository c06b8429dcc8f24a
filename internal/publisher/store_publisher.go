package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prudhivi99/storefront/internal/messaging"
	"github.com/prudhivi99/storefront/internal/models"
)

const (
	OrderExecutedQueue  = "order.executed"
	DiscountIssuedQueue = "discount.issued"
)

// StorePublisher pushes order lifecycle events onto RabbitMQ for downstream
// consumers (notifications, analytics).
type StorePublisher struct {
	mq *messaging.RabbitMQ
}

func NewStorePublisher(mq *messaging.RabbitMQ) (*StorePublisher, error) {
	for _, queue := range []string{OrderExecutedQueue, DiscountIssuedQueue} {
		if err := mq.DeclareQueue(queue); err != nil {
			return nil, err
		}
	}

	return &StorePublisher{mq: mq}, nil
}

// PublishOrderExecuted publishes an order.executed event after checkout.
func (p *StorePublisher) PublishOrderExecuted(order *models.Order) error {
	event := models.OrderExecutedEvent{
		OrderID:      order.ID,
		UserID:       order.UserID,
		TotalAmount:  order.TotalAmount,
		DiscountCode: order.DiscountCode,
	}

	for _, item := range order.Items {
		event.Items = append(event.Items, models.OrderItemEvent{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.mq.Publish(context.Background(), OrderExecutedQueue, data)
}

// PublishDiscountIssued publishes a discount.issued event.
func (p *StorePublisher) PublishDiscountIssued(code string, orderID int64) error {
	event := models.DiscountIssuedEvent{
		Code:    code,
		OrderID: orderID,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.mq.Publish(context.Background(), DiscountIssuedQueue, data)
}
