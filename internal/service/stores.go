package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/prudhivi99/storefront/internal/models"
)

// ProductStore is satisfied by db.ProductRepository and its cached wrapper.
type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, name string, price decimal.Decimal) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id int64) error
}

// OrderStore is satisfied by db.OrderRepository. AddItem and
// ExecuteWithDiscount are atomic; see the repository for the locking rules.
type OrderStore interface {
	List(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	Create(ctx context.Context, userID int64) (*models.Order, error)
	Update(ctx context.Context, o *models.Order) error
	Delete(ctx context.Context, id int64) error
	AddItem(ctx context.Context, orderID, productID int64, quantity int, lineTotal decimal.Decimal) error
	Execute(ctx context.Context, id int64) error
	ExecuteWithDiscount(ctx context.Context, id int64, code string) (bool, error)
	CountAndLatest(ctx context.Context) (count int64, latestID int64, err error)
	SetDiscountCode(ctx context.Context, orderID int64, code string) error
	PurchaseDetails(ctx context.Context) (*models.PurchaseReport, error)
}

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
}

// EventPublisher fans order lifecycle events out to the message broker.
// Publishing failures never fail the request that triggered them.
type EventPublisher interface {
	PublishOrderExecuted(order *models.Order) error
	PublishDiscountIssued(code string, orderID int64) error
}
