package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/prudhivi99/storefront/internal/models"
)

// In-memory stores mirroring the repository semantics, shared by the
// service tests.

type fakeProductStore struct {
	nextID   int64
	products map[int64]*models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[int64]*models.Product{}}
}

func (f *fakeProductStore) addProduct(name, price string) *models.Product {
	f.nextID++
	p := &models.Product{
		ID:    f.nextID,
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
	f.products[p.ID] = p
	return p
}

func (f *fakeProductStore) List(ctx context.Context) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductStore) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProductStore) Create(ctx context.Context, name string, price decimal.Decimal) (*models.Product, error) {
	f.nextID++
	p := &models.Product{ID: f.nextID, Name: name, Price: price}
	f.products[p.ID] = p
	clone := *p
	return &clone, nil
}

func (f *fakeProductStore) Update(ctx context.Context, p *models.Product) error {
	stored, ok := f.products[p.ID]
	if !ok {
		return fmt.Errorf("product %d gone", p.ID)
	}
	*stored = *p
	return nil
}

func (f *fakeProductStore) Delete(ctx context.Context, id int64) error {
	delete(f.products, id)
	return nil
}

type fakeOrderStore struct {
	nextID     int64
	nextItemID int64
	orders     map[int64]*models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[int64]*models.Order{}}
}

func cloneOrder(o *models.Order) *models.Order {
	clone := *o
	clone.Items = append([]models.OrderItem{}, o.Items...)
	if o.DiscountCode != nil {
		code := *o.DiscountCode
		clone.DiscountCode = &code
	}
	return &clone
}

func (f *fakeOrderStore) List(ctx context.Context) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.orders {
		out = append(out, *cloneOrder(o))
	}
	return out, nil
}

func (f *fakeOrderStore) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (f *fakeOrderStore) Create(ctx context.Context, userID int64) (*models.Order, error) {
	f.nextID++
	o := &models.Order{
		ID:     f.nextID,
		UserID: userID,
		Items:  []models.OrderItem{},
	}
	f.orders[o.ID] = o
	return cloneOrder(o), nil
}

func (f *fakeOrderStore) Update(ctx context.Context, o *models.Order) error {
	stored, ok := f.orders[o.ID]
	if !ok {
		return fmt.Errorf("order %d gone", o.ID)
	}
	update := cloneOrder(o)
	update.Items = stored.Items
	*stored = *update
	return nil
}

func (f *fakeOrderStore) Delete(ctx context.Context, id int64) error {
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderStore) AddItem(ctx context.Context, orderID, productID int64, quantity int, lineTotal decimal.Decimal) error {
	o, ok := f.orders[orderID]
	if !ok {
		return fmt.Errorf("order %d gone", orderID)
	}

	found := false
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			o.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		f.nextItemID++
		o.Items = append(o.Items, models.OrderItem{
			ID:        f.nextItemID,
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  quantity,
		})
	}

	o.TotalAmount = o.TotalAmount.Add(lineTotal)
	return nil
}

func (f *fakeOrderStore) Execute(ctx context.Context, id int64) error {
	o, ok := f.orders[id]
	if !ok {
		return fmt.Errorf("order %d gone", id)
	}
	o.IsExecuted = true
	return nil
}

func (f *fakeOrderStore) ExecuteWithDiscount(ctx context.Context, id int64, code string) (bool, error) {
	o, ok := f.orders[id]
	if !ok {
		return false, nil
	}
	if o.DiscountCode == nil || *o.DiscountCode != code {
		return false, nil
	}
	o.TotalAmount = o.TotalAmount.Mul(decimal.RequireFromString("0.9"))
	o.IsExecuted = true
	return true, nil
}

func (f *fakeOrderStore) CountAndLatest(ctx context.Context) (int64, int64, error) {
	var latest int64
	for id := range f.orders {
		if id > latest {
			latest = id
		}
	}
	return int64(len(f.orders)), latest, nil
}

func (f *fakeOrderStore) SetDiscountCode(ctx context.Context, orderID int64, code string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return fmt.Errorf("order %d gone", orderID)
	}
	o.DiscountCode = &code
	return nil
}

func (f *fakeOrderStore) PurchaseDetails(ctx context.Context) (*models.PurchaseReport, error) {
	report := &models.PurchaseReport{DiscountCodes: []string{}}
	for _, o := range f.orders {
		if !o.IsExecuted {
			continue
		}
		for _, item := range o.Items {
			report.TotalItemsPurchased += int64(item.Quantity)
		}
		if o.DiscountCode != nil {
			report.TotalPurchaseAmount = report.TotalPurchaseAmount.Add(o.TotalAmount)
			report.TotalDiscountAmount = report.TotalDiscountAmount.Add(
				o.TotalAmount.Mul(decimal.RequireFromString("0.1")))
			report.DiscountCodes = append(report.DiscountCodes, *o.DiscountCode)
		}
	}
	return report, nil
}

type fakePublisher struct {
	executed []int64
	issued   []string
}

func (f *fakePublisher) PublishOrderExecuted(order *models.Order) error {
	f.executed = append(f.executed, order.ID)
	return nil
}

func (f *fakePublisher) PublishDiscountIssued(code string, orderID int64) error {
	f.issued = append(f.issued, code)
	return nil
}

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserStore) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	u := &models.User{ID: int64(len(f.users) + 1), Username: username, PasswordHash: passwordHash}
	f.users[username] = u
	clone := *u
	return &clone, nil
}
