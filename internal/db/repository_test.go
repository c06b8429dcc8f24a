package db

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prudhivi99/storefront/internal/cache"
	"github.com/prudhivi99/storefront/internal/config"
)

// Integration tests run against a real Postgres. Set TEST_DATABASE_URL
// (a lib/pq DSN) to enable them.

func testDB(t *testing.T) *PostgresDB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("integration test - set TEST_DATABASE_URL to run")
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	database := &PostgresDB{Conn: conn}
	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	for _, table := range []string{"order_items", "orders", "products", "users"} {
		if _, err := conn.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("failed to reset %s: %v", table, err)
		}
	}

	return database
}

func TestProductRepository_CRUD(t *testing.T) {
	database := testDB(t)
	repo := NewProductRepository(database)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Laptop", decimal.RequireFromString("999.99"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil || got.Name != "Laptop" || !got.Price.Equal(created.Price) {
		t.Fatalf("unexpected product: %+v", got)
	}

	got.Price = decimal.RequireFromString("899.99")
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	absent, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID after delete failed: %v", err)
	}
	if absent != nil {
		t.Fatal("expected nil for deleted product")
	}
}

func TestOrderRepository_AddItemAccumulates(t *testing.T) {
	database := testDB(t)
	orders := NewOrderRepository(database)
	users := NewUserRepository(database)
	products := NewProductRepository(database)
	ctx := context.Background()

	user, err := users.Create(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("user Create failed: %v", err)
	}
	ten := decimal.RequireFromString("10")
	product, err := products.Create(ctx, "Laptop", ten)
	if err != nil {
		t.Fatalf("product Create failed: %v", err)
	}

	order, err := orders.Create(ctx, user.ID)
	if err != nil {
		t.Fatalf("order Create failed: %v", err)
	}

	if err := orders.AddItem(ctx, order.ID, product.ID, 3, ten.Mul(decimal.NewFromInt(3))); err != nil {
		t.Fatalf("first AddItem failed: %v", err)
	}
	if err := orders.AddItem(ctx, order.ID, product.ID, 2, ten.Mul(decimal.NewFromInt(2))); err != nil {
		t.Fatalf("second AddItem failed: %v", err)
	}

	got, err := orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("repeated product must stay one line item, got %d", len(got.Items))
	}
	if got.Items[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", got.Items[0].Quantity)
	}
	if !got.TotalAmount.Equal(decimal.RequireFromString("50")) {
		t.Errorf("expected total 50, got %s", got.TotalAmount)
	}
}

func TestOrderRepository_ExecuteWithDiscount(t *testing.T) {
	database := testDB(t)
	orders := NewOrderRepository(database)
	users := NewUserRepository(database)
	ctx := context.Background()

	user, err := users.Create(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("user Create failed: %v", err)
	}
	order, err := orders.Create(ctx, user.ID)
	if err != nil {
		t.Fatalf("order Create failed: %v", err)
	}

	order.TotalAmount = decimal.RequireFromString("30")
	if err := orders.Update(ctx, order); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := orders.SetDiscountCode(ctx, order.ID, "DISCOUNT_1"); err != nil {
		t.Fatalf("SetDiscountCode failed: %v", err)
	}

	ok, err := orders.ExecuteWithDiscount(ctx, order.ID, "DISCOUNT_9")
	if err != nil {
		t.Fatalf("ExecuteWithDiscount failed: %v", err)
	}
	if ok {
		t.Fatal("mismatched code must not match")
	}

	ok, err = orders.ExecuteWithDiscount(ctx, order.ID, "DISCOUNT_1")
	if err != nil {
		t.Fatalf("ExecuteWithDiscount failed: %v", err)
	}
	if !ok {
		t.Fatal("matching code must match")
	}

	got, err := orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.IsExecuted {
		t.Error("order must be executed")
	}
	if !got.TotalAmount.Equal(decimal.RequireFromString("27")) {
		t.Errorf("expected discounted total 27, got %s", got.TotalAmount)
	}
}

func TestCachedProductRepository_InvalidatesOnWrite(t *testing.T) {
	database := testDB(t)

	redisHost := os.Getenv("TEST_REDIS_HOST")
	if redisHost == "" {
		t.Skip("integration test - set TEST_REDIS_HOST to run")
	}

	redisCache, err := cache.NewRedisCache(config.RedisConfig{
		Host: redisHost,
		Port: 6379,
		TTL:  time.Minute,
	})
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisCache.Close() })

	repo := NewCachedProductRepository(NewProductRepository(database), redisCache)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Laptop", decimal.RequireFromString("999.99"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Warm the cache.
	if _, err := repo.GetByID(ctx, created.ID); err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	created.Price = decimal.RequireFromString("899.99")
	if err := repo.Update(ctx, created); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	// The write invalidated the entry, so the read sees the new price.
	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID after update failed: %v", err)
	}
	if !got.Price.Equal(created.Price) {
		t.Errorf("expected updated price %s, got %s", created.Price, got.Price)
	}
}

func TestOrderRepository_CountAndLatest(t *testing.T) {
	database := testDB(t)
	orders := NewOrderRepository(database)
	users := NewUserRepository(database)
	ctx := context.Background()

	count, latest, err := orders.CountAndLatest(ctx)
	if err != nil {
		t.Fatalf("CountAndLatest failed: %v", err)
	}
	if count != 0 || latest != 0 {
		t.Fatalf("expected empty snapshot, got count=%d latest=%d", count, latest)
	}

	user, err := users.Create(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("user Create failed: %v", err)
	}

	var lastID int64
	for i := 0; i < 3; i++ {
		order, err := orders.Create(ctx, user.ID)
		if err != nil {
			t.Fatalf("order Create failed: %v", err)
		}
		lastID = order.ID
	}

	count, latest, err = orders.CountAndLatest(ctx)
	if err != nil {
		t.Fatalf("CountAndLatest failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}
	if latest != lastID {
		t.Errorf("expected latest %d, got %d", lastID, latest)
	}
}
