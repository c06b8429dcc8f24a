package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/prudhivi99/storefront/internal/models"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(database *PostgresDB) *OrderRepository {
	return &OrderRepository{db: database.Conn}
}

// Create inserts an empty order for the user.
func (r *OrderRepository) Create(ctx context.Context, userID int64) (*models.Order, error) {
	query := `
		INSERT INTO orders (user_id)
		VALUES ($1)
		RETURNING id, user_id, total_amount, discount_code, is_executed, created_at
	`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}
	order.Items = []models.OrderItem{}
	return order, nil
}

// List returns all orders without their items.
func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	query := `SELECT id, user_id, total_amount, discount_code, is_executed, created_at FROM orders ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		var code sql.NullString
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &code, &o.IsExecuted, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if code.Valid {
			o.DiscountCode = &code.String
		}
		o.Items = []models.OrderItem{}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// GetByID returns an order with its line items, nil when absent.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	query := `SELECT id, user_id, total_amount, discount_code, is_executed, created_at FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	itemsQuery := `SELECT id, order_id, product_id, quantity FROM order_items WHERE order_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	order.Items = []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	return order, rows.Err()
}

// Update overwrites the mutable order columns.
func (r *OrderRepository) Update(ctx context.Context, o *models.Order) error {
	query := `UPDATE orders SET total_amount = $1, discount_code = $2, is_executed = $3 WHERE id = $4`

	var code sql.NullString
	if o.DiscountCode != nil {
		code = sql.NullString{String: *o.DiscountCode, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query, o.TotalAmount, code, o.IsExecuted, o.ID)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Delete removes an order; items cascade.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// AddItem is the transactional half of add-to-cart: under a row lock on the
// order it bumps (or creates) the line item and adds lineTotal to
// total_amount. Two concurrent calls serialize on the lock, so neither
// increment is lost.
func (r *OrderRepository) AddItem(ctx context.Context, orderID, productID int64, quantity int, lineTotal decimal.Decimal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lockedID int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM orders WHERE id = $1 FOR UPDATE", orderID).Scan(&lockedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return sql.ErrNoRows
		}
		return fmt.Errorf("failed to lock order: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE order_items SET quantity = quantity + $1 WHERE order_id = $2 AND product_id = $3",
		quantity, orderID, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order item: %w", err)
	}

	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, product_id, quantity) VALUES ($1, $2, $3)",
			orderID, productID, quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE orders SET total_amount = total_amount + $1 WHERE id = $2",
		lineTotal, orderID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Execute marks an order executed.
func (r *OrderRepository) Execute(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "UPDATE orders SET is_executed = TRUE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to execute order: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ExecuteWithDiscount applies the 10% reduction and marks the order executed
// in one compare-and-swap keyed on the stored discount code. Returns false
// when the code did not match (or the order does not exist); the caller
// distinguishes the two.
func (r *OrderRepository) ExecuteWithDiscount(ctx context.Context, id int64, code string) (bool, error) {
	query := `
		UPDATE orders
		SET total_amount = total_amount * 0.9, is_executed = TRUE
		WHERE id = $1 AND discount_code = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, code)
	if err != nil {
		return false, fmt.Errorf("failed to execute order with discount: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected == 1, nil
}

// CountAndLatest returns the global order count and the highest order id in
// one consistent snapshot.
func (r *OrderRepository) CountAndLatest(ctx context.Context) (int64, int64, error) {
	var count, latest int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*), COALESCE(MAX(id), 0) FROM orders").Scan(&count, &latest)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, latest, nil
}

// SetDiscountCode assigns a minted code to an order.
func (r *OrderRepository) SetDiscountCode(ctx context.Context, orderID int64, code string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE orders SET discount_code = $1 WHERE id = $2", code, orderID)
	if err != nil {
		return fmt.Errorf("failed to set discount code: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// PurchaseDetails aggregates executed orders. COALESCE keeps every sum at
// zero when nothing matches.
func (r *OrderRepository) PurchaseDetails(ctx context.Context) (*models.PurchaseReport, error) {
	report := &models.PurchaseReport{DiscountCodes: []string{}}

	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.is_executed
	`).Scan(&report.TotalItemsPurchased)
	if err != nil {
		return nil, fmt.Errorf("failed to sum purchased items: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0), COALESCE(SUM(total_amount * 0.1), 0)
		FROM orders
		WHERE is_executed AND discount_code IS NOT NULL
	`).Scan(&report.TotalPurchaseAmount, &report.TotalDiscountAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to sum discounted orders: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT discount_code FROM orders
		WHERE is_executed AND discount_code IS NOT NULL
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query discount codes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan discount code: %w", err)
		}
		report.DiscountCodes = append(report.DiscountCodes, code)
	}

	return report, rows.Err()
}

func scanOrder(row *sql.Row) (*models.Order, error) {
	var o models.Order
	var code sql.NullString
	err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &code, &o.IsExecuted, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if code.Valid {
		o.DiscountCode = &code.String
	}
	return &o, nil
}
