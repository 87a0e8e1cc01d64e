package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/quickbite/ordering/internal/cart"
	"github.com/quickbite/ordering/internal/db"
)

// MissingProductPolicy decides what placement does with a cart line whose
// product id no longer exists in the catalog.
type MissingProductPolicy string

const (
	// PolicySkip drops the line: no item row, no stock change, no
	// contribution to the total.
	PolicySkip MissingProductPolicy = "skip"
	// PolicyFail rejects the whole order.
	PolicyFail MissingProductPolicy = "fail"
)

func ParseMissingProductPolicy(s string) (MissingProductPolicy, bool) {
	switch MissingProductPolicy(s) {
	case PolicySkip, PolicyFail:
		return MissingProductPolicy(s), true
	case "":
		return PolicySkip, true
	}
	return "", false
}

var (
	ErrMissingProduct    = errors.New("product no longer in catalog")
	ErrEmptyOrder        = errors.New("order has no lines")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotFound          = errors.New("order not found")
)

type Repository interface {
	Place(ctx context.Context, userID int64, mode DeliveryMode, lines []cart.Line, policy MissingProductPolicy) (int64, error)
	GetByID(ctx context.Context, orderID int64) (*Order, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	AdvanceStatus(ctx context.Context, orderID int64, to Status) error
}

type repo struct {
	db *sql.DB
	// Appended to intra-transaction product reads; "FOR UPDATE" on MySQL
	// so two concurrent placements cannot both read the same stock value.
	// SQLite serializes writers on its own and rejects the clause.
	lockSuffix string
}

func NewRepository(database *sql.DB, driver string) Repository {
	suffix := ""
	if driver == "mysql" {
		suffix = " FOR UPDATE"
	}
	return &repo{db: database, lockSuffix: suffix}
}

// Place persists an order header, one item per cart line, and the matching
// stock decrements as a single transaction. Unit prices are read from the
// catalog inside the transaction, never taken from the caller. Stock is
// floored at zero; overselling is recorded rather than rejected.
func (r *repo) Place(ctx context.Context, userID int64, mode DeliveryMode, lines []cart.Line, policy MissingProductPolicy) (int64, error) {
	if len(lines) == 0 {
		return 0, ErrEmptyOrder
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	createdAt := time.Now().UTC().Format(db.TimeLayout)

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (user_id, delivery_mode, total, status, created_at)
         VALUES (?, ?, 0, ?, ?)`,
		userID, string(mode), string(StatusCreated), createdAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("order id: %w", err)
	}

	total := 0.0
	for _, line := range lines {
		var price float64
		var stock int
		err := tx.QueryRowContext(ctx,
			`SELECT price, stock FROM products WHERE id = ?`+r.lockSuffix,
			line.ProductID,
		).Scan(&price, &stock)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				if policy == PolicyFail {
					return 0, fmt.Errorf("product %d: %w", line.ProductID, ErrMissingProduct)
				}
				continue
			}
			return 0, fmt.Errorf("select product %d: %w", line.ProductID, err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, unit_price)
             VALUES (?, ?, ?, ?)`,
			orderID, line.ProductID, line.Quantity, price,
		)
		if err != nil {
			return 0, fmt.Errorf("insert order_item: %w", err)
		}

		total += price * float64(line.Quantity)

		newStock := stock - line.Quantity
		if newStock < 0 {
			newStock = 0
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE products SET stock = ? WHERE id = ?`,
			newStock, line.ProductID,
		)
		if err != nil {
			return 0, fmt.Errorf("update stock %d: %w", line.ProductID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET total = ? WHERE id = ?`,
		total, orderID,
	)
	if err != nil {
		return 0, fmt.Errorf("update total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return orderID, nil
}

func (r *repo) GetByID(ctx context.Context, orderID int64) (*Order, error) {
	var o Order
	var mode, status, created string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, delivery_mode, total, status, created_at
         FROM orders WHERE id = ?`,
		orderID,
	).Scan(&o.ID, &o.UserID, &mode, &o.Total, &status, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select order: %w", err)
	}
	o.DeliveryMode = DeliveryMode(mode)
	o.Status = Status(status)
	if o.CreatedAt, err = time.Parse(db.TimeLayout, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, quantity, unit_price
         FROM order_items WHERE order_id = ? ORDER BY id`,
		o.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return &o, nil
}

// ListByUser returns header fields only, most recent first.
func (r *repo) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, delivery_mode, total, status, created_at
         FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		var mode, status, created string
		if err := rows.Scan(&o.ID, &o.UserID, &mode, &o.Total, &status, &created); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.DeliveryMode = DeliveryMode(mode)
		o.Status = Status(status)
		if o.CreatedAt, err = time.Parse(db.TimeLayout, created); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return orders, nil
}

// AdvanceStatus moves an order to the next status, rejecting backward or
// skipped transitions.
func (r *repo) AdvanceStatus(ctx context.Context, orderID int64, to Status) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = ?`+r.lockSuffix,
		orderID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("select status: %w", err)
	}

	if !CanTransition(Status(current), to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, to)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = ? WHERE id = ?`,
		string(to), orderID,
	); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
