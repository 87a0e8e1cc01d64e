package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Repository interface {
	Create(ctx context.Context, name string, price float64, stock int) (int64, error)
	GetByID(ctx context.Context, productID int64) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	SetStock(ctx context.Context, productID int64, stock int) (bool, error)
	Update(ctx context.Context, p Product) (bool, error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, name string, price float64, stock int) (int64, error) {
	if price < 0 {
		price = 0
	}
	if stock < 0 {
		stock = 0
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO products (name, price, stock) VALUES (?, ?, ?)`,
		name, price, stock,
	)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("product id: %w", err)
	}
	return id, nil
}

func (r *repo) GetByID(ctx context.Context, productID int64) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, price, stock FROM products WHERE id = ?`,
		productID,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select product: %w", err)
	}
	return &p, nil
}

func (r *repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, price, stock FROM products ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return products, nil
}

// SetStock writes an absolute stock count and reports whether a matching
// row existed. Negative values are stored as zero.
func (r *repo) SetStock(ctx context.Context, productID int64, stock int) (bool, error) {
	if stock < 0 {
		stock = 0
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET stock = ? WHERE id = ?`,
		stock, productID,
	)
	if err != nil {
		return false, fmt.Errorf("update stock: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *repo) Update(ctx context.Context, p Product) (bool, error) {
	if p.Price < 0 {
		p.Price = 0
	}
	if p.Stock < 0 {
		p.Stock = 0
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = ?, price = ?, stock = ? WHERE id = ?`,
		p.Name, p.Price, p.Stock, p.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update product: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
