package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quickbite/ordering/internal/db"
)

type Repository interface {
	CreateOrGet(ctx context.Context, name, email string, role Role) (int64, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID int64) (*User, error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repo{db: database}
}

// CreateOrGet inserts a new user, and when the email is already taken
// recovers by re-querying the existing row's id. Insert-then-recover keeps
// the unique index as the single authority instead of racing a
// check-then-insert.
func (r *repo) CreateOrGet(ctx context.Context, name, email string, role Role) (int64, error) {
	if role == "" {
		role = RoleCustomer
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, email, role) VALUES (?, ?, ?)`,
		name, email, string(role),
	)
	if err != nil {
		if db.IsDuplicate(err) {
			var id int64
			qErr := r.db.QueryRowContext(ctx,
				`SELECT id FROM users WHERE email = ?`, email,
			).Scan(&id)
			if qErr != nil {
				return 0, fmt.Errorf("select existing user: %w", qErr)
			}
			return id, nil
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user id: %w", err)
	}
	return id, nil
}

func (r *repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.get(ctx, `SELECT id, name, email, role FROM users WHERE email = ?`, email)
}

func (r *repo) GetByID(ctx context.Context, userID int64) (*User, error) {
	return r.get(ctx, `SELECT id, name, email, role FROM users WHERE id = ?`, userID)
}

func (r *repo) get(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	var role string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	u.Role = Role(role)
	return &u, nil
}
