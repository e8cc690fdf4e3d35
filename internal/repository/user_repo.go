package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"verbatim/internal/models"
)

type UserRepository struct {
	db   *sql.DB
	bind Binder
}

func NewUserRepository(db *sql.DB, bind Binder) *UserRepository {
	return &UserRepository{db: db, bind: bind}
}

// Ensure implementation of the Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (id, email, name, password_hash, plan_type, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	selectUserSQL = `SELECT id, email, name, password_hash, plan_type, created_at FROM users`

	selectUserByEmailSQL = selectUserSQL + ` WHERE email = ?`
	selectUserByIDSQL    = selectUserSQL + ` WHERE id = ?`
)

// Create inserts a new user row. A duplicate email surfaces as the store's
// unique-constraint error; callers check existence first for a typed conflict.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	_, err := r.db.ExecContext(ctx, r.bind(insertUserSQL),
		u.ID, u.Email, u.Name, u.PasswordHash, u.PlanType, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	return nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, r.bind(selectUserByEmailSQL), email))
	if err != nil {
		return nil, fmt.Errorf("select user by email %q: %w", email, err)
	}
	return u, nil
}

// GetByID fetches a user by ID. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, r.bind(selectUserByIDSQL), id))
	if err != nil {
		return nil, fmt.Errorf("select user by id %q: %w", id, err)
	}
	return u, nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var (
		u    models.User
		name sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &name, &u.PasswordHash, &u.PlanType, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Name = name.String
	return &u, nil
}
