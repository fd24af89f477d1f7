package repository

import (
	"context"
	"database/sql"

	"homeboard/internal/domain"
)

type UserRepo struct {
	write *sql.DB
	read  *sql.DB
}

func NewUserRepo(write, read *sql.DB) *UserRepo {
	return &UserRepo{write: write, read: read}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	res, err := r.write.ExecContext(ctx,
		`INSERT INTO users (name, email, phone, password_hash, role) VALUES (?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.Phone, u.PasswordHash, string(u.Role))
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanOne(r.read.QueryRowContext(ctx,
		`SELECT id, name, email, phone, password_hash, role, created_at FROM users WHERE id = ?`, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanOne(r.read.QueryRowContext(ctx,
		`SELECT id, name, email, phone, password_hash, role, created_at FROM users WHERE email = ?`, email))
}

func (r *UserRepo) scanOne(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		return nil, mapDBError(err)
	}
	u.Role = domain.UserRole(role)
	return &u, nil
}
