package user

import (
	"context"
	"database/sql"
	"errors"

	"handmade-market/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u User, passwordHash string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, string, error)
	FindByID(ctx context.Context, id string) (User, error)
	UpdateProfile(ctx context.Context, id string, p ProfileUpdate) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, name, email, role, verified, phone, address, shop_name, shop_description, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, extra ...any) (User, error) {
	var (
		u    User
		role string
	)
	dest := append([]any{
		&u.ID, &u.Name, &u.Email, &role, &u.Verified,
		&u.Phone, &u.Address, &u.ShopName, &u.ShopDescription, &u.CreatedAt,
	}, extra...)

	if err := row.Scan(dest...); err != nil {
		return User{}, err
	}

	parsed, err := ParseRole(role)
	if err != nil {
		return User{}, err
	}
	u.Role = parsed
	return u, nil
}

func (r *repository) Create(ctx context.Context, u User, passwordHash string) (User, error) {
	log := logger.FromCtx(ctx)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, name, email, password, role, verified, phone, address, shop_name, shop_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+userColumns,
		u.ID, u.Name, u.Email, passwordHash, u.Role.String(), u.Verified,
		u.Phone, u.Address, u.ShopName, u.ShopDescription,
	)

	created, err := scanUser(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return User{}, ErrEmailExists
		}
		log.Error("db: failed to insert user",
			zap.String("email", u.Email),
			zap.Error(err),
		)
		return User{}, err
	}
	return created, nil
}

// FindByEmail returns the user and their password hash.
func (r *repository) FindByEmail(ctx context.Context, email string) (User, string, error) {
	var hash string
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+`, password FROM users WHERE email = $1`,
		email,
	)

	u, err := scanUser(row, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, "", ErrUserNotFound
	}
	if err != nil {
		return User{}, "", err
	}
	return u, hash, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return u, err
}

func (r *repository) UpdateProfile(ctx context.Context, id string, p ProfileUpdate) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users SET
			name             = COALESCE($2, name),
			phone            = COALESCE($3, phone),
			address          = COALESCE($4, address),
			shop_name        = COALESCE($5, shop_name),
			shop_description = COALESCE($6, shop_description),
			updated_at       = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id, p.Name, p.Phone, p.Address, p.ShopName, p.ShopDescription,
	)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to update profile",
			zap.String("user_id", id),
			zap.Error(err),
		)
	}
	return u, err
}
