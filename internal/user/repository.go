package user

import (
	"context"
	"database/sql"
	"errors"

	"neoverse-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, params RegisterParams, hashedPassword string, role Role) (User, error)
	FindByID(ctx context.Context, id int) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	EmailTaken(ctx context.Context, email string, excludeID int) (bool, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (User, error)
	UpdatePassword(ctx context.Context, id int, hashedPassword string) error
	ListAll(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id int, role Role) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = "id, username, email, password, role, firstname, lastname, address, phone"

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.Role,
		&u.Firstname, &u.Lastname, &u.Address, &u.Phone,
	)
	return u, err
}

func (r *repository) Create(ctx context.Context, params RegisterParams, hashedPassword string, role Role) (User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("username", params.Username),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password, role, firstname, lastname)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		params.Username, params.Email, hashedPassword, role,
		params.Firstname, params.Lastname,
	)

	u, err := scanUser(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			log.Info("duplicate username or email")
			return User{}, ErrUserExists
		}
		log.Error("failed to insert user", zap.Error(err))
		return User{}, err
	}

	return u, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id,
	)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return u, err
}

func (r *repository) FindByUsername(ctx context.Context, username string) (User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1", username,
	)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return u, err
}

func (r *repository) EmailTaken(ctx context.Context, email string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)",
		email, excludeID,
	).Scan(&exists)
	return exists, err
}

// UpdateProfile overwrites only the fields present in params.
func (r *repository) UpdateProfile(ctx context.Context, params UpdateProfileParams) (User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateProfile"),
		zap.Int("user_id", params.UserID),
	)

	row := r.db.QueryRowContext(ctx, `
		UPDATE users SET
			firstname = COALESCE($2, firstname),
			lastname  = COALESCE($3, lastname),
			address   = COALESCE($4, address),
			phone     = COALESCE($5, phone),
			email     = COALESCE($6, email)
		WHERE id = $1
		RETURNING `+userColumns,
		params.UserID, params.Firstname, params.Lastname,
		params.Address, params.Phone, params.Email,
	)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		log.Error("failed to update profile", zap.Error(err))
		return User{}, err
	}

	log.Info("profile updated")
	return u, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id int, hashedPassword string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET password = $1 WHERE id = $2", hashedPassword, id,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) ListAll(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.Password, &u.Role,
			&u.Firstname, &u.Lastname, &u.Address, &u.Phone,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *repository) UpdateRole(ctx context.Context, id int, role Role) (User, error) {
	row := r.db.QueryRowContext(ctx,
		"UPDATE users SET role = $1 WHERE id = $2 RETURNING "+userColumns,
		role, id,
	)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return u, err
}
