package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/rakhimovb/staylist/internal/common/db"
	"github.com/rakhimovb/staylist/internal/user/domain"
)

type Repository interface {
	Create(ctx context.Context, user domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByToken(ctx context.Context, token string) (domain.User, error)
	UpdateToken(ctx context.Context, id domain.ID, token string) error
	ClearToken(ctx context.Context, id domain.ID) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, email, password_hash, token) VALUES ($1, $2, $3, $4)`,
		string(user.ID),
		user.Email,
		user.PasswordHash,
		user.Token,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailAlreadyExists
		}
		return db.HandleExecError(err, "create user", start)
	}
	db.MeasureQueryDuration("create user", start)
	return nil
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, email, password_hash, token, created_at FROM users WHERE email = $1`,
		email,
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Token, &user.CreatedAt)
	if err != nil {
		return domain.User{}, db.HandleQueryError(err, ErrUserNotFound, "find user by email", start)
	}

	db.MeasureQueryDuration("find user by email", start)
	return user, nil
}

func (r *PgRepository) FindByToken(ctx context.Context, token string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, email, password_hash, token, created_at FROM users WHERE token = $1`,
		token,
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Token, &user.CreatedAt)
	if err != nil {
		return domain.User{}, db.HandleQueryError(err, ErrUserNotFound, "find user by token", start)
	}

	db.MeasureQueryDuration("find user by token", start)
	return user, nil
}

func (r *PgRepository) UpdateToken(ctx context.Context, id domain.ID, token string) error {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE users SET token = $1 WHERE id = $2`,
		token,
		string(id),
	)
	if err != nil {
		return db.HandleExecError(err, "update user token", start)
	}
	db.MeasureQueryDuration("update user token", start)
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PgRepository) ClearToken(ctx context.Context, id domain.ID) error {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE users SET token = NULL WHERE id = $1`,
		string(id),
	)
	if err != nil {
		return db.HandleExecError(err, "clear user token", start)
	}
	db.MeasureQueryDuration("clear user token", start)
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

var ErrUserNotFound = pgx.ErrNoRows

var ErrEmailAlreadyExists = errors.New("email already exists")
