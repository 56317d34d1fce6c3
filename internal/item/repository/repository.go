package repository

import (
	"context"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/rakhimovb/staylist/internal/common/db"
	"github.com/rakhimovb/staylist/internal/item/domain"
	userdomain "github.com/rakhimovb/staylist/internal/user/domain"
)

type Repository interface {
	ListByOwner(ctx context.Context, ownerID userdomain.ID) ([]domain.Item, error)
	FindByOwnerAndID(ctx context.Context, ownerID userdomain.ID, id domain.ID) (domain.Item, error)
	Create(ctx context.Context, item domain.Item) error
	Update(ctx context.Context, item domain.Item) error
	Delete(ctx context.Context, ownerID userdomain.ID, id domain.ID) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) ListByOwner(ctx context.Context, ownerID userdomain.ID) ([]domain.Item, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, user_id, name, description, created_at, updated_at
		 FROM items WHERE user_id = $1 ORDER BY created_at`,
		string(ownerID),
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list items", start)
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Description, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, db.HandleQueryError(err, nil, "scan item", start)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, nil, "list items", start)
	}

	db.MeasureQueryDuration("list items", start)
	return items, nil
}

func (r *PgRepository) FindByOwnerAndID(ctx context.Context, ownerID userdomain.ID, id domain.ID) (domain.Item, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, user_id, name, description, created_at, updated_at
		 FROM items WHERE user_id = $1 AND id = $2`,
		string(ownerID),
		string(id),
	)

	var item domain.Item
	err := row.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Description, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return domain.Item{}, db.HandleQueryError(err, ErrItemNotFound, "find item", start)
	}

	db.MeasureQueryDuration("find item", start)
	return item, nil
}

func (r *PgRepository) Create(ctx context.Context, item domain.Item) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO items (id, user_id, name, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		string(item.ID),
		string(item.OwnerID),
		item.Name,
		item.Description,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return db.HandleExecError(err, "create item", start)
	}
	db.MeasureQueryDuration("create item", start)
	return nil
}

func (r *PgRepository) Update(ctx context.Context, item domain.Item) error {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE items SET name = $1, description = $2, updated_at = $3
		 WHERE user_id = $4 AND id = $5`,
		item.Name,
		item.Description,
		item.UpdatedAt,
		string(item.OwnerID),
		string(item.ID),
	)
	if err != nil {
		return db.HandleExecError(err, "update item", start)
	}
	db.MeasureQueryDuration("update item", start)
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PgRepository) Delete(ctx context.Context, ownerID userdomain.ID, id domain.ID) error {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`DELETE FROM items WHERE user_id = $1 AND id = $2`,
		string(ownerID),
		string(id),
	)
	if err != nil {
		return db.HandleExecError(err, "delete item", start)
	}
	db.MeasureQueryDuration("delete item", start)
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

var ErrItemNotFound = pgx.ErrNoRows
