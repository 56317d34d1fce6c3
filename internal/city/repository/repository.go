package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/rakhimovb/staylist/internal/city/domain"
	"github.com/rakhimovb/staylist/internal/common/constants"
	"github.com/rakhimovb/staylist/internal/common/db"
)

type Repository interface {
	SearchByPrefix(ctx context.Context, prefix string) ([]domain.City, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// SearchByPrefix expects an already sanitized prefix; the caller strips
// pattern wildcards before the prefix is appended to the LIKE operand.
func (r *PgRepository) SearchByPrefix(ctx context.Context, prefix string) ([]domain.City, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, name FROM cities WHERE name LIKE $1 ORDER BY name LIMIT $2`,
		prefix+"%",
		constants.CityAutocompleteLimit,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "search cities", start)
	}
	defer rows.Close()

	cities := make([]domain.City, 0)
	for rows.Next() {
		var city domain.City
		if err := rows.Scan(&city.ID, &city.Name); err != nil {
			return nil, db.HandleQueryError(err, nil, "scan city", start)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, nil, "search cities", start)
	}

	db.MeasureQueryDuration("search cities", start)
	return cities, nil
}
