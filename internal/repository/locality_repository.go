package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LocalityRepository reads the territorial reference table ("dpa").
type LocalityRepository interface {
	Provinces(ctx context.Context) ([]string, error)
	Cantons(ctx context.Context, provincia string) ([]string, error)
}

type localityRepository struct {
	pool *pgxpool.Pool
}

// NewLocalityRepository returns a Postgres-backed implementation.
func NewLocalityRepository(pool *pgxpool.Pool) LocalityRepository {
	return &localityRepository{pool: pool}
}

func (r *localityRepository) Provinces(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT provincia FROM dpa ORDER BY provincia`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		result = append(result, name)
	}
	return result, rows.Err()
}

func (r *localityRepository) Cantons(ctx context.Context, provincia string) ([]string, error) {
	const query = `SELECT DISTINCT canton FROM dpa WHERE provincia=$1 ORDER BY canton`
	rows, err := r.pool.Query(ctx, query, provincia)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		result = append(result, name)
	}
	return result, rows.Err()
}
