// internal/postgres/store.go
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/erclm/githubmetrics-supa/internal/model"
	"github.com/erclm/githubmetrics-supa/internal/tracker"
)

// Compile-time check that *Store satisfies the tracker's store contract.
var _ tracker.Store = (*Store)(nil)

// DBTX is the subset of pgxpool.Pool the store needs. Both *pgxpool.Pool
// and pgx.Tx satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists repository records in Postgres. Errors are returned as-is;
// classification into the pipeline taxonomy happens in the caller.
type Store struct {
	db DBTX
}

// NewStore creates a Store over the given connection pool or transaction.
func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

const insertRepository = `
INSERT INTO repositories (
	name, owner, fullname, stars, forks, issues,
	mainlanguage, healthscore, activitylevel, trendingfactor, createdat
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`

// InsertRepository writes one record and returns the store-assigned id.
func (s *Store) InsertRepository(ctx context.Context, rec *model.RepositoryRecord) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, insertRepository,
		rec.Name,
		rec.Owner,
		rec.FullName,
		rec.Stars,
		rec.Forks,
		rec.Issues,
		rec.MainLanguage,
		rec.HealthScore,
		rec.ActivityLevel,
		rec.TrendingFactor,
		rec.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

const selectRepositories = `
SELECT id, name, owner, fullname, stars, forks, issues,
	mainlanguage, healthscore, activitylevel, trendingfactor, createdat
FROM repositories
ORDER BY createdat DESC, id DESC`

// ListRepositories returns all records, newest first. An empty table yields
// an empty (non-nil) slice.
func (s *Store) ListRepositories(ctx context.Context) ([]model.RepositoryRecord, error) {
	rows, err := s.db.Query(ctx, selectRepositories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.RepositoryRecord{}
	for rows.Next() {
		var rec model.RepositoryRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Name,
			&rec.Owner,
			&rec.FullName,
			&rec.Stars,
			&rec.Forks,
			&rec.Issues,
			&rec.MainLanguage,
			&rec.HealthScore,
			&rec.ActivityLevel,
			&rec.TrendingFactor,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

const deleteRepository = `DELETE FROM repositories WHERE id = $1`

// DeleteRepository removes the record with the given id. Deleting an id that
// does not exist is not an error.
func (s *Store) DeleteRepository(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, deleteRepository, id)
	return err
}
