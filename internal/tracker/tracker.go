// internal/tracker/tracker.go
package tracker

import (
	"context"
	"log/slog"
	"time"

	custom_errors "github.com/erclm/githubmetrics-supa/internal/errors"
	"github.com/erclm/githubmetrics-supa/internal/metrics"
	"github.com/erclm/githubmetrics-supa/internal/model"
	"github.com/erclm/githubmetrics-supa/internal/repourl"
)

// Store is the persistence collaborator. Failures from any of its
// operations surface to callers as ErrStore.
type Store interface {
	InsertRepository(ctx context.Context, rec *model.RepositoryRecord) (int64, error)
	ListRepositories(ctx context.Context) ([]model.RepositoryRecord, error)
	DeleteRepository(ctx context.Context, id int64) error
}

// Fetcher is the remote metrics collaborator.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, identity model.RepositoryIdentity) (*model.RawMetricsSnapshot, error)
}

// Tracker sequences the ingestion pipeline: parse, fetch, derive, insert.
// Each exported method is one user action running a short chain of blocking
// calls; concurrent invocations are independent and coordinate nowhere but
// the store.
type Tracker struct {
	store   Store
	fetcher Fetcher
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a Tracker with its collaborators injected. The store handle
// is owned by the composition root; the tracker never constructs one.
func New(store Store, fetcher Fetcher, logger *slog.Logger) *Tracker {
	return &Tracker{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// AddRepository runs the full pipeline for one URL and returns the
// persisted record. The pipeline is fail-fast: the first failing stage
// aborts the rest, and nothing is written unless every stage succeeded.
// Adding the same repository twice creates two independent records.
func (t *Tracker) AddRepository(ctx context.Context, rawURL string) (*model.RepositoryRecord, error) {
	identity, err := repourl.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	logger := t.logger.With("repo", identity.FullName)
	logger.Info("Ingesting repository")

	snap, err := t.fetcher.FetchSnapshot(ctx, identity)
	if err != nil {
		return nil, err
	}

	// One instant serves as both the derivation clock and the record's
	// ingestion timestamp, so the stored row is self-consistent.
	now := t.now().UTC()
	derived := metrics.Derive(*snap, now)

	rec := &model.RepositoryRecord{
		Name:           snap.Name,
		Owner:          snap.Owner,
		FullName:       snap.FullName,
		Stars:          snap.Stars,
		Forks:          snap.Forks,
		Issues:         snap.Issues,
		MainLanguage:   snap.Language,
		HealthScore:    derived.HealthScore,
		ActivityLevel:  derived.ActivityLevel,
		TrendingFactor: derived.TrendingFactor,
		CreatedAt:      now,
	}

	id, err := t.store.InsertRepository(ctx, rec)
	if err != nil {
		return nil, &custom_errors.ErrStore{Op: "insert", Cause: err}
	}
	rec.ID = id

	logger.Info("Repository ingested",
		"id", rec.ID,
		"stars", rec.Stars,
		"healthscore", rec.HealthScore,
	)
	return rec, nil
}

// ListRepositories returns every stored record, newest first. An empty
// store is a valid, non-error result.
func (t *Tracker) ListRepositories(ctx context.Context) ([]model.RepositoryRecord, error) {
	records, err := t.store.ListRepositories(ctx)
	if err != nil {
		return nil, &custom_errors.ErrStore{Op: "select", Cause: err}
	}
	return records, nil
}

// RemoveRepository deletes the record with the given id. The store does not
// distinguish deleting a missing id from success, and neither does this.
func (t *Tracker) RemoveRepository(ctx context.Context, id int64) error {
	if err := t.store.DeleteRepository(ctx, id); err != nil {
		return &custom_errors.ErrStore{Op: "delete", Cause: err}
	}
	t.logger.Info("Repository removed", "id", id)
	return nil
}
