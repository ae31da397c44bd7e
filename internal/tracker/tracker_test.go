// internal/tracker/tracker_test.go
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	custom_errors "github.com/erclm/githubmetrics-supa/internal/errors"
	"github.com/erclm/githubmetrics-supa/internal/model"
)

// MockStore is a mock of the Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) InsertRepository(ctx context.Context, rec *model.RepositoryRecord) (int64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockStore) ListRepositories(ctx context.Context) ([]model.RepositoryRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RepositoryRecord), args.Error(1)
}
func (m *MockStore) DeleteRepository(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFetcher is a mock of the Fetcher interface.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchSnapshot(ctx context.Context, identity model.RepositoryIdentity) (*model.RawMetricsSnapshot, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RawMetricsSnapshot), args.Error(1)
}

func newTestTracker(store Store, fetcher Fetcher) *Tracker {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(store, fetcher, logger)
}

func TestTracker_AddRepository(t *testing.T) {
	ctx := context.Background()
	fixedNow := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	pushed := fixedNow.AddDate(0, 0, -5)

	snapshot := &model.RawMetricsSnapshot{
		Name:     "react",
		Owner:    "facebook",
		FullName: "facebook/react",
		Stars:    100,
		Forks:    9,
		Issues:   10,
		Language: "JavaScript",
		PushedAt: &pushed,
	}

	t.Run("persists a fully derived record", func(t *testing.T) {
		mockStore := new(MockStore)
		mockFetcher := new(MockFetcher)
		trk := newTestTracker(mockStore, mockFetcher)
		trk.now = func() time.Time { return fixedNow }

		identity := model.RepositoryIdentity{Owner: "facebook", Name: "react", FullName: "facebook/react"}
		mockFetcher.On("FetchSnapshot", ctx, identity).Return(snapshot, nil).Once()
		mockStore.On("InsertRepository", ctx, mock.Anything).Return(int64(42), nil).Once()

		rec, err := trk.AddRepository(ctx, "https://github.com/facebook/react")

		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, int64(42), rec.ID)
		assert.Equal(t, "react", rec.Name)
		assert.Equal(t, "facebook", rec.Owner)
		assert.Equal(t, "facebook/react", rec.FullName)
		assert.Equal(t, 100, rec.Stars)
		assert.Equal(t, 9, rec.Forks)
		assert.Equal(t, 10, rec.Issues)
		assert.Equal(t, "JavaScript", rec.MainLanguage)
		assert.Equal(t, 90, rec.HealthScore)
		assert.Equal(t, "5 days", rec.ActivityLevel)
		assert.Equal(t, 100, rec.TrendingFactor)
		assert.Equal(t, fixedNow, rec.CreatedAt)
		mockStore.AssertExpectations(t)
		mockFetcher.AssertExpectations(t)
	})

	t.Run("rejects a bad URL before any remote work", func(t *testing.T) {
		mockStore := new(MockStore)
		mockFetcher := new(MockFetcher)
		trk := newTestTracker(mockStore, mockFetcher)

		rec, err := trk.AddRepository(ctx, "not a url at all")

		require.Error(t, err)
		assert.Nil(t, rec)
		var invalidErr *custom_errors.ErrInvalidURLFormat
		assert.ErrorAs(t, err, &invalidErr)
		mockFetcher.AssertNotCalled(t, "FetchSnapshot")
		mockStore.AssertNotCalled(t, "InsertRepository")
	})

	t.Run("a failed fetch writes nothing", func(t *testing.T) {
		mockStore := new(MockStore)
		mockFetcher := new(MockFetcher)
		trk := newTestTracker(mockStore, mockFetcher)

		mockFetcher.On("FetchSnapshot", ctx, mock.Anything).
			Return(nil, &custom_errors.ErrProviderHTTP{StatusCode: 404}).Once()

		rec, err := trk.AddRepository(ctx, "https://github.com/ghost/missing")

		require.Error(t, err)
		assert.Nil(t, rec)
		var httpErr *custom_errors.ErrProviderHTTP
		assert.ErrorAs(t, err, &httpErr)
		mockStore.AssertNotCalled(t, "InsertRepository")
		mockFetcher.AssertExpectations(t)
	})

	t.Run("wraps insert failures as store errors", func(t *testing.T) {
		mockStore := new(MockStore)
		mockFetcher := new(MockFetcher)
		trk := newTestTracker(mockStore, mockFetcher)
		dbErr := errors.New("connection reset")

		mockFetcher.On("FetchSnapshot", ctx, mock.Anything).Return(snapshot, nil).Once()
		mockStore.On("InsertRepository", ctx, mock.Anything).Return(int64(0), dbErr).Once()

		rec, err := trk.AddRepository(ctx, "https://github.com/facebook/react")

		require.Error(t, err)
		assert.Nil(t, rec)
		var storeErr *custom_errors.ErrStore
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "insert", storeErr.Op)
		assert.ErrorIs(t, err, dbErr)
		mockStore.AssertExpectations(t)
	})
}

func TestTracker_ListRepositories(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored records as-is", func(t *testing.T) {
		mockStore := new(MockStore)
		trk := newTestTracker(mockStore, new(MockFetcher))

		stored := []model.RepositoryRecord{
			{ID: 2, FullName: "vuejs/core"},
			{ID: 1, FullName: "facebook/react"},
		}
		mockStore.On("ListRepositories", ctx).Return(stored, nil).Once()

		records, err := trk.ListRepositories(ctx)

		require.NoError(t, err)
		assert.Equal(t, stored, records)
		mockStore.AssertExpectations(t)
	})

	t.Run("an empty store is not an error", func(t *testing.T) {
		mockStore := new(MockStore)
		trk := newTestTracker(mockStore, new(MockFetcher))

		mockStore.On("ListRepositories", ctx).Return([]model.RepositoryRecord{}, nil).Once()

		records, err := trk.ListRepositories(ctx)

		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("wraps select failures as store errors", func(t *testing.T) {
		mockStore := new(MockStore)
		trk := newTestTracker(mockStore, new(MockFetcher))
		dbErr := errors.New("relation does not exist")

		mockStore.On("ListRepositories", ctx).Return(nil, dbErr).Once()

		records, err := trk.ListRepositories(ctx)

		require.Error(t, err)
		assert.Nil(t, records)
		var storeErr *custom_errors.ErrStore
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "select", storeErr.Op)
	})
}

func TestTracker_RemoveRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates the id to the store", func(t *testing.T) {
		mockStore := new(MockStore)
		trk := newTestTracker(mockStore, new(MockFetcher))

		mockStore.On("DeleteRepository", ctx, int64(7)).Return(nil).Once()

		err := trk.RemoveRepository(ctx, 7)

		require.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("wraps delete failures as store errors", func(t *testing.T) {
		mockStore := new(MockStore)
		trk := newTestTracker(mockStore, new(MockFetcher))
		dbErr := errors.New("connection closed")

		mockStore.On("DeleteRepository", ctx, int64(7)).Return(dbErr).Once()

		err := trk.RemoveRepository(ctx, 7)

		require.Error(t, err)
		var storeErr *custom_errors.ErrStore
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "delete", storeErr.Op)
	})
}
