package strategy

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozplan/ozplan/internal/domain"
	"github.com/ozplan/ozplan/internal/storage"
)

// End-to-end over the real store: rerunning the pipeline with
// forceRefresh off must not create duplicate PENDING rows.
func TestGenerateStrategiesIdempotentOverSQLite(t *testing.T) {
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "recs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	pipeline := NewPipeline(store, nil).WithAnalyzers([]Analyzer{
		&stubAnalyzer{name: "debt", findings: []domain.StrategyFinding{
			finding(domain.CategoryDebt, "loan-1", 80, 0.9),
			finding(domain.CategoryCashflow, "", 60, 0.8),
		}},
	})

	ctx := context.Background()
	snapshot := fullSnapshot()
	opts := GenerateOptions{UserID: "user-1"}

	first, err := pipeline.GenerateStrategies(ctx, snapshot, opts)
	require.NoError(t, err)
	require.Len(t, first.Recommendations, 2)
	assert.Equal(t, 0, first.Metadata.SkippedFresh)

	second, err := pipeline.GenerateStrategies(ctx, snapshot, opts)
	require.NoError(t, err)
	assert.Empty(t, second.Recommendations, "fresh keys must suppress regeneration")
	assert.Equal(t, 2, second.Metadata.SkippedFresh)

	pending, err := store.ListForUser(ctx, "user-1", domain.RecommendationPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2, "rerun must not duplicate pending rows")
}

func TestGenerateStrategiesForceRefreshOverSQLite(t *testing.T) {
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "recs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	pipeline := NewPipeline(store, nil).WithAnalyzers([]Analyzer{
		&stubAnalyzer{name: "debt", findings: []domain.StrategyFinding{
			finding(domain.CategoryDebt, "loan-1", 80, 0.9),
		}},
	})

	ctx := context.Background()
	snapshot := fullSnapshot()

	_, err = pipeline.GenerateStrategies(ctx, snapshot, GenerateOptions{UserID: "user-1"})
	require.NoError(t, err)

	refreshed, err := pipeline.GenerateStrategies(ctx, snapshot, GenerateOptions{UserID: "user-1", ForceRefresh: true})
	require.NoError(t, err)
	require.Len(t, refreshed.Recommendations, 1)

	pending, err := store.ListForUser(ctx, "user-1", domain.RecommendationPending)
	require.NoError(t, err)
	require.Len(t, pending, 1, "force refresh supersedes the previous pending set")
	assert.True(t, decimal.NewFromInt(80).Equal(pending[0].Finding.Score))

	expired, err := store.ListForUser(ctx, "user-1", domain.RecommendationExpired)
	require.NoError(t, err)
	assert.Len(t, expired, 1)
}
