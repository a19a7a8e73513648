package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozplan/ozplan/internal/domain"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "recs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRecommendation(userID, key string) *domain.StrategyRecommendation {
	now := time.Now().UTC()
	return &domain.StrategyRecommendation{
		UserID:      userID,
		SemanticKey: key,
		Finding: domain.StrategyFinding{
			Category:         domain.CategoryDebt,
			Severity:         domain.SeverityWarning,
			Title:            "Refinance the variable loan",
			Summary:          "Rate is above market",
			Detail:           "detail",
			Score:            decimal.NewFromInt(75),
			Confidence:       decimal.NewFromFloat(0.8),
			ProjectedBenefit: decimal.NewFromInt(3200),
			AffectedEntities: []string{"loan-1"},
			ActionSteps:      []string{"Request a rate review", "Compare lenders"},
		},
		Status:    domain.RecommendationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestNewSQLiteStoreRequiresPath(t *testing.T) {
	_, err := NewSQLiteStore("")
	require.Error(t, err)
}

func TestSaveAndListRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	rec := testRecommendation("user-1", "DEBT:loan-1")
	require.NoError(t, store.SaveRecommendation(ctx, rec))
	require.NotZero(t, rec.ID, "save must write back the generated id")

	recs, err := store.ListForUser(ctx, "user-1", "")
	require.NoError(t, err)
	require.Len(t, recs, 1)

	got := recs[0]
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "DEBT:loan-1", got.SemanticKey)
	assert.Equal(t, domain.CategoryDebt, got.Finding.Category)
	assert.Equal(t, domain.SeverityWarning, got.Finding.Severity)
	assert.True(t, decimal.NewFromInt(75).Equal(got.Finding.Score))
	assert.True(t, decimal.NewFromFloat(0.8).Equal(got.Finding.Confidence))
	assert.True(t, decimal.NewFromInt(3200).Equal(got.Finding.ProjectedBenefit))
	assert.Equal(t, []string{"loan-1"}, got.Finding.AffectedEntities)
	assert.Equal(t, []string{"Request a rate review", "Compare lenders"}, got.Finding.ActionSteps)
	assert.Equal(t, domain.RecommendationPending, got.Status)
	assert.True(t, got.Open())
}

func TestSaveReplacesPendingDuplicate(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first := testRecommendation("user-1", "DEBT:loan-1")
	require.NoError(t, store.SaveRecommendation(ctx, first))

	second := testRecommendation("user-1", "DEBT:loan-1")
	second.Finding.Score = decimal.NewFromInt(90)
	require.NoError(t, store.SaveRecommendation(ctx, second))

	recs, err := store.ListForUser(ctx, "user-1", domain.RecommendationPending)
	require.NoError(t, err)
	require.Len(t, recs, 1, "one PENDING row per user and semantic key")
	assert.True(t, decimal.NewFromInt(90).Equal(recs[0].Finding.Score))
}

func TestSaveAllowsDuplicateKeyAcrossUsers(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecommendation(ctx, testRecommendation("user-1", "DEBT:loan-1")))
	require.NoError(t, store.SaveRecommendation(ctx, testRecommendation("user-2", "DEBT:loan-1")))

	one, err := store.ListForUser(ctx, "user-1", "")
	require.NoError(t, err)
	two, err := store.ListForUser(ctx, "user-2", "")
	require.NoError(t, err)
	assert.Len(t, one, 1)
	assert.Len(t, two, 1)
}

func TestAcceptTransition(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	rec := testRecommendation("user-1", "DEBT:loan-1")
	require.NoError(t, store.SaveRecommendation(ctx, rec))
	require.NoError(t, store.Accept(ctx, rec.ID, "doing it next week"))

	recs, err := store.ListForUser(ctx, "user-1", domain.RecommendationAccepted)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "doing it next week", recs[0].Notes)
	require.NotNil(t, recs[0].AcceptedAt)
	assert.False(t, recs[0].Open())

	// Accepted rows cannot transition again.
	require.Error(t, store.Accept(ctx, rec.ID, ""))
	require.Error(t, store.Dismiss(ctx, rec.ID, ""))
}

func TestDismissTransition(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	rec := testRecommendation("user-1", "DEBT:loan-1")
	require.NoError(t, store.SaveRecommendation(ctx, rec))
	require.NoError(t, store.Dismiss(ctx, rec.ID, "already refinanced"))

	recs, err := store.ListForUser(ctx, "user-1", domain.RecommendationDismissed)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "already refinanced", recs[0].DismissReason)
	require.NotNil(t, recs[0].DismissedAt)
}

func TestTransitionUnknownID(t *testing.T) {
	store := testStore(t)
	require.Error(t, store.Accept(context.Background(), 9999, ""))
}

func TestFreshPendingKeys(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	fresh := testRecommendation("user-1", "DEBT:loan-1")
	require.NoError(t, store.SaveRecommendation(ctx, fresh))

	stale := testRecommendation("user-1", "TAX:general")
	stale.CreatedAt = time.Now().UTC().Add(-10 * 24 * time.Hour)
	stale.UpdatedAt = stale.CreatedAt
	require.NoError(t, store.SaveRecommendation(ctx, stale))

	keys, err := store.FreshPendingKeys(ctx, "user-1", time.Now().UTC().Add(-7*24*time.Hour))
	require.NoError(t, err)

	assert.True(t, keys["DEBT:loan-1"])
	assert.False(t, keys["TAX:general"])
}

func TestExpirePendingForUser(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecommendation(ctx, testRecommendation("user-1", "DEBT:loan-1")))
	require.NoError(t, store.SaveRecommendation(ctx, testRecommendation("user-1", "TAX:general")))
	require.NoError(t, store.SaveRecommendation(ctx, testRecommendation("user-2", "DEBT:loan-1")))

	expired, err := store.ExpirePendingForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), expired)

	pending, err := store.ListForUser(ctx, "user-1", domain.RecommendationPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// The other user's rows are untouched.
	otherPending, err := store.ListForUser(ctx, "user-2", domain.RecommendationPending)
	require.NoError(t, err)
	assert.Len(t, otherPending, 1)
}

func TestExpireStale(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	old := testRecommendation("user-1", "DEBT:loan-1")
	old.CreatedAt = time.Now().UTC().Add(-31 * 24 * time.Hour)
	old.UpdatedAt = old.CreatedAt
	require.NoError(t, store.SaveRecommendation(ctx, old))

	recent := testRecommendation("user-1", "TAX:general")
	require.NoError(t, store.SaveRecommendation(ctx, recent))

	expired, err := store.ExpireStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	pending, err := store.ListForUser(ctx, "user-1", domain.RecommendationPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "TAX:general", pending[0].SemanticKey)

	expiredRecs, err := store.ListForUser(ctx, "user-1", domain.RecommendationExpired)
	require.NoError(t, err)
	require.Len(t, expiredRecs, 1)
	assert.Equal(t, "DEBT:loan-1", expiredRecs[0].SemanticKey)
}
