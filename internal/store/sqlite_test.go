package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ess-tools/atlas-cli/internal/model"
	"github.com/ess-tools/atlas-cli/internal/rank"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "atlas-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testObs() []model.Observation {
	return []model.Observation{
		{ID: 1, RegionCode: "SI042", Region: "Gorenjska", Values: map[string]float64{"stflife": 7}},
		{ID: 2, RegionCode: "SI033", Region: "Koroška", Values: map[string]float64{"stflife": 5}},
	}
}

func TestSaveAndGetDataset(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec, err := s.SaveDataset(ctx, "ess10-si", "ess10.csv", testObs(), 1)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, 2, rec.Rows)
	assert.Equal(t, 1, rec.Dropped)

	got, obs, err := s.GetDataset(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "ess10-si", got.Name)
	require.Len(t, obs, 2)
	assert.Equal(t, "Gorenjska", obs[0].Region)
	assert.Equal(t, 7.0, obs[0].Values["stflife"])
}

func TestGetDatasetNotFound(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.GetDataset(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLatestDataset(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SaveDataset(ctx, "older", "a.csv", testObs(), 0)
	require.NoError(t, err)
	second, err := s.SaveDataset(ctx, "newer", "b.csv", testObs(), 0)
	require.NoError(t, err)

	latest, obs, err := s.LatestDataset(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Len(t, obs, 2)
}

func TestSaveAndListRankings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ds, err := s.SaveDataset(ctx, "ess10-si", "ess10.csv", testObs(), 0)
	require.NoError(t, err)

	res := rank.Result{
		Threshold: 0.42,
		Reports: []rank.Report{
			{Variable: "stflife", Label: "Life satisfaction", SD: 0.5, Outcome: rank.OutcomeAppropriate},
		},
	}

	rec, err := s.SaveRanking(ctx, ds.ID, res, []string{"stflife"})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	got, err := s.GetRanking(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.ID, got.DatasetID)
	assert.InDelta(t, 0.42, got.Threshold, 1e-9)
	require.Len(t, got.Reports, 1)
	assert.Equal(t, rank.OutcomeAppropriate, got.Reports[0].Outcome)
	assert.Equal(t, []string{"stflife"}, got.Variables)

	list, err := s.ListRankings(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, rec.ID, list[0].ID)
}

func TestGetRankingNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRanking(context.Background(), "missing")
	require.Error(t, err)
}

func TestListRankingsDefaultLimit(t *testing.T) {
	s := newTestStore(t)

	list, err := s.ListRankings(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}
