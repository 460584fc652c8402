package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	"github.com/vladimiradmaev/vaidya-health/internal/testutil"
)

func TestReportRepositoryCreateAndGet(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	report := &domain.HealthReport{
		UserID:  7,
		Title:   "Lipid panel",
		Content: "Cholesterol 220, BP 140/90",
		Analysis: &domain.HealthReportAnalysis{
			OverallHealth:   "Fair",
			KeyFindings:     []string{"Elevated cholesterol"},
			Recommendations: []string{"Reduce saturated fat"},
			RiskFactors:     []string{"High cholesterol"},
			HealthScore:     45,
			Summary:         "Cardiovascular risk is raised.",
		},
	}
	require.NoError(t, repo.Create(ctx, report))
	require.NotEmpty(t, report.ID)
	assert.False(t, report.CreatedAt.IsZero())

	got, err := repo.Get(ctx, 7, report.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, report.Analysis, got.Analysis)
	assert.Equal(t, "Lipid panel", got.Title)

	other, err := repo.Get(ctx, 8, report.ID)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestReportRepositoryStoresMissingAnalysisAsNil(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	report := &domain.HealthReport{UserID: 1, Title: "Notes", Content: "felt dizzy"}
	require.NoError(t, repo.Create(ctx, report))

	got, err := repo.Get(ctx, 1, report.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Analysis)
	assert.False(t, got.HasAnalysis())
}

func TestReportRepositoryListNewestFirstAndScoped(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &domain.HealthReport{
			UserID:    1,
			Title:     title,
			Content:   "content",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, repo.Create(ctx, &domain.HealthReport{UserID: 2, Title: "foreign", Content: "content"}))

	reports, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "third", reports[0].Title)
	assert.Equal(t, "second", reports[1].Title)
	assert.Equal(t, "first", reports[2].Title)

	empty, err := repo.List(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReportRepositoryDeleteRequiresOwner(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	report := &domain.HealthReport{UserID: 1, Title: "mine", Content: "content"}
	require.NoError(t, repo.Create(ctx, report))

	affected, err := repo.Delete(ctx, 2, report.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	affected, err = repo.Delete(ctx, 1, "no-such-id")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	reports, err := repo.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, reports, 1)

	affected, err = repo.Delete(ctx, 1, report.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	reports, err = repo.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, reports)
}
