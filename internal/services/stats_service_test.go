package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	apperrors "github.com/vladimiradmaev/vaidya-health/internal/errors"
	"github.com/vladimiradmaev/vaidya-health/internal/repository"
	"github.com/vladimiradmaev/vaidya-health/internal/testutil"
)

var statsBase = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func analyzedReport(day, score int, recs, risks []string) domain.HealthReport {
	return domain.HealthReport{
		ID:        fmt.Sprintf("r%d", day),
		CreatedAt: statsBase.AddDate(0, 0, day),
		Analysis: &domain.HealthReportAnalysis{
			HealthScore:     score,
			Recommendations: recs,
			RiskFactors:     risks,
		},
	}
}

func TestComputeHealthStatsEmpty(t *testing.T) {
	stats := ComputeHealthStats(nil)

	assert.Zero(t, stats.TotalReports)
	assert.Zero(t, stats.AverageHealthScore)
	assert.Zero(t, stats.LatestScore)
	assert.NotNil(t, stats.ScoreHistory)
	assert.Empty(t, stats.ScoreHistory)
	assert.NotNil(t, stats.TopRecommendations)
	assert.Empty(t, stats.TopRecommendations)
	assert.NotNil(t, stats.RiskFactors)
	assert.Empty(t, stats.RiskFactors)
}

func TestComputeHealthStatsScores(t *testing.T) {
	reports := []domain.HealthReport{
		analyzedReport(1, 60, nil, nil),
		{ID: "pending", CreatedAt: statsBase.AddDate(0, 0, 5)},
		analyzedReport(3, 71, nil, nil),
		analyzedReport(2, 0, nil, nil),
	}

	stats := ComputeHealthStats(reports)
	assert.Equal(t, 4, stats.TotalReports)
	// (60 + 71 + 0) / 3 = 43.67
	assert.Equal(t, 44, stats.AverageHealthScore)
	assert.Equal(t, 71, stats.LatestScore)

	require.Len(t, stats.ScoreHistory, 3)
	assert.Equal(t, []int{60, 0, 71}, scores(stats.ScoreHistory))
	assert.True(t, stats.ScoreHistory[0].Date.Before(stats.ScoreHistory[2].Date))
}

func TestComputeHealthStatsHistoryKeepsNewestTen(t *testing.T) {
	var reports []domain.HealthReport
	for day := 1; day <= 12; day++ {
		reports = append(reports, analyzedReport(day, day, nil, nil))
	}

	stats := ComputeHealthStats(reports)
	require.Len(t, stats.ScoreHistory, 10)
	assert.Equal(t, []int{3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, scores(stats.ScoreHistory))
	assert.Equal(t, 12, stats.LatestScore)
	// mean of 1..12 is 6.5
	assert.Equal(t, 7, stats.AverageHealthScore)
}

func TestComputeHealthStatsRecommendationsAndRisks(t *testing.T) {
	reports := []domain.HealthReport{
		analyzedReport(1, 50, []string{"Sleep more", "Walk daily", "Drink water"}, []string{"Obesity", "Smoking"}),
		analyzedReport(2, 55, []string{"Walk daily", "Cut sugar"}, []string{"Smoking", "Hypertension"}),
		analyzedReport(3, 60, []string{"Cut sugar", "Walk daily", "Stretch", "Meditate", "Eat fiber"}, []string{"Diabetes", "Anemia", "Asthma", "Obesity"}),
	}

	stats := ComputeHealthStats(reports)
	// newest first: day 3, day 2, day 1
	assert.Equal(t, []string{"Walk daily", "Cut sugar", "Stretch", "Meditate", "Eat fiber"}, stats.TopRecommendations)
	assert.Equal(t, []string{"Diabetes", "Anemia", "Asthma", "Obesity", "Smoking"}, stats.RiskFactors)
}

func TestComputeStatsRequiresSession(t *testing.T) {
	svc := NewStatsService(repository.NewReportRepository(testutil.OpenTestDB(t)))

	_, err := svc.ComputeStats(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)

	stats, err := svc.ComputeStats(signedIn(3))
	require.NoError(t, err)
	assert.Zero(t, stats.TotalReports)
	assert.Empty(t, stats.RiskFactors)
}

func scores(points []domain.ScorePoint) []int {
	out := make([]int, 0, len(points))
	for _, p := range points {
		out = append(out, p.Score)
	}
	return out
}
