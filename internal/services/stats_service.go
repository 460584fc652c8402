package services

import (
	"context"
	"math"
	"sort"

	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	apperrors "github.com/vladimiradmaev/vaidya-health/internal/errors"
	"github.com/vladimiradmaev/vaidya-health/internal/session"
)

const (
	scoreHistoryLimit       = 10
	topRecommendationsLimit = 5
	riskFactorsLimit        = 5
)

type StatsService struct {
	reports domain.ReportRepository
}

func NewStatsService(reports domain.ReportRepository) *StatsService {
	return &StatsService{reports: reports}
}

// ComputeStats aggregates the signed-in user's reports. Nothing is cached.
func (s *StatsService) ComputeStats(ctx context.Context) (*domain.HealthStats, error) {
	userID, err := session.UserID(ctx)
	if err != nil {
		return nil, err
	}

	reports, err := s.reports.List(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	stats := ComputeHealthStats(reports)
	return &stats, nil
}

// ComputeHealthStats is the pure aggregation over a report list in any order.
// Only analyzed reports contribute scores, recommendations and risks.
func ComputeHealthStats(reports []domain.HealthReport) domain.HealthStats {
	stats := domain.HealthStats{
		TotalReports:       len(reports),
		ScoreHistory:       []domain.ScorePoint{},
		TopRecommendations: []string{},
		RiskFactors:        []string{},
	}

	// newest first
	analyzed := make([]domain.HealthReport, 0, len(reports))
	for _, r := range reports {
		if r.Analysis != nil {
			analyzed = append(analyzed, r)
		}
	}
	sort.SliceStable(analyzed, func(i, j int) bool {
		return analyzed[i].CreatedAt.After(analyzed[j].CreatedAt)
	})

	if len(analyzed) == 0 {
		return stats
	}

	sum := 0
	for _, r := range analyzed {
		sum += r.Analysis.HealthScore
	}
	stats.AverageHealthScore = int(math.Round(float64(sum) / float64(len(analyzed))))
	stats.LatestScore = analyzed[0].Analysis.HealthScore

	n := min(len(analyzed), scoreHistoryLimit)
	history := make([]domain.ScorePoint, n)
	for i := 0; i < n; i++ {
		history[n-1-i] = domain.ScorePoint{
			Date:  analyzed[i].CreatedAt,
			Score: analyzed[i].Analysis.HealthScore,
		}
	}
	stats.ScoreHistory = history

	counts := make(map[string]int)
	var recommendations []string
	seenRisks := make(map[string]bool)

	for _, r := range analyzed {
		for _, rec := range r.Analysis.Recommendations {
			if counts[rec] == 0 {
				recommendations = append(recommendations, rec)
			}
			counts[rec]++
		}
		for _, risk := range r.Analysis.RiskFactors {
			if seenRisks[risk] {
				continue
			}
			seenRisks[risk] = true
			if len(stats.RiskFactors) < riskFactorsLimit {
				stats.RiskFactors = append(stats.RiskFactors, risk)
			}
		}
	}

	// ties keep first-seen order
	sort.SliceStable(recommendations, func(i, j int) bool {
		return counts[recommendations[i]] > counts[recommendations[j]]
	})
	if len(recommendations) > topRecommendationsLimit {
		recommendations = recommendations[:topRecommendationsLimit]
	}
	stats.TopRecommendations = append(stats.TopRecommendations, recommendations...)

	return stats
}
