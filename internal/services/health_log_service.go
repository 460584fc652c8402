package services

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	apperrors "github.com/vladimiradmaev/vaidya-health/internal/errors"
	"github.com/vladimiradmaev/vaidya-health/internal/logger"
	"github.com/vladimiradmaev/vaidya-health/internal/session"
)

// NewHealthLog is a metric reading as entered by the user
type NewHealthLog struct {
	Type  string `validate:"required,oneof=blood_pressure blood_sugar heart_rate temperature weight"`
	Value string `validate:"required,max=64"`
	Notes string `validate:"max=500"`
}

var metricAliases = map[string]string{
	"bp":       domain.MetricBloodPressure,
	"pressure": domain.MetricBloodPressure,
	"sugar":    domain.MetricBloodSugar,
	"glucose":  domain.MetricBloodSugar,
	"hr":       domain.MetricHeartRate,
	"pulse":    domain.MetricHeartRate,
	"temp":     domain.MetricTemperature,
}

var leadingNumber = regexp.MustCompile(`^\s*(-?\d+(?:[.,]\d+)?)`)

type HealthLogService struct {
	logs domain.HealthLogRepository
}

func NewHealthLogService(logs domain.HealthLogRepository) *HealthLogService {
	return &HealthLogService{logs: logs}
}

// AddLog records a reading for the signed-in user
func (s *HealthLogService) AddLog(ctx context.Context, in NewHealthLog) (*domain.HealthLog, error) {
	userID, err := session.UserID(ctx)
	if err != nil {
		return nil, err
	}

	in.Value = strings.TrimSpace(in.Value)
	in.Notes = strings.TrimSpace(in.Notes)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	entry := &domain.HealthLog{
		UserID:     userID,
		Type:       in.Type,
		Value:      in.Value,
		Notes:      in.Notes,
		RecordedAt: time.Now(),
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	logger.Info("Health metric logged", "user_id", userID, "type", in.Type)
	return entry, nil
}

// LatestReadings returns the newest reading of every metric type the user
// has logged, in domain.MetricTypes order.
func (s *HealthLogService) LatestReadings(ctx context.Context) ([]domain.MetricReading, error) {
	userID, err := session.UserID(ctx)
	if err != nil {
		return nil, err
	}

	readings := make([]domain.MetricReading, 0, len(domain.MetricTypes))
	for _, metricType := range domain.MetricTypes {
		recent, err := s.logs.RecentByType(ctx, userID, metricType, 2)
		if err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		if len(recent) == 0 {
			continue
		}

		trend := domain.TrendStable
		if len(recent) == 2 {
			trend = MetricTrend(recent[1].Value, recent[0].Value)
		}

		readings = append(readings, domain.MetricReading{
			Type:       metricType,
			Value:      recent[0].Value,
			Notes:      recent[0].Notes,
			Trend:      trend,
			RecordedAt: recent[0].RecordedAt,
		})
	}
	return readings, nil
}

// ParseMetricType resolves a canonical metric type or one of its short aliases
func ParseMetricType(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range domain.MetricTypes {
		if t == name {
			return t, true
		}
	}
	t, ok := metricAliases[name]
	return t, ok
}

// MetricTrend compares the leading numbers of two readings. For blood
// pressure that is the systolic value. Unparseable readings are stable.
func MetricTrend(previous, current string) string {
	prev, ok := leadingValue(previous)
	if !ok {
		return domain.TrendStable
	}
	curr, ok := leadingValue(current)
	if !ok {
		return domain.TrendStable
	}

	switch {
	case curr > prev:
		return domain.TrendUp
	case curr < prev:
		return domain.TrendDown
	default:
		return domain.TrendStable
	}
}

func leadingValue(s string) (float64, bool) {
	m := leadingNumber.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
