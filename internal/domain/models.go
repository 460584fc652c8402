package domain

import (
	"time"
)

// User represents a telegram user in the system
type User struct {
	ID         uint
	CreatedAt  time.Time
	UpdatedAt  time.Time
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

// HealthReport is one user-submitted report. Title and Content never change
// after creation.
type HealthReport struct {
	ID        string
	UserID    uint
	Title     string
	Content   string
	FileURL   string
	Analysis  *HealthReportAnalysis
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAnalysis reports whether the model produced an analysis for the report
func (r HealthReport) HasAnalysis() bool {
	return r.Analysis != nil
}

// HealthReportAnalysis is the structured reply of the model. It is stored
// inside its report and is either complete or absent.
type HealthReportAnalysis struct {
	OverallHealth   string   `json:"overallHealth"`
	KeyFindings     []string `json:"keyFindings"`
	Recommendations []string `json:"recommendations"`
	RiskFactors     []string `json:"riskFactors"`
	HealthScore     int      `json:"healthScore"`
	Summary         string   `json:"summary"`
}

// ScorePoint is one entry of the score history
type ScorePoint struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

// HealthStats is recomputed from the report list on every request
type HealthStats struct {
	TotalReports       int          `json:"totalReports"`
	AverageHealthScore int          `json:"averageHealthScore"`
	LatestScore        int          `json:"latestScore"`
	ScoreHistory       []ScorePoint `json:"scoreHistory"`
	TopRecommendations []string     `json:"topRecommendations"`
	RiskFactors        []string     `json:"riskFactors"`
}

// ChatRole is the author of a chat turn
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// Label is the capitalised role name used when rendering context lines
func (r ChatRole) Label() string {
	switch r {
	case ChatRoleAssistant:
		return "Assistant"
	default:
		return "User"
	}
}

// ChatTurn is one message of the assistant conversation
type ChatTurn struct {
	ID        uint
	UserID    uint
	Role      ChatRole
	Text      string
	CreatedAt time.Time
}

// DailyTask is one item of a user's checklist for a calendar day
type DailyTask struct {
	ID          uint
	UserID      uint
	Day         string // Format: "2006-01-02"
	Title       string
	Description string
	Type        string // medication, meal, activity, hydration, monitoring
	Time        string // Format: "HH:MM"
	Priority    string // high, medium, low
	Completed   bool
	CreatedAt   time.Time
}

// TaskProgress summarises a checklist
type TaskProgress struct {
	Completed int
	Total     int
	Percent   float64
}

// Health metric types accepted by the log
const (
	MetricBloodPressure = "blood_pressure"
	MetricBloodSugar    = "blood_sugar"
	MetricHeartRate     = "heart_rate"
	MetricTemperature   = "temperature"
	MetricWeight        = "weight"
)

// MetricTypes lists the metric types in display order
var MetricTypes = []string{
	MetricBloodPressure,
	MetricBloodSugar,
	MetricHeartRate,
	MetricTemperature,
	MetricWeight,
}

// HealthLog is a single metric reading
type HealthLog struct {
	ID         uint
	UserID     uint
	Type       string
	Value      string
	Notes      string
	RecordedAt time.Time
}

// Trend values of a metric reading
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// MetricReading is the latest reading of one metric type
type MetricReading struct {
	Type       string
	Value      string
	Notes      string
	Trend      string
	RecordedAt time.Time
}
