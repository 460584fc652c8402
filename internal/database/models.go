package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	TelegramID int64 `gorm:"uniqueIndex"`
	Username   string
	FirstName  string
	LastName   string
}

// HealthReport rows carry the analysis as a JSON document. A report whose
// analysis failed stores JSON null.
type HealthReport struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    uint   `gorm:"index;not null"`
	Title     string `gorm:"size:200;not null"`
	Content   string `gorm:"type:text;not null"`
	FileURL   string
	Analysis  datatypes.JSONType[*domain.HealthReportAnalysis]
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns the opaque report id
func (r *HealthReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type ChatTurn struct {
	gorm.Model
	UserID uint   `gorm:"index;not null"`
	Role   string `gorm:"size:16;not null"`
	Text   string `gorm:"type:text;not null"`
}

type DailyTask struct {
	gorm.Model
	UserID      uint   `gorm:"not null"`
	Day         string `gorm:"size:10;not null"` // Format: "2006-01-02"
	Title       string `gorm:"size:200;not null"`
	Description string
	Type        string `gorm:"size:32"`
	Time        string `gorm:"column:time_of_day;size:5"` // Format: "HH:MM"
	Priority    string `gorm:"size:16"`
	Completed   bool   `gorm:"default:false"`
}

type HealthLog struct {
	gorm.Model
	UserID     uint   `gorm:"not null"`
	Type       string `gorm:"size:32;not null"`
	Value      string `gorm:"size:64;not null"`
	Notes      string
	RecordedAt time.Time
}

// Models lists every table managed by AutoMigrate
func Models() []interface{} {
	return []interface{}{
		&User{},
		&HealthReport{},
		&ChatTurn{},
		&DailyTask{},
		&HealthLog{},
	}
}
