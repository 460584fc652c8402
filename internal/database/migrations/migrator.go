package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/vladimiradmaev/vaidya-health/internal/logger"
	"gorm.io/gorm"
)

// Files holds the SQL migrations shipped with the binary
//
//go:embed sql/*.sql
var Files embed.FS

// Migration represents a database migration
type Migration struct {
	ID   string
	Up   func(*gorm.DB) error
	Down func(*gorm.DB) error
}

// Registry keeps migrations by id. Migrations run in lexical id order.
type Registry struct {
	migrations map[string]Migration
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{migrations: make(map[string]Migration)}
}

// Register adds a new migration to the registry
func (r *Registry) Register(id string, up, down func(*gorm.DB) error) {
	r.migrations[id] = Migration{
		ID:   id,
		Up:   up,
		Down: down,
	}
}

// IDs returns the registered ids in execution order
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.migrations))
	for id := range r.migrations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Run executes all pending migrations and records them
func (r *Registry) Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var executed []MigrationRecord
	if err := db.Find(&executed).Error; err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	executedMap := make(map[string]bool, len(executed))
	for _, m := range executed {
		executedMap[m.ID] = true
	}

	for _, id := range r.IDs() {
		if executedMap[id] {
			continue
		}

		migration := r.migrations[id]
		logger.Info("Running migration", "id", id)
		if err := migration.Up(db); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", id, err)
		}

		if err := db.Create(&MigrationRecord{ID: id}).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", id, err)
		}
		logger.Info("Completed migration", "id", id)
	}

	return nil
}

// MigrationRecord represents a record of executed migrations
type MigrationRecord struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

// LoadSQLMigrations registers every .sql file found in dir of fsys
func (r *Registry) LoadSQLMigrations(fsys fs.FS, dir string) error {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		id := strings.TrimSuffix(file.Name(), ".sql")
		content, err := fs.ReadFile(fsys, path.Join(dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}

		statement := string(content)
		r.Register(id, func(db *gorm.DB) error {
			return db.Exec(statement).Error
		}, nil) // No down migration for SQL files
	}

	return nil
}
