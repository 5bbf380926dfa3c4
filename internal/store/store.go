// Package store persists generated compliance reports as projects in a
// local SQLite database.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Project is one saved report run.
type Project struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	SystemName      string    `json:"system_name"`
	IntendedPurpose string    `json:"intended_purpose"`
	UseCase         string    `json:"use_case"`
	ReportMD        string    `gorm:"column:report_md" json:"report_md"`
	SourcesJSON     string    `gorm:"column:sources_json" json:"sources_json"`
	TotalTokens     int       `json:"total_tokens"`
	CostUSD         float64   `gorm:"column:cost_usd" json:"cost_usd"`
}

// ErrNotFound is returned when a project id does not exist.
var ErrNotFound = errors.New("project not found")

// ProjectStore provides CRUD over saved projects.
type ProjectStore struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at path and migrates
// the schema.
func Open(path string) (*ProjectStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot open database %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Project{}); err != nil {
		return nil, fmt.Errorf("cannot migrate database %s: %w", path, err)
	}
	return &ProjectStore{db: db}, nil
}

// Save inserts p and fills in its generated fields.
func (s *ProjectStore) Save(ctx context.Context, p *Project) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("cannot save project: %w", err)
	}
	return nil
}

// List returns all projects, newest first.
func (s *ProjectStore) List(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("cannot list projects: %w", err)
	}
	return out, nil
}

// Get returns the project with the given id.
func (s *ProjectStore) Get(ctx context.Context, id uint) (*Project, error) {
	var p Project
	err := s.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cannot load project %d: %w", id, err)
	}
	return &p, nil
}

// Delete removes the project with the given id.
func (s *ProjectStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&Project{}, id)
	if res.Error != nil {
		return fmt.Errorf("cannot delete project %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
