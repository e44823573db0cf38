// Package migration provides a registry-based database migration runner.
//
// Define migrations in database/migrations and register them from init():
//
//	func init() {
//	    migration.Register("20260301000000_create_customers_table", &CreateCustomersTable{})
//	}
//
// Run from the CLI:
//
//	ordercrm migrate
//	ordercrm migrate:rollback
//	ordercrm migrate:status
package migration

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/ordercrm/pkg/logger"
)

// Migration is the interface every migration implements.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// record is the row stored in the tracking table.
type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "schema_migrations" }

type entry struct {
	name string
	m    Migration
}

var registry []entry

// Register adds a migration to the global registry. Use a
// timestamp-prefixed name so registration order matches file order.
func Register(name string, m Migration) {
	registry = append(registry, entry{name: name, m: m})
}

// Runner executes and tracks migrations.
type Runner struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

// EnsureTable creates the tracking table if missing.
func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&record{})
}

func (r *Runner) ranSet() (map[string]bool, int, error) {
	var rows []record
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	ran := make(map[string]bool, len(rows))
	maxBatch := 0
	for _, row := range rows {
		ran[row.Name] = true
		if row.Batch > maxBatch {
			maxBatch = row.Batch
		}
	}
	return ran, maxBatch, nil
}

// Up runs every pending migration in one new batch.
func (r *Runner) Up() error {
	if err := r.EnsureTable(); err != nil {
		return err
	}

	ran, maxBatch, err := r.ranSet()
	if err != nil {
		return err
	}

	batch := maxBatch + 1
	applied := 0
	for _, e := range registry {
		if ran[e.name] {
			continue
		}

		logger.Info("migrating", "name", e.name)
		if err := e.m.Up(r.db); err != nil {
			return fmt.Errorf("migration %q: %w", e.name, err)
		}
		if err := r.db.Create(&record{Name: e.name, Batch: batch}).Error; err != nil {
			return fmt.Errorf("migration %q: record: %w", e.name, err)
		}
		applied++
	}

	if applied == 0 {
		logger.Info("nothing to migrate")
	}
	return nil
}

// Rollback reverses the most recent batch in reverse registration order.
func (r *Runner) Rollback() error {
	if err := r.EnsureTable(); err != nil {
		return err
	}

	_, maxBatch, err := r.ranSet()
	if err != nil {
		return err
	}
	if maxBatch == 0 {
		logger.Info("nothing to rollback")
		return nil
	}

	var rows []record
	if err := r.db.Where("batch = ?", maxBatch).Find(&rows).Error; err != nil {
		return err
	}

	inBatch := make(map[string]bool, len(rows))
	for _, row := range rows {
		inBatch[row.Name] = true
	}

	for i := len(registry) - 1; i >= 0; i-- {
		e := registry[i]
		if !inBatch[e.name] {
			continue
		}

		logger.Info("rolling back", "name", e.name)
		if err := e.m.Down(r.db); err != nil {
			return fmt.Errorf("rollback %q: %w", e.name, err)
		}
		if err := r.db.Where("name = ?", e.name).Delete(&record{}).Error; err != nil {
			return fmt.Errorf("rollback %q: record: %w", e.name, err)
		}
	}

	return nil
}

// Status prints each registered migration with its run state.
func (r *Runner) Status() error {
	if err := r.EnsureTable(); err != nil {
		return err
	}

	ran, _, err := r.ranSet()
	if err != nil {
		return err
	}

	for _, e := range registry {
		state := "pending"
		if ran[e.name] {
			state = "ran"
		}
		fmt.Printf("  %-8s %s\n", state, e.name)
	}
	return nil
}
