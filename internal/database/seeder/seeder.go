// Package seeder prepares the relational schema the API reads at boot.
// Steps are idempotent and run in order on every start.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log"

	"skill-dashboard/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Defaults is the boot sequence of the API server.
func Defaults() []Seeder {
	return []Seeder{SkillsSchema{}}
}

type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

// Run stops at the first failing step.
func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("seeder: nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("[Seeder] ok | step=%s", s.Name())
		}
	}
	return nil
}
