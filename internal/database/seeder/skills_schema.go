package seeder

import (
	"context"

	"skill-dashboard/internal/database"
)

// SkillsSchema creates the skills table when it is missing and checks the
// columns the repository reads. It never alters an existing table.
type SkillsSchema struct{}

func (SkillsSchema) Name() string { return "skills_schema" }

func (SkillsSchema) Run(ctx context.Context, db database.DB) error {
	_, err := db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS skills (
	id BIGSERIAL PRIMARY KEY,
	tool_name TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT 'Learning',
	status TEXT NOT NULL DEFAULT 'In Progress'
)`)
	if err != nil {
		return err
	}

	return RequireColumns(ctx, db, "skills", "id", "tool_name", "category", "status")
}
