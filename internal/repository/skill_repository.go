package repository

import (
	"context"

	"skill-dashboard/internal/database"
	"skill-dashboard/internal/domain/skill"
)

type SkillRepository interface {
	GetAllSkills(ctx context.Context) ([]skill.Skill, error)
	CreateSkill(ctx context.Context, s skill.Skill) (skill.Skill, error)
	UpdateSkill(ctx context.Context, id int64, toolName string, status string) (int64, error)
	DeleteSkill(ctx context.Context, id int64) (int64, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, tool_name, category, status FROM skills ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.ToolName, &s.Category, &s.Status); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	s = s.WithDefaults()
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (tool_name, category, status) VALUES ($1, $2, $3) RETURNING id`,
		s.ToolName, s.Category, s.Status,
	)
	if err := row.Scan(&s.ID); err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}

// UpdateSkill returns the affected row count; zero is not an error.
func (r *PostgresSkillRepository) UpdateSkill(ctx context.Context, id int64, toolName string, status string) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE skills SET tool_name = $1, status = $2 WHERE id = $3`,
		toolName, status, id,
	)
}

// DeleteSkill returns the affected row count; zero is not an error.
func (r *PostgresSkillRepository) DeleteSkill(ctx context.Context, id int64) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
}

var _ SkillRepository = (*PostgresSkillRepository)(nil)
