package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"skill-dashboard/internal/domain/skill"
	"skill-dashboard/internal/repository"
)

type AddSkillInput struct {
	ToolName string
	Category string
	Status   string
}

type UpdateSkillInput struct {
	ToolName string
	Status   string
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	AddSkill(ctx context.Context, in AddSkillInput) (skill.Skill, error)
	UpdateSkill(ctx context.Context, rawID string, in UpdateSkillInput) error
	DeleteSkill(ctx context.Context, rawID string) error
}

type Skill struct {
	repo repository.SkillRepository
}

func NewSkillUsecase(repo repository.SkillRepository) *Skill {
	return &Skill{repo: repo}
}

func (u *Skill) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	items, err := u.repo.GetAllSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w: %w", ErrInternal, err)
	}
	return items, nil
}

// AddSkill always inserts. An empty tool name is stored as sent.
func (u *Skill) AddSkill(ctx context.Context, in AddSkillInput) (skill.Skill, error) {
	created, err := u.repo.CreateSkill(ctx, skill.Skill{
		ToolName: in.ToolName,
		Category: strings.TrimSpace(in.Category),
		Status:   strings.TrimSpace(in.Status),
	})
	if err != nil {
		return skill.Skill{}, fmt.Errorf("create skill: %w: %w", ErrInternal, err)
	}
	return created, nil
}

// UpdateSkill succeeds when no row matches, including ids that are not
// integers at all.
func (u *Skill) UpdateSkill(ctx context.Context, rawID string, in UpdateSkillInput) error {
	id, ok := ParseSkillID(rawID)
	if !ok {
		return nil
	}
	if _, err := u.repo.UpdateSkill(ctx, id, in.ToolName, in.Status); err != nil {
		return fmt.Errorf("update skill %d: %w: %w", id, ErrInternal, err)
	}
	return nil
}

// DeleteSkill succeeds when no row matches.
func (u *Skill) DeleteSkill(ctx context.Context, rawID string) error {
	id, ok := ParseSkillID(rawID)
	if !ok {
		return nil
	}
	if _, err := u.repo.DeleteSkill(ctx, id); err != nil {
		return fmt.Errorf("delete skill %d: %w: %w", id, ErrInternal, err)
	}
	return nil
}

// ParseSkillID accepts base-10 integers only. Anything else cannot match a
// row.
func ParseSkillID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
