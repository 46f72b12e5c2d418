package usecase

import (
	"context"
	"fmt"

	"skill-dashboard/internal/infrastructure/completion"
	"skill-dashboard/internal/repository"
)

// EmptySkillsReview is returned instead of calling the completion service
// when there is nothing to review.
const EmptySkillsReview = "你还没有添加任何技能，先去添加几个再来让 AI 点评吧！"

type ReviewUsecase interface {
	Review(ctx context.Context) (string, error)
}

type Review struct {
	skills    repository.SkillRepository
	completer completion.Completer
}

func NewReviewUsecase(skills repository.SkillRepository, completer completion.Completer) *Review {
	return &Review{skills: skills, completer: completer}
}

func (u *Review) Review(ctx context.Context) (string, error) {
	items, err := u.skills.GetAllSkills(ctx)
	if err != nil {
		return "", fmt.Errorf("review skills: %w: %w", ErrInternal, err)
	}
	if len(items) == 0 {
		return EmptySkillsReview, nil
	}
	if u.completer == nil {
		return "", fmt.Errorf("%w: no completer configured", ErrCompletion)
	}

	user := completion.BuildUserPrompt(completion.BuildSkillSummary(items))
	text, err := u.completer.Complete(ctx, completion.SystemInstruction, user)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCompletion, err)
	}
	return text, nil
}
