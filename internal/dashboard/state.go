package dashboard

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"skill-dashboard/internal/domain/news"
	"skill-dashboard/internal/domain/skill"
)

// ErrReviewInProgress is returned when a review is requested while one is
// still running.
var ErrReviewInProgress = errors.New("ai review already in progress")

type API interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	CreateSkill(ctx context.Context, s skill.Skill) (skill.Skill, error)
	UpdateSkill(ctx context.Context, id int64, toolName string, status string) error
	DeleteSkill(ctx context.Context, id int64) error
	LatestNews(ctx context.Context) ([]news.Item, error)
	Review(ctx context.Context) (string, error)
}

// State is the dashboard view model. Local lists are reconciled from
// mutation responses and never re-fetched after a mutation.
type State struct {
	api    API
	logger *log.Logger

	mu       sync.Mutex
	skills   []skill.Skill
	news     []news.Item
	input    string
	editID   *int64
	aiReview string
	loading  bool
}

func NewState(api API, logger *log.Logger) *State {
	if logger == nil {
		logger = log.Default()
	}
	return &State{api: api, logger: logger, skills: []skill.Skill{}, news: []news.Item{}}
}

// Snapshot is a copy of the view for rendering.
type Snapshot struct {
	Skills   []skill.Skill
	News     []news.Item
	Input    string
	EditID   *int64
	AIReview string
	Loading  bool
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Skills:   append([]skill.Skill(nil), s.skills...),
		News:     append([]news.Item(nil), s.news...),
		Input:    s.input,
		AIReview: s.aiReview,
		Loading:  s.loading,
	}
	if s.editID != nil {
		id := *s.editID
		snap.EditID = &id
	}
	return snap
}

// Load fetches skills and news independently. A failed read is logged and
// leaves that part of the view as it was.
func (s *State) Load(ctx context.Context) {
	if items, err := s.api.ListSkills(ctx); err != nil {
		s.logger.Printf("[Dashboard] load skills failed | err=%v", err)
	} else {
		s.mu.Lock()
		s.skills = items
		s.mu.Unlock()
	}

	if items, err := s.api.LatestNews(ctx); err != nil {
		s.logger.Printf("[Dashboard] load news failed | err=%v", err)
	} else {
		s.mu.Lock()
		s.news = items
		s.mu.Unlock()
	}
}

func (s *State) SetInput(v string) {
	s.mu.Lock()
	s.input = v
	s.mu.Unlock()
}

// StartEdit switches to edit mode for the record with id and copies its
// name into the input. It reports false when no such record is shown.
func (s *State) StartEdit(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.editID = &id
	s.input = s.skills[i].ToolName
	return true
}

func (s *State) CancelEdit() {
	s.mu.Lock()
	s.resetInputLocked()
	s.mu.Unlock()
}

// Submit creates in add mode and updates in edit mode. A blank input does
// nothing. On failure the view is left unchanged.
func (s *State) Submit(ctx context.Context) error {
	s.mu.Lock()
	name := s.input
	var editID *int64
	status := ""
	if s.editID != nil {
		id := *s.editID
		editID = &id
		if i := s.indexLocked(id); i >= 0 {
			status = s.skills[i].Status
		}
	}
	s.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return nil
	}

	if editID == nil {
		created, err := s.api.CreateSkill(ctx, skill.Skill{
			ToolName: name,
			Category: skill.DefaultCategory,
			Status:   skill.DefaultStatus,
		})
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.skills = append(s.skills, created)
		s.input = ""
		s.mu.Unlock()
		return nil
	}

	if err := s.api.UpdateSkill(ctx, *editID, name, status); err != nil {
		return err
	}
	s.mu.Lock()
	if i := s.indexLocked(*editID); i >= 0 {
		s.skills[i].ToolName = name
	}
	s.resetInputLocked()
	s.mu.Unlock()
	return nil
}

// Delete removes the record remotely and then locally. Deleting the
// record being edited drops back to add mode.
func (s *State) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteSkill(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		s.skills = append(s.skills[:i], s.skills[i+1:]...)
	}
	if s.editID != nil && *s.editID == id {
		s.resetInputLocked()
	}
	return nil
}

// RequestReview runs one AI review. A request made while another is
// running is rejected with ErrReviewInProgress.
func (s *State) RequestReview(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return "", ErrReviewInProgress
	}
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	text, err := s.api.Review(ctx)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.aiReview = text
	s.mu.Unlock()
	return text, nil
}

func (s *State) indexLocked(id int64) int {
	for i := range s.skills {
		if s.skills[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) resetInputLocked() {
	s.editID = nil
	s.input = ""
}
