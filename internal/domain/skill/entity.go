package skill

const (
	DefaultCategory = "Learning"
	DefaultStatus   = "In Progress"
	StatusRunning   = "Running"
)

// Skill is a row of the skills table. ID is assigned by the store and
// never reused.
type Skill struct {
	ID       int64  `json:"id"`
	ToolName string `json:"tool_name"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

// WithDefaults fills category and status the way a create without them
// is stored.
func (s Skill) WithDefaults() Skill {
	if s.Category == "" {
		s.Category = DefaultCategory
	}
	if s.Status == "" {
		s.Status = DefaultStatus
	}
	return s
}
