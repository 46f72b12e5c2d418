package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skill-dashboard/internal/config"
	"skill-dashboard/internal/domain/skill"
)

// ErrUnexpectedResponse is returned when the service answers without any
// usable text.
var ErrUnexpectedResponse = errors.New("unexpected completion response")

// Completer sends a system instruction plus one user turn and returns the
// first completion verbatim.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// SystemInstruction is the fixed reviewer persona and answer format.
const SystemInstruction = `你是一位资深的技术导师，负责点评开发者的技能清单。
请严格按以下三个部分简短点评，总字数控制在 200 字以内：
1. 优势：这套技能组合的长处。
2. 关键短板：最需要补齐的缺口。
3. 下一步建议：一个具体可执行的学习建议。`

const userTemplate = "这是我当前的技能清单，括号内是学习状态：\n%s"

// BuildSkillSummary joins skills as "<tool_name> (<status>)" separated by
// ", ".
func BuildSkillSummary(items []skill.Skill) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (%s)", it.ToolName, it.Status))
	}
	return strings.Join(parts, ", ")
}

// BuildUserPrompt wraps the skill summary as the user turn.
func BuildUserPrompt(summary string) string {
	return fmt.Sprintf(userTemplate, summary)
}

// New picks the provider named in cfg.
func New(cfg config.CompletionConfig) Completer {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return NewAnthropicCompleter(cfg.APIKey, cfg.BaseURL, cfg.Model)
	default:
		return NewOpenAICompleter(cfg.APIKey, cfg.BaseURL, cfg.Model)
	}
}
