package cli

import (
	"errors"
	"fmt"
	"io"

	"skill-dashboard/internal/dashboard"
	"skill-dashboard/internal/domain/news"
	"skill-dashboard/internal/domain/skill"

	"github.com/fatih/color"
)

var (
	runningColor = color.New(color.FgGreen, color.Bold)
	pendingColor = color.New(color.FgYellow, color.Bold)
	alertColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgHiBlue, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

func statusLabel(status string) string {
	if status == skill.StatusRunning {
		return runningColor.Sprint(status)
	}
	return pendingColor.Sprint(status)
}

func renderSkills(w io.Writer, items []skill.Skill, editID *int64) {
	headerColor.Fprintln(w, "技能栈")
	if len(items) == 0 {
		dimColor.Fprintln(w, "  (空)")
		return
	}
	for _, s := range items {
		marker := " "
		if editID != nil && *editID == s.ID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %4d  %-24s %s\n", marker, s.ID, s.ToolName, statusLabel(s.Status))
	}
}

func renderNews(w io.Writer, items []news.Item) {
	headerColor.Fprintln(w, "技术动态")
	if len(items) == 0 {
		dimColor.Fprintln(w, "  暂无新闻...")
		return
	}
	for _, it := range items {
		fmt.Fprintf(w, "  %s  %s %s\n", dimColor.Sprintf("[%s %s]", it.Tag, it.Date), it.Title, linkSuffix(it))
		if it.Summary != "" && !it.IsLink() {
			fmt.Fprintf(w, "      %s\n", it.Summary)
		}
	}
}

func linkSuffix(it news.Item) string {
	if !it.IsLink() {
		return ""
	}
	return dimColor.Sprint(it.Summary)
}

func renderReview(w io.Writer, text string) {
	headerColor.Fprintln(w, "AI 点评")
	fmt.Fprintln(w, text)
}

// alert is the terminal rendering of a failed mutation.
func alert(w io.Writer, err error) {
	msg := err.Error()
	var apiErr *dashboard.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}
	alertColor.Fprintf(w, "操作失败: %s\n", msg)
}
