package completion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"skill-dashboard/internal/config"
	"skill-dashboard/internal/domain/skill"
)

func TestBuildSkillSummary(t *testing.T) {
	got := BuildSkillSummary([]skill.Skill{
		{ToolName: "Docker", Status: "In Progress"},
		{ToolName: "Go", Status: "Running"},
	})
	if want := "Docker (In Progress), Go (Running)"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := BuildSkillSummary(nil); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
}

func TestBuildUserPrompt(t *testing.T) {
	p := BuildUserPrompt("Docker (In Progress)")
	if !strings.Contains(p, "Docker (In Progress)") {
		t.Fatalf("user turn missing summary:\n%s", p)
	}
	for _, want := range []string{"200", "优势", "关键短板", "下一步建议"} {
		if !strings.Contains(SystemInstruction, want) {
			t.Fatalf("system instruction missing %q:\n%s", want, SystemInstruction)
		}
		if strings.Contains(p, want) {
			t.Fatalf("answer format %q belongs in the system instruction, not the user turn", want)
		}
	}
}

func TestNew_PicksProvider(t *testing.T) {
	if _, ok := New(config.CompletionConfig{Provider: config.ProviderAnthropic}).(*AnthropicCompleter); !ok {
		t.Fatalf("expected anthropic completer")
	}
	if _, ok := New(config.CompletionConfig{Provider: config.ProviderOpenAI}).(*OpenAICompleter); !ok {
		t.Fatalf("expected openai completer")
	}
}

func openAIServer(t *testing.T, status int, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		var req struct {
			Model    string `json:"model"`
			Stream   bool   `json:"stream"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.Unmarshal(b, &req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		switch {
		case req.Stream || len(req.Messages) != 2:
			t.Errorf("expected system and user messages without streaming, got %+v", req)
		case req.Messages[0].Role != "system" || req.Messages[0].Content != "sys":
			t.Errorf("unexpected system message %+v", req.Messages[0])
		case req.Messages[1].Role != "user" || req.Messages[1].Content != "skills":
			t.Errorf("unexpected user message %+v", req.Messages[1])
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestOpenAICompleter_Success(t *testing.T) {
	var hits atomic.Int32
	srv := openAIServer(t, http.StatusOK, `{
		"id": "cmpl-1",
		"object": "chat.completion",
		"created": 1,
		"model": "deepseek-chat",
		"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "1. 优势……"}}]
	}`, &hits)
	defer srv.Close()

	c := NewOpenAICompleter("sk-test", srv.URL, "")
	got, err := c.Complete(context.Background(), "sys", "skills")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "1. 优势……" {
		t.Fatalf("unexpected text %q", got)
	}
	if c.model != defaultOpenAIModel {
		t.Fatalf("expected default model, got %q", c.model)
	}
}

func TestOpenAICompleter_NoChoices(t *testing.T) {
	var hits atomic.Int32
	srv := openAIServer(t, http.StatusOK, `{"id":"cmpl-1","object":"chat.completion","created":1,"model":"m","choices":[]}`, &hits)
	defer srv.Close()

	_, err := NewOpenAICompleter("sk-test", srv.URL, "m").Complete(context.Background(), "sys", "skills")
	if !errors.Is(err, ErrUnexpectedResponse) {
		t.Fatalf("expected ErrUnexpectedResponse, got %v", err)
	}
}

func TestOpenAICompleter_ServerErrorNoRetry(t *testing.T) {
	var hits atomic.Int32
	srv := openAIServer(t, http.StatusInternalServerError, `{"error":{"message":"boom"}}`, &hits)
	defer srv.Close()

	_, err := NewOpenAICompleter("sk-test", srv.URL, "m").Complete(context.Background(), "sys", "skills")
	if err == nil {
		t.Fatalf("expected error")
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("expected exactly one request, got %d", n)
	}
}

func TestAnthropicCompleter(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		var req struct {
			System []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"system"`
			Messages []struct {
				Role    string `json:"role"`
				Content []struct {
					Text string `json:"text"`
				} `json:"content"`
			} `json:"messages"`
		}
		if err := json.Unmarshal(b, &req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if len(req.System) != 1 || req.System[0].Text != "sys" {
			t.Errorf("unexpected system blocks %+v", req.System)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" ||
			len(req.Messages[0].Content) != 1 || req.Messages[0].Content[0].Text != "skills" {
			t.Errorf("unexpected messages %+v", req.Messages)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-haiku-latest",
			"content": [{"type": "text", "text": "点评"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	got, err := NewAnthropicCompleter("key", srv.URL, "").Complete(context.Background(), "sys", "skills")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "点评" {
		t.Fatalf("unexpected text %q", got)
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("expected one request, got %d", n)
	}
}

func TestAnthropicCompleter_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"m","content":[],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":0}}`))
	}))
	defer srv.Close()

	_, err := NewAnthropicCompleter("key", srv.URL, "m").Complete(context.Background(), "sys", "skills")
	if !errors.Is(err, ErrUnexpectedResponse) {
		t.Fatalf("expected ErrUnexpectedResponse, got %v", err)
	}
}
