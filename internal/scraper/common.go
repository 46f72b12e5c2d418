package scraper

import (
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"skill-dashboard/internal/domain/news"
)

const (
	HackerNewsBaseURL = "https://news.ycombinator.com"
	HackerNewsTag     = "HackerNews"

	// titleSelector matches the story anchor only, not the site badge
	// link nested next to it.
	titleSelector = ".titleline > a"
)

func httpHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "Mozilla/5.0 (compatible; SkillDashboardNewsBot/0.1)",
		"Accept-Language": "en-US,en;q=0.9,zh-CN;q=0.8",
	}
}

// pageURL returns the listing for page n. Page 1 is the front page itself.
func pageURL(base string, n int) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if n <= 1 {
		return base + "/"
	}
	return base + "/?p=" + strconv.Itoa(n)
}

func hostFromBaseURL(base string) string {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Host == "" {
		return "news.ycombinator.com"
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}

// resolveLink makes self posts ("item?id=...") absolute so the dashboard
// renders every summary as a link.
func resolveLink(base string, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return href
	}
	b, err := url.Parse(strings.TrimRight(strings.TrimSpace(base), "/") + "/")
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}

type headline struct {
	Title string
	Link  string
}

func toItems(heads []headline, limit int, at time.Time) []news.Item {
	stamp := at.Format("15:04")
	out := make([]news.Item, 0, minInt(len(heads), limit))
	for _, h := range heads {
		if len(out) >= limit {
			break
		}
		title := strings.TrimSpace(h.Title)
		if title == "" {
			continue
		}
		out = append(out, news.Item{
			Title:   title,
			Tag:     HackerNewsTag,
			Date:    stamp,
			Summary: h.Link,
		})
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
