package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"skill-dashboard/internal/domain/news"
)

func hnPage(prefix string, n int) string {
	var b strings.Builder
	b.WriteString(`<html><body><table>`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<tr class="athing"><td class="title"><span class="titleline">`+
			`<a href="https://example.com/%s/%d">%s story %d</a>`+
			`<span class="sitebit comhead"> (<a href="from?site=example.com"><span class="sitestr">example.com</span></a>)</span>`+
			`</span></td></tr>`, prefix, i, prefix, i)
	}
	b.WriteString(`<tr class="athing"><td class="title"><span class="titleline"><a href="item?id=42">Ask HN: self post</a></span></td></tr>`)
	b.WriteString(`</table></body></html>`)
	return b.String()
}

func newHNServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "SkillDashboardNewsBot") {
			http.Error(w, "bad agent", http.StatusForbidden)
			return
		}
		switch r.URL.Query().Get("p") {
		case "":
			_, _ = w.Write([]byte(hnPage("front", 3)))
		case "2":
			_, _ = w.Write([]byte(hnPage("second", 3)))
		default:
			_, _ = w.Write([]byte(`<html><body></body></html>`))
		}
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, "", 0)
}

func TestHackerNewsScraper_FrontPage(t *testing.T) {
	server := newHNServer(t, nil)

	s := NewHackerNewsScraperWithBaseURL(server.URL, quietLogger())
	s.now = func() time.Time { return time.Date(2025, 3, 1, 9, 5, 0, 0, time.Local) }

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	items, err := s.Scrape(ctx, 1, 8)
	if err != nil {
		t.Fatalf("scrape error: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "front story 1" || first.Summary != "https://example.com/front/1" {
		t.Fatalf("unexpected first item %+v", first)
	}
	if first.Tag != HackerNewsTag || first.Date != "09:05" {
		t.Fatalf("unexpected tag/date %q %q", first.Tag, first.Date)
	}
	last := items[3]
	if last.Summary != server.URL+"/item?id=42" {
		t.Fatalf("expected self post link resolved, got %q", last.Summary)
	}
	for _, it := range items {
		if strings.Contains(it.Title, "example.com") {
			t.Fatalf("site badge leaked into title: %q", it.Title)
		}
	}
}

func TestHackerNewsScraper_PagesInOrderAndLimit(t *testing.T) {
	var hits int32
	server := newHNServer(t, &hits)

	s := NewHackerNewsScraperWithBaseURL(server.URL, quietLogger())
	s.rps = 0

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	items, err := s.Scrape(ctx, 2, 6)
	if err != nil {
		t.Fatalf("scrape error: %v", err)
	}
	if len(items) != 6 {
		t.Fatalf("expected limit 6, got %d", len(items))
	}
	if items[0].Title != "front story 1" || items[4].Title != "second story 1" {
		t.Fatalf("pages out of order: %q / %q", items[0].Title, items[4].Title)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("expected 2 page fetches, got %d", got)
	}
}

func TestHackerNewsScraper_DefaultLimit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(hnPage("front", 30)))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	items, err := NewHackerNewsScraperWithBaseURL(server.URL, quietLogger()).Scrape(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("scrape error: %v", err)
	}
	if len(items) != DefaultLimit {
		t.Fatalf("expected %d items, got %d", DefaultLimit, len(items))
	}
}

func TestHackerNewsScraper_AllPagesFail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	items, err := NewHackerNewsScraperWithBaseURL(server.URL, quietLogger()).Scrape(context.Background(), 1, 8)
	if err == nil {
		t.Fatalf("expected error, got %d items", len(items))
	}
}

func TestHackerNewsScraper_EmptyPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>maintenance</p></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, err := NewHackerNewsScraperWithBaseURL(server.URL, quietLogger()).Scrape(context.Background(), 1, 8)
	if !errors.Is(err, ErrNoHeadlines) {
		t.Fatalf("expected ErrNoHeadlines, got %v", err)
	}
}

func TestPageURL(t *testing.T) {
	if got := pageURL("https://news.ycombinator.com/", 1); got != "https://news.ycombinator.com/" {
		t.Fatalf("got %q", got)
	}
	if got := pageURL("https://news.ycombinator.com", 3); got != "https://news.ycombinator.com/?p=3" {
		t.Fatalf("got %q", got)
	}
}

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	pool := NewWorkerPool(3, 10)
	results := pool.Run(context.Background())

	var ran int32
	for i := 0; i < 10; i++ {
		i := i
		pool.Submit(context.Background(), Task{
			Name: fmt.Sprint(i),
			Run: func(ctx context.Context) error {
				atomic.AddInt32(&ran, 1)
				if i == 4 {
					return errors.New("boom")
				}
				return nil
			},
		})
	}
	pool.Close()

	var failed []string
	n := 0
	for res := range results {
		n++
		if res.Err != nil {
			failed = append(failed, res.Name)
		}
	}
	if n != 10 || atomic.LoadInt32(&ran) != 10 {
		t.Fatalf("expected 10 results, got %d (ran %d)", n, ran)
	}
	if len(failed) != 1 || failed[0] != "4" {
		t.Fatalf("unexpected failures %v", failed)
	}
}

func TestWorkerPool_RateLimitSurvivesClose(t *testing.T) {
	pool := NewWorkerPool(2, 4)
	pool.SetRateLimit(20)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	results := pool.Run(ctx)

	var mu sync.Mutex
	var starts []time.Time
	for i := 0; i < 4; i++ {
		pool.Submit(ctx, Task{
			Name: fmt.Sprint(i),
			Run: func(context.Context) error {
				mu.Lock()
				starts = append(starts, time.Now())
				mu.Unlock()
				return nil
			},
		})
	}
	begin := time.Now()
	pool.Close()

	n := 0
	for range results {
		n++
	}
	elapsed := time.Since(begin)

	if n != 4 {
		t.Fatalf("expected every task to report, got %d", n)
	}
	if ctx.Err() != nil {
		t.Fatalf("tasks only finished at the context deadline")
	}
	// 20 rps spaces four starts at least three 50ms ticks apart.
	if elapsed < 140*time.Millisecond {
		t.Fatalf("tasks were not paced: all done in %s", elapsed)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(starts) != 4 {
		t.Fatalf("expected 4 starts, got %d", len(starts))
	}
}

func TestWorkerPool_CloseWhileWorkerWaitsOnRate(t *testing.T) {
	pool := NewWorkerPool(1, 1)
	pool.SetRateLimit(2)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	results := pool.Run(ctx)

	var ran int32
	pool.Submit(ctx, Task{Name: "only", Run: func(context.Context) error {
		atomic.StoreInt32(&ran, 1)
		return nil
	}})
	time.Sleep(20 * time.Millisecond)
	pool.Close()

	n := 0
	for range results {
		n++
	}
	if n != 1 || atomic.LoadInt32(&ran) != 1 {
		t.Fatalf("queued task lost after Close: results=%d ran=%d", n, ran)
	}
	if ctx.Err() != nil {
		t.Fatalf("task only finished at the context deadline")
	}
}

func TestWorkerPool_SubmitAfterCancel(t *testing.T) {
	pool := NewWorkerPool(1, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if pool.Submit(ctx, Task{Name: "x", Run: func(context.Context) error { return nil }}) {
		t.Fatalf("expected submit to fail on cancelled context")
	}
	pool.Close()
}

type fakeLock struct {
	mu        sync.Mutex
	available bool
	err       error
	held      map[string]string
	released  int
}

func newFakeLock() *fakeLock {
	return &fakeLock{available: true, held: map[string]string{}}
}

func (l *fakeLock) Available() bool { return l.available }

func (l *fakeLock) SetIfNotExists(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	if ttl != LockTTL {
		return false, fmt.Errorf("unexpected ttl %s", ttl)
	}
	if _, ok := l.held[key]; ok {
		return false, nil
	}
	l.held[key] = value
	return true, nil
}

func (l *fakeLock) ReleaseIfValue(_ context.Context, key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == value {
		delete(l.held, key)
		l.released++
	}
	return nil
}

type fakeSource struct {
	items []news.Item
	err   error
	calls int
}

func (s *fakeSource) Scrape(context.Context, int, int) ([]news.Item, error) {
	s.calls++
	return s.items, s.err
}

type fakeStore struct {
	items []news.Item
	calls int
	err   error
}

func (s *fakeStore) ReplaceAll(_ context.Context, items []news.Item) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.items = append([]news.Item(nil), items...)
	return nil
}

func TestIngest_ReplacesAndReleasesLock(t *testing.T) {
	lock := newFakeLock()
	store := &fakeStore{}
	in := &Ingest{
		Lock:   lock,
		Token:  "run-1",
		Source: &fakeSource{items: []news.Item{{Title: "a", Tag: HackerNewsTag, Date: "10:00", Summary: "https://a"}}},
		Store:  store,
		Logger: quietLogger(),
	}

	n, err := in.Run(context.Background(), 1, 8)
	if err != nil || n != 1 {
		t.Fatalf("unexpected result n=%d err=%v", n, err)
	}
	if store.calls != 1 || store.items[0].Title != "a" {
		t.Fatalf("store not replaced: %+v", store)
	}
	if lock.released != 1 || len(lock.held) != 0 {
		t.Fatalf("lock not released: %+v", lock.held)
	}
}

func TestIngest_SecondRunIsLockedOut(t *testing.T) {
	lock := newFakeLock()
	lock.held[LockKey] = "other-run"
	src := &fakeSource{items: []news.Item{{Title: "a"}}}
	store := &fakeStore{}

	_, err := (&Ingest{Lock: lock, Token: "run-2", Source: src, Store: store, Logger: quietLogger()}).Run(context.Background(), 1, 8)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if src.calls != 0 || store.calls != 0 {
		t.Fatalf("locked run must not scrape or write")
	}
	if lock.held[LockKey] != "other-run" {
		t.Fatalf("foreign lock must be left alone")
	}
}

func TestIngest_EmptyScrapeLeavesStore(t *testing.T) {
	store := &fakeStore{}
	n, err := (&Ingest{Lock: newFakeLock(), Token: "t", Source: &fakeSource{}, Store: store, Logger: quietLogger()}).Run(context.Background(), 1, 8)
	if err != nil || n != 0 {
		t.Fatalf("unexpected result n=%d err=%v", n, err)
	}
	if store.calls != 0 {
		t.Fatalf("empty scrape must not touch the store")
	}
}

func TestIngest_ProceedsWithoutRedis(t *testing.T) {
	for name, lock := range map[string]*fakeLock{
		"unavailable": {available: false, held: map[string]string{}},
		"erroring":    {available: true, err: errors.New("connection refused"), held: map[string]string{}},
	} {
		store := &fakeStore{}
		n, err := (&Ingest{Lock: lock, Token: "t", Source: &fakeSource{items: []news.Item{{Title: "a"}}}, Store: store, Logger: quietLogger()}).Run(context.Background(), 1, 8)
		if err != nil || n != 1 || store.calls != 1 {
			t.Fatalf("%s: expected run to proceed, n=%d err=%v", name, n, err)
		}
	}

	store := &fakeStore{}
	if _, err := (&Ingest{Source: &fakeSource{items: []news.Item{{Title: "a"}}}, Store: store}).Run(context.Background(), 1, 8); err != nil {
		t.Fatalf("nil lock: %v", err)
	}
}

func TestIngest_ScrapeAndStoreErrors(t *testing.T) {
	lock := newFakeLock()
	_, err := (&Ingest{Lock: lock, Token: "t", Source: &fakeSource{err: ErrNoHeadlines}, Store: &fakeStore{}, Logger: quietLogger()}).Run(context.Background(), 1, 8)
	if !errors.Is(err, ErrNoHeadlines) {
		t.Fatalf("expected scrape error, got %v", err)
	}
	if len(lock.held) != 0 {
		t.Fatalf("lock must be released after a failed run")
	}

	storeErr := errors.New("server selection timeout")
	_, err = (&Ingest{Lock: lock, Token: "t", Source: &fakeSource{items: []news.Item{{Title: "a"}}}, Store: &fakeStore{err: storeErr}, Logger: quietLogger()}).Run(context.Background(), 1, 8)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}
