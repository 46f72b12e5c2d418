package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"skill-dashboard/internal/domain/news"

	"github.com/gocolly/colly/v2"
)

const (
	DefaultPages = 1
	DefaultLimit = 8
)

var ErrNoHeadlines = errors.New("no headlines found")

// HackerNewsScraper reads story titles and links from the Hacker News
// listing pages.
type HackerNewsScraper struct {
	siteBase string
	headless bool
	workers  int
	rps      int
	logger   *log.Logger
	now      func() time.Time
}

func NewHackerNewsScraper(logger *log.Logger) *HackerNewsScraper {
	return NewHackerNewsScraperWithBaseURL(HackerNewsBaseURL, logger)
}

func NewHackerNewsScraperWithBaseURL(baseURL string, logger *log.Logger) *HackerNewsScraper {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = HackerNewsBaseURL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &HackerNewsScraper{
		siteBase: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		workers:  2,
		rps:      2,
		logger:   logger,
		now:      time.Now,
	}
}

// WithHeadless switches page fetching to a headless Chrome.
func (s *HackerNewsScraper) WithHeadless(on bool) *HackerNewsScraper {
	s.headless = on
	return s
}

// Scrape fetches pages listing pages concurrently and returns the first
// limit headlines in page order, stamped with the local scrape time.
func (s *HackerNewsScraper) Scrape(ctx context.Context, pages int, limit int) ([]news.Item, error) {
	if s == nil {
		return nil, fmt.Errorf("nil scraper")
	}
	if pages <= 0 {
		pages = DefaultPages
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	perPage := make([][]headline, pages)
	var mu sync.Mutex

	pool := NewWorkerPool(minInt(s.workers, pages), pages)
	pool.SetRateLimit(s.rps)
	results := pool.Run(ctx)

	for page := 1; page <= pages; page++ {
		idx := page - 1
		u := pageURL(s.siteBase, page)
		ok := pool.Submit(ctx, Task{
			Name: u,
			Run: func(ctx context.Context) error {
				heads, err := s.fetchPage(ctx, u)
				if err != nil {
					return err
				}
				mu.Lock()
				perPage[idx] = heads
				mu.Unlock()
				return nil
			},
		})
		if !ok {
			break
		}
	}
	pool.Close()

	var errs []error
	for res := range results {
		if res.Err != nil {
			s.logger.Printf("[NewsBot] page failed | url=%s err=%v", res.Name, res.Err)
			errs = append(errs, res.Err)
		}
	}

	mu.Lock()
	all := make([]headline, 0, limit)
	for _, heads := range perPage {
		all = append(all, heads...)
	}
	mu.Unlock()

	items := toItems(all, limit, s.now())
	if len(items) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			return nil, errors.Join(errs...)
		}
	}
	return items, nil
}

func (s *HackerNewsScraper) fetchPage(ctx context.Context, pageURL string) ([]headline, error) {
	if s.headless {
		return s.fetchPageHeadless(ctx, pageURL)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := colly.NewCollector(colly.AllowedDomains(hostFromBaseURL(s.siteBase)))
	c.SetRequestTimeout(15 * time.Second)

	heads := make([]headline, 0, 30)
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML(titleSelector, func(e *colly.HTMLElement) {
		heads = append(heads, headline{
			Title: strings.TrimSpace(e.Text),
			Link:  resolveLink(s.siteBase, e.Attr("href")),
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, err
	}
	c.Wait()

	if reqErr != nil {
		return nil, reqErr
	}
	if len(heads) == 0 {
		return nil, fmt.Errorf("%w at %s", ErrNoHeadlines, pageURL)
	}
	return heads, nil
}
