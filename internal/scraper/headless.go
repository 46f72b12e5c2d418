package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

type renderedAnchor struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

func (s *HackerNewsScraper) fetchPageHeadless(ctx context.Context, pageURL string) ([]headline, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(httpHeaders()["User-Agent"]),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, 25*time.Second)
	defer reqCancel()

	var anchors []renderedAnchor
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`Array.from(document.querySelectorAll('`+titleSelector+`'))
			.map(a => ({title: a.innerText, href: a.getAttribute('href') || ''}))`, &anchors),
	)
	if err != nil {
		return nil, err
	}

	heads := make([]headline, 0, len(anchors))
	for _, a := range anchors {
		heads = append(heads, headline{Title: a.Title, Link: resolveLink(s.siteBase, a.Href)})
	}
	if len(heads) == 0 {
		return nil, fmt.Errorf("%w at %s (headless)", ErrNoHeadlines, pageURL)
	}
	return heads, nil
}
