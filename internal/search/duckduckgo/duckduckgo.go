package duckduckgo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"trending-tickers/internal/api"
	"trending-tickers/internal/interfaces"
	"trending-tickers/internal/logger"
	"trending-tickers/internal/types"
)

const DefaultBaseURL = "https://html.duckduckgo.com/html/"

// Selectors on the DuckDuckGo HTML results page
const (
	resultSelector  = ".result"
	titleSelector   = ".result__a"
	snippetSelector = ".result__snippet"
)

// Scraper searches the DuckDuckGo HTML endpoint. It needs no API key.
type Scraper struct {
	baseURL string
	timeout time.Duration
}

var _ interfaces.Searcher = (*Scraper)(nil)

func NewScraper(baseURL string, timeout time.Duration) *Scraper {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Scraper{baseURL: baseURL, timeout: timeout}
}

func (s *Scraper) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResult, error) {
	limit := req.MaxResults
	if limit <= 0 {
		limit = 5
	}
	items := make([]types.SearchItem, 0, limit)

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.Async(false),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		for k, v := range api.BrowserHeaders() {
			r.Headers.Set(k, v)
		}
		r.Headers.Set("Accept", "text/html")
	})

	c.OnHTML("body", func(e *colly.HTMLElement) {
		e.DOM.Find(resultSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if len(items) >= limit {
				return false
			}
			snippet := strings.TrimSpace(sel.Find(snippetSelector).Text())
			if snippet == "" {
				return true
			}
			link := sel.Find(titleSelector).First()
			href, _ := link.Attr("href")
			items = append(items, types.SearchItem{
				Title:   strings.TrimSpace(link.Text()),
				URL:     resolveLink(href),
				Content: snippet,
			})
			return true
		})
	})

	var scrapeErr error
	c.OnError(func(r *colly.Response, err error) {
		scrapeErr = fmt.Errorf("duckduckgo returned status %d: %w", r.StatusCode, err)
	})

	target := s.baseURL + "?q=" + url.QueryEscape(req.Query)
	if err := c.Visit(target); err != nil && scrapeErr == nil {
		scrapeErr = err
	}
	c.Wait()

	if scrapeErr != nil {
		return nil, scrapeErr
	}

	logger.Debug(ctx, "DuckDuckGo scrape completed", "query", req.Query, "results", len(items))
	return &types.SearchResult{Query: req.Query, Results: items}, nil
}

// resolveLink unwraps DuckDuckGo's /l/?uddg= redirect links.
func resolveLink(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
