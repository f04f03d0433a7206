// Package websearch implements the external-lookup side of OEM enrichment:
// a paced, cached client that asks a distributor site (and a search-engine
// fallback) what a part number actually is.
package websearch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/Dl0057754/Wex-PB-Tool/websearch/types"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ClientConfig configures the lookup client.
type ClientConfig struct {
	Timeout time.Duration
	// Pace is the mandatory delay between successive external lookups.
	Pace         time.Duration
	CacheTTL     time.Duration
	MinRelevance float64

	// BaseURL overrides the distributor scheme+host, for tests. When empty
	// the configured domain is used over https.
	BaseURL string
	// FallbackURL overrides the search-engine fallback endpoint, for tests.
	FallbackURL string
}

// Client performs rate-limited lookups against a distributor domain with a
// DuckDuckGo HTML fallback. Every external call is one attempt with one
// bounded timeout.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *Cache
	validator  *SnippetValidator
}

// NewClient creates a lookup client with defaults suitable for polite
// scraping.
func NewClient(config ClientConfig) *Client {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.Pace == 0 {
		config.Pace = 2 * time.Second
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = 24 * time.Hour
	}
	if config.MinRelevance == 0 {
		config.MinRelevance = 0.3
	}
	if config.FallbackURL == "" {
		config.FallbackURL = "https://html.duckduckgo.com/html/"
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Every(config.Pace), 1),
		cache:      NewCache(config.CacheTTL),
		validator:  NewSnippetValidator(config.MinRelevance),
	}
}

// Lookup returns a short descriptive snippet for a part number, or "" when
// nothing relevant was found. The distributor site is consulted first, then
// the search-engine fallback. Pacing applies across all callers.
func (c *Client) Lookup(ctx context.Context, partNumber, brand, domain string) (string, error) {
	partNumber = strings.TrimSpace(partNumber)
	if partNumber == "" {
		return "", fmt.Errorf("empty part number")
	}

	query := strings.TrimSpace(brand + " " + partNumber)
	cacheKey := lookupCacheKey(domain, query)
	if snippet, found := c.cache.Get(cacheKey); found {
		return snippet, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("lookup pacing interrupted: %w", err)
	}

	result, err := c.searchDistributor(ctx, query, domain)
	if err != nil || !result.Found {
		fallback, ferr := c.searchFallback(ctx, query, domain)
		if ferr != nil {
			if err != nil {
				return "", fmt.Errorf("distributor search failed: %v; fallback failed: %w", err, ferr)
			}
			return "", fmt.Errorf("fallback search failed: %w", ferr)
		}
		result = fallback
	}

	snippet := ""
	if best, ok := result.Best(); ok && c.validator.Accept(query, best.Snippet) {
		snippet = strings.TrimSpace(best.Snippet)
	}

	c.cache.Set(cacheKey, snippet)
	return snippet, nil
}

// searchDistributor scrapes the distributor's own search page for product
// titles and descriptions mentioning the part.
func (c *Client) searchDistributor(ctx context.Context, query, domain string) (*types.SearchResult, error) {
	base := c.config.BaseURL
	if base == "" {
		base = "https://" + strings.TrimSuffix(domain, "/")
	}
	searchURL := fmt.Sprintf("%s/search?q=%s", base, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := &types.SearchResult{
		Query:     query,
		Source:    "distributor:" + domain,
		Timestamp: time.Now(),
		Results:   make([]types.SearchItem, 0),
	}

	// Product tiles vary per storefront; title-ish and description-ish
	// selectors cover the common layouts well enough for snippet harvesting.
	doc.Find(".product-title, .product-name, .item-title, h1, h2, h3").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		href, _ := s.Find("a").Attr("href")
		result.Results = append(result.Results, types.SearchItem{
			Title:     text,
			URL:       href,
			Snippet:   text,
			Relevance: c.validator.Score(query, text),
		})
	})

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && strings.TrimSpace(desc) != "" {
		result.Results = append(result.Results, types.SearchItem{
			Title:     doc.Find("title").Text(),
			Snippet:   strings.TrimSpace(desc),
			Relevance: c.validator.Score(query, desc),
		})
	}

	result.Found = len(result.Results) > 0
	return result, nil
}

func lookupCacheKey(domain, query string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(domain + "|" + query)))
	return hex.EncodeToString(hash[:])
}
