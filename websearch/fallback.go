package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/Dl0057754/Wex-PB-Tool/websearch/types"
)

// searchFallback runs a site-restricted DuckDuckGo HTML search when the
// distributor's own search page yields nothing usable.
func (c *Client) searchFallback(ctx context.Context, query, domain string) (*types.SearchResult, error) {
	q := query
	if domain != "" {
		q += " site:" + domain
	}
	searchURL := fmt.Sprintf("%s?q=%s", c.config.FallbackURL, url.QueryEscape(q))

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

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := &types.SearchResult{
		Query:     query,
		Source:    "duckduckgo-html",
		Timestamp: time.Now(),
		Results:   make([]types.SearchItem, 0),
	}
	c.extractFallbackResults(doc, query, result)
	result.Found = len(result.Results) > 0

	return result, nil
}

// extractFallbackResults walks the HTML tree collecting elements carrying
// the result snippet class.
func (c *Client) extractFallbackResults(n *html.Node, query string, result *types.SearchResult) {
	if n.Type == html.ElementNode && hasClass(n, "result__snippet") {
		text := strings.Join(strings.Fields(nodeText(n)), " ")
		if text != "" {
			result.Results = append(result.Results, types.SearchItem{
				Title:     text,
				URL:       nodeAttr(n, "href"),
				Snippet:   text,
				Relevance: c.validator.Score(query, text),
			})
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.extractFallbackResults(child, query, result)
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func nodeAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(nodeText(child))
	}
	return sb.String()
}
