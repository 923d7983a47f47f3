package websearch

import (
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Hit is one normalized web search result. A hit with Source "Error" is the
// sentinel for a failed search; callers treat it as "no usable web context".
type Hit struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
	Source  string `json:"source"`
}

const (
	DefaultMaxResults = 5
	sourceName        = "DuckDuckGo"
)

type Client struct {
	endpoint string
	httpc    *http.Client
}

// New builds a search client against the DuckDuckGo HTML endpoint. Tests point
// endpoint at a local httptest server.
func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Search queries the provider and returns up to maxResults hits. It never
// returns an error: any transport or parse failure yields the single sentinel
// hit instead.
func (c *Client) Search(query string, maxResults int) []Hit {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	hits, err := c.search(query, maxResults)
	if err != nil {
		log.Printf("[websearch] %q failed: %v", query, err)
		return []Hit{errorHit()}
	}
	if len(hits) == 0 {
		return []Hit{errorHit()}
	}
	return hits
}

func (c *Client) search(query string, maxResults int) ([]Hit, error) {
	form := url.Values{"q": {query}}
	req, err := http.NewRequest("POST", c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "campus-assistant/1.0")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var hits []Hit
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		a := s.Find(".result__a").First()
		title := strings.TrimSpace(a.Text())
		if title == "" {
			return true
		}
		href, _ := a.Attr("href")
		hits = append(hits, Hit{
			Title:   title,
			Snippet: strings.TrimSpace(s.Find(".result__snippet").First().Text()),
			URL:     href,
			Source:  sourceName,
		})
		return len(hits) < maxResults
	})
	return hits, nil
}

func errorHit() Hit {
	return Hit{
		Title:   "Search Error",
		Snippet: "Could not perform web search",
		URL:     "",
		Source:  "Error",
	}
}

// Failed reports whether the result set carries only the sentinel hit.
func Failed(hits []Hit) bool {
	return len(hits) == 1 && hits[0].Source == "Error"
}
