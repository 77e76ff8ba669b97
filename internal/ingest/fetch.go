// Package ingest turns job description inputs (free text or a posting URL)
// into plain text for the skill extraction stub.
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds each posting fetch.
const DefaultTimeout = 30 * time.Second

// userAgent identifies the service to job boards.
const userAgent = "Mozilla/5.0 (compatible; SkillGapBot/1.0)"

// maxBodyBytes caps how much of a posting page is read. Job descriptions fit
// comfortably; anything past the cap is ignored.
const maxBodyBytes = 2 << 20

// Fetcher retrieves job posting pages with a polite outbound rate limit so
// repeated wizard submissions cannot hammer a job board.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher creates a fetcher allowing roughly one request per second with a
// small burst.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Every(time.Second), 3),
	}
}

// FetchText retrieves the URL and returns its main body text.
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid job URL %q", rawURL)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s returned HTTP %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response from %s: %w", rawURL, err)
	}

	return ExtractText(string(body))
}

// ExtractText strips scripts, navigation, and styling from an HTML page and
// returns whitespace-normalized body text. Job boards wrap descriptions in a
// handful of common containers; the first match wins, body is the fallback.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, aside").Remove()

	selectors := []string{".job-description", "#job-description", "main", "article", ".content"}
	var content *goquery.Selection
	for _, sel := range selectors {
		if s := doc.Find(sel); s.Length() > 0 {
			content = s.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return cleanWhitespace(content.Text()), nil
}

// cleanWhitespace collapses runs of whitespace into single spaces and trims
// each line, dropping empties.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
