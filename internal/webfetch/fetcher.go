// Package webfetch retrieves article bodies and reduces them to plain text.
package webfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrInvalidURL = errors.New("invalid URL")
)

// maxBodyBytes caps response reads; article pages beyond this are truncated
// before text extraction.
const maxBodyBytes = 2 << 20

// Result is the outcome of one fetch
type Result struct {
	URL           string `json:"url"`
	Content       string `json:"content"`
	ContentType   string `json:"content_type"`
	StatusCode    int    `json:"status_code"`
	ContentLength int    `json:"content_length"`
}

// Fetcher retrieves the readable text of a URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Result, error)
}

// HTTPFetcher fetches over plain HTTP and strips markup with goquery
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// Option configures an HTTPFetcher
type Option func(*HTTPFetcher)

// WithClient overrides the HTTP client
func WithClient(c *http.Client) Option {
	return func(f *HTTPFetcher) { f.client = c }
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) { f.userAgent = ua }
}

// New creates an HTTPFetcher
func New(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: "Mozilla/5.0 (compatible; Eventscope/1.0)",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves url and returns its readable text. HTML is reduced to the
// text of paragraph-level nodes; non-HTML text content passes through as is.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, url)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	content := string(body)
	if strings.Contains(contentType, "text/html") || looksLikeHTML(content) {
		content, err = extractText(content)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text: %w", err)
		}
	}

	return &Result{
		URL:           url,
		Content:       content,
		ContentType:   contentType,
		StatusCode:    resp.StatusCode,
		ContentLength: len(content),
	}, nil
}

func looksLikeHTML(s string) bool {
	head := strings.ToLower(s[:min(len(s), 512)])
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype html")
}

var whitespaceRE = regexp.MustCompile(`[ \t]+`)

// extractText pulls readable text out of an HTML document. Scripts, styles
// and navigation chrome are dropped; block elements become line breaks.
func extractText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, nav, header, footer, aside, iframe, form").Remove()

	root := doc.Find("article")
	if root.Length() == 0 {
		root = doc.Find("main")
	}
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	var lines []string
	root.Find("h1, h2, h3, h4, p, li, blockquote").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(whitespaceRE.ReplaceAllString(s.Text(), " "))
		if text != "" {
			lines = append(lines, text)
		}
	})

	// Pages without paragraph structure fall back to the whole node text.
	if len(lines) == 0 {
		text := strings.TrimSpace(whitespaceRE.ReplaceAllString(root.Text(), " "))
		if text != "" {
			lines = append(lines, text)
		}
	}

	return strings.Join(lines, "\n"), nil
}
