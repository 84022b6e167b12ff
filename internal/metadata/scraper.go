// Package metadata scrapes a tool's landing page for the images and
// description used to prefill catalog entries.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/httpclient"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
)

const maxPageBytes = 5 << 20

var (
	ErrInvalidURL     = errors.New("invalid URL")
	ErrBlockedHost    = errors.New("blocked hostname")
	ErrUnexpectedCode = errors.New("unexpected status code")
)

var blockedHosts = map[string]bool{
	"localhost":                true,
	"metadata.google.internal": true,
	"169.254.169.254":          true,
}

// Result is what a page yields. Image URLs are absolute.
type Result struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Screenshot  string `json:"screenshot"`
	Logo        string `json:"logo"`
}

// Scraper fetches pages through a client that refuses private networks.
type Scraper struct {
	client       *http.Client
	userAgent    string
	allowPrivate bool
	log          logger.Logger
}

// NewScraper builds a scraper from cfg.
func NewScraper(cfg config.ScraperConfig, log logger.Logger) *Scraper {
	return &Scraper{
		client: httpclient.New(&httpclient.Config{
			Timeout:      cfg.Timeout,
			BlockPrivate: !cfg.AllowPrivate,
		}),
		userAgent:    cfg.UserAgent,
		allowPrivate: cfg.AllowPrivate,
		log:          log,
	}
}

// Client exposes the guarded HTTP client for image downloads.
func (s *Scraper) Client() *http.Client {
	return s.client
}

// Scrape fetches pageURL and extracts its metadata.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (*Result, error) {
	parsed, err := ValidateURL(pageURL, s.allowPrivate)
	if err != nil {
		return nil, err
	}

	s.log.Info("Scraping tool page", logger.String("url", parsed.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedCode, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	// Relative links resolve against the final URL after redirects.
	base := resp.Request.URL
	result := &Result{
		URL:         base.String(),
		Name:        extractName(doc, base),
		Description: extractDescription(doc),
		Screenshot:  resolve(base, extractImage(doc)),
		Logo:        resolve(base, extractLogo(doc)),
	}

	s.log.Info("Scrape complete",
		logger.String("url", result.URL),
		logger.String("name", result.Name),
		logger.Bool("has_screenshot", result.Screenshot != ""),
		logger.Bool("has_logo", result.Logo != ""),
	)
	return result, nil
}

// ValidateURL accepts absolute http(s) URLs whose host is not a known
// internal endpoint. Literal private IPs are refused unless allowPrivate.
func ValidateURL(raw string, allowPrivate bool) (*url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: invalid URL scheme %q", ErrInvalidURL, parsed.Scheme)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	if allowPrivate {
		return parsed, nil
	}
	if blockedHosts[host] || strings.HasSuffix(host, ".localhost") {
		return nil, fmt.Errorf("%w: %s", ErrBlockedHost, host)
	}
	return parsed, nil
}

func meta(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if v, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func extractName(doc *goquery.Document, base *url.URL) string {
	if v := meta(doc, "meta[property='og:title']", "meta[property='og:site_name']"); v != "" {
		return v
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return base.Hostname()
}

func extractDescription(doc *goquery.Document) string {
	return meta(doc,
		"meta[property='og:description']",
		"meta[name='description']",
		"meta[name='twitter:description']",
	)
}

func extractImage(doc *goquery.Document) string {
	return meta(doc,
		"meta[property='og:image']",
		"meta[property='og:image:url']",
		"meta[name='twitter:image']",
	)
}

func extractLogo(doc *goquery.Document) string {
	for _, sel := range []string{
		"link[rel='apple-touch-icon']",
		"link[rel='icon'][type='image/png']",
		"link[rel='icon']",
		"link[rel='shortcut icon']",
	} {
		if href, ok := doc.Find(sel).First().Attr("href"); ok && strings.TrimSpace(href) != "" {
			return strings.TrimSpace(href)
		}
	}
	return "/favicon.ico"
}

func resolve(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	u, err := base.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.String()
}
