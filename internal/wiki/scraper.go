package wiki

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// DefaultUserAgent identifies the scraper to Wikipedia.
	DefaultUserAgent = "WikiQuizGenerator/1.0 (Educational Project)"

	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 10 * time.Second

	// DefaultTitle is used when the page has no #firstHeading.
	DefaultTitle = "Wikipedia Topic"

	introSection = "Introduction"
	maxPageBytes = 16 << 20
)

// ErrNoContent means the page has no article body to read.
var ErrNoContent = errors.New("could not identify the main content area of this article")

// ErrPageTooLarge means the page body exceeded the download limit.
var ErrPageTooLarge = errors.New("page exceeds the download limit")

// FetchError is a failed page download.
type FetchError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Section is one headed part of an article with its paragraphs joined by
// newlines.
type Section struct {
	Title string
	Text  string
}

// Page is the scraped content of one article.
type Page struct {
	Title    string
	Text     string // all paragraphs, joined by blank lines
	Sections []Section
	RawHTML  string
}

// Scraper downloads and parses Wikipedia article pages.
type Scraper struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

// NewScraper creates a Scraper. A nil client gets DefaultTimeout and an
// empty userAgent gets DefaultUserAgent.
func NewScraper(client *http.Client, userAgent string) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Scraper{client: client, userAgent: userAgent, maxBytes: maxPageBytes}
}

// Scrape fetches url and extracts its title, text and sections.
func (s *Scraper) Scrape(ctx context.Context, url string) (*Page, error) {
	body, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	page, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	log.Debug().
		Str("url", url).
		Str("title", page.Title).
		Int("sections", len(page.Sections)).
		Int("text_len", len(page.Text)).
		Msg("scraped article")
	return page, nil
}

func (s *Scraper) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	// One byte past the limit tells a page of exactly maxBytes from a longer one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if int64(len(body)) > s.maxBytes {
		return nil, &FetchError{URL: url, Err: ErrPageTooLarge}
	}
	return body, nil
}

// Parse extracts a Page from an article's HTML. Only direct children of the
// parser output are read: h2/h3 headings open sections and p elements add
// paragraphs.
func Parse(body []byte) (*Page, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	page := &Page{Title: DefaultTitle, RawHTML: string(body)}
	if h := findByID(doc, "firstHeading"); h != nil {
		if title := textContent(h); title != "" {
			page.Title = title
		}
	}

	content := findByID(doc, "mw-content-text")
	if content == nil {
		return nil, ErrNoContent
	}
	output := findByClass(content, "mw-parser-output")
	if output == nil {
		return nil, ErrNoContent
	}

	var (
		paragraphs []string
		current    = Section{Title: introSection}
		lines      []string
	)
	flush := func() {
		if len(lines) > 0 {
			current.Text = strings.Join(lines, "\n")
			page.Sections = append(page.Sections, current)
		}
		lines = nil
	}

	for c := output.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if h := heading(c); h != nil {
			flush()
			current = Section{Title: sectionTitle(h)}
			continue
		}
		if c.DataAtom == atom.P {
			if text := textContent(c); text != "" {
				lines = append(lines, text)
				paragraphs = append(paragraphs, text)
			}
		}
	}
	flush()

	page.Text = strings.Join(paragraphs, "\n\n")
	return page, nil
}

// heading returns the h2/h3 element n represents. Current MediaWiki wraps
// headings in <div class="mw-heading">.
func heading(n *html.Node) *html.Node {
	switch n.DataAtom {
	case atom.H2, atom.H3:
		return n
	case atom.Div:
		if hasClass(n, "mw-heading") {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.DataAtom == atom.H2 || c.DataAtom == atom.H3 {
					return c
				}
			}
		}
	}
	return nil
}

func sectionTitle(h *html.Node) string {
	title := strings.ReplaceAll(textContent(h), "[edit]", "")
	return strings.TrimSpace(title)
}

// textContent joins the trimmed text nodes under n with single spaces,
// skipping scripts, styles and edit links.
func textContent(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case n.Type == html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style || hasClass(n, "mw-editsection") {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

func findByID(n *html.Node, id string) *html.Node {
	return find(n, func(n *html.Node) bool { return attr(n, "id") == id })
}

func findByClass(n *html.Node, class string) *html.Node {
	return find(n, func(n *html.Node) bool { return hasClass(n, class) })
}

// find returns the first element under n, depth first, matching fn.
func find(n *html.Node, fn func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && fn(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, fn); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
