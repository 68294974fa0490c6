// Package extract turns a URL or pasted text into a normalized Article.
package extract

import (
	"context"
	"errors"
	"html"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/realorrender/realorrender/src/types"
	"github.com/realorrender/realorrender/src/webclient"
)

const (
	// MaxArticleLength bounds the body kept from any source so an
	// oversized page cannot blow up downstream analysis.
	MaxArticleLength = 20000
	maxTitleLength   = 500

	defaultFetchTimeout = 15 * time.Second
)

// ErrNoContent is returned when neither the URL nor the raw text yields
// any usable article body. It is the only failure the pipeline surfaces.
var ErrNoContent = errors.New("no article content could be extracted")

var whitespaceRun = regexp.MustCompile(`\s+`)

// candidate selectors for the main article body, tried in order.
var contentSelectors = []string{
	"article",
	"main",
	"[role=main]",
	"#content",
	".article-body",
	".post-content",
}

type Extractor struct {
	client    *http.Client
	sanitizer *bluemonday.Policy
}

func New(timeout time.Duration) *Extractor {
	if timeout == 0 {
		timeout = defaultFetchTimeout
	}
	return &Extractor{
		client:    webclient.NewDefault(timeout),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Extract tries the URL first, then falls back to the raw text. Returns
// ErrNoContent when both are absent or unusable.
func (e *Extractor) Extract(ctx context.Context, articleURL, rawText string) (*types.Article, error) {
	if articleURL != "" {
		if art := e.fromURL(ctx, articleURL); art != nil {
			return art, nil
		}
	}
	if strings.TrimSpace(rawText) != "" {
		if art := e.fromRawText(rawText, articleURL); art != nil {
			return art, nil
		}
	}
	return nil, ErrNoContent
}

// fromURL fetches and extracts the main content of a page. Returns nil on
// any failure; the caller decides whether raw text can stand in.
func (e *Extractor) fromURL(ctx context.Context, articleURL string) *types.Article {
	if !strings.HasPrefix(articleURL, "http://") && !strings.HasPrefix(articleURL, "https://") {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", articleURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", webclient.UserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		log.Printf("extract: fetch %s: %v", articleURL, err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("extract: fetch %s: status %d", articleURL, resp.StatusCode)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		log.Printf("extract: parse %s: %v", articleURL, err)
		return nil
	}

	title := cleanText(doc.Find("title").First().Text())
	if title == "" {
		title = "Untitled"
	}

	text := e.cleanBody(mainContent(doc))
	if text == "" {
		return nil
	}

	return &types.Article{
		Title:     truncate(title, maxTitleLength),
		Text:      text,
		URL:       articleURL,
		Publisher: publisherFromURL(articleURL),
	}
}

// fromRawText uses pasted text verbatim, after the same normalization and
// length bound as extracted pages.
func (e *Extractor) fromRawText(rawText, articleURL string) *types.Article {
	text := e.cleanBody(rawText)
	if text == "" {
		return nil
	}
	art := &types.Article{
		Title: "Pasted Article",
		Text:  text,
		URL:   "about:blank",
	}
	if articleURL != "" {
		art.URL = articleURL
		art.Publisher = publisherFromURL(articleURL)
	}
	return art
}

// mainContent picks the most article-like part of the document.
func mainContent(doc *goquery.Document) string {
	doc.Find("script, style, nav, header, footer, aside, noscript, iframe").Remove()

	for _, sel := range contentSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if text := paragraphText(node); text != "" {
			return text
		}
		if text := node.Text(); strings.TrimSpace(text) != "" {
			return text
		}
	}

	if text := paragraphText(doc.Find("body")); text != "" {
		return text
	}
	return doc.Find("body").Text()
}

func paragraphText(sel *goquery.Selection) string {
	var parts []string
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		if t := strings.TrimSpace(p.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

// cleanBody strips residual markup, normalizes whitespace and applies the
// security length bound.
func (e *Extractor) cleanBody(text string) string {
	text = html.UnescapeString(e.sanitizer.Sanitize(text))
	return truncate(cleanText(text), MaxArticleLength)
}

func cleanText(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// truncate cuts text to at most max bytes without splitting a rune.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max]
}

// publisherFromURL derives the publisher from the host, minus a leading www.
func publisherFromURL(articleURL string) *string {
	parsed, err := url.Parse(articleURL)
	if err != nil {
		return nil
	}
	host := parsed.Hostname()
	if host == "" {
		return nil
	}
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	if host == "" {
		return nil
	}
	return &host
}
