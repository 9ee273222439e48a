package webpage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/leofalp/sitebrief/internal/utils"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent mimics a desktop browser. Some sites answer bare
	// clients with an empty shell or a block page.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36"

	// MaxBodySize is the maximum response body size (10MB).
	MaxBodySize = 10 * 1024 * 1024

	// NoTitleMarker stands in for a missing or empty document title.
	NoTitleMarker = "No title found"
)

// FetcherOptions holds the configuration applied to every fetch.
type FetcherOptions struct {
	// HTTPClient replaces the default client entirely. When set, Timeout
	// is ignored.
	HTTPClient *http.Client

	// UserAgent is sent on every request.
	UserAgent string

	// Timeout bounds the whole request, redirects and body included.
	Timeout time.Duration

	// MaxBodySize caps how much of the response body is read.
	MaxBodySize int64

	// MarkdownText switches body extraction from plain text to markdown.
	MarkdownText bool
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) func(*FetcherOptions) {
	return func(o *FetcherOptions) {
		o.HTTPClient = client
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) func(*FetcherOptions) {
	return func(o *FetcherOptions) {
		o.UserAgent = userAgent
	}
}

// WithTimeout overrides the request timeout.
func WithTimeout(timeout time.Duration) func(*FetcherOptions) {
	return func(o *FetcherOptions) {
		o.Timeout = timeout
	}
}

// WithMaxBodySize overrides the response body cap.
func WithMaxBodySize(size int64) func(*FetcherOptions) {
	return func(o *FetcherOptions) {
		o.MaxBodySize = size
	}
}

// WithMarkdownText extracts the cleaned body as markdown instead of plain
// text, preserving document structure for model consumption.
func WithMarkdownText() func(*FetcherOptions) {
	return func(o *FetcherOptions) {
		o.MarkdownText = true
	}
}

// Fetcher retrieves pages and parses them into [Page] values. Safe for
// reuse across fetches.
type Fetcher struct {
	client       *http.Client
	userAgent    string
	maxBodySize  int64
	markdownText bool
}

// New creates a fetcher with browser-like defaults.
func New(opts ...func(*FetcherOptions)) *Fetcher {
	options := FetcherOptions{
		UserAgent:   DefaultUserAgent,
		Timeout:     DefaultTimeout,
		MaxBodySize: MaxBodySize,
	}
	for _, opt := range opts {
		opt(&options)
	}

	client := options.HTTPClient
	if client == nil {
		client = newHTTPClient(options.Timeout)
	}

	return &Fetcher{
		client:       client,
		userAgent:    options.UserAgent,
		maxBodySize:  options.MaxBodySize,
		markdownText: options.MarkdownText,
	}
}

// Fetch retrieves rawURL and parses the response into a [Page].
//
// Scheme-less input such as "example.com" is normalized by prepending
// "https://". Any status other than 200 OK fails with a [*StatusError].
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	url, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("User-Agent", f.userAgent)

	response, err := f.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer utils.CloseWithLog(response.Body)

	if response.StatusCode != http.StatusOK {
		return nil, &StatusError{
			URL:        url,
			StatusCode: response.StatusCode,
			Status:     response.Status,
		}
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, f.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) == f.maxBodySize {
		return nil, fmt.Errorf("response body exceeds maximum size of %d bytes", f.maxBodySize)
	}

	return f.parse(url, body)
}

// normalizeURL trims surrounding whitespace and defaults the scheme to
// https.
func normalizeURL(rawURL string) (string, error) {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return "", fmt.Errorf("URL cannot be empty")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return url, nil
}

// parse reduces the fetched markup to title, visible text, and links.
func (f *Fetcher) parse(url string, body []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = NoTitleMarker
	}

	// Elements whose content is never visible text go before both the
	// text walk and the link collection.
	doc.Find("body").Find("script, style, img, input").Remove()

	text, err := f.bodyText(doc)
	if err != nil {
		return nil, err
	}

	links := make([]string, 0)
	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		if href, _ := anchor.Attr("href"); href != "" {
			links = append(links, href)
		}
	})

	return &Page{
		URL:   url,
		Title: title,
		Text:  text,
		Links: links,
	}, nil
}

// bodyText extracts the body content after cleanup, as plain text or
// markdown depending on the fetcher mode.
func (f *Fetcher) bodyText(doc *goquery.Document) (string, error) {
	bodySel := doc.Find("body").First()
	if bodySel.Length() == 0 {
		return "", nil
	}

	if f.markdownText {
		bodyHTML, err := goquery.OuterHtml(bodySel)
		if err != nil {
			return "", fmt.Errorf("failed to render body HTML: %w", err)
		}
		markdown, err := htmltomarkdown.ConvertString(bodyHTML)
		if err != nil {
			return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
		}
		return strings.TrimSpace(markdown), nil
	}

	return visibleText(bodySel.Nodes[0]), nil
}

// visibleText walks the node tree collecting text nodes: each one is
// whitespace-trimmed, empties are dropped, the rest joined with newlines.
func visibleText(root *html.Node) string {
	var lines []string

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			if trimmed := strings.TrimSpace(node.Data); trimmed != "" {
				lines = append(lines, trimmed)
			}
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	return strings.Join(lines, "\n")
}

// newHTTPClient builds the default client: overall timeout, bounded
// redirects, conservative transport limits.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
			IdleConnTimeout:       90 * time.Second,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			ForceAttemptHTTP2:     true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects (>10)")
			}
			return nil
		},
	}
}
