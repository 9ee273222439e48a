package brief

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leofalp/sitebrief/core/client"
	"github.com/leofalp/sitebrief/core/parse"
	"github.com/leofalp/sitebrief/core/webpage"
	"github.com/leofalp/sitebrief/internal/utils"
	"github.com/leofalp/sitebrief/providers/ai"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o-mini"

	// DefaultMaxDocumentChars caps the aggregated brochure document.
	DefaultMaxDocumentChars = 5000
)

// GeneratorOptions holds the configuration shared by both workflows.
type GeneratorOptions struct {
	// Model names the chat model for every request.
	Model string

	// GenerationConfig carries optional sampling parameters.
	GenerationConfig *ai.GenerationConfig

	// MaxDocumentChars caps the aggregated document in Unicode code
	// points. Zero or negative disables the cap.
	MaxDocumentChars int

	// Fetcher retrieves pages. Defaults to webpage.New().
	Fetcher *webpage.Fetcher

	// Logger receives workflow diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// Middlewares are installed on both the chat and selector clients.
	Middlewares []client.MiddlewareConfig
}

// WithModel overrides the default chat model.
func WithModel(model string) func(*GeneratorOptions) {
	return func(o *GeneratorOptions) {
		o.Model = model
	}
}

// WithGenerationConfig sets sampling parameters for every request.
func WithGenerationConfig(config ai.GenerationConfig) func(*GeneratorOptions) {
	return func(o *GeneratorOptions) {
		o.GenerationConfig = &config
	}
}

// WithMaxDocumentChars overrides the aggregated document cap.
func WithMaxDocumentChars(max int) func(*GeneratorOptions) {
	return func(o *GeneratorOptions) {
		o.MaxDocumentChars = max
	}
}

// WithFetcher replaces the page fetcher.
func WithFetcher(fetcher *webpage.Fetcher) func(*GeneratorOptions) {
	return func(o *GeneratorOptions) {
		o.Fetcher = fetcher
	}
}

// WithLogger replaces the diagnostics logger.
func WithLogger(logger *slog.Logger) func(*GeneratorOptions) {
	return func(o *GeneratorOptions) {
		o.Logger = logger
	}
}

// WithMiddlewares installs client middleware such as request logging.
func WithMiddlewares(configs ...client.MiddlewareConfig) func(*GeneratorOptions) {
	return func(o *GeneratorOptions) {
		o.Middlewares = append(o.Middlewares, configs...)
	}
}

// Generator runs the summary and brochure workflows. Safe for reuse; no
// state survives a call.
type Generator struct {
	chat             *client.Client
	selector         *client.StructuredClient[LinkSelection]
	fetcher          *webpage.Fetcher
	maxDocumentChars int
	logger           *slog.Logger
}

// New builds a generator on top of the given provider.
func New(provider ai.Provider, opts ...func(*GeneratorOptions)) (*Generator, error) {
	options := GeneratorOptions{
		Model:            DefaultModel,
		MaxDocumentChars: DefaultMaxDocumentChars,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Fetcher == nil {
		options.Fetcher = webpage.New()
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	clientOpts := []func(*client.ClientOptions){
		client.WithDefaultModel(options.Model),
	}
	if options.GenerationConfig != nil {
		clientOpts = append(clientOpts, client.WithGenerationConfig(*options.GenerationConfig))
	}
	if len(options.Middlewares) > 0 {
		clientOpts = append(clientOpts, client.WithMiddlewares(options.Middlewares...))
	}

	// The narrative client and the structured selector stay separate so
	// the selector's JSON schema never leaks into narrative requests.
	selector, err := client.NewStructured[LinkSelection](provider, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build link selector: %w", err)
	}

	return &Generator{
		chat:             client.New(provider, clientOpts...),
		selector:         selector,
		fetcher:          options.Fetcher,
		maxDocumentChars: options.MaxDocumentChars,
		logger:           options.Logger,
	}, nil
}

// Summarize fetches one page and returns a short markdown summary of it.
// The model reply is returned verbatim.
func (g *Generator) Summarize(ctx context.Context, url string) (string, error) {
	page, err := g.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	response, err := g.chat.SendMessage(ctx, summaryUserPrompt(page),
		client.WithSystemPromptOverride(summarySystemPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	return response.Content, nil
}

// Brochure fetches the landing page, selects brochure-relevant links from
// it, fetches those pages, and returns a markdown company brochure. The
// model reply is returned verbatim.
func (g *Generator) Brochure(ctx context.Context, companyName, url string) (string, error) {
	landing, err := g.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	selection, err := g.selectRelevantLinks(ctx, landing)
	if err != nil {
		return "", err
	}
	g.logger.Info("selected brochure links",
		slog.Int("count", len(selection.Links)),
		slog.String("links", utils.ToString(selection)),
	)

	document, err := g.aggregate(ctx, landing, selection)
	if err != nil {
		return "", err
	}

	response, err := g.chat.SendMessage(ctx, brochureUserPrompt(companyName, document),
		client.WithSystemPromptOverride(brochureSystemPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate brochure: %w", err)
	}

	return response.Content, nil
}

// selectRelevantLinks asks the model which of the landing page's links
// belong in a brochure. The reply must decode into [LinkSelection] and
// carry a links field; anything else is [ErrInvalidLinkSelection].
func (g *Generator) selectRelevantLinks(ctx context.Context, landing *webpage.Page) (*LinkSelection, error) {
	response, err := g.selector.SendMessage(ctx, linkSelectionUserPrompt(landing),
		client.WithSystemPromptOverride(linkSelectionSystemPrompt),
	)
	if err != nil {
		if errors.Is(err, parse.ErrUnparsable) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLinkSelection, err)
		}
		return nil, fmt.Errorf("link selection request failed: %w", err)
	}

	if err := response.Data.Validate(); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// aggregate builds the brochure source document: the landing page first,
// then each selected page under its type label, fetched sequentially. Any
// sub-fetch failure aborts the aggregation.
func (g *Generator) aggregate(ctx context.Context, landing *webpage.Page, selection *LinkSelection) (string, error) {
	var document strings.Builder
	document.WriteString("Landing page:\n")
	document.WriteString(landing.Contents())

	for _, link := range selection.Links {
		page, err := g.fetcher.Fetch(ctx, link.URL)
		if err != nil {
			return "", fmt.Errorf("failed to fetch selected link %q: %w", link.URL, err)
		}
		document.WriteString(fmt.Sprintf("\n\n%s\n", link.Type))
		document.WriteString(page.Contents())
	}

	return truncateRunes(document.String(), g.maxDocumentChars), nil
}

// truncateRunes cuts s at exactly max code points. Blind cutoff: not
// word- or sentence-aware. max <= 0 means no cap.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
