package client

import (
	"context"
	"fmt"

	"github.com/leofalp/sitebrief/internal/jsonschema"
	"github.com/leofalp/sitebrief/providers/ai"
)

// Client sends single-turn requests to an LLM provider. It is stateless:
// no conversation history survives a call.
type Client struct {
	provider ai.Provider
	options  ClientOptions
	send     SendFunc
}

// ClientOptions holds the client-wide defaults applied to every send.
type ClientOptions struct {
	// SystemPrompt is prepended to every request unless overridden per send.
	SystemPrompt string

	// DefaultModel is used when a send does not specify a model.
	DefaultModel string

	// GenerationConfig carries sampling parameters for every request.
	GenerationConfig *ai.GenerationConfig

	// OutputSchema, when set, forces structured JSON output on every send.
	// Usually populated through [FromBaseClient] rather than directly.
	OutputSchema *jsonschema.Schema

	// Middlewares wrap the send path. The first entry is outermost.
	Middlewares []MiddlewareConfig
}

// WithSystemPrompt sets the default system prompt.
func WithSystemPrompt(prompt string) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.SystemPrompt = prompt
	}
}

// WithDefaultModel sets the model used when a send does not name one.
func WithDefaultModel(model string) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.DefaultModel = model
	}
}

// WithGenerationConfig sets sampling parameters for every request.
func WithGenerationConfig(config ai.GenerationConfig) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.GenerationConfig = &config
	}
}

// WithMiddlewares appends middleware to the send chain.
func WithMiddlewares(configs ...MiddlewareConfig) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.Middlewares = append(o.Middlewares, configs...)
	}
}

// New creates a client for the given provider.
func New(llmProvider ai.Provider, opts ...func(*ClientOptions)) *Client {
	options := ClientOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	c := &Client{
		provider: llmProvider,
		options:  options,
	}
	c.send = buildSendChain(c.providerSend, options.Middlewares)
	return c
}

// SetDefaultOutputSchema forces structured JSON output on every subsequent
// send. Used by [FromBaseClient] to promote a client to a structured one.
func (c *Client) SetDefaultOutputSchema(schema *jsonschema.Schema) {
	c.options.OutputSchema = schema
}

/* ##### PER-SEND OPTIONS ##### */

type sendOptions struct {
	model              string
	systemPrompt       *string
	outputSchema       *jsonschema.Schema
	responseFormatType string
}

// SendMessageOption adjusts a single send without touching client defaults.
type SendMessageOption func(*sendOptions)

// WithModel overrides the model for this send.
func WithModel(model string) SendMessageOption {
	return func(o *sendOptions) {
		o.model = model
	}
}

// WithSystemPromptOverride replaces the default system prompt for this
// send. An empty string suppresses the system prompt entirely.
func WithSystemPromptOverride(prompt string) SendMessageOption {
	return func(o *sendOptions) {
		o.systemPrompt = &prompt
	}
}

// WithOutputSchema requests structured JSON output for this send.
func WithOutputSchema(schema *jsonschema.Schema) SendMessageOption {
	return func(o *sendOptions) {
		o.outputSchema = schema
	}
}

// WithResponseFormatType sets a bare response format hint such as
// "json_object". Ignored when an output schema is in effect.
func WithResponseFormatType(formatType string) SendMessageOption {
	return func(o *sendOptions) {
		o.responseFormatType = formatType
	}
}

/* ##### SEND ##### */

// SendMessage sends a single user prompt and returns the reply. The
// request is built from client defaults plus any per-send options and goes
// through the middleware chain.
func (c *Client) SendMessage(ctx context.Context, prompt string, opts ...SendMessageOption) (*ai.ChatResponse, error) {
	so := sendOptions{}
	for _, opt := range opts {
		opt(&so)
	}

	model := c.options.DefaultModel
	if so.model != "" {
		model = so.model
	}
	if model == "" {
		return nil, fmt.Errorf("no model configured: set WithDefaultModel or pass WithModel")
	}

	systemPrompt := c.options.SystemPrompt
	if so.systemPrompt != nil {
		systemPrompt = *so.systemPrompt
	}

	request := ai.ChatRequest{
		Model:        model,
		SystemPrompt: systemPrompt,
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: prompt},
		},
		GenerationConfig: c.options.GenerationConfig,
	}

	schema := c.options.OutputSchema
	if so.outputSchema != nil {
		schema = so.outputSchema
	}
	if schema != nil {
		request.ResponseFormat = &ai.ResponseFormat{
			OutputSchema: schema,
			Strict:       true,
		}
	} else if so.responseFormatType != "" {
		request.ResponseFormat = &ai.ResponseFormat{
			Type: so.responseFormatType,
		}
	}

	return c.send(ctx, request)
}

// providerSend is the innermost send, called after all middleware.
func (c *Client) providerSend(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if c.provider == nil {
		return nil, fmt.Errorf("no provider configured")
	}
	return c.provider.SendMessage(ctx, request)
}
