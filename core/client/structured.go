package client

import (
	"context"
	"fmt"

	"github.com/leofalp/sitebrief/core/parse"
	"github.com/leofalp/sitebrief/internal/jsonschema"
	"github.com/leofalp/sitebrief/providers/ai"
)

// StructuredClient is a [Client] whose replies decode into OutputType. The
// JSON schema for OutputType is generated once at construction and sent as
// the response format on every request.
type StructuredClient[OutputType any] struct {
	*Client
	schema *jsonschema.Schema
}

// FromBaseClient promotes an existing client to a structured one. The base
// client's default output schema is replaced, so callers that still need
// free-form replies should use a separate client.
func FromBaseClient[OutputType any](base *Client) (*StructuredClient[OutputType], error) {
	schema, err := jsonschema.GenerateJSONSchema[OutputType]()
	if err != nil {
		var zero OutputType
		return nil, fmt.Errorf("failed to generate schema for %T: %w", zero, err)
	}

	base.SetDefaultOutputSchema(schema)

	return &StructuredClient[OutputType]{
		Client: base,
		schema: schema,
	}, nil
}

// NewStructured creates a structured client directly from a provider.
func NewStructured[OutputType any](llmProvider ai.Provider, opts ...func(*ClientOptions)) (*StructuredClient[OutputType], error) {
	return FromBaseClient[OutputType](New(llmProvider, opts...))
}

// Schema returns the generated schema sent with every request.
func (sc *StructuredClient[OutputType]) Schema() *jsonschema.Schema {
	return sc.schema
}

// SendMessage sends a single user prompt and decodes the reply into
// OutputType. A reply that cannot be decoded, even after repair, is an
// error.
func (sc *StructuredClient[OutputType]) SendMessage(ctx context.Context, prompt string, opts ...SendMessageOption) (*ai.StructuredChatResponse[OutputType], error) {
	response, err := sc.Client.SendMessage(ctx, prompt, opts...)
	if err != nil {
		return nil, err
	}
	return parseResponse[OutputType](response)
}

// parseResponse decodes the reply content into OutputType, keeping the raw
// response alongside the typed data.
func parseResponse[OutputType any](response *ai.ChatResponse) (*ai.StructuredChatResponse[OutputType], error) {
	data, err := parse.ParseStringAs[OutputType](response.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response into %T: %w", data, err)
	}

	return &ai.StructuredChatResponse[OutputType]{
		ChatResponse: *response,
		Data:         &data,
	}, nil
}
