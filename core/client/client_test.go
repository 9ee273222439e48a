package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/leofalp/sitebrief/internal/jsonschema"
	"github.com/leofalp/sitebrief/providers/ai"
)

// ========== Mock Types ==========

type mockProvider struct {
	sendMessageFunc func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error)
	calls           []ai.ChatRequest
}

func (m *mockProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	m.calls = append(m.calls, request)
	if m.sendMessageFunc != nil {
		return m.sendMessageFunc(ctx, request)
	}
	return &ai.ChatResponse{Model: request.Model, Content: "ok", FinishReason: "stop"}, nil
}

func (m *mockProvider) WithAPIKey(string) ai.Provider           { return m }
func (m *mockProvider) WithBaseURL(string) ai.Provider          { return m }
func (m *mockProvider) WithHttpClient(*http.Client) ai.Provider { return m }

// ========== Construction ==========

// TestNew_AppliesOptions verifies functional options land in the client
// configuration.
func TestNew_AppliesOptions(t *testing.T) {
	provider := &mockProvider{}

	c := New(provider,
		WithSystemPrompt("Respond in markdown."),
		WithDefaultModel("gpt-4o-mini"),
		WithGenerationConfig(ai.GenerationConfig{Temperature: 0.2}),
	)

	if c.options.SystemPrompt != "Respond in markdown." {
		t.Errorf("unexpected system prompt: %q", c.options.SystemPrompt)
	}
	if c.options.DefaultModel != "gpt-4o-mini" {
		t.Errorf("unexpected default model: %q", c.options.DefaultModel)
	}
	if c.options.GenerationConfig == nil || c.options.GenerationConfig.Temperature != 0.2 {
		t.Errorf("unexpected generation config: %+v", c.options.GenerationConfig)
	}
}

// ========== SendMessage ==========

// TestSendMessage_BuildsSingleTurnRequest verifies the request carries the
// defaults and exactly one user message.
func TestSendMessage_BuildsSingleTurnRequest(t *testing.T) {
	provider := &mockProvider{}

	c := New(provider,
		WithSystemPrompt("Be brief."),
		WithDefaultModel("gpt-4o-mini"),
	)

	if _, err := c.SendMessage(context.Background(), "hello"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if len(provider.calls) != 1 {
		t.Fatalf("expected 1 provider call, got %d", len(provider.calls))
	}
	request := provider.calls[0]
	if request.Model != "gpt-4o-mini" {
		t.Errorf("unexpected model: %q", request.Model)
	}
	if request.SystemPrompt != "Be brief." {
		t.Errorf("unexpected system prompt: %q", request.SystemPrompt)
	}
	if len(request.Messages) != 1 || request.Messages[0].Role != ai.RoleUser || request.Messages[0].Content != "hello" {
		t.Errorf("unexpected messages: %+v", request.Messages)
	}
}

// TestSendMessage_Stateless verifies consecutive sends do not accumulate
// history.
func TestSendMessage_Stateless(t *testing.T) {
	provider := &mockProvider{}
	c := New(provider, WithDefaultModel("gpt-4o-mini"))

	for _, prompt := range []string{"first", "second", "third"} {
		if _, err := c.SendMessage(context.Background(), prompt); err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
	}

	for i, request := range provider.calls {
		if len(request.Messages) != 1 {
			t.Errorf("call %d: expected 1 message, got %d", i, len(request.Messages))
		}
	}
	if provider.calls[2].Messages[0].Content != "third" {
		t.Errorf("unexpected final prompt: %q", provider.calls[2].Messages[0].Content)
	}
}

// TestSendMessage_NoModel verifies a send without any model fails before
// reaching the provider.
func TestSendMessage_NoModel(t *testing.T) {
	provider := &mockProvider{}
	c := New(provider)

	if _, err := c.SendMessage(context.Background(), "hello"); err == nil {
		t.Fatal("expected error when no model is configured")
	}
	if len(provider.calls) != 0 {
		t.Error("expected no provider call without a model")
	}
}

// TestSendMessage_PerSendOverrides verifies per-send options replace the
// defaults for one call only.
func TestSendMessage_PerSendOverrides(t *testing.T) {
	provider := &mockProvider{}
	c := New(provider,
		WithSystemPrompt("default prompt"),
		WithDefaultModel("gpt-4o-mini"),
	)

	_, err := c.SendMessage(context.Background(), "hello",
		WithModel("gpt-4o"),
		WithSystemPromptOverride("override prompt"),
	)
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if _, err := c.SendMessage(context.Background(), "again"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if provider.calls[0].Model != "gpt-4o" || provider.calls[0].SystemPrompt != "override prompt" {
		t.Errorf("overrides not applied: %+v", provider.calls[0])
	}
	if provider.calls[1].Model != "gpt-4o-mini" || provider.calls[1].SystemPrompt != "default prompt" {
		t.Errorf("defaults not restored on next send: %+v", provider.calls[1])
	}
}

// TestSendMessage_EmptySystemPromptOverride verifies an explicit empty
// override suppresses the default system prompt.
func TestSendMessage_EmptySystemPromptOverride(t *testing.T) {
	provider := &mockProvider{}
	c := New(provider,
		WithSystemPrompt("default prompt"),
		WithDefaultModel("gpt-4o-mini"),
	)

	if _, err := c.SendMessage(context.Background(), "hello", WithSystemPromptOverride("")); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if provider.calls[0].SystemPrompt != "" {
		t.Errorf("expected suppressed system prompt, got %q", provider.calls[0].SystemPrompt)
	}
}

// TestSendMessage_OutputSchemaOption verifies a per-send schema becomes a
// strict response format.
func TestSendMessage_OutputSchemaOption(t *testing.T) {
	type shape struct {
		Name string `json:"name"`
	}
	schema, err := jsonschema.GenerateJSONSchema[shape]()
	if err != nil {
		t.Fatalf("failed to generate schema: %v", err)
	}

	provider := &mockProvider{}
	c := New(provider, WithDefaultModel("gpt-4o-mini"))

	if _, err := c.SendMessage(context.Background(), "hello", WithOutputSchema(schema)); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	format := provider.calls[0].ResponseFormat
	if format == nil || format.OutputSchema != schema {
		t.Fatalf("expected schema in response format, got %+v", format)
	}
	if !format.Strict {
		t.Error("expected strict mode with an output schema")
	}
}

// TestSendMessage_ResponseFormatType verifies a bare format hint is
// forwarded when no schema is set.
func TestSendMessage_ResponseFormatType(t *testing.T) {
	provider := &mockProvider{}
	c := New(provider, WithDefaultModel("gpt-4o-mini"))

	if _, err := c.SendMessage(context.Background(), "hello", WithResponseFormatType("json_object")); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	format := provider.calls[0].ResponseFormat
	if format == nil || format.Type != "json_object" {
		t.Errorf("expected json_object format, got %+v", format)
	}
}

// TestSendMessage_ProviderError verifies provider failures propagate.
func TestSendMessage_ProviderError(t *testing.T) {
	provider := &mockProvider{
		sendMessageFunc: func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			return nil, errors.New("provider down")
		},
	}
	c := New(provider, WithDefaultModel("gpt-4o-mini"))

	if _, err := c.SendMessage(context.Background(), "hello"); err == nil {
		t.Fatal("expected provider error to propagate")
	}
}

// TestSendMessage_NilProvider verifies a client without a provider fails
// cleanly.
func TestSendMessage_NilProvider(t *testing.T) {
	c := New(nil, WithDefaultModel("gpt-4o-mini"))

	if _, err := c.SendMessage(context.Background(), "hello"); err == nil {
		t.Fatal("expected error with nil provider")
	}
}

// ========== Middleware ==========

// TestMiddleware_Order verifies the first configured middleware runs
// outermost.
func TestMiddleware_Order(t *testing.T) {
	var order []string

	tag := func(name string) MiddlewareConfig {
		return MiddlewareConfig{
			Send: func(next SendFunc) SendFunc {
				return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
					order = append(order, name+" before")
					response, err := next(ctx, request)
					order = append(order, name+" after")
					return response, err
				}
			},
		}
	}

	provider := &mockProvider{}
	c := New(provider,
		WithDefaultModel("gpt-4o-mini"),
		WithMiddlewares(tag("outer"), tag("inner")),
	)

	if _, err := c.SendMessage(context.Background(), "hello"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	want := []string{"outer before", "inner before", "inner after", "outer after"}
	if len(order) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], order[i])
		}
	}
}

// TestMiddleware_NilSendSkipped verifies an empty config entry does not
// break the chain.
func TestMiddleware_NilSendSkipped(t *testing.T) {
	provider := &mockProvider{}
	c := New(provider,
		WithDefaultModel("gpt-4o-mini"),
		WithMiddlewares(MiddlewareConfig{}),
	)

	if _, err := c.SendMessage(context.Background(), "hello"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if len(provider.calls) != 1 {
		t.Errorf("expected the provider to be reached, got %d calls", len(provider.calls))
	}
}

// TestMiddleware_CanShortCircuit verifies a middleware may answer without
// calling the provider.
func TestMiddleware_CanShortCircuit(t *testing.T) {
	provider := &mockProvider{}
	c := New(provider,
		WithDefaultModel("gpt-4o-mini"),
		WithMiddlewares(MiddlewareConfig{
			Send: func(next SendFunc) SendFunc {
				return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
					return &ai.ChatResponse{Content: "cached", FinishReason: "stop"}, nil
				}
			},
		}),
	)

	response, err := c.SendMessage(context.Background(), "hello")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if response.Content != "cached" {
		t.Errorf("expected short-circuit content, got %q", response.Content)
	}
	if len(provider.calls) != 0 {
		t.Error("expected the provider to be skipped")
	}
}
