package brief

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/leofalp/sitebrief/core/webpage"
	"github.com/leofalp/sitebrief/providers/ai"
)

// ========== Mock Types ==========

// scriptedProvider answers each SendMessage call with the next canned
// reply, recording every request.
type scriptedProvider struct {
	responses []string
	calls     []ai.ChatRequest
}

func (p *scriptedProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	p.calls = append(p.calls, request)
	if len(p.calls) > len(p.responses) {
		return nil, fmt.Errorf("unexpected call %d", len(p.calls))
	}
	return &ai.ChatResponse{
		Model:        request.Model,
		Content:      p.responses[len(p.calls)-1],
		FinishReason: "stop",
	}, nil
}

func (p *scriptedProvider) WithAPIKey(string) ai.Provider           { return p }
func (p *scriptedProvider) WithBaseURL(string) ai.Provider          { return p }
func (p *scriptedProvider) WithHttpClient(*http.Client) ai.Provider { return p }

// ========== Helpers ==========

// newCompanySite serves the given path-to-HTML map and counts fetches per
// path. Unknown paths answer 404.
func newCompanySite(t *testing.T, pages map[string]string) (*httptest.Server, func(path string) int) {
	t.Helper()

	var mu sync.Mutex
	counts := map[string]int{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		counts[r.URL.Path]++
		mu.Unlock()

		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(server.Close)

	return server, func(path string) int {
		mu.Lock()
		defer mu.Unlock()
		return counts[path]
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const landingHTML = `<html><head><title>Acme</title></head><body>
	<p>We make everything</p>
	<a href="/about">About us</a>
	<a href="/privacy">Privacy</a>
</body></html>`

const aboutHTML = `<html><head><title>About Acme</title></head><body>
	<p>Founded in 1999</p>
</body></html>`

// ========== Summarize ==========

// TestSummarize_EndToEnd verifies summarizing a simple page produces text
// without any link classification or sub-page fetch.
func TestSummarize_EndToEnd(t *testing.T) {
	server, count := newCompanySite(t, map[string]string{
		"/": `<html><head><title>Example</title></head><body><p>Hello</p><p>World</p></body></html>`,
	})

	provider := &scriptedProvider{responses: []string{"# Example\nA small page."}}
	generator, err := New(provider, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	summary, err := generator.Summarize(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if summary == "" {
		t.Error("expected a non-empty summary")
	}
	if len(provider.calls) != 1 {
		t.Fatalf("expected exactly 1 model call, got %d", len(provider.calls))
	}
	if count("/") != 1 {
		t.Errorf("expected exactly 1 page fetch, got %d", count("/"))
	}
	if provider.calls[0].ResponseFormat != nil {
		t.Error("expected no structured response format for a summary")
	}
}

// TestSummarize_PromptShape verifies the request carries the summary
// system prompt and the page content.
func TestSummarize_PromptShape(t *testing.T) {
	server, _ := newCompanySite(t, map[string]string{
		"/": `<html><head><title>Example</title></head><body><p>Hello</p><p>World</p></body></html>`,
	})

	provider := &scriptedProvider{responses: []string{"summary"}}
	generator, err := New(provider, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := generator.Summarize(context.Background(), server.URL); err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	request := provider.calls[0]
	if request.SystemPrompt != summarySystemPrompt {
		t.Errorf("unexpected system prompt: %q", request.SystemPrompt)
	}
	userPrompt := request.Messages[0].Content
	if !strings.Contains(userPrompt, "You are looking at a website titled Example") {
		t.Errorf("expected the title in the prompt, got %q", userPrompt)
	}
	if !strings.Contains(userPrompt, "Hello\nWorld") {
		t.Errorf("expected the page text in the prompt, got %q", userPrompt)
	}
	if request.Model != DefaultModel {
		t.Errorf("expected default model, got %q", request.Model)
	}
}

// TestSummarize_FetchFailureAborts verifies a non-success fetch stops the
// workflow before any model call.
func TestSummarize_FetchFailureAborts(t *testing.T) {
	server, _ := newCompanySite(t, map[string]string{})

	provider := &scriptedProvider{}
	generator, err := New(provider, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = generator.Summarize(context.Background(), server.URL+"/missing")
	if err == nil {
		t.Fatal("expected error for a 404 page")
	}

	var statusErr *webpage.StatusError
	if !errors.As(err, &statusErr) {
		t.Errorf("expected a StatusError, got %T: %v", err, err)
	}
	if len(provider.calls) != 0 {
		t.Errorf("expected no model calls after a failed fetch, got %d", len(provider.calls))
	}
}

// ========== Brochure ==========

// TestBrochure_EndToEnd verifies the full flow: classify links, fetch the
// selected pages, and generate from the combined document.
func TestBrochure_EndToEnd(t *testing.T) {
	server, count := newCompanySite(t, map[string]string{
		"/":      landingHTML,
		"/about": aboutHTML,
	})

	selectionJSON := fmt.Sprintf(`{"links": [{"type": "about page", "url": "%s/about"}]}`, server.URL)
	provider := &scriptedProvider{responses: []string{
		selectionJSON,
		"# Acme\nEverything you need.",
	}}

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	generator, err := New(provider, WithLogger(logger))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	brochure, err := generator.Brochure(context.Background(), "Acme", server.URL)
	if err != nil {
		t.Fatalf("Brochure failed: %v", err)
	}

	if brochure != "# Acme\nEverything you need." {
		t.Errorf("expected the model reply verbatim, got %q", brochure)
	}
	if len(provider.calls) != 2 {
		t.Fatalf("expected 2 model calls, got %d", len(provider.calls))
	}

	classification := provider.calls[0]
	if classification.SystemPrompt != linkSelectionSystemPrompt {
		t.Errorf("unexpected classification system prompt: %q", classification.SystemPrompt)
	}
	if classification.ResponseFormat == nil || classification.ResponseFormat.OutputSchema == nil {
		t.Error("expected a structured response format on the classification request")
	}
	if !strings.Contains(classification.Messages[0].Content, "/about") {
		t.Error("expected the landing page links in the classification prompt")
	}

	generation := provider.calls[1]
	if generation.SystemPrompt != brochureSystemPrompt {
		t.Errorf("unexpected brochure system prompt: %q", generation.SystemPrompt)
	}
	document := generation.Messages[0].Content
	for _, piece := range []string{
		"You are looking at a company called: Acme",
		"Landing page:",
		"We make everything",
		"about page",
		"Founded in 1999",
	} {
		if !strings.Contains(document, piece) {
			t.Errorf("expected %q in the brochure prompt", piece)
		}
	}

	if count("/") != 1 || count("/about") != 1 {
		t.Errorf("expected one fetch per page, got / = %d, /about = %d", count("/"), count("/about"))
	}
	if !strings.Contains(logBuf.String(), "selected brochure links") {
		t.Error("expected the selected links diagnostic in the log")
	}
}

// TestBrochure_UnparseableSelection verifies a prose classification reply
// fails with the classification error, without fetching anything further.
func TestBrochure_UnparseableSelection(t *testing.T) {
	server, count := newCompanySite(t, map[string]string{
		"/": landingHTML,
	})

	provider := &scriptedProvider{responses: []string{
		"Sorry, I cannot pick links for you.",
	}}
	generator, err := New(provider, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = generator.Brochure(context.Background(), "Acme", server.URL)
	if !errors.Is(err, ErrInvalidLinkSelection) {
		t.Fatalf("expected ErrInvalidLinkSelection, got %v", err)
	}
	if count("/about") != 0 {
		t.Error("expected no sub-page fetches after a failed classification")
	}
	if len(provider.calls) != 1 {
		t.Errorf("expected no brochure generation call, got %d calls", len(provider.calls))
	}
}

// TestBrochure_MissingLinksField verifies JSON of the wrong shape is
// rejected explicitly.
func TestBrochure_MissingLinksField(t *testing.T) {
	server, _ := newCompanySite(t, map[string]string{
		"/": landingHTML,
	})

	provider := &scriptedProvider{responses: []string{
		`{"pages": ["https://example.com/about"]}`,
	}}
	generator, err := New(provider, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = generator.Brochure(context.Background(), "Acme", server.URL)
	if !errors.Is(err, ErrInvalidLinkSelection) {
		t.Fatalf("expected ErrInvalidLinkSelection, got %v", err)
	}
}

// TestBrochure_EmptySelection verifies an empty selection is not an
// error: the brochure builds from the landing page alone.
func TestBrochure_EmptySelection(t *testing.T) {
	server, count := newCompanySite(t, map[string]string{
		"/": landingHTML,
	})

	provider := &scriptedProvider{responses: []string{
		`{"links": []}`,
		"# Acme\nShort brochure.",
	}}
	generator, err := New(provider, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	brochure, err := generator.Brochure(context.Background(), "Acme", server.URL)
	if err != nil {
		t.Fatalf("Brochure failed: %v", err)
	}
	if brochure != "# Acme\nShort brochure." {
		t.Errorf("unexpected brochure: %q", brochure)
	}
	if count("/") != 1 {
		t.Errorf("expected only the landing page fetch, got %d", count("/"))
	}
}

// TestBrochure_SubFetchFailureAborts verifies a failed selected-link fetch
// aborts the whole aggregation with no partial brochure.
func TestBrochure_SubFetchFailureAborts(t *testing.T) {
	server, _ := newCompanySite(t, map[string]string{
		"/": landingHTML,
	})

	selectionJSON := fmt.Sprintf(`{"links": [{"type": "about page", "url": "%s/gone"}]}`, server.URL)
	provider := &scriptedProvider{responses: []string{
		selectionJSON,
		"should never be requested",
	}}
	generator, err := New(provider, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = generator.Brochure(context.Background(), "Acme", server.URL)
	if err == nil {
		t.Fatal("expected error for a failed sub-page fetch")
	}

	var statusErr *webpage.StatusError
	if !errors.As(err, &statusErr) {
		t.Errorf("expected a StatusError in the chain, got %v", err)
	}
	if len(provider.calls) != 1 {
		t.Errorf("expected no brochure generation after a failed fetch, got %d calls", len(provider.calls))
	}
}

// TestBrochure_DocumentCap verifies the aggregated document never exceeds
// the configured cap, cut at exactly that rune boundary.
func TestBrochure_DocumentCap(t *testing.T) {
	server, _ := newCompanySite(t, map[string]string{
		"/": landingHTML,
	})

	provider := &scriptedProvider{responses: []string{
		`{"links": []}`,
		"brochure",
	}}
	generator, err := New(provider, WithLogger(quietLogger()), WithMaxDocumentChars(40))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := generator.Brochure(context.Background(), "Acme", server.URL); err != nil {
		t.Fatalf("Brochure failed: %v", err)
	}

	preamble := brochureUserPrompt("Acme", "")
	document := strings.TrimPrefix(provider.calls[1].Messages[0].Content, preamble)
	if got := utf8.RuneCountInString(document); got != 40 {
		t.Errorf("expected the document cut at exactly 40 runes, got %d", got)
	}
}

// ========== Truncation ==========

// TestTruncateRunes verifies the blind cutoff semantics, including
// multibyte content.
func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{
			name: "shorter than cap unchanged",
			in:   "hello",
			max:  10,
			want: "hello",
		},
		{
			name: "exactly at cap unchanged",
			in:   "hello",
			max:  5,
			want: "hello",
		},
		{
			name: "longer than cap cut mid-word",
			in:   "hello world",
			max:  7,
			want: "hello w",
		},
		{
			name: "multibyte runes counted as single characters",
			in:   "日本語のテキスト",
			max:  3,
			want: "日本語",
		},
		{
			name: "zero cap disables truncation",
			in:   "hello world",
			max:  0,
			want: "hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateRunes(tt.in, tt.max); got != tt.want {
				t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
