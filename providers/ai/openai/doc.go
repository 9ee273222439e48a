// Package openai implements the [ai.Provider] interface on top of the
// OpenAI chat completions API.
//
// The main entry point is [New], which reads OPENAI_API_KEY and
// OPENAI_API_BASE_URL from the environment when they are set. Use the
// With* methods to override values programmatically:
//
//	provider := openai.New().
//		WithAPIKey("sk-...").
//		WithBaseURL("https://my-proxy.example.com/v1")
//
// Any endpoint that speaks the /chat/completions wire format works, so
// self-hosted and proxy deployments are usable by pointing the base URL
// at them.
package openai
