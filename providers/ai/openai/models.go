package openai

import (
	"github.com/leofalp/sitebrief/internal/jsonschema"
	"github.com/leofalp/sitebrief/internal/utils"
	"github.com/leofalp/sitebrief/providers/ai"
)

/* ##### CHAT COMPLETIONS INPUT ##### */

// chatCompletionRequest is the /chat/completions request wire format.
type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`

	// Generation parameters. Pointers so that zero values are omitted
	// and the API defaults apply.
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`

	ResponseFormat *chatResponseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content,omitempty"`
}

type chatResponseFormat struct {
	Type       string          `json:"type"` // "text", "json_object", "json_schema"
	JSONSchema *chatJSONSchema `json:"json_schema,omitempty"`
}

type chatJSONSchema struct {
	Name   string            `json:"name"`
	Schema jsonschema.Schema `json:"schema"`
	Strict bool              `json:"strict,omitempty"`
}

/* ##### CHAT COMPLETIONS OUTPUT ##### */

type chatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"` // "chat.completion"
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   *chatUsage   `json:"usage,omitempty"`
}

type chatChoice struct {
	Index        int                 `json:"index"`
	Message      chatResponseMessage `json:"message"`
	FinishReason string              `json:"finish_reason"` // "stop", "length", "content_filter"
}

type chatResponseMessage struct {
	Role    string `json:"role"` // "assistant"
	Content string `json:"content,omitempty"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

/* ##### CONVERSIONS ##### */

// requestToChatCompletion converts a generic [ai.ChatRequest] to the chat
// completions wire format. The system prompt, when present, becomes the
// first message of the conversation.
func requestToChatCompletion(request ai.ChatRequest) chatCompletionRequest {
	req := chatCompletionRequest{
		Model: request.Model,
	}

	if request.SystemPrompt != "" {
		req.Messages = append(req.Messages, chatMessage{
			Role:    string(ai.RoleSystem),
			Content: request.SystemPrompt,
		})
	}

	for _, msg := range request.Messages {
		req.Messages = append(req.Messages, chatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	if request.GenerationConfig != nil {
		cfg := request.GenerationConfig

		if cfg.Temperature > 0 {
			req.Temperature = utils.Ptr(float64(cfg.Temperature))
		}
		if cfg.TopP > 0 {
			req.TopP = utils.Ptr(float64(cfg.TopP))
		}
		if cfg.MaxTokens > 0 {
			req.MaxTokens = utils.Ptr(cfg.MaxTokens)
		}
	}

	if request.ResponseFormat != nil {
		if request.ResponseFormat.OutputSchema != nil {
			req.ResponseFormat = &chatResponseFormat{
				Type: "json_schema",
				JSONSchema: &chatJSONSchema{
					Name:   "response_schema",
					Schema: *request.ResponseFormat.OutputSchema,
					Strict: request.ResponseFormat.Strict,
				},
			}
		} else if request.ResponseFormat.Type != "" {
			req.ResponseFormat = &chatResponseFormat{
				Type: request.ResponseFormat.Type,
			}
		}
	}

	return req
}

// chatCompletionToGeneric converts a chat completions response to the
// generic [ai.ChatResponse]. Content is passed through verbatim.
func chatCompletionToGeneric(resp chatCompletionResponse) *ai.ChatResponse {
	chatResp := &ai.ChatResponse{
		Id:      resp.ID,
		Model:   resp.Model,
		Object:  resp.Object,
		Created: resp.Created,
	}

	if len(resp.Choices) == 0 {
		chatResp.FinishReason = "error"
		return chatResp
	}

	choice := resp.Choices[0]
	chatResp.Content = choice.Message.Content
	chatResp.FinishReason = choice.FinishReason

	if resp.Usage != nil {
		chatResp.Usage = &ai.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	return chatResp
}
