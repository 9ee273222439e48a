package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leofalp/sitebrief/core/client"
	"github.com/leofalp/sitebrief/internal/utils"
	"github.com/leofalp/sitebrief/providers/ai"
)

// LogLevel controls how much of each exchange is logged.
type LogLevel int

const (
	// LogLevelMinimal logs the model, duration, and errors.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard adds message counts, token usage, and finish reason.
	LogLevelStandard

	// LogLevelVerbose adds truncated prompt and reply content.
	LogLevelVerbose
)

// contentTruncateLen caps logged prompt and reply content.
const contentTruncateLen = 500

// CostFunc estimates the dollar cost of a completed request from its
// token usage.
type CostFunc func(model string, usage *ai.Usage) float64

// LoggingOptions configures the logging middleware.
type LoggingOptions struct {
	// CostFunc, when set, adds an estimated cost_usd attribute to
	// completed sends at LogLevelStandard and above.
	CostFunc CostFunc
}

// WithCostFunc installs a per-request cost estimator.
func WithCostFunc(f CostFunc) func(*LoggingOptions) {
	return func(o *LoggingOptions) {
		o.CostFunc = f
	}
}

// NewLoggingMiddleware logs every send through the given logger. A nil
// logger falls back to slog.Default().
func NewLoggingMiddleware(logger *slog.Logger, level LogLevel, opts ...func(*LoggingOptions)) client.MiddlewareConfig {
	if logger == nil {
		logger = slog.Default()
	}

	var options LoggingOptions
	for _, opt := range opts {
		opt(&options)
	}

	return client.MiddlewareConfig{
		Send: func(next client.SendFunc) client.SendFunc {
			return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
				start := time.Now()
				logger.LogAttrs(ctx, slog.LevelInfo, "llm send", buildRequestAttrs(request, level)...)

				response, err := next(ctx, request)
				duration := time.Since(start)

				if err != nil {
					logger.LogAttrs(ctx, slog.LevelError, "llm send failed",
						slog.String("model", request.Model),
						slog.Duration("duration", duration),
						slog.String("error", err.Error()),
					)
					return response, err
				}

				logger.LogAttrs(ctx, slog.LevelInfo, "llm send completed", buildResponseAttrs(response, duration, level, options.CostFunc)...)
				return response, err
			}
		},
	}
}

func buildRequestAttrs(request ai.ChatRequest, level LogLevel) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("model", request.Model),
	}

	if level >= LogLevelStandard {
		attrs = append(attrs, slog.Int("messages", len(request.Messages)))
		if request.ResponseFormat != nil && request.ResponseFormat.OutputSchema != nil {
			attrs = append(attrs, slog.Bool("structured", true))
		}
	}

	if level >= LogLevelVerbose {
		if request.SystemPrompt != "" {
			attrs = append(attrs, slog.String("system_prompt", utils.TruncateString(request.SystemPrompt, contentTruncateLen)))
		}
		for i, message := range request.Messages {
			key := fmt.Sprintf("message_%d_%s", i, message.Role)
			attrs = append(attrs, slog.String(key, utils.TruncateString(message.Content, contentTruncateLen)))
		}
	}

	return attrs
}

func buildResponseAttrs(response *ai.ChatResponse, duration time.Duration, level LogLevel, costFunc CostFunc) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("model", response.Model),
		slog.Duration("duration", duration),
	}

	if level >= LogLevelStandard {
		if response.Usage != nil {
			attrs = append(attrs,
				slog.Int("prompt_tokens", response.Usage.PromptTokens),
				slog.Int("completion_tokens", response.Usage.CompletionTokens),
				slog.Int("total_tokens", response.Usage.TotalTokens),
			)
			if costFunc != nil {
				attrs = append(attrs, slog.Float64("cost_usd", costFunc(response.Model, response.Usage)))
			}
		}
		attrs = append(attrs, slog.String("finish_reason", response.FinishReason))
	}

	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("content", utils.TruncateString(response.Content, contentTruncateLen)))
	}

	return attrs
}
