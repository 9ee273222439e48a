package client

import (
	"context"

	"github.com/leofalp/sitebrief/providers/ai"
)

// SendFunc is the signature of the send operation that middleware wraps.
type SendFunc func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error)

// Middleware wraps a SendFunc with additional behavior. It must call next
// to continue the chain.
type Middleware func(next SendFunc) SendFunc

// MiddlewareConfig carries the middleware for the send operation. A nil
// field is skipped.
type MiddlewareConfig struct {
	Send Middleware
}

// buildSendChain wraps base with the configured middleware. Entries are
// applied in reverse so that the first configured middleware runs
// outermost.
func buildSendChain(base SendFunc, middlewares []MiddlewareConfig) SendFunc {
	send := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i].Send != nil {
			send = middlewares[i].Send(send)
		}
	}
	return send
}
