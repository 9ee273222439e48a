// Package client provides a thin, stateless client over any [ai.Provider].
//
// Every call to [Client.SendMessage] is a single independent turn: the
// client keeps no conversation history and no mutable state between calls.
// Behavior is configured up front with functional options and can be
// adjusted per send:
//
//	c := client.New(openai.New(),
//		client.WithDefaultModel("gpt-4o-mini"),
//		client.WithSystemPrompt("Respond in markdown."),
//	)
//	response, err := c.SendMessage(ctx, "Summarize this page: ...")
//
// Cross-cutting behavior such as logging is added through [MiddlewareConfig]
// entries that wrap the send path. For typed JSON replies, see
// [StructuredClient].
package client
