package agent

import "context"

// ContentProvider produces the agent's outbound writing. The persona package
// implements it against a hosted language model; the fakedata package
// provides a deterministic offline implementation.
type ContentProvider interface {
	// GeneratePost writes a fresh scheduled post.
	GeneratePost(ctx context.Context) (string, error)

	// GenerateReply writes a public reply to a mention.
	GenerateReply(ctx context.Context, m Mention) (string, error)

	// GenerateDirectReply writes a private reply to a direct message.
	// Direct messages are not length-limited the way posts are, so
	// implementations may answer at more length.
	GenerateDirectReply(ctx context.Context, ev DMEvent) (string, error)
}
