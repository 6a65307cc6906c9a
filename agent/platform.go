package agent

import (
	"context"
	"time"
)

// Post is a published platform post, as surfaced by search or a timeline.
type Post struct {
	ID             string
	Text           string
	AuthorID       string
	AuthorUsername string
	CreatedAt      time.Time
}

// Mention is an inbound post that references the agent's account.
type Mention struct {
	ID             string
	Text           string
	AuthorID       string
	AuthorUsername string
	CreatedAt      time.Time
}

// DMEvent is an inbound direct message.
type DMEvent struct {
	ID       string
	Text     string
	SenderID string
}

// Account is the platform identity the agent runs as.
type Account struct {
	ID       string
	Name     string
	Username string
}

// PlatformClient is the narrow platform surface the control loops consume.
// Production traffic goes through the twitter client; tests use in-memory
// fakes.
type PlatformClient interface {
	// Post publishes text as a new post and returns its ID.
	Post(ctx context.Context, text string) (string, error)

	// Reply publishes text as a reply to the given post and returns the
	// reply's ID.
	Reply(ctx context.Context, toID, text string) (string, error)

	Retweet(ctx context.Context, id string) error
	Like(ctx context.Context, id string) error

	// Search returns up to limit recent posts matching the query.
	Search(ctx context.Context, query string, limit int) ([]Post, error)

	// MentionsSince returns mentions of the agent's account newer than
	// sinceID, or the most recent page when sinceID is empty.
	MentionsSince(ctx context.Context, sinceID string) ([]Mention, error)

	// DMEventsSince returns inbound direct messages newer than sinceID,
	// or the most recent page when sinceID is empty. Implementations may
	// include messages the agent itself sent; callers filter those out.
	DMEventsSince(ctx context.Context, sinceID string) ([]DMEvent, error)

	// SendDM delivers text to the given recipient and returns the new
	// message event's ID.
	SendDM(ctx context.Context, recipientID, text string) (string, error)

	// Self returns the account the client is authenticated as.
	Self(ctx context.Context) (*Account, error)
}
