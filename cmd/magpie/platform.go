package main

import (
	"context"

	"github.com/hyperfeather/magpie/agent"
	"github.com/hyperfeather/magpie/twitter"
)

// twitterPlatform adapts the twitter client to the narrow surface the agent
// loops consume.
type twitterPlatform struct {
	client   *twitter.Client
	pageSize int
}

var _ agent.PlatformClient = (*twitterPlatform)(nil)

func newTwitterPlatform(client *twitter.Client) *twitterPlatform {
	return &twitterPlatform{client: client, pageSize: 50}
}

func (p *twitterPlatform) Post(ctx context.Context, text string) (string, error) {
	t, err := p.client.CreateTweet(ctx, text)
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

func (p *twitterPlatform) Reply(ctx context.Context, toID, text string) (string, error) {
	t, err := p.client.ReplyToTweet(ctx, toID, text)
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

func (p *twitterPlatform) Retweet(ctx context.Context, id string) error {
	return p.client.Retweet(ctx, id)
}

func (p *twitterPlatform) Like(ctx context.Context, id string) error {
	return p.client.LikeTweet(ctx, id)
}

func (p *twitterPlatform) Search(ctx context.Context, query string, limit int) ([]agent.Post, error) {
	page, err := p.client.SearchRecent(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]agent.Post, 0, len(page.Tweets))
	for i := range page.Tweets {
		t := &page.Tweets[i]
		post := agent.Post{
			ID:       t.ID,
			Text:     t.Text,
			AuthorID: t.AuthorID,
		}
		if author, ok := page.Author(t); ok {
			post.AuthorUsername = author.Username
		}
		if created, err := t.CreatedAtTime(); err == nil {
			post.CreatedAt = created
		}
		out = append(out, post)
	}
	return out, nil
}

func (p *twitterPlatform) MentionsSince(ctx context.Context, sinceID string) ([]agent.Mention, error) {
	page, err := p.client.Mentions(ctx, sinceID, p.pageSize)
	if err != nil {
		return nil, err
	}
	out := make([]agent.Mention, 0, len(page.Tweets))
	for i := range page.Tweets {
		t := &page.Tweets[i]
		m := agent.Mention{
			ID:       t.ID,
			Text:     t.Text,
			AuthorID: t.AuthorID,
		}
		if author, ok := page.Author(t); ok {
			m.AuthorUsername = author.Username
		}
		if created, err := t.CreatedAtTime(); err == nil {
			m.CreatedAt = created
		}
		out = append(out, m)
	}
	return out, nil
}

func (p *twitterPlatform) DMEventsSince(ctx context.Context, sinceID string) ([]agent.DMEvent, error) {
	events, err := p.client.DMEvents(ctx, p.pageSize)
	if err != nil {
		return nil, err
	}
	// the DM events endpoint has no since_id parameter, so filter here
	var out []agent.DMEvent
	for _, ev := range events {
		if sinceID != "" && !idNewer(sinceID, ev.ID) {
			continue
		}
		out = append(out, agent.DMEvent{
			ID:       ev.ID,
			Text:     ev.Text,
			SenderID: ev.SenderID,
		})
	}
	return out, nil
}

func (p *twitterPlatform) SendDM(ctx context.Context, recipientID, text string) (string, error) {
	return p.client.SendDM(ctx, recipientID, text)
}

func (p *twitterPlatform) Self(ctx context.Context) (*agent.Account, error) {
	u, err := p.client.Me(ctx)
	if err != nil {
		return nil, err
	}
	return &agent.Account{ID: u.ID, Name: u.Name, Username: u.Username}, nil
}

// idNewer reports whether id sorts after sinceID, comparing decimal
// snowflake IDs numerically. Longer IDs are larger; no ID carries leading
// zeros.
func idNewer(sinceID, id string) bool {
	if len(id) != len(sinceID) {
		return len(id) > len(sinceID)
	}
	return id > sinceID
}
