package twitter

import (
	"context"
	"net/http"
)

// Mentions returns tweets mentioning the authenticated account, newest
// first. A non-empty sinceID restricts results to tweets with a greater ID,
// which is how the agent avoids reprocessing.
func (c *Client) Mentions(ctx context.Context, sinceID string, maxResults int) (*TweetPage, error) {
	self, err := c.selfUserID(ctx)
	if err != nil {
		return nil, err
	}
	params := map[string]any{
		"max_results":  clampResults(maxResults, 5, 100),
		"tweet.fields": "author_id,created_at,conversation_id,public_metrics",
		"expansions":   "author_id",
		"user.fields":  "name,username",
	}
	if sinceID != "" {
		params["since_id"] = sinceID
	}
	var out tweetListResponse
	if err := c.do(ctx, http.MethodGet, "/2/users/"+self+"/mentions", authUser, params, nil, &out); err != nil {
		return nil, err
	}
	return out.page(), nil
}

// UserTimeline returns a user's recent tweets, newest first. An empty
// userID selects the authenticated account.
func (c *Client) UserTimeline(ctx context.Context, userID string, maxResults int) (*TweetPage, error) {
	if userID == "" {
		self, err := c.selfUserID(ctx)
		if err != nil {
			return nil, err
		}
		userID = self
	}
	params := map[string]any{
		"max_results":  clampResults(maxResults, 5, 100),
		"tweet.fields": "author_id,created_at,conversation_id,public_metrics",
		"expansions":   "author_id",
		"user.fields":  "name,username",
	}
	var out tweetListResponse
	if err := c.do(ctx, http.MethodGet, "/2/users/"+userID+"/tweets", authApp, params, nil, &out); err != nil {
		return nil, err
	}
	return out.page(), nil
}
