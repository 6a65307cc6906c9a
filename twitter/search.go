package twitter

import (
	"context"
	"net/http"
)

func clampResults(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// SearchRecent runs a recent-search query (the last seven days) and returns
// up to maxResults tweets, newest first, with authors expanded.
func (c *Client) SearchRecent(ctx context.Context, query string, maxResults int) (*TweetPage, error) {
	params := map[string]any{
		"query":        query,
		"max_results":  clampResults(maxResults, 10, 100),
		"tweet.fields": "author_id,created_at,conversation_id,public_metrics",
		"expansions":   "author_id",
		"user.fields":  "name,username",
	}
	var out tweetListResponse
	if err := c.do(ctx, http.MethodGet, "/2/tweets/search/recent", authApp, params, nil, &out); err != nil {
		return nil, err
	}
	return out.page(), nil
}
