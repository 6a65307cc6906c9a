package twitter

import (
	"context"
	"fmt"
	"net/http"
)

type createTweetRequest struct {
	Text  string      `json:"text"`
	Reply *tweetReply `json:"reply,omitempty"`
}

type tweetReply struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

type tweetDataResponse struct {
	Data Tweet `json:"data"`
}

// CreateTweet posts a new tweet and returns it. Text over the platform
// limit is truncated grapheme-safely before sending.
func (c *Client) CreateTweet(ctx context.Context, text string) (*Tweet, error) {
	return c.createTweet(ctx, &createTweetRequest{Text: TruncateText(text, MaxPostLength)})
}

// ReplyToTweet posts text as a reply to the given tweet.
func (c *Client) ReplyToTweet(ctx context.Context, tweetID, text string) (*Tweet, error) {
	return c.createTweet(ctx, &createTweetRequest{
		Text:  TruncateText(text, MaxPostLength),
		Reply: &tweetReply{InReplyToTweetID: tweetID},
	})
}

func (c *Client) createTweet(ctx context.Context, req *createTweetRequest) (*Tweet, error) {
	var out tweetDataResponse
	if err := c.do(ctx, http.MethodPost, "/2/tweets", authUser, nil, req, &out); err != nil {
		return nil, err
	}
	if out.Data.ID == "" {
		return nil, fmt.Errorf("create tweet response missing id")
	}
	return &out.Data, nil
}

// DeleteTweet removes one of the authenticated account's tweets.
func (c *Client) DeleteTweet(ctx context.Context, tweetID string) error {
	return c.do(ctx, http.MethodDelete, "/2/tweets/"+tweetID, authUser, nil, nil, nil)
}

// Retweet retweets the given tweet as the authenticated account.
func (c *Client) Retweet(ctx context.Context, tweetID string) error {
	self, err := c.selfUserID(ctx)
	if err != nil {
		return err
	}
	body := map[string]string{"tweet_id": tweetID}
	return c.do(ctx, http.MethodPost, "/2/users/"+self+"/retweets", authUser, nil, body, nil)
}

// LikeTweet likes the given tweet as the authenticated account.
func (c *Client) LikeTweet(ctx context.Context, tweetID string) error {
	self, err := c.selfUserID(ctx)
	if err != nil {
		return err
	}
	body := map[string]string{"tweet_id": tweetID}
	return c.do(ctx, http.MethodPost, "/2/users/"+self+"/likes", authUser, nil, body, nil)
}
