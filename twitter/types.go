package twitter

import (
	"time"

	"github.com/hyperfeather/magpie/util"
)

type Tweet struct {
	ID             string        `json:"id"`
	Text           string        `json:"text"`
	AuthorID       string        `json:"author_id,omitempty"`
	ConversationID string        `json:"conversation_id,omitempty"`
	CreatedAt      string        `json:"created_at,omitempty"`
	PublicMetrics  *TweetMetrics `json:"public_metrics,omitempty"`
}

// CreatedAtTime parses the tweet's created_at leniently, in UTC.
func (t *Tweet) CreatedAtTime() (time.Time, error) {
	return util.ParseRemoteTimestamp(t.CreatedAt)
}

type TweetMetrics struct {
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
	LikeCount    int `json:"like_count"`
	QuoteCount   int `json:"quote_count"`
}

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// DMEvent is a direct-message conversation event. Only MessageCreate events
// carry text.
type DMEvent struct {
	ID        string `json:"id"`
	EventType string `json:"event_type"`
	Text      string `json:"text"`
	SenderID  string `json:"sender_id"`
	CreatedAt string `json:"created_at,omitempty"`
}

// TweetPage is one page of tweets plus the expanded author records, keyed
// by user ID.
type TweetPage struct {
	Tweets []Tweet
	Users  map[string]User
	Meta   PageMeta
}

// Author resolves a tweet's expanded author, if the page included it.
func (p *TweetPage) Author(t *Tweet) (User, bool) {
	u, ok := p.Users[t.AuthorID]
	return u, ok
}

type PageMeta struct {
	NewestID    string `json:"newest_id"`
	OldestID    string `json:"oldest_id"`
	ResultCount int    `json:"result_count"`
	NextToken   string `json:"next_token"`
}

// tweetListResponse is the shared v2 envelope for search, mentions and
// timeline endpoints.
type tweetListResponse struct {
	Data     []Tweet `json:"data"`
	Includes struct {
		Users []User `json:"users"`
	} `json:"includes"`
	Meta PageMeta `json:"meta"`
}

func (r *tweetListResponse) page() *TweetPage {
	p := &TweetPage{
		Tweets: r.Data,
		Users:  make(map[string]User, len(r.Includes.Users)),
		Meta:   r.Meta,
	}
	for _, u := range r.Includes.Users {
		p.Users[u.ID] = u
	}
	return p
}
