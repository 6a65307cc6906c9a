package twitter

import (
	"context"
	"fmt"
	"net/http"
)

type dmEventsResponse struct {
	Data []DMEvent `json:"data"`
	Meta PageMeta  `json:"meta"`
}

// DMEvents returns recent direct-message creation events across all
// conversations, newest first. The v2 endpoint has no since_id; callers
// filter against their own cursor.
func (c *Client) DMEvents(ctx context.Context, maxResults int) ([]DMEvent, error) {
	params := map[string]any{
		"max_results":     clampResults(maxResults, 1, 100),
		"event_types":     "MessageCreate",
		"dm_event.fields": "sender_id,created_at",
	}
	var out dmEventsResponse
	if err := c.do(ctx, http.MethodGet, "/2/dm_events", authUser, params, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

type sendDMRequest struct {
	Text string `json:"text"`
}

type sendDMResponse struct {
	Data struct {
		DMConversationID string `json:"dm_conversation_id"`
		DMEventID        string `json:"dm_event_id"`
	} `json:"data"`
}

// SendDM sends a direct message to the given user and returns the created
// event ID.
func (c *Client) SendDM(ctx context.Context, participantID, text string) (string, error) {
	var out sendDMResponse
	path := "/2/dm_conversations/with/" + participantID + "/messages"
	if err := c.do(ctx, http.MethodPost, path, authUser, nil, &sendDMRequest{Text: text}, &out); err != nil {
		return "", err
	}
	if out.Data.DMEventID == "" {
		return "", fmt.Errorf("send dm response missing event id")
	}
	return out.Data.DMEventID, nil
}
