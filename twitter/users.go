package twitter

import (
	"context"
	"net/http"
)

type userDataResponse struct {
	Data User `json:"data"`
}

// Me returns the authenticated account. Requires user-context credentials;
// the app-only bearer has no "me".
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out userDataResponse
	if err := c.do(ctx, http.MethodGet, "/2/users/me", authUser, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UserByUsername looks up an account by handle, without the leading '@'.
func (c *Client) UserByUsername(ctx context.Context, username string) (*User, error) {
	var out userDataResponse
	if err := c.do(ctx, http.MethodGet, "/2/users/by/username/"+username, authApp, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
