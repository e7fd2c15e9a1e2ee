package api

import (
	"context"
	"net/http"

	"github.com/harbourline/venue-cli/pkg/core/model"
)

// LoginResult is the decoded login response: the bearer token plus the
// signed-in user's profile.
type LoginResult struct {
	Token   string
	Profile model.Profile
}

// Login exchanges credentials for a bearer token. This is the one call
// that goes out without an Authorization header; persisting the returned
// token is the caller's job.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var raw struct {
		Token *string `json:"token"`
		User  *struct {
			ID       *int64   `json:"id"`
			FullName *string  `json:"full_name"`
			Roles    []string `json:"roles"`
		} `json:"user"`
	}
	err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/login",
		Body:   map[string]string{"email": email, "password": password},
		NoAuth: true,
	}, &raw)
	if err != nil {
		return nil, err
	}
	if raw.Token == nil || *raw.Token == "" {
		return nil, missingField("login response", "token")
	}

	result := &LoginResult{Token: *raw.Token}
	if raw.User != nil {
		if raw.User.ID != nil {
			result.Profile.ID = *raw.User.ID
		}
		result.Profile.FullName = strOrEmpty(raw.User.FullName)
		result.Profile.Roles = raw.User.Roles
	}
	return result, nil
}

// Logout tells the server to invalidate the current token. Clearing the
// local session afterwards is the caller's job; a server-side failure here
// does not block a local sign-out.
func (c *Client) Logout(ctx context.Context) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: "/logout"}, nil)
}

// RegisterPushToken hands the device push token to the backend. The client
// never processes pushes; this is an opaque hand-off.
func (c *Client) RegisterPushToken(ctx context.Context, deviceToken string) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/register_push_token",
		Body:   map[string]string{"device_token": deviceToken},
	}, nil)
}
