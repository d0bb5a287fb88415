package api

import "context"

// Login exchanges credentials for a bearer token. The backend speaks the
// OAuth2 password form: field names are username/password even though the
// username is an email address.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var out LoginResult
	err := c.postForm(ctx, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	return out, err
}

// Register creates an account and returns a ready-to-use token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (LoginResult, error) {
	var out LoginResult
	err := c.postJSON(ctx, "/auth/register", req, &out)
	return out, err
}
