package api

import (
	"context"
	"net/http"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the body returned by the login endpoints.  The role is
// not part of the response; it is derived from which login endpoint was
// used and cross-checked against the token's claims.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges client credentials for an access token.  This is the
// only call family issued without a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", loginReq{Email: email, Password: password}, &out)
	return out, err
}

// AdminLogin is Login against the admin endpoint; the service rejects
// non-admin accounts with a 403.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/admin/login", loginReq{Email: email, Password: password}, &out)
	return out, err
}
