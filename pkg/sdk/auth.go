package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// loginRequest is the payload for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerRequest is the payload for POST /auth/register. The backend wants
// a full user object with its own role enum labels.
type registerRequest struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Type     string `json:"type"`
}

// Login exchanges credentials for a bearer token. The token is returned to
// the caller; persisting it is the session manager's decision, made only
// after identity resolution succeeds.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var body json.RawMessage
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &body)
	if err != nil {
		return "", err
	}
	return decodeToken(body)
}

// Register creates an account and returns the issued bearer token. A zero
// input ID is replaced with a generated one, and the client role vocabulary
// is translated via serverRole.
func (c *Client) Register(ctx context.Context, in RegisterInput) (string, error) {
	id := in.ID
	if id == 0 {
		id = newUserID()
	}
	req := registerRequest{
		ID:       id,
		Email:    in.Email,
		Name:     in.Name,
		Password: in.Password,
		Type:     serverRole(in.Role),
	}
	var body json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &body); err != nil {
		return "", err
	}
	return decodeToken(body)
}

// Logout asks the backend to invalidate the session. Callers treat this as
// best effort; local teardown never depends on the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// LookupUserID resolves the numeric account id behind a token via
// GET /auth/id. The token travels as a query parameter on this endpoint.
func (c *Client) LookupUserID(ctx context.Context, token string) (int64, error) {
	var id int64
	query := url.Values{"token": {token}}
	if err := c.do(ctx, http.MethodGet, "/auth/id", query, nil, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// decodeToken extracts a bearer token from a login/register response. The
// backend has shipped three shapes over time; the tolerant contract accepts
// all of them: a bare string body, a JSON string, or {"token": "..."}.
func decodeToken(body json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(body)

	var wrapped struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err == nil && wrapped.Token != "" {
		return wrapped.Token, nil
	}

	var token string
	if err := json.Unmarshal(trimmed, &token); err == nil && token != "" {
		return token, nil
	}

	if raw := strings.TrimSpace(string(trimmed)); raw != "" && !strings.HasPrefix(raw, "{") {
		return raw, nil
	}

	return "", &APIError{Message: "token not received from server"}
}
