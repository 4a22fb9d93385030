package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tidwall/gjson"

	kerrors "github.com/khel-store/khel/internal/errors"
	"github.com/khel-store/khel/internal/session"
)

// loginRequest is the credential payload. Credentials are transient: they
// exist only for the duration of the request and are never persisted.
type loginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type registerRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a token and identity. The member record
// may arrive under a "member" key or as the response root; either way the
// identity comes back with its role already normalized.
func (c *Client) Login(ctx context.Context, phoneNumber, password string) (*session.LoginOutcome, error) {
	raw, err := c.doRaw(ctx, http.MethodPost, "/auth/login", loginRequest{
		PhoneNumber: phoneNumber,
		Password:    password,
	})
	if err != nil {
		return nil, err
	}

	token := gjson.GetBytes(raw, "token").String()
	if token == "" {
		return nil, kerrors.New(kerrors.ErrCodeAPIDecode, "login response carries no token")
	}

	memberRaw := raw
	if m := gjson.GetBytes(raw, "member"); m.Exists() {
		memberRaw = []byte(m.Raw)
	}

	var member session.Member
	if err := json.Unmarshal(memberRaw, &member); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeAPIDecode, "decode member record", err)
	}

	return &session.LoginOutcome{
		Token:   token,
		Member:  member,
		Message: gjson.GetBytes(raw, "message").String(),
	}, nil
}

// Register creates a user account and returns the server's message.
// Registration does not authenticate.
func (c *Client) Register(ctx context.Context, name, phoneNumber, password string) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", registerRequest{
		Name:        name,
		PhoneNumber: phoneNumber,
		Password:    password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// RegisterAdmin creates an admin account and returns the server's message.
func (c *Client) RegisterAdmin(ctx context.Context, name, phoneNumber, password string) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodPost, "/auth/register/admin", registerRequest{
		Name:        name,
		PhoneNumber: phoneNumber,
		Password:    password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Validate checks the current bearer token against the server. A non-2xx
// response or transport failure reports invalid.
func (c *Client) Validate(ctx context.Context) (bool, error) {
	raw, err := c.doRaw(ctx, http.MethodPost, "/auth/validate", nil)
	if err != nil {
		return false, err
	}

	// The endpoint answers either {"valid": bool} or a data payload whose
	// presence means the token held.
	if v := gjson.GetBytes(raw, "valid"); v.Exists() {
		return v.Bool(), nil
	}
	return true, nil
}
