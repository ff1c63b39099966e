package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/balaiwarga/dashboard/internal/models"
)

// AuthAPI wraps the upstream user endpoints. The upstream authenticates with
// an HttpOnly session cookie; the dashboard never sees a token, it only
// carries the opaque cookie pair forward on behalf of the staff member.
type AuthAPI struct {
	c *Client
}

type loginRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	RecaptchaToken string `json:"recaptcha_token"`
}

// Login posts credentials to the upstream and, on success, returns the
// session cookie pairs from the Set-Cookie response headers in Cookie-header
// form ("name=value; name2=value2"). The upstream's error detail is
// deliberately not surfaced to callers beyond the *Error value; handlers
// genericize it further.
func (a *AuthAPI) Login(ctx context.Context, email, password, captchaToken string) (string, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password, RecaptchaToken: captchaToken})
	if err != nil {
		return "", err
	}
	resp, err := a.c.Request(ctx, http.MethodPost, "/api/users/_login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := DecodeEnvelope(resp, nil); err != nil {
		return "", err
	}

	pairs := make([]string, 0, 1)
	for _, ck := range resp.Cookies() {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	return strings.Join(pairs, "; "), nil
}

// Logout invalidates the upstream session identified by the context
// credential. The upstream clears the cookie server-side; local cleanup is
// the caller's job.
func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.c.Do(ctx, http.MethodPost, "/api/users/_logout", nil, nil)
}

// CurrentUser fetches the profile for the session in the context credential.
// Fails with *Error (401) when the cookie is missing or expired.
func (a *AuthAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := a.c.Do(ctx, http.MethodGet, "/api/users/_current", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

type profileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UpdateProfile patches name and/or password; empty arguments are omitted
// from the payload.
func (a *AuthAPI) UpdateProfile(ctx context.Context, name, password string) (*models.User, error) {
	upd := profileUpdate{}
	if name != "" {
		upd.Name = &name
	}
	if password != "" {
		upd.Password = &password
	}
	var u models.User
	if err := a.c.Do(ctx, http.MethodPatch, "/api/users/_current", upd, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
