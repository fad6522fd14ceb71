// Package client is a Go client for the Country Hub API. It mirrors the
// state the single-page app keeps: the current user, the favorites list and
// transient busy/error flags. The mirror is a cache of server truth — it is
// rebuilt from the profile endpoint on Bootstrap and refreshed from every
// mutating response, never trusted on its own.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"
)

// User is the public user projection served by the API.
type User struct {
	ID                string     `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	FavoriteCountries []Favorite `json:"favoriteCountries"`
}

// Favorite is one favorite-country entry.
type Favorite struct {
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
	FlagURL     string `json:"flagUrl"`
}

// APIError is a failed request decoded from the error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the server and keeps the session mirror in sync. The
// session travels both ways: the cookie jar carries the HTTP-only cookie
// and the bearer token covers clients that strip cookies.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu        sync.RWMutex
	token     string
	user      *User
	favorites []Favorite
	busy      bool
	lastError string
}

// New creates a client for the given server base URL, e.g.
// http://localhost:8080/api.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
	}, nil
}

type authPayload struct {
	Success bool   `json:"success"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

type profilePayload struct {
	Success bool   `json:"success"`
	User    *User  `json:"user"`
	Message string `json:"message"`
}

type favoritesPayload struct {
	Success           bool       `json:"success"`
	FavoriteCountries []Favorite `json:"favoriteCountries"`
	Message           string     `json:"message"`
}

// Bootstrap rebuilds the mirror from server truth, the way the app does on
// page load. An unauthenticated session is not an error: the mirror is
// simply left empty.
func (c *Client) Bootstrap(ctx context.Context) error {
	var payload profilePayload
	err := c.do(ctx, http.MethodGet, "/user/profile", nil, &payload)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			c.setSession("", nil, nil)
			return nil
		}
		return err
	}
	c.setSession(c.Token(), payload.User, nil)
	return nil
}

// Register creates an account and starts a session.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &payload); err != nil {
		return err
	}
	c.setSession(payload.Token, payload.User, nil)
	return nil
}

// Login starts a session with existing credentials.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &payload); err != nil {
		return err
	}
	c.setSession(payload.Token, payload.User, nil)
	return nil
}

// Logout ends the session and clears the mirror. The server clears the
// cookie and revokes the token; the local bearer copy is dropped too.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, &struct{}{})
	c.setSession("", nil, nil)
	return err
}

// Profile fetches the current profile and refreshes the mirror.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var payload profilePayload
	if err := c.do(ctx, http.MethodGet, "/user/profile", nil, &payload); err != nil {
		return nil, err
	}
	c.setSession(c.Token(), payload.User, nil)
	return payload.User, nil
}

// UpdateProfile overwrites username and email.
func (c *Client) UpdateProfile(ctx context.Context, username, email string) (*User, error) {
	body := map[string]string{"username": username, "email": email}
	var payload profilePayload
	if err := c.do(ctx, http.MethodPut, "/user/profile", body, &payload); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.user = payload.User
	c.mu.Unlock()
	return payload.User, nil
}

// AddFavorite adds a country and syncs the mirror with the returned list.
func (c *Client) AddFavorite(ctx context.Context, fav Favorite) ([]Favorite, error) {
	var payload favoritesPayload
	if err := c.do(ctx, http.MethodPost, "/user/favorites", fav, &payload); err != nil {
		return nil, err
	}
	c.setFavorites(payload.FavoriteCountries)
	return payload.FavoriteCountries, nil
}

// RemoveFavorite removes a country and syncs the mirror.
func (c *Client) RemoveFavorite(ctx context.Context, countryCode string) ([]Favorite, error) {
	var payload favoritesPayload
	path := "/user/favorites/" + url.PathEscape(countryCode)
	if err := c.do(ctx, http.MethodDelete, path, nil, &payload); err != nil {
		return nil, err
	}
	c.setFavorites(payload.FavoriteCountries)
	return payload.FavoriteCountries, nil
}

// RefreshFavorites re-reads the favorites list from the server.
func (c *Client) RefreshFavorites(ctx context.Context) ([]Favorite, error) {
	var payload favoritesPayload
	if err := c.do(ctx, http.MethodGet, "/user/getall/favorite", nil, &payload); err != nil {
		return nil, err
	}
	c.setFavorites(payload.FavoriteCountries)
	return payload.FavoriteCountries, nil
}

// Token returns the bearer copy of the session token, if any.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// User returns a copy of the mirrored user, or nil when logged out.
func (c *Client) User() *User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Favorites returns a copy of the mirrored favorites list.
func (c *Client) Favorites() []Favorite {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Favorite, len(c.favorites))
	copy(out, c.favorites)
	return out
}

// Busy reports whether a request is in flight.
func (c *Client) Busy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.busy
}

// LastError returns the message of the most recent failed request, cleared
// by the next successful one.
func (c *Client) LastError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) setSession(token string, user *User, favorites []Favorite) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.user = user
	if user != nil && favorites == nil {
		favorites = user.FavoriteCountries
	}
	c.favorites = favorites
}

func (c *Client) setFavorites(favorites []Favorite) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.favorites = favorites
}

func (c *Client) setBusy(busy bool) {
	c.mu.Lock()
	c.busy = busy
	c.mu.Unlock()
}

func (c *Client) recordResult(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastError = err.Error()
	} else {
		c.lastError = ""
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) (err error) {
	c.setBusy(true)
	defer func() {
		c.setBusy(false)
		c.recordResult(err)
	}()

	var body *bytes.Reader
	if in != nil {
		data, merr := json.Marshal(in)
		if merr != nil {
			return fmt.Errorf("encode request: %w", merr)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Message == "" {
			envelope.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
