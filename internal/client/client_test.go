package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeServer is a tiny stand-in for the API that tracks one user's session
// and favorites so the mirror logic can be exercised end to end.
type fakeServer struct {
	token     string
	favorites []Favorite
}

func (f *fakeServer) authorized(r *http.Request) bool {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value == f.token {
		return true
	}
	return r.Header.Get("Authorization") == "Bearer "+f.token
}

func (f *fakeServer) user() map[string]interface{} {
	return map[string]interface{}{
		"id":                "u-1",
		"username":          "alice",
		"email":             "alice@example.com",
		"favoriteCountries": f.favorites,
	}
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, status int, body interface{}) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
	unauthorized := func(w http.ResponseWriter) {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false, "message": "Not authorized",
		})
	}
	handle := func(method, path string, h http.HandlerFunc) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method {
				http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
				return
			}
			h(w, r)
		})
	}

	handle(http.MethodPost, "/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "password123" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false, "message": "Invalid email or password",
			})
			return
		}
		f.token = "session-token"
		http.SetCookie(w, &http.Cookie{Name: "token", Value: f.token, Path: "/", HttpOnly: true})
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true, "user": f.user(), "token": f.token,
		})
	})

	handle(http.MethodPost, "/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "", Path: "/", MaxAge: -1})
		f.token = ""
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Logout successful"})
	})

	handle(http.MethodGet, "/user/profile", func(w http.ResponseWriter, r *http.Request) {
		if f.token == "" || !f.authorized(r) {
			unauthorized(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": f.user()})
	})

	handle(http.MethodPost, "/user/favorites", func(w http.ResponseWriter, r *http.Request) {
		if f.token == "" || !f.authorized(r) {
			unauthorized(w)
			return
		}
		var fav Favorite
		_ = json.NewDecoder(r.Body).Decode(&fav)
		for _, existing := range f.favorites {
			if existing.CountryCode == fav.CountryCode {
				writeJSON(w, http.StatusConflict, map[string]interface{}{
					"success": false, "message": "Country already in favorites",
				})
				return
			}
		}
		f.favorites = append(f.favorites, fav)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true, "favoriteCountries": f.favorites,
		})
	})

	handle(http.MethodGet, "/user/getall/favorite", func(w http.ResponseWriter, r *http.Request) {
		if f.token == "" || !f.authorized(r) {
			unauthorized(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true, "favoriteCountries": f.favorites,
		})
	})

	return mux
}

func TestClient_BootstrapWithoutSession(t *testing.T) {
	server := httptest.NewServer((&fakeServer{}).handler())
	defer server.Close()

	c, err := New(server.URL)
	assert.NoError(t, err)

	assert.NoError(t, c.Bootstrap(context.Background()))
	assert.Nil(t, c.User())
	assert.Empty(t, c.Favorites())
}

func TestClient_LoginSyncsMirror(t *testing.T) {
	fake := &fakeServer{favorites: []Favorite{{CountryCode: "JPN", CountryName: "Japan"}}}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	c, err := New(server.URL)
	assert.NoError(t, err)
	ctx := context.Background()

	assert.NoError(t, c.Login(ctx, "alice@example.com", "password123"))

	user := c.User()
	assert.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.Len(t, c.Favorites(), 1)
	assert.Empty(t, c.LastError())
	assert.False(t, c.Busy())
}

func TestClient_LoginFailureRecordsError(t *testing.T) {
	server := httptest.NewServer((&fakeServer{}).handler())
	defer server.Close()

	c, err := New(server.URL)
	assert.NoError(t, err)

	err = c.Login(context.Background(), "alice@example.com", "wrong")
	assert.Error(t, err)

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password", apiErr.Message)

	assert.Nil(t, c.User())
	assert.Equal(t, apiErr.Error(), c.LastError())
}

func TestClient_FavoritesStayInSync(t *testing.T) {
	fake := &fakeServer{}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	c, err := New(server.URL)
	assert.NoError(t, err)
	ctx := context.Background()

	assert.NoError(t, c.Login(ctx, "alice@example.com", "password123"))

	favorites, err := c.AddFavorite(ctx, Favorite{CountryCode: "USA", CountryName: "United States"})
	assert.NoError(t, err)
	assert.Len(t, favorites, 1)
	assert.Equal(t, favorites, c.Favorites())

	// The mirror follows the server response, not local guesses: a
	// duplicate add fails and leaves the mirror untouched.
	_, err = c.AddFavorite(ctx, Favorite{CountryCode: "USA", CountryName: "United States"})
	assert.Error(t, err)
	assert.Len(t, c.Favorites(), 1)
	assert.Contains(t, c.LastError(), "already in favorites")

	refreshed, err := c.RefreshFavorites(ctx)
	assert.NoError(t, err)
	assert.Equal(t, refreshed, c.Favorites())
	assert.Empty(t, c.LastError())
}

func TestClient_LogoutClearsMirror(t *testing.T) {
	fake := &fakeServer{}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	c, err := New(server.URL)
	assert.NoError(t, err)
	ctx := context.Background()

	assert.NoError(t, c.Login(ctx, "alice@example.com", "password123"))
	assert.NotNil(t, c.User())

	assert.NoError(t, c.Logout(ctx))
	assert.Nil(t, c.User())
	assert.Empty(t, c.Favorites())

	// Bootstrap after logout stays logged out.
	assert.NoError(t, c.Bootstrap(ctx))
	assert.Nil(t, c.User())
}
