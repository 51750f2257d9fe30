package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMe(t *testing.T) {
	env := newEnv(t)
	user, tok := env.newUser("alice", "user")

	rec := env.request(http.MethodGet, "/api/v1/users/me", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	decodeJSON(t, rec, &resp)
	require.Equal(t, user.ID, resp.ID)
	require.Equal(t, "alice", resp.Username)
	require.NotContains(t, rec.Body.String(), user.PasswordHash)
}

func TestUpdateUsername(t *testing.T) {
	env := newEnv(t)
	_, tok := env.newUser("alice", "user")

	rec := env.request(http.MethodPut, "/api/v1/users/me/username", tok, map[string]string{
		"username": "alice2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	me := env.request(http.MethodGet, "/api/v1/users/me", tok, nil)
	require.Contains(t, me.Body.String(), "alice2")
}

func TestUpdateUsernameRejectsTaken(t *testing.T) {
	env := newEnv(t)
	env.newUser("bob", "user")
	_, tok := env.newUser("alice", "user")

	rec := env.request(http.MethodPut, "/api/v1/users/me/username", tok, map[string]string{
		"username": "bob",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePassword(t *testing.T) {
	env := newEnv(t)
	_, tok := env.newUser("alice", "user")

	rec := env.request(http.MethodPut, "/api/v1/users/me/password", tok, map[string]string{
		"currentPassword": "password123",
		"newPassword":     "newpassword456",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// old password no longer logs in, new one does
	old := env.request(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusUnauthorized, old.Code)

	fresh := env.request(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "newpassword456",
	})
	require.Equal(t, http.StatusOK, fresh.Code)
}

func TestUpdatePasswordRequiresCurrent(t *testing.T) {
	env := newEnv(t)
	_, tok := env.newUser("alice", "user")

	rec := env.request(http.MethodPut, "/api/v1/users/me/password", tok, map[string]string{
		"currentPassword": "wrong",
		"newPassword":     "newpassword456",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFavorites(t *testing.T) {
	env := newEnv(t)
	_, tok := env.newUser("alice", "user")
	photo := env.seedPhoto("sunrise", false, false)

	rec := env.request(http.MethodPut, "/api/v1/users/me/favorites/photos/"+photo.ID, tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// adding the same photo twice keeps a single entry
	rec = env.request(http.MethodPut, "/api/v1/users/me/favorites/photos/"+photo.ID, tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	list := env.request(http.MethodGet, "/api/v1/users/me/favorites", tok, nil)
	var favs struct {
		Photos   []string `json:"photos"`
		Products []string `json:"products"`
	}
	decodeJSON(t, list, &favs)
	require.Equal(t, []string{photo.ID}, favs.Photos)
	require.Empty(t, favs.Products)

	rec = env.request(http.MethodDelete, "/api/v1/users/me/favorites/photos/"+photo.ID, tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	list = env.request(http.MethodGet, "/api/v1/users/me/favorites", tok, nil)
	decodeJSON(t, list, &favs)
	require.Empty(t, favs.Photos)
}

func TestUpdateProfilePicture(t *testing.T) {
	env := newEnv(t)
	_, tok := env.newUser("alice", "user")

	for _, bad := range []string{"", "not-a-url", "ftp://files.example.com/a.png"} {
		rec := env.request(http.MethodPut, "/api/v1/users/me/profilePicture", tok,
			map[string]string{"profilePicture": bad})
		require.Equal(t, http.StatusBadRequest, rec.Code, "input %q", bad)
	}

	const pic = "https://cdn.example.com/avatars/alice.png"
	rec := env.request(http.MethodPut, "/api/v1/users/me/profilePicture", tok,
		map[string]string{"profilePicture": pic})
	require.Equal(t, http.StatusOK, rec.Code)

	me := env.request(http.MethodGet, "/api/v1/users/me", tok, nil)
	var resp struct {
		ProfilePicture string `json:"profilePicture"`
	}
	decodeJSON(t, me, &resp)
	require.Equal(t, pic, resp.ProfilePicture)
}
