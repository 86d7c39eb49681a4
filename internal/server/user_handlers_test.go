package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileWithFriendCount(t *testing.T) {
	_, app := newTestServer(t)
	ada := signupUser(t, app, "ada")
	bob := signupUser(t, app, "bob")
	makeFriends(t, app, ada, bob, "bob")

	status, body := doJSON(t, app, http.MethodGet, "/api/profiles/ada", "", nil)
	require.Equal(t, http.StatusOK, status)
	profile := body["profile"].(map[string]any)
	assert.Equal(t, "ada", profile["username"])
	assert.Equal(t, float64(1), profile["friends_count"])
}

func TestGetProfileUnknownUser(t *testing.T) {
	_, app := newTestServer(t)

	status, _ := doJSON(t, app, http.MethodGet, "/api/profiles/ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdateProfileOwnerOnly(t *testing.T) {
	_, app := newTestServer(t)
	ada := signupUser(t, app, "ada")
	bob := signupUser(t, app, "bob")

	status, _ := doJSON(t, app, http.MethodPut, "/api/profiles/ada", bob, map[string]string{
		"bio": "not yours",
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, body := doJSON(t, app, http.MethodPut, "/api/profiles/ada", ada, map[string]string{
		"bio":      "hello there",
		"location": "London",
	})
	require.Equal(t, http.StatusOK, status)
	profile := body["profile"].(map[string]any)
	assert.Equal(t, "hello there", profile["bio"])
	assert.Equal(t, "London", profile["location"])

	// Partial update leaves other fields alone.
	status, body = doJSON(t, app, http.MethodPut, "/api/profiles/ada", ada, map[string]string{
		"location": "Paris",
	})
	require.Equal(t, http.StatusOK, status)
	profile = body["profile"].(map[string]any)
	assert.Equal(t, "hello there", profile["bio"])
	assert.Equal(t, "Paris", profile["location"])
}

func TestGetUserPostsVisibility(t *testing.T) {
	_, app := newTestServer(t)
	ada := signupUser(t, app, "ada")
	bob := signupUser(t, app, "bob")

	createPost(t, app, ada, map[string]string{"content": "public note"})
	createPost(t, app, ada, map[string]string{"content": "private note", "visibility": "private"})

	status, body := doJSON(t, app, http.MethodGet, "/api/profiles/ada/posts", ada, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["posts"].([]any), 2)

	status, body = doJSON(t, app, http.MethodGet, "/api/profiles/ada/posts", bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["posts"].([]any), 1)
}

func TestSearchUsers(t *testing.T) {
	_, app := newTestServer(t)
	ada := signupUser(t, app, "ada")
	signupUser(t, app, "adam")
	signupUser(t, app, "bob")

	status, body := doJSON(t, app, http.MethodGet, "/api/users/?q=ada", ada, nil)
	require.Equal(t, http.StatusOK, status)
	users := body["users"].([]any)
	require.Len(t, users, 2)
	assert.Equal(t, "ada", users[0].(map[string]any)["username"])
	assert.Equal(t, "adam", users[1].(map[string]any)["username"])
}
