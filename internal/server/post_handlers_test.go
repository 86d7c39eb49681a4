package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, app *fiber.App, token string, body map[string]string) map[string]any {
	t.Helper()
	status, resp := doJSON(t, app, http.MethodPost, "/api/posts", token, body)
	require.Equal(t, http.StatusCreated, status, "create post response: %v", resp)
	return resp["post"].(map[string]any)
}

func TestCreateAndFetchPost(t *testing.T) {
	_, app := newTestServer(t)
	token := signupUser(t, app, "ada")

	post := createPost(t, app, token, map[string]string{"content": "hello world"})
	postID := int(post["id"].(float64))

	status, body := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", postID), token, nil)
	require.Equal(t, http.StatusOK, status)
	got := body["post"].(map[string]any)
	assert.Equal(t, "hello world", got["content"])
	assert.Equal(t, "ada", got["user"].(map[string]any)["username"])
}

func TestCreatePostValidation(t *testing.T) {
	_, app := newTestServer(t)
	token := signupUser(t, app, "ada")

	status, _ := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{"content": "  "})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{
		"content":    "hi",
		"visibility": "friends",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestFeedVisibility(t *testing.T) {
	_, app := newTestServer(t)
	ada := signupUser(t, app, "ada")
	bob := signupUser(t, app, "bob")

	createPost(t, app, ada, map[string]string{"content": "ada public"})
	createPost(t, app, ada, map[string]string{"content": "ada secret", "visibility": "private"})
	createPost(t, app, bob, map[string]string{"content": "bob public"})

	// Ada sees her private post plus all public posts.
	status, body := doJSON(t, app, http.MethodGet, "/api/posts", ada, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["posts"].([]any), 3)

	// Bob does not see ada's private post.
	status, body = doJSON(t, app, http.MethodGet, "/api/posts", bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["posts"].([]any), 2)

	// Anonymous viewers see only public posts.
	status, body = doJSON(t, app, http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["posts"].([]any), 2)
}

func TestPrivatePostHiddenFromOthers(t *testing.T) {
	_, app := newTestServer(t)
	ada := signupUser(t, app, "ada")
	bob := signupUser(t, app, "bob")

	post := createPost(t, app, ada, map[string]string{"content": "secret", "visibility": "private"})
	postID := int(post["id"].(float64))

	status, _ := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", postID), bob, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", postID), ada, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestToggleLikeOverHTTP(t *testing.T) {
	_, app := newTestServer(t)
	ada := signupUser(t, app, "ada")
	bob := signupUser(t, app, "bob")

	post := createPost(t, app, ada, map[string]string{"content": "like me"})
	path := fmt.Sprintf("/api/posts/%d/like", int(post["id"].(float64)))

	status, body := doJSON(t, app, http.MethodPost, path, bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(1), body["likes_count"])

	status, body = doJSON(t, app, http.MethodPost, path, bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["liked"])
	assert.Equal(t, float64(0), body["likes_count"])
}

func TestSharePostFlattensOverHTTP(t *testing.T) {
	_, app := newTestServer(t)
	ada := signupUser(t, app, "ada")
	bob := signupUser(t, app, "bob")
	carol := signupUser(t, app, "carol")

	original := createPost(t, app, ada, map[string]string{"content": "the original"})
	originalID := int(original["id"].(float64))

	status, body := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/posts/%d/share", originalID), bob, map[string]string{"content": "nice"})
	require.Equal(t, http.StatusCreated, status)
	share := body["post"].(map[string]any)
	shareID := int(share["id"].(float64))
	assert.Equal(t, float64(originalID), share["shared_post"].(map[string]any)["id"])

	// Sharing the share still points at the root original.
	status, body = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/posts/%d/share", shareID), carol, nil)
	require.Equal(t, http.StatusCreated, status)
	reshare := body["post"].(map[string]any)
	assert.Equal(t, float64(originalID), reshare["shared_post"].(map[string]any)["id"])
}

func TestUpdateAndDeletePostOwnership(t *testing.T) {
	_, app := newTestServer(t)
	ada := signupUser(t, app, "ada")
	bob := signupUser(t, app, "bob")

	post := createPost(t, app, ada, map[string]string{"content": "mine"})
	path := fmt.Sprintf("/api/posts/%d", int(post["id"].(float64)))

	status, _ := doJSON(t, app, http.MethodPut, path, bob, map[string]string{"content": "hijacked"})
	assert.Equal(t, http.StatusForbidden, status)

	status, body := doJSON(t, app, http.MethodPut, path, ada, map[string]string{"content": "edited"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "edited", body["post"].(map[string]any)["content"])

	status, _ = doJSON(t, app, http.MethodDelete, path, bob, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, app, http.MethodDelete, path, ada, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodGet, path, ada, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCommentFlowOverHTTP(t *testing.T) {
	_, app := newTestServer(t)
	ada := signupUser(t, app, "ada")
	bob := signupUser(t, app, "bob")

	post := createPost(t, app, ada, map[string]string{"content": "discuss"})
	postID := int(post["id"].(float64))

	status, body := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/posts/%d/comment", postID), bob, map[string]string{"content": "first"})
	require.Equal(t, http.StatusCreated, status)
	comment := body["comment"].(map[string]any)
	commentID := int(comment["id"].(float64))
	assert.Equal(t, "bob", comment["user"].(map[string]any)["username"])

	status, body = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/posts/%d/comments", postID), "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["comments"].([]any), 1)

	// Only the author may edit; the post owner may delete.
	status, _ = doJSON(t, app, http.MethodPut,
		fmt.Sprintf("/api/comments/%d", commentID), ada, map[string]string{"content": "rewritten"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/comments/%d", commentID), ada, nil)
	assert.Equal(t, http.StatusOK, status)
}
