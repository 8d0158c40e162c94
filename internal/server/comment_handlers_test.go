package server

import (
	"net/http"
	"strings"
	"testing"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPostViaAPI(t *testing.T, app *fiber.App, token string) models.Post {
	t.Helper()
	req := jsonRequest(t, http.MethodPost, "/api/posts/", fiber.Map{
		"title":    "On Margins",
		"content":  "an essay about the notes readers leave",
		"category": "essay",
	})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post models.Post
	decodeBody(t, resp, &post)
	return post
}

func TestCreateComment(t *testing.T) {
	_, app, db := newTestServer(t)
	authorToken, authorID := signupUser(t, app, "Author", "author@example.com")
	readerToken, readerID := signupUser(t, app, "Reader", "reader@example.com")
	grantPoints(t, db, authorID, 20)

	post := createPostViaAPI(t, app, authorToken)

	t.Run("requires auth", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/posts/1/comments", fiber.Map{
			"content": "anonymous thoughts on this essay",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("success stores verdict and credits author", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/posts/1/comments", fiber.Map{
			"content": "the marginalia framing here is lovely and precise",
		})
		req.Header.Set("Authorization", "Bearer "+readerToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var comment models.Comment
		decodeBody(t, resp, &comment)
		assert.Equal(t, post.ID, comment.PostID)
		require.NotNil(t, comment.Score)
		assert.Greater(t, *comment.Score, 0)
		assert.False(t, comment.Flagged)

		var reader models.User
		require.NoError(t, db.First(&reader, readerID).Error)
		assert.Greater(t, reader.Points, 0)
	})

	t.Run("too short", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/posts/1/comments", fiber.Map{
			"content": "nice",
		})
		req.Header.Set("Authorization", "Bearer "+readerToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("too long", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/posts/1/comments", fiber.Map{
			"content": strings.Repeat("a", 5001),
		})
		req.Header.Set("Authorization", "Bearer "+readerToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing post", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/posts/999/comments", fiber.Map{
			"content": "commenting into the void here",
		})
		req.Header.Set("Authorization", "Bearer "+readerToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetComments(t *testing.T) {
	_, app, db := newTestServer(t)
	authorToken, authorID := signupUser(t, app, "Author", "author@example.com")
	readerToken, _ := signupUser(t, app, "Reader", "reader@example.com")
	grantPoints(t, db, authorID, 20)
	createPostViaAPI(t, app, authorToken)

	req := jsonRequest(t, http.MethodPost, "/api/posts/1/comments", fiber.Map{
		"content": "a first impression worth keeping",
	})
	req.Header.Set("Authorization", "Bearer "+readerToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/posts/1/comments", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var comments []models.Comment
	decodeBody(t, resp, &comments)
	assert.Len(t, comments, 1)
	assert.Equal(t, "Reader", comments[0].User.Name)
}

func TestDeleteComment(t *testing.T) {
	_, app, db := newTestServer(t)
	authorToken, authorID := signupUser(t, app, "Author", "author@example.com")
	readerToken, readerID := signupUser(t, app, "Reader", "reader@example.com")
	grantPoints(t, db, authorID, 20)
	createPostViaAPI(t, app, authorToken)

	req := jsonRequest(t, http.MethodPost, "/api/posts/1/comments", fiber.Map{
		"content": "a remark I will come to regret",
	})
	req.Header.Set("Authorization", "Bearer "+readerToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var comment models.Comment
	decodeBody(t, resp, &comment)

	var reader models.User
	require.NoError(t, db.First(&reader, readerID).Error)
	earned := reader.Points
	require.Greater(t, earned, 0)

	t.Run("non-owner forbidden", func(t *testing.T) {
		req := jsonRequest(t, http.MethodDelete, "/api/posts/1/comments/1", nil)
		req.Header.Set("Authorization", "Bearer "+authorToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("owner delete reverses award", func(t *testing.T) {
		req := jsonRequest(t, http.MethodDelete, "/api/posts/1/comments/1", nil)
		req.Header.Set("Authorization", "Bearer "+readerToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		require.NoError(t, db.First(&reader, readerID).Error)
		assert.Zero(t, reader.Points)
	})
}
