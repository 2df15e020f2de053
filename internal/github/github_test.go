package github

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	c := NewClient("octocat", "tok")
	c.BaseURL = server.URL
	return c
}

func TestCommits(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/commits", r.URL.Path)
		assert.Equal(t, "author:octocat committer-date:2026-03-14", r.URL.Query().Get("q"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		io.WriteString(w, `{"total_count":2,"items":[
			{"sha":"a1","commit":{"message":"fix parser\n\nlonger body","committer":{"date":"2026-03-14T09:15:00Z"}}},
			{"sha":"b2","commit":{"message":"add tests","committer":{"date":"2026-03-14T11:00:00Z"}}}
		]}`)
	})

	commits, err := c.Commits(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "fix parser", commits[0].Message)
	assert.Equal(t, "a1", commits[0].SHA)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 15, 0, 0, time.UTC), commits[0].Time.UTC())
}

func TestCount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"total_count":7,"items":[]}`)
	})
	n, err := c.Count(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestCountFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"Bad credentials"}`)
	})
	_, err := c.Count(context.Background(), day)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestMissingCredentials(t *testing.T) {
	c := NewClient(" ", "tok")
	assert.False(t, c.Configured())
	_, err := c.Count(context.Background(), day)
	assert.ErrorIs(t, err, ErrNoCredentials)
}
