package ghcache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/swedash/pkg/ghcache"
	"github.com/google/swedash/pkg/repo/repotest"
)

var closed = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

func pagedRoutes() repotest.Routes {
	return repotest.Routes{
		"/repos/o/p/pulls/7/files":          `[{"filename": "a.go", "additions": 1}, {"filename": "b.go", "additions": 2}]`,
		"/repos/o/p/pulls/7/files?page=2":   `[{"filename": "c.go", "additions": 3}]`,
		"/repos/o/p/pulls/7/reviews":        `[{"id": 1, "user": {"login": "alice"}}]`,
		"/repos/o/p/pulls/7/reviews?page=2": `[{"id": 2, "user": {"login": "bob"}}]`,
		"/repos/o/p/pulls/7/reviews?page=3": `[{"id": 3, "user": {"login": "carol"}}]`,
	}
}

func TestListFilesFollowsPages(t *testing.T) {
	cl := repotest.NewClient(t, pagedRoutes())

	fs, err := ghcache.PullRequestsListFiles(context.Background(), cl.Cache, cl.GitHubClient, closed, "o", "p", 7)
	require.NoError(t, err)
	names := []string{}
	for _, f := range fs {
		names = append(names, f.GetFilename())
	}
	assert.Equal(t, []string{"a.go", "b.go", "c.go"}, names)

	// served from the cache once stored, including every page
	cached, err := ghcache.PullRequestsListFiles(context.Background(), cl.Cache, nil, closed, "o", "p", 7)
	require.NoError(t, err)
	assert.Len(t, cached, 3)
}

func TestListReviewsFollowsPages(t *testing.T) {
	cl := repotest.NewClient(t, pagedRoutes())

	rs, err := ghcache.PullRequestsListReviews(context.Background(), cl.Cache, cl.GitHubClient, closed, "o", "p", 7)
	require.NoError(t, err)
	logins := []string{}
	for _, r := range rs {
		logins = append(logins, r.GetUser().GetLogin())
	}
	assert.Equal(t, []string{"alice", "bob", "carol"}, logins)
}
