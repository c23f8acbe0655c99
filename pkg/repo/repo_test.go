package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-github/v33/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/swedash/pkg/metrics"
	"github.com/google/swedash/pkg/repo/repotest"
)

var (
	since = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until = time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
)

func TestParseURL(t *testing.T) {
	testCases := []struct {
		in      string
		org     string
		project string
	}{
		{in: "kubernetes/minikube", org: "kubernetes", project: "minikube"},
		{in: "https://github.com/google/pullsheet", org: "google", project: "pullsheet"},
		{in: "https://github.com/google/pullsheet/pull/12", org: "google", project: "pullsheet"},
		{in: "google", org: "google", project: ""},
		{in: "https://github.com/google", org: "google", project: ""},
		{in: "github.com/google/pullsheet", org: "google", project: "pullsheet"},
		{in: "", org: "", project: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			org, project := ParseURL(tc.in)
			assert.Equal(t, tc.org, org)
			assert.Equal(t, tc.project, project)
		})
	}
}

func TestIsBot(t *testing.T) {
	assert.True(t, isBot(&github.User{Login: github.String("dependabot[bot]")}))
	assert.True(t, isBot(&github.User{Login: github.String("k8s-ci-robot"), Type: github.String("Bot")}))
	assert.True(t, isBot(&github.User{Login: github.String("codecov-io")}))
	assert.False(t, isBot(&github.User{Login: github.String("alice"), Type: github.String("User")}))
}

func TestCountLines(t *testing.T) {
	added, deleted := countLines([]github.CommitFile{
		{Filename: github.String("pkg/x.go"), Additions: github.Int(12), Deletions: github.Int(3)},
		{Filename: github.String("vendor/y/z.go"), Additions: github.Int(9000), Deletions: github.Int(9000)},
		{Filename: github.String("CHANGELOG.md"), Additions: github.Int(250), Deletions: github.Int(4)},
	})
	assert.Equal(t, 12+truncLines, added)
	assert.Equal(t, 7, deleted)
}

func TestContributions(t *testing.T) {
	c := repotest.NewClient(t, repotest.Default())

	cs, err := Contributions(context.Background(), c, "o", "p", since, until, nil)
	require.NoError(t, err)
	require.Len(t, cs, 2)

	alice := cs["alice"]
	assert.Equal(t, 2, alice.Commits)
	assert.Equal(t, 2, alice.Closed)
	assert.Equal(t, 1, alice.Merged)
	assert.Equal(t, 100, alice.Added)
	assert.Equal(t, 20, alice.Deleted)
	assert.Equal(t, []int{120}, alice.PRSizes)
	assert.Equal(t, 1, alice.Reviews)
	assert.Equal(t, 0, alice.IssuesClosed)
	assert.Equal(t, []string{"p"}, alice.Repos)

	bob := cs["bob"]
	assert.Equal(t, 1, bob.Commits)
	assert.Equal(t, 1, bob.Closed)
	assert.Equal(t, 1, bob.Merged)
	assert.Equal(t, 1, bob.Reviews)
	assert.Equal(t, 1, bob.IssuesClosed)
}

func TestContributionsUserFilter(t *testing.T) {
	c := repotest.NewClient(t, repotest.Default())

	cs, err := Contributions(context.Background(), c, "o", "p", since, until, []string{"Alice"})
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, 2, cs["alice"].Commits)
	assert.Equal(t, 1, cs["alice"].Reviews)
}

func TestExpand(t *testing.T) {
	c := repotest.NewClient(t, repotest.Default())

	repos, err := Expand(context.Background(), c, []string{"o", "other/thing", " "})
	require.NoError(t, err)
	assert.Equal(t, []string{"o/p", "other/thing"}, repos)

	repos, err = Expand(context.Background(), c, []string{"https://github.com/o", "https://github.com/other/thing/pull/3", "github.com/o/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"o/p", "other/thing", "o/p"}, repos)
}

func TestMergeAndToMetrics(t *testing.T) {
	a := map[string]*Contribution{
		"alice": {Login: "alice", Commits: 2, Closed: 2, Merged: 1, Reviews: 1, Added: 100, Deleted: 20, PRSizes: []int{120}, Repos: []string{"p"}},
		"bob":   {Login: "bob", Commits: 1, Closed: 1, Merged: 1, Reviews: 1, IssuesClosed: 1, Added: 30, Deleted: 10, PRSizes: []int{40}, Repos: []string{"p"}},
	}
	b := map[string]*Contribution{
		"bob": {Login: "bob", Repos: []string{"q"}},
	}

	devs := ToMetrics(Merge(a, b))
	require.Len(t, devs, 2)

	assert.Equal(t, &metrics.DeveloperMetrics{
		Name: "alice", Commits: 2, PRs: 2, LinesAdded: 100, LinesDeleted: 20, Reviews: 1,
		Repos: []string{"p"}, AvgPRSize: 120, MergeRate: 50, Impact: 88,
	}, devs[0])
	assert.Equal(t, &metrics.DeveloperMetrics{
		Name: "bob", Commits: 1, PRs: 1, LinesAdded: 30, LinesDeleted: 10, Reviews: 1, IssuesClosed: 1,
		Repos: []string{"p", "q"}, AvgPRSize: 40, MergeRate: 100, Impact: 100,
	}, devs[1])
}

func TestToMetricsEmpty(t *testing.T) {
	assert.Empty(t, ToMetrics(map[string]*Contribution{}))
	devs := ToMetrics(map[string]*Contribution{"idle": {Login: "idle"}})
	require.Len(t, devs, 1)
	assert.Equal(t, 0, devs[0].Impact)
	assert.Equal(t, 0, devs[0].MergeRate)
}
