package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/google/swedash/pkg/metrics"
	"github.com/google/swedash/pkg/repo/repotest"
)

// mockSource is a mock implementation of the Source interface.
type mockSource struct {
	mock.Mock
}

func (m *mockSource) Fetch(ctx context.Context, tr metrics.TimeRange) ([]*metrics.DeveloperMetrics, error) {
	args := m.Called(ctx, tr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*metrics.DeveloperMetrics), args.Error(1)
}

func TestStaticIgnoresRange(t *testing.T) {
	s := NewStatic(0)
	for _, tr := range metrics.TimeRanges() {
		devs, err := s.Fetch(context.Background(), tr)
		require.NoError(t, err)
		assert.Equal(t, metrics.Sample(), devs)
	}
}

func TestStaticDelay(t *testing.T) {
	s := NewStatic(20 * time.Millisecond)
	start := time.Now()
	devs, err := s.Fetch(context.Background(), metrics.Last7Days)
	require.NoError(t, err)
	assert.Len(t, devs, 5)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestStaticCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	devs, err := NewStatic(time.Hour).Fetch(ctx, metrics.Last30Days)
	assert.Nil(t, devs)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCached(t *testing.T) {
	src := new(mockSource)
	src.On("Fetch", mock.Anything, metrics.Last7Days).Return(metrics.Sample(), nil).Once()
	src.On("Fetch", mock.Anything, metrics.Last90Days).Return(nil, errors.New("rate limited")).Once()

	c := NewCached(src, time.Minute)
	ctx := context.Background()

	first, err := c.Fetch(ctx, metrics.Last7Days)
	require.NoError(t, err)
	first[0].Impact = 0

	second, err := c.Fetch(ctx, metrics.Last7Days)
	require.NoError(t, err)
	assert.Equal(t, 92, second[0].Impact, "cached copy must not share records with callers")

	_, err = c.Fetch(ctx, metrics.Last90Days)
	assert.Error(t, err)

	src.AssertExpectations(t)
}

func TestGitHub(t *testing.T) {
	cl := repotest.NewClient(t, repotest.Default())
	until := func() time.Time { return time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC) }

	devs, err := NewGitHub(cl, []string{"o/p"}, nil, until).Fetch(context.Background(), metrics.Last30Days)
	require.NoError(t, err)
	require.Len(t, devs, 2)

	assert.Equal(t, "alice", devs[0].Name)
	assert.Equal(t, 2, devs[0].Commits)
	assert.Equal(t, 50, devs[0].MergeRate)
	assert.Equal(t, 88, devs[0].Impact)

	assert.Equal(t, "bob", devs[1].Name)
	assert.Equal(t, 100, devs[1].Impact)
	assert.Equal(t, []string{"p"}, devs[1].Repos)
}

func TestGitHubNoRepos(t *testing.T) {
	cl := repotest.NewClient(t, repotest.Default())
	_, err := NewGitHub(cl, nil, nil, nil).Fetch(context.Background(), metrics.Last7Days)
	assert.Error(t, err)
}

func TestGitHubError(t *testing.T) {
	cl := repotest.NewClient(t, repotest.Routes{})
	_, err := NewGitHub(cl, []string{"o/p"}, nil, nil).Fetch(context.Background(), metrics.Last7Days)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "o/p")
}
