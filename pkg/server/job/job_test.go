package job

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/swedash/pkg/metrics"
	"github.com/google/swedash/pkg/source"
	"github.com/google/swedash/pkg/summary"
)

// gatedSource returns a result per time range once the test releases it.
type gatedSource struct {
	release map[metrics.TimeRange]chan []*metrics.DeveloperMetrics
	started chan metrics.TimeRange
}

func newGatedSource() *gatedSource {
	g := &gatedSource{
		release: map[metrics.TimeRange]chan []*metrics.DeveloperMetrics{},
		started: make(chan metrics.TimeRange, 8),
	}
	for _, tr := range metrics.TimeRanges() {
		g.release[tr] = make(chan []*metrics.DeveloperMetrics, 1)
	}
	return g
}

// Fetch ignores cancellation so tests can deliver results after a load was superseded
func (g *gatedSource) Fetch(_ context.Context, tr metrics.TimeRange) ([]*metrics.DeveloperMetrics, error) {
	g.started <- tr
	return <-g.release[tr], nil
}

type failingSource struct{}

func (failingSource) Fetch(context.Context, metrics.TimeRange) ([]*metrics.DeveloperMetrics, error) {
	return nil, errors.New("boom")
}

// countingSource returns a list of n developers on its nth call
type countingSource struct {
	mu sync.Mutex
	n  int
}

func (c *countingSource) Fetch(context.Context, metrics.TimeRange) ([]*metrics.DeveloperMetrics, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	devs := []*metrics.DeveloperMetrics{}
	for i := 0; i < c.n; i++ {
		devs = append(devs, &metrics.DeveloperMetrics{Name: fmt.Sprint(i), Commits: 1, Impact: i})
	}
	return devs, nil
}

func newSampleJob(t *testing.T) *Job {
	t.Helper()
	j := New(context.Background(), &Opts{Title: "test"}, source.NewStatic(0))
	t.Cleanup(j.Shutdown)
	return j
}

func TestInitialState(t *testing.T) {
	j := newSampleJob(t)

	st := j.State()
	assert.True(t, st.Loading)
	assert.Empty(t, st.Developers)
	assert.Equal(t, metrics.Last30Days, st.TimeRange)
	assert.Equal(t, 0.0, j.Summary().AvgImpact)
}

func TestLoad(t *testing.T) {
	j := newSampleJob(t)
	j.Update()
	j.Wait()

	st := j.State()
	assert.False(t, st.Loading)
	assert.NoError(t, st.Err)
	assert.Equal(t, metrics.Sample(), st.Developers)
	assert.Equal(t, 744, j.Summary().Totals.Commits)
	assert.InDelta(t, 87.4, j.Summary().AvgImpact, 1e-9)
}

func TestSetTimeRangeReloadsSameData(t *testing.T) {
	j := newSampleJob(t)
	j.Update()
	j.Wait()
	before := j.State()

	j.SetTimeRange(metrics.LastYear)
	j.Wait()

	after := j.State()
	assert.Equal(t, metrics.LastYear, after.TimeRange)
	assert.Equal(t, before.Developers, after.Developers)
	assert.Equal(t, before.Version+1, after.Version)
}

func TestSelectThenClose(t *testing.T) {
	j := newSampleJob(t)
	j.Update()
	j.Wait()
	before := j.State()
	sumBefore := j.Summary()

	j.Select("Bob Smith")
	st := j.State()
	d, ok := st.SelectedDeveloper()
	require.True(t, ok)
	assert.Equal(t, metrics.Sample()[1], d)

	j.CloseDetail()
	st = j.State()
	_, ok = st.SelectedDeveloper()
	assert.False(t, ok)
	assert.Equal(t, "", st.Selected)

	assert.Equal(t, before.Developers, st.Developers)
	assert.Equal(t, before.TimeRange, st.TimeRange)
	assert.Equal(t, before.Version, st.Version)
	assert.Equal(t, sumBefore, j.Summary())
}

func TestSelectUnknown(t *testing.T) {
	j := newSampleJob(t)
	j.Update()
	j.Wait()

	j.Select("Nobody")
	_, ok := j.State().SelectedDeveloper()
	assert.False(t, ok)

	out, err := j.Render()
	require.NoError(t, err)
	assert.NotContains(t, out, `id="detail"`)
}

func TestStaleLoadDiscarded(t *testing.T) {
	src := newGatedSource()
	j := New(context.Background(), &Opts{}, src)
	defer j.Shutdown()

	j.Update() // 30d
	assert.Equal(t, metrics.Last30Days, <-src.started)
	j.SetTimeRange(metrics.Last7Days)
	assert.Equal(t, metrics.Last7Days, <-src.started)

	// the newer load finishes first, then the stale one arrives
	fresh := []*metrics.DeveloperMetrics{{Name: "fresh", Impact: 10}}
	src.release[metrics.Last7Days] <- fresh
	src.release[metrics.Last30Days] <- []*metrics.DeveloperMetrics{{Name: "stale", Impact: 99}}
	j.Wait()

	st := j.State()
	assert.False(t, st.Loading)
	assert.Equal(t, fresh, st.Developers)
	assert.Equal(t, 1, st.Version)
}

func TestShutdownDropsPendingResult(t *testing.T) {
	src := newGatedSource()
	j := New(context.Background(), &Opts{}, src)

	j.Update()
	<-src.started
	j.u.close()
	src.release[metrics.Last30Days] <- metrics.Sample()
	j.Wait()
	assert.Empty(t, j.State().Developers)

	// no loads start after shutdown
	j.Update()
	j.Wait()
	assert.Empty(t, j.State().Developers)
	j.Shutdown()
}

func TestLoadError(t *testing.T) {
	j := New(context.Background(), &Opts{}, failingSource{})
	defer j.Shutdown()

	j.Update()
	j.Wait()

	st := j.State()
	assert.False(t, st.Loading)
	assert.EqualError(t, st.Err, "boom")
	assert.Empty(t, st.Developers)
}

func TestViewPairsStateWithItsSummary(t *testing.T) {
	j := New(context.Background(), &Opts{}, &countingSource{})
	defer j.Shutdown()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			j.Update()
		}
		j.Wait()
	}()

	check := func() {
		st, sum := j.View()
		assert.Equal(t, summary.Summarize(st.Developers), sum, "version %d", st.Version)
	}
	for {
		select {
		case <-done:
			check()
			return
		default:
			check()
		}
	}
}
