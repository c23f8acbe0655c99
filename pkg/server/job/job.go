// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package job owns the dashboard view state and loads it from a source.
package job

import (
	"context"
	"sync"

	"k8s.io/klog/v2"

	"github.com/google/swedash/pkg/leaderboard"
	"github.com/google/swedash/pkg/metrics"
	"github.com/google/swedash/pkg/source"
	"github.com/google/swedash/pkg/summary"
)

// Job represents the dashboard served by the server
type Job struct {
	opts   *Opts
	src    source.Source
	ctx    context.Context
	cancel context.CancelFunc
	u      *updater
}

// Opts Options related to the Job
type Opts struct {
	Title          string            // Title of the dashboard
	TimeRange      metrics.TimeRange // Initial time range
	DisableCaching bool              // Disable caching
	AutoRefresh    bool              // Refresh the page while loading
	Interactive    bool              // Render controls as forms
}

// State is a snapshot of the view state
type State struct {
	Developers []*metrics.DeveloperMetrics
	Selected   string
	TimeRange  metrics.TimeRange
	Loading    bool
	Err        error
	Version    int // incremented each time Developers is replaced
}

// SelectedDeveloper resolves the selection against the current developers
func (s State) SelectedDeveloper() (*metrics.DeveloperMetrics, bool) {
	return summary.Find(s.Developers, s.Selected)
}

// New creates a new Job. Loads run until ctx is done or Shutdown is called.
func New(ctx context.Context, opts *Opts, src source.Source) *Job {
	tr := opts.TimeRange
	if tr == "" {
		tr = metrics.DefaultTimeRange
	}

	ctx, cancel := context.WithCancel(ctx)
	return &Job{
		opts:   opts,
		src:    src,
		ctx:    ctx,
		cancel: cancel,
		u: &updater{
			mu:    &sync.Mutex{},
			state: State{TimeRange: tr, Loading: true},
		},
	}
}

// Update reloads the developers for the current time range
func (j *Job) Update() {
	j.u.load(j.ctx, j.src)
}

// SetTimeRange selects a time range and reloads
func (j *Job) SetTimeRange(tr metrics.TimeRange) {
	klog.Infof("time range set to %s", tr)
	j.u.setTimeRange(tr)
	j.Update()
}

// Select opens the detail panel for the named developer
func (j *Job) Select(name string) {
	j.u.setSelected(name)
}

// CloseDetail closes the detail panel
func (j *Job) CloseDetail() {
	j.u.setSelected("")
}

// Wait blocks until every started load has finished or been discarded
func (j *Job) Wait() {
	j.u.wg.Wait()
}

// Shutdown cancels any pending load; results arriving afterwards are dropped
func (j *Job) Shutdown() {
	j.u.close()
	j.cancel()
	j.Wait()
}

// State returns a snapshot of the view state
func (j *Job) State() State {
	return j.u.snapshot()
}

// Summary returns the aggregates for the current developers
func (j *Job) Summary() summary.Summary {
	return j.u.summary()
}

// View returns a snapshot of the view state and the aggregates derived from it, taken atomically
func (j *Job) View() (State, summary.Summary) {
	return j.u.view()
}

// Render renders the dashboard page
func (j *Job) Render() (string, error) {
	st, sum := j.View()
	sel, _ := st.SelectedDeveloper()

	return leaderboard.Render(leaderboard.Options{
		Title:          j.opts.Title,
		DisableCaching: j.opts.DisableCaching,
		AutoRefresh:    j.opts.AutoRefresh,
		Interactive:    j.opts.Interactive,
	}, leaderboard.View{
		TimeRange: st.TimeRange,
		Loading:   st.Loading,
		Err:       st.Err,
		Summary:   sum,
		Selected:  sel,
		Activity:  metrics.Activity(),
	})
}

// GetOpts returns the options for the Job
func (j *Job) GetOpts() Opts {
	return *j.opts
}
