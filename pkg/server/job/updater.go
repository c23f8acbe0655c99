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

package job

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"k8s.io/klog/v2"

	"github.com/google/swedash/pkg/metrics"
	"github.com/google/swedash/pkg/source"
	"github.com/google/swedash/pkg/summary"
)

var (
	// LoadsTotal counts finished loads by outcome: ok, error or stale
	LoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swedash_loads_total",
		Help: "Total number of developer metric loads",
	}, []string{"status"})

	// LoadLatencySeconds is the histogram of source fetch latency
	LoadLatencySeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "swedash_load_latency_seconds",
		Help:    "Histogram of developer metric load latency in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	// Developers is the number of developers currently displayed
	Developers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "swedash_developers",
		Help: "Number of developers in the current dataset",
	})
)

type updater struct {
	mu     *sync.Mutex
	wg     sync.WaitGroup
	state  State
	gen    int // identifies the most recently started load
	cancel context.CancelFunc
	closed bool

	memoVersion int
	memo        *summary.Summary
}

func (u *updater) snapshot() State {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.stateLocked()
}

// view returns the state together with the aggregates of the same data version
func (u *updater) view() (State, summary.Summary) {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.stateLocked(), u.summaryLocked()
}

func (u *updater) stateLocked() State {
	st := u.state
	st.Developers = append([]*metrics.DeveloperMetrics{}, u.state.Developers...)
	return st
}

func (u *updater) setTimeRange(tr metrics.TimeRange) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.state.TimeRange = tr
}

func (u *updater) setSelected(name string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.state.Selected = name
}

// summary memoizes the aggregates by data version
func (u *updater) summary() summary.Summary {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.summaryLocked()
}

func (u *updater) summaryLocked() summary.Summary {
	if u.memo == nil || u.memoVersion != u.state.Version {
		s := summary.Summarize(u.state.Developers)
		u.memo = &s
		u.memoVersion = u.state.Version
	}
	return *u.memo
}

// load starts fetching the current time range, superseding any load in flight
func (u *updater) load(ctx context.Context, src source.Source) {
	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		return
	}
	if u.cancel != nil {
		u.cancel()
	}
	lctx, cancel := context.WithCancel(ctx)
	u.cancel = cancel
	u.gen++
	gen := u.gen
	tr := u.state.TimeRange
	u.state.Loading = true
	u.wg.Add(1)
	u.mu.Unlock()

	go func() {
		defer u.wg.Done()
		defer cancel()

		start := time.Now()
		devs, err := src.Fetch(lctx, tr)
		LoadLatencySeconds.Observe(time.Since(start).Seconds())
		u.apply(gen, tr, devs, err)
	}()
}

// apply stores the result of load gen, unless it has been superseded or the job closed
func (u *updater) apply(gen int, tr metrics.TimeRange, devs []*metrics.DeveloperMetrics, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed || gen != u.gen {
		klog.V(1).Infof("discarding stale load #%d for %s", gen, tr)
		LoadsTotal.WithLabelValues("stale").Inc()
		return
	}

	u.state.Loading = false
	if err != nil {
		klog.Errorf("Failed to load %s: %v", tr, err)
		LoadsTotal.WithLabelValues("error").Inc()
		u.state.Err = err
		return
	}

	klog.Infof("loaded %d developers for %s", len(devs), tr)
	LoadsTotal.WithLabelValues("ok").Inc()
	Developers.Set(float64(len(devs)))
	u.state.Err = nil
	u.state.Developers = devs
	u.state.Version++
}

func (u *updater) close() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.closed = true
	if u.cancel != nil {
		u.cancel()
	}
}
