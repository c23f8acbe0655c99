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

// Package source provides the developer metrics sources the dashboard loads from.
package source

import (
	"context"
	"time"

	"github.com/google/swedash/pkg/metrics"
)

// Source returns the developer metrics for a time range
type Source interface {
	Fetch(ctx context.Context, tr metrics.TimeRange) ([]*metrics.DeveloperMetrics, error)
}

// Static serves the sample dataset after a fixed delay, whatever the range
type Static struct {
	Delay time.Duration
}

// NewStatic returns a Static source with the given simulated load delay
func NewStatic(delay time.Duration) *Static {
	return &Static{Delay: delay}
}

// Fetch waits for the configured delay, then returns a fresh copy of the sample data.
// It only fails if ctx is done before the delay elapses.
func (s *Static) Fetch(ctx context.Context, _ metrics.TimeRange) ([]*metrics.DeveloperMetrics, error) {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return metrics.Sample(), nil
}
