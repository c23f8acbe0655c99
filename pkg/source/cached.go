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

package source

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"k8s.io/klog/v2"

	"github.com/google/swedash/pkg/metrics"
)

// Cached remembers the results of another source per time range
type Cached struct {
	src   Source
	cache *cache.Cache
}

// NewCached wraps src, keeping results for ttl
func NewCached(src Source, ttl time.Duration) *Cached {
	return &Cached{
		src:   src,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Fetch returns the cached list for tr, or loads and caches it.
// Callers get their own copy of the slice and records.
func (c *Cached) Fetch(ctx context.Context, tr metrics.TimeRange) ([]*metrics.DeveloperMetrics, error) {
	if v, ok := c.cache.Get(string(tr)); ok {
		klog.V(1).Infof("cache hit: %s", tr)
		return clone(v.([]*metrics.DeveloperMetrics)), nil
	}

	klog.V(1).Infof("cache miss: %s", tr)
	devs, err := c.src.Fetch(ctx, tr)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(string(tr), clone(devs))
	return devs, nil
}

func clone(devs []*metrics.DeveloperMetrics) []*metrics.DeveloperMetrics {
	out := make([]*metrics.DeveloperMetrics, 0, len(devs))
	for _, d := range devs {
		c := *d
		c.Repos = append([]string(nil), d.Repos...)
		out = append(out, &c)
	}
	return out
}
