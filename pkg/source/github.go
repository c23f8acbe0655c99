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

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/google/swedash/pkg/client"
	"github.com/google/swedash/pkg/metrics"
	"github.com/google/swedash/pkg/repo"
)

// GitHub builds developer metrics from repository activity on GitHub
type GitHub struct {
	cl    *client.Client
	repos []string
	users []string
	until func() time.Time
}

// NewGitHub returns a GitHub source over repos (org/project, URLs, or bare orgs).
// users optionally restricts the logins reported; until returns the end of the window.
func NewGitHub(cl *client.Client, repos []string, users []string, until func() time.Time) *GitHub {
	if until == nil {
		until = time.Now
	}
	return &GitHub{
		cl:    cl,
		repos: repos,
		users: users,
		until: until,
	}
}

// Fetch collects contributions from every repository concurrently
func (g *GitHub) Fetch(ctx context.Context, tr metrics.TimeRange) ([]*metrics.DeveloperMetrics, error) {
	until := g.until()
	since, err := tr.Since(until)
	if err != nil {
		return nil, errors.Wrap(err, "since")
	}

	repos, err := repo.Expand(ctx, g.cl, g.repos)
	if err != nil {
		return nil, errors.Wrap(err, "expand repos")
	}
	if len(repos) == 0 {
		return nil, errors.New("no repositories configured")
	}

	klog.Infof("fetching %s of activity (%s to %s) across %d repositories", tr, since.Format(time.RFC3339), until.Format(time.RFC3339), len(repos))

	results := make([]map[string]*repo.Contribution, len(repos))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, r := range repos {
		i, r := i, r
		eg.Go(func() error {
			org, project := repo.ParseURL(r)
			cs, err := repo.Contributions(egCtx, g.cl, org, project, since, until, g.users)
			if err != nil {
				return errors.Wrapf(err, "%s/%s", org, project)
			}
			results[i] = cs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return repo.ToMetrics(repo.Merge(results...)), nil
}
