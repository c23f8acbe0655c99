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

package repo

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/google/swedash/pkg/client"
	"github.com/google/swedash/pkg/metrics"
)

// Impact weights, applied to a contributor's counts before normalising against the top contributor
const (
	commitWeight = 1
	mergeWeight  = 3
	reviewWeight = 2
	issueWeight  = 2
)

// Contribution is the raw activity of one GitHub user
type Contribution struct {
	Login        string
	Commits      int
	Closed       int // authored PRs closed, merged or not
	Merged       int
	Reviews      int
	IssuesClosed int
	Added        int
	Deleted      int
	PRSizes      []int // added+deleted per merged PR
	Repos        []string
}

// Contributions collects per-user activity for one repository within [since, until]
func Contributions(ctx context.Context, c *client.Client, org string, project string, since time.Time, until time.Time, users []string) (map[string]*Contribution, error) {
	cs := map[string]*Contribution{}
	get := func(login string) *Contribution {
		if cs[login] == nil {
			cs[login] = &Contribution{Login: login, Repos: []string{project}}
		}
		return cs[login]
	}

	commits, err := CommitCounts(ctx, c, org, project, since, until, users)
	if err != nil {
		return nil, errors.Wrap(err, "commits")
	}
	for login, n := range commits {
		get(login).Commits += n
	}

	// Reviews count against every closed PR, so fetch all and filter authors here
	prs, err := ClosedPulls(ctx, c, org, project, since, until, nil)
	if err != nil {
		return nil, errors.Wrap(err, "pulls")
	}
	matchUser := userMatcher(users)
	for _, pr := range prs {
		if !matchUser(pr.GetUser().GetLogin()) {
			continue
		}
		u := get(pr.GetUser().GetLogin())
		u.Closed++
		if pr.MergedAt == nil {
			continue
		}
		added, deleted := LineCounts(ctx, c, org, project, pr)
		u.Merged++
		u.Added += added
		u.Deleted += deleted
		u.PRSizes = append(u.PRSizes, added+deleted)
	}

	reviews, err := ReviewCounts(ctx, c, org, project, prs, since, until, users)
	if err != nil {
		return nil, errors.Wrap(err, "reviews")
	}
	for login, n := range reviews {
		get(login).Reviews += n
	}

	issues, err := ClosedIssueCounts(ctx, c, org, project, since, until, users)
	if err != nil {
		return nil, errors.Wrap(err, "issues")
	}
	for login, n := range issues {
		get(login).IssuesClosed += n
	}

	return cs, nil
}

// Merge combines per-repository contributions into a single map keyed by login
func Merge(sets ...map[string]*Contribution) map[string]*Contribution {
	out := map[string]*Contribution{}
	for _, set := range sets {
		for login, c := range set {
			m := out[login]
			if m == nil {
				m = &Contribution{Login: login}
				out[login] = m
			}
			m.Commits += c.Commits
			m.Closed += c.Closed
			m.Merged += c.Merged
			m.Reviews += c.Reviews
			m.IssuesClosed += c.IssuesClosed
			m.Added += c.Added
			m.Deleted += c.Deleted
			m.PRSizes = append(m.PRSizes, c.PRSizes...)
			for _, r := range c.Repos {
				if !contains(m.Repos, r) {
					m.Repos = append(m.Repos, r)
				}
			}
		}
	}
	return out
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

func (c *Contribution) score() int {
	return c.Commits*commitWeight + c.Merged*mergeWeight + c.Reviews*reviewWeight + c.IssuesClosed*issueWeight
}

// ToMetrics converts contributions into dashboard records, sorted by login.
// Impact is the weighted activity score relative to the most active contributor.
func ToMetrics(cs map[string]*Contribution) []*metrics.DeveloperMetrics {
	top := 0
	for _, c := range cs {
		if s := c.score(); s > top {
			top = s
		}
	}

	devs := []*metrics.DeveloperMetrics{}
	for _, c := range cs {
		d := &metrics.DeveloperMetrics{
			Name:         c.Login,
			Commits:      c.Commits,
			PRs:          c.Closed,
			LinesAdded:   c.Added,
			LinesDeleted: c.Deleted,
			Reviews:      c.Reviews,
			IssuesClosed: c.IssuesClosed,
			Repos:        c.Repos,
		}

		if size, err := stats.Mean(stats.LoadRawData(c.PRSizes)); err == nil {
			d.AvgPRSize = int(math.Round(size))
		}
		if c.Closed > 0 {
			d.MergeRate = c.Merged * 100 / c.Closed
		}
		if top > 0 {
			d.Impact = int(math.Round(float64(c.score()) * 100 / float64(top)))
		}
		devs = append(devs, metrics.Sanitize(d))
	}

	sort.Slice(devs, func(i, j int) bool { return devs[i].Name < devs[j].Name })
	return devs
}
