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
	"time"

	"github.com/google/go-github/v33/github"
	"k8s.io/klog/v2"

	"github.com/google/swedash/pkg/client"
	"github.com/google/swedash/pkg/ghcache"
)

// ReviewCounts returns, per reviewer login, the number of pull requests they reviewed within [since, until].
// Self reviews and bots are not counted, and several reviews on one PR count once.
func ReviewCounts(ctx context.Context, c *client.Client, org string, project string, prs []*github.PullRequest, since time.Time, until time.Time, users []string) (map[string]int, error) {
	matchUser := userMatcher(users)
	counts := map[string]int{}

	for _, pr := range prs {
		rs, err := ghcache.PullRequestsListReviews(ctx, c.Cache, c.GitHubClient, pr.GetClosedAt(), org, project, pr.GetNumber())
		if err != nil {
			return nil, err
		}

		seen := map[string]bool{}
		for _, r := range rs {
			login := r.GetUser().GetLogin()
			if seen[login] || isBot(r.GetUser()) || login == pr.GetUser().GetLogin() || !matchUser(login) {
				continue
			}
			if t := r.GetSubmittedAt(); t.Before(since) || t.After(until) {
				continue
			}
			seen[login] = true
			counts[login]++
		}
	}

	klog.Infof("found reviews by %d users in %s/%s", len(counts), org, project)
	return counts, nil
}
