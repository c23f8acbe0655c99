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

// ClosedIssueCounts returns, per closer login, the number of issues closed within [since, until]
func ClosedIssueCounts(ctx context.Context, c *client.Client, org string, project string, since time.Time, until time.Time, users []string) (map[string]int, error) {
	opts := &github.IssueListByRepoOptions{
		State:     "closed",
		Sort:      "updated",
		Direction: "desc",
		Since:     since,
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	matchUser := userMatcher(users)
	counts := map[string]int{}

	klog.Infof("Gathering issues for %s/%s, users=%q: %+v", org, project, users, opts)
	for page := 1; page != 0; {
		opts.ListOptions.Page = page
		issues, resp, err := c.GitHubClient.Issues.ListByRepo(ctx, org, project, opts)
		if err != nil {
			return nil, err
		}

		klog.Infof("Processing page %d of %s/%s issue results ...", page, org, project)

		page = resp.NextPage
		for _, i := range issues {
			if i.IsPullRequest() {
				continue
			}
			if i.GetClosedAt().After(until) || i.GetClosedAt().Before(since) {
				continue
			}

			full, err := ghcache.IssuesGet(ctx, c.Cache, c.GitHubClient, i.GetClosedAt(), org, project, i.GetNumber())
			if err != nil {
				klog.Errorf("failed IssuesGet: %v", err)
				continue
			}

			closer := full.GetClosedBy()
			if closer == nil || isBot(closer) || !matchUser(closer.GetLogin()) {
				continue
			}
			counts[closer.GetLogin()]++
		}
	}
	klog.Infof("found issues closed by %d users in %s/%s", len(counts), org, project)
	return counts, nil
}
