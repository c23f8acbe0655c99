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
	"strings"
	"time"

	"github.com/google/go-github/v33/github"
	"k8s.io/klog/v2"

	"github.com/google/swedash/pkg/client"
	"github.com/google/swedash/pkg/ghcache"
)

const dateForm = "2006-01-02"

// ClosedPulls returns pull requests closed within [since, until].
// Merged pull requests are returned in full, so that their line counts are populated.
func ClosedPulls(ctx context.Context, c *client.Client, org string, project string, since time.Time, until time.Time, users []string) ([]*github.PullRequest, error) {
	var result []*github.PullRequest

	opts := &github.PullRequestListOptions{
		State:     "closed",
		Sort:      "updated",
		Direction: "desc",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	matchUser := userMatcher(users)

	klog.Infof("Gathering pull requests for %s/%s, users=%q: %+v", org, project, users, opts)
	for page := 1; page != 0; {
		opts.ListOptions.Page = page
		prs, resp, err := c.GitHubClient.PullRequests.List(ctx, org, project, opts)
		if err != nil {
			klog.Errorf("list failed, retrying: %v", err)
			if !pause(ctx) {
				return result, ctx.Err()
			}
			prs, resp, err = c.GitHubClient.PullRequests.List(ctx, org, project, opts)
			if err != nil {
				return result, err
			}
		}

		klog.Infof("Processing page %d of %s/%s pull request results ...", page, org, project)

		page = resp.NextPage
		for _, pr := range prs {
			if pr.GetClosedAt().After(until) {
				klog.V(1).Infof("PR#%d closed at %s", pr.GetNumber(), pr.GetClosedAt())
				continue
			}

			if pr.GetUpdatedAt().Before(since) {
				klog.Infof("Hit PR#%d updated at %s", pr.GetNumber(), pr.GetUpdatedAt())
				page = 0
				break
			}

			if pr.GetClosedAt().Before(since) {
				continue
			}

			if isBot(pr.GetUser()) || !matchUser(pr.GetUser().GetLogin()) {
				continue
			}

			if pr.MergedAt == nil {
				result = append(result, pr)
				continue
			}

			klog.V(1).Infof("Fetching PR #%d by %s: %q", pr.GetNumber(), pr.GetUser().GetLogin(), pr.GetTitle())
			full, err := ghcache.PullRequestsGet(ctx, c.Cache, c.GitHubClient, pr.GetMergedAt(), org, project, pr.GetNumber())
			if err != nil {
				klog.Errorf("unable to get details for %d: %v", pr.GetNumber(), err)
				// Accept partial credit
				result = append(result, pr)
				continue
			}
			result = append(result, full)
		}
	}
	klog.Infof("Returning %d pull request results", len(result))
	return result, nil
}

// userMatcher returns a case-insensitive filter for users; an empty list matches everyone
func userMatcher(users []string) func(string) bool {
	matchUser := map[string]bool{}
	for _, u := range users {
		matchUser[strings.ToLower(u)] = true
	}
	return func(login string) bool {
		return len(matchUser) == 0 || matchUser[strings.ToLower(login)]
	}
}

// pause waits a second before a retry, returning false if ctx ends first
func pause(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Second):
		return true
	}
}

func isBot(u *github.User) bool {
	if u.GetType() == "Bot" || u.GetType() == "bot" {
		return true
	}

	if strings.HasSuffix(u.GetLogin(), "bot") {
		return true
	}

	if strings.Contains(u.GetLogin(), "[bot]") {
		return true
	}

	if strings.HasPrefix(u.GetLogin(), "codecov") || strings.HasPrefix(u.GetLogin(), "Travis") {
		return true
	}

	return false
}
