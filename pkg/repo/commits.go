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
)

// CommitCounts returns, per author login, the commits on the default branch within [since, until].
// Commits whose author has no GitHub account are skipped.
func CommitCounts(ctx context.Context, c *client.Client, org string, project string, since time.Time, until time.Time, users []string) (map[string]int, error) {
	opts := &github.CommitsListOptions{
		Since: since,
		Until: until,
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	matchUser := userMatcher(users)
	counts := map[string]int{}

	klog.Infof("Gathering commits for %s/%s, users=%q", org, project, users)
	for page := 1; page != 0; {
		opts.ListOptions.Page = page
		commits, resp, err := c.GitHubClient.Repositories.ListCommits(ctx, org, project, opts)
		if err != nil {
			return nil, err
		}

		page = resp.NextPage
		for _, rc := range commits {
			author := rc.GetAuthor()
			if author == nil || isBot(author) || !matchUser(author.GetLogin()) {
				continue
			}
			counts[author.GetLogin()]++
		}
	}
	klog.Infof("found commits by %d users in %s/%s", len(counts), org, project)
	return counts, nil
}
