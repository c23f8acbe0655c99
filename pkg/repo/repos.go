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

	"github.com/google/go-github/v33/github"
	"k8s.io/klog/v2"

	"github.com/google/swedash/pkg/client"
)

// ListRepoNames returns the names of all the repositories of the specified Github organization.
func ListRepoNames(ctx context.Context, c *client.Client, org string) ([]string, error) {
	opt := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var allRepos []string

	for {
		repos, resp, err := c.GitHubClient.Repositories.ListByOrg(ctx, org, opt)
		if err != nil {
			return allRepos, err
		}

		for _, val := range repos {
			if val.GetArchived() {
				continue
			}
			allRepos = append(allRepos, org+"/"+val.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	return allRepos, nil
}

// Expand replaces organizations, given by name or URL, with every repository they own.
// Repositories are returned as org/project.
func Expand(ctx context.Context, c *client.Client, repos []string) ([]string, error) {
	var result []string
	for _, r := range repos {
		org, project := ParseURL(strings.TrimSpace(r))
		if org == "" {
			continue
		}
		if project != "" {
			result = append(result, org+"/"+project)
			continue
		}

		names, err := ListRepoNames(ctx, c, org)
		if err != nil {
			return nil, err
		}
		klog.Infof("expanded %s to %d repositories", org, len(names))
		result = append(result, names...)
	}
	return result, nil
}
