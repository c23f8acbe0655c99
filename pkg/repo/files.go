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
	"regexp"

	"github.com/google/go-github/v33/github"
	"k8s.io/klog/v2"

	"github.com/google/swedash/pkg/client"
	"github.com/google/swedash/pkg/ghcache"
)

var (
	ignorePathRe = regexp.MustCompile(`go\.mod|go\.sum|vendor/|third_party|ignore|schemas/v\d|schema/v\d|Gopkg.lock|.DS_Store|package-lock.json|yarn.lock`)
	truncRe      = regexp.MustCompile(`changelog|CHANGELOG|Gopkg.toml`)
)

// truncLines is the most lines credited for a mostly generated file
const truncLines = 10

// LineCounts returns the lines added and deleted by a merged PR.
// Vendored and lock files are ignored, and changelogs are capped at truncLines.
// If the file list cannot be fetched, the PR totals are used as-is.
func LineCounts(ctx context.Context, c *client.Client, org string, project string, pr *github.PullRequest) (int, int) {
	files, err := ghcache.PullRequestsListFiles(ctx, c.Cache, c.GitHubClient, pr.GetMergedAt(), org, project, pr.GetNumber())
	if err != nil {
		klog.Errorf("unable to get file list for #%d: %v", pr.GetNumber(), err)
		return pr.GetAdditions(), pr.GetDeletions()
	}
	return countLines(files)
}

func countLines(files []github.CommitFile) (int, int) {
	added, deleted := 0, 0
	for _, f := range files {
		if ignorePathRe.MatchString(f.GetFilename()) {
			klog.V(1).Infof("ignoring %s", f.GetFilename())
			continue
		}
		// These files are mostly auto-generated
		if truncRe.MatchString(f.GetFilename()) && f.GetAdditions() > truncLines {
			klog.V(1).Infof("truncating %s from %d to %d lines added", f.GetFilename(), f.GetAdditions(), truncLines)
			added += truncLines
		} else {
			added += f.GetAdditions()
		}
		deleted += f.GetDeletions()
	}
	return added, deleted
}
