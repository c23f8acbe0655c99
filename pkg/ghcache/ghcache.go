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

// Package ghcache caches immutable GitHub API responses on disk.
// Keys embed a timestamp (usually when the object was closed) so a change invalidates the entry.
package ghcache

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/go-github/v33/github"
	"github.com/peterbourgon/diskv"
	"k8s.io/klog/v2"
)

const (
	keyTime = "2006-01-02T150405"
)

type blob struct {
	PullRequest        github.PullRequest
	CommitFiles        []github.CommitFile
	PullRequestReviews []github.PullRequestReview
	Issue              github.Issue
}

// PullRequestsGet returns a single pull request, including its line counts
func PullRequestsGet(ctx context.Context, dv *diskv.Diskv, c *github.Client, t time.Time, org string, project string, num int) (*github.PullRequest, error) {
	key := fmt.Sprintf("pr-%s-%s-%d-%s", org, project, num, t.Format(keyTime))
	val, err := read(dv, key)

	if err != nil {
		klog.V(1).Infof("cache miss for %v: %s", key, err)
		pr, _, err := c.PullRequests.Get(ctx, org, project, num)
		if err != nil {
			return nil, fmt.Errorf("get: %v", err)
		}
		return pr, save(dv, key, blob{PullRequest: *pr})
	}

	klog.V(1).Infof("cache hit: %v", key)
	return &val.PullRequest, nil
}

// PullRequestsListFiles returns the files touched by a pull request
func PullRequestsListFiles(ctx context.Context, dv *diskv.Diskv, c *github.Client, t time.Time, org string, project string, num int) ([]github.CommitFile, error) {
	key := fmt.Sprintf("pr-listfiles-%s-%s-%d-%s", org, project, num, t.Format(keyTime))
	val, err := read(dv, key)

	if err != nil {
		klog.V(1).Infof("cache miss for %v: %s", key, err)
		fs := []github.CommitFile{}
		opts := &github.ListOptions{PerPage: 100}
		for {
			fsp, resp, err := c.PullRequests.ListFiles(ctx, org, project, num, opts)
			if err != nil {
				return nil, fmt.Errorf("list files: %v", err)
			}
			for _, f := range fsp {
				fs = append(fs, *f)
			}
			if resp.NextPage == 0 {
				break
			}
			opts.Page = resp.NextPage
		}
		return fs, save(dv, key, blob{CommitFiles: fs})
	}

	klog.V(1).Infof("cache hit: %v", key)
	return val.CommitFiles, nil
}

// PullRequestsListReviews returns the reviews submitted on a pull request
func PullRequestsListReviews(ctx context.Context, dv *diskv.Diskv, c *github.Client, t time.Time, org string, project string, num int) ([]github.PullRequestReview, error) {
	key := fmt.Sprintf("pr-reviews-%s-%s-%d-%s", org, project, num, t.Format(keyTime))
	val, err := read(dv, key)

	if err != nil {
		klog.V(1).Infof("cache miss for %v: %s", key, err)
		rs := []github.PullRequestReview{}
		opts := &github.ListOptions{PerPage: 100}
		for {
			rsp, resp, err := c.PullRequests.ListReviews(ctx, org, project, num, opts)
			if err != nil {
				return nil, fmt.Errorf("list reviews: %v", err)
			}
			for _, r := range rsp {
				rs = append(rs, *r)
			}
			if resp.NextPage == 0 {
				break
			}
			opts.Page = resp.NextPage
		}
		return rs, save(dv, key, blob{PullRequestReviews: rs})
	}

	klog.V(1).Infof("cache hit: %v", key)
	return val.PullRequestReviews, nil
}

// IssuesGet returns a single issue, including who closed it
func IssuesGet(ctx context.Context, dv *diskv.Diskv, c *github.Client, t time.Time, org string, project string, num int) (*github.Issue, error) {
	key := fmt.Sprintf("issue-%s-%s-%d-%s", org, project, num, t.Format(keyTime))
	val, err := read(dv, key)

	if err != nil {
		klog.V(1).Infof("cache miss for %v: %s", key, err)
		i, _, err := c.Issues.Get(ctx, org, project, num)
		if err != nil {
			return nil, fmt.Errorf("get: %v", err)
		}
		return i, save(dv, key, blob{Issue: *i})
	}

	klog.V(1).Infof("cache hit: %v", key)
	return &val.Issue, nil
}

func save(dv *diskv.Diskv, key string, blob blob) error {
	var bs bytes.Buffer
	enc := gob.NewEncoder(&bs)
	err := enc.Encode(blob)
	if err != nil {
		return fmt.Errorf("encode: %v", err)
	}
	return dv.Write(key, bs.Bytes())
}

func read(dv *diskv.Diskv, key string) (blob, error) {
	var bl blob
	val, err := dv.Read(key)
	if err != nil {
		return bl, err
	}

	enc := gob.NewDecoder(bytes.NewBuffer(val))
	err = enc.Decode(&bl)
	return bl, err
}

// New returns a new cache rooted at dir, or the user cache dir if dir is empty
func New(dir string) (*diskv.Diskv, error) {
	gob.Register(blob{})
	return initialize(dir)
}

// initialize returns an initialized cache
func initialize(dir string) (*diskv.Diskv, error) {
	if dir == "" {
		root, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("cache dir: %w", err)
		}
		dir = filepath.Join(root, "swedash")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}

	klog.Infof("cache dir is %s", dir)

	return diskv.New(diskv.Options{
		BasePath:     dir,
		CacheSizeMax: 1024 * 1024 * 1024,
	}), nil
}
