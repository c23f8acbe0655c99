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

package client

import (
	"context"
	"os"
	"strings"

	"github.com/google/go-github/v33/github"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/google/swedash/pkg/ghcache"
)

// Client is a GitHub client paired with an on-disk response cache
type Client struct {
	Cache        *diskv.Diskv
	GitHubClient *github.Client
}

// Config configures the client
type Config struct {
	GitHubTokenPath string
	CacheDir        string // defaults to the user cache dir
}

// New returns a Client authenticated with the token stored at c.GitHubTokenPath
func New(ctx context.Context, c Config) (*Client, error) {
	if c.GitHubTokenPath == "" {
		return nil, errors.New("a GitHub token path is required")
	}

	token, err := os.ReadFile(c.GitHubTokenPath)
	if err != nil {
		return nil, errors.Wrap(err, "token file")
	}

	tc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: strings.TrimSpace(string(token))}))
	gc := github.NewClient(tc)

	dv, err := ghcache.New(c.CacheDir)
	if err != nil {
		return nil, err
	}

	return &Client{
		Cache:        dv,
		GitHubClient: gc,
	}, nil
}
