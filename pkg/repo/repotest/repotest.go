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

// Package repotest serves a small fake GitHub API for tests.
package repotest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/google/go-github/v33/github"

	"github.com/google/swedash/pkg/client"
	"github.com/google/swedash/pkg/ghcache"
)

// Routes maps request paths to canned JSON bodies. Later pages of a listing are keyed
// as path?page=N; the previous page then links to them as GitHub does.
type Routes map[string]string

// Default returns the fixture used across the repo and source tests, for the repository o/p
// and the window 2026-01-01 to 2026-01-31.
//
// alice: 2 commits, PR #1 merged (100+/20- after filtering), PR #2 closed unmerged, reviewed #3.
// bob: 1 commit, PR #3 merged (30+/10-), reviewed #1 twice, closed issue #5.
func Default() Routes {
	return Routes{
		"/repos/o/p/commits": `[
			{"sha": "a1", "author": {"login": "alice"}},
			{"sha": "a2", "author": {"login": "alice"}},
			{"sha": "b1", "author": {"login": "bob"}},
			{"sha": "x1", "author": null},
			{"sha": "d1", "author": {"login": "dependabot[bot]", "type": "Bot"}}
		]`,
		"/repos/o/p/pulls": `[
			{"number": 3, "user": {"login": "bob"}, "state": "closed", "updated_at": "2026-01-20T00:00:00Z", "closed_at": "2026-01-20T00:00:00Z", "merged_at": "2026-01-20T00:00:00Z"},
			{"number": 2, "user": {"login": "alice"}, "state": "closed", "updated_at": "2026-01-12T00:00:00Z", "closed_at": "2026-01-12T00:00:00Z"},
			{"number": 1, "user": {"login": "alice"}, "state": "closed", "updated_at": "2026-01-10T00:00:00Z", "closed_at": "2026-01-10T00:00:00Z", "merged_at": "2026-01-10T00:00:00Z"},
			{"number": 4, "user": {"login": "alice"}, "state": "closed", "updated_at": "2025-12-01T00:00:00Z", "closed_at": "2025-12-01T00:00:00Z", "merged_at": "2025-12-01T00:00:00Z"}
		]`,
		"/repos/o/p/pulls/1":       `{"number": 1, "user": {"login": "alice"}, "state": "closed", "merged": true, "additions": 630, "deletions": 20, "closed_at": "2026-01-10T00:00:00Z", "merged_at": "2026-01-10T00:00:00Z"}`,
		"/repos/o/p/pulls/3":       `{"number": 3, "user": {"login": "bob"}, "state": "closed", "merged": true, "additions": 30, "deletions": 10, "closed_at": "2026-01-20T00:00:00Z", "merged_at": "2026-01-20T00:00:00Z"}`,
		"/repos/o/p/pulls/1/files": `[{"filename": "main.go", "additions": 90, "deletions": 20}, {"filename": "go.sum", "additions": 500, "deletions": 0}, {"filename": "CHANGELOG.md", "additions": 40, "deletions": 0}]`,
		"/repos/o/p/pulls/3/files": `[{"filename": "a.go", "additions": 30, "deletions": 10}]`,
		"/repos/o/p/pulls/1/reviews": `[
			{"id": 11, "user": {"login": "bob"}, "state": "COMMENTED", "submitted_at": "2026-01-09T00:00:00Z"},
			{"id": 12, "user": {"login": "bob"}, "state": "APPROVED", "submitted_at": "2026-01-10T00:00:00Z"},
			{"id": 13, "user": {"login": "alice"}, "state": "COMMENTED", "submitted_at": "2026-01-10T00:00:00Z"}
		]`,
		"/repos/o/p/pulls/2/reviews": `[]`,
		"/repos/o/p/pulls/3/reviews": `[{"id": 31, "user": {"login": "alice"}, "state": "APPROVED", "submitted_at": "2026-01-19T00:00:00Z"}]`,
		"/repos/o/p/issues": `[
			{"number": 5, "state": "closed", "user": {"login": "carol"}, "closed_at": "2026-01-15T00:00:00Z", "updated_at": "2026-01-15T00:00:00Z"},
			{"number": 6, "state": "closed", "user": {"login": "carol"}, "closed_at": "2026-01-16T00:00:00Z", "updated_at": "2026-01-16T00:00:00Z", "pull_request": {"url": "https://example.com/pulls/6"}}
		]`,
		"/repos/o/p/issues/5": `{"number": 5, "state": "closed", "user": {"login": "carol"}, "closed_by": {"login": "bob"}, "closed_at": "2026-01-15T00:00:00Z"}`,
		"/orgs/o/repos":       `[{"name": "p"}, {"name": "old", "archived": true}]`,
	}
}

// NewClient starts a fake GitHub serving routes, returning a client pointed at it.
// The server and on-disk cache are cleaned up with the test.
func NewClient(t *testing.T, routes Routes) *client.Client {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		key := r.URL.Path
		if page > 1 {
			key = fmt.Sprintf("%s?page=%d", r.URL.Path, page)
		}
		body, ok := routes[key]
		if !ok {
			http.Error(w, fmt.Sprintf(`{"message": "no route for %s"}`, key), http.StatusNotFound)
			return
		}

		if _, ok := routes[fmt.Sprintf("%s?page=%d", r.URL.Path, page+1)]; ok {
			w.Header().Set("Link", fmt.Sprintf(`<%s%s?page=%d>; rel="next"`, srv.URL, r.URL.Path, page+1))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	gc := github.NewClient(srv.Client())
	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	gc.BaseURL = base

	dv, err := ghcache.New(t.TempDir())
	if err != nil {
		t.Fatalf("cache: %v", err)
	}

	return &client.Client{Cache: dv, GitHubClient: gc}
}
