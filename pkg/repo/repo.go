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
	"net/url"
	"strings"
)

// ParseURL returns the organization and project for a URL or partial path
func ParseURL(rawURL string) (string, string) {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}

	p := strings.Split(strings.Trim(path, "/"), "/")
	// host given without a scheme, as in "github.com/google"
	if len(p) > 1 && strings.EqualFold(p[0], "github.com") {
		p = p[1:]
	}
	if len(p) < 2 {
		return p[0], ""
	}
	return p[0], p[1]
}
