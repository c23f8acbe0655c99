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

// Package summary derives dashboard aggregates from a list of developers.
// Every function here is pure and leaves its input untouched.
package summary

import (
	"bufio"
	"sort"
	"strings"
	"unicode"

	"github.com/blevesearch/segment"
	"github.com/montanaflynn/stats"

	"github.com/google/swedash/pkg/metrics"
)

// Totals are the summed counters across all developers
type Totals struct {
	Commits int `json:"commits"`
	PRs     int `json:"prs"`
	Reviews int `json:"reviews"`
}

// Slice is one entry of the impact distribution
type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Summary is everything the dashboard derives from the developer list
type Summary struct {
	Totals             Totals                      `json:"totals"`
	AvgImpact          float64                     `json:"avgImpact"`
	ImpactDistribution []Slice                     `json:"impactDistribution"`
	Ranked             []*metrics.DeveloperMetrics `json:"ranked"`
}

// Summarize computes all aggregates for devs
func Summarize(devs []*metrics.DeveloperMetrics) Summary {
	return Summary{
		Totals:             Sum(devs),
		AvgImpact:          AvgImpact(devs),
		ImpactDistribution: ImpactDistribution(devs),
		Ranked:             Rank(devs),
	}
}

// Sum returns the total commits, PRs and reviews
func Sum(devs []*metrics.DeveloperMetrics) Totals {
	t := Totals{}
	for _, d := range devs {
		t.Commits += d.Commits
		t.PRs += d.PRs
		t.Reviews += d.Reviews
	}
	return t
}

// AvgImpact returns the mean impact score, or 0 for an empty list
func AvgImpact(devs []*metrics.DeveloperMetrics) float64 {
	scores := stats.LoadRawData(impacts(devs))
	mean, err := stats.Mean(scores)
	if err != nil {
		return 0
	}
	return mean
}

func impacts(devs []*metrics.DeveloperMetrics) []int {
	is := make([]int, 0, len(devs))
	for _, d := range devs {
		is = append(is, d.Impact)
	}
	return is
}

// ImpactDistribution returns one slice per developer, in input order
func ImpactDistribution(devs []*metrics.DeveloperMetrics) []Slice {
	sl := make([]Slice, 0, len(devs))
	for _, d := range devs {
		sl = append(sl, Slice{Name: d.Name, Value: d.Impact})
	}
	return sl
}

// Rank returns a copy of devs ordered by impact, highest first.
// Developers with equal impact keep their input order.
func Rank(devs []*metrics.DeveloperMetrics) []*metrics.DeveloperMetrics {
	ranked := make([]*metrics.DeveloperMetrics, len(devs))
	copy(ranked, devs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Impact > ranked[j].Impact
	})
	return ranked
}

// Find returns the developer with the given name
func Find(devs []*metrics.DeveloperMetrics, name string) (*metrics.DeveloperMetrics, bool) {
	if name == "" {
		return nil, false
	}
	for _, d := range devs {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// FirstName returns the leading whitespace-delimited token of a display name.
// Punctuation inside the token is kept, so "mary-jane" stays whole.
func FirstName(name string) string {
	scanner := bufio.NewScanner(strings.NewReader(name))
	scanner.Split(segment.SplitWords)

	var sb strings.Builder
	for scanner.Scan() {
		w := scanner.Text()
		if strings.TrimFunc(w, unicode.IsSpace) == "" {
			if sb.Len() > 0 {
				break
			}
			continue
		}
		sb.WriteString(w)
	}
	if sb.Len() == 0 {
		return name
	}
	return sb.String()
}
