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

// Package metrics holds the developer metrics data model.
package metrics

import (
	"strings"
	"time"

	"github.com/karrick/tparse"
	"github.com/pkg/errors"
)

// DeveloperMetrics is the per-contributor record shown on the dashboard
type DeveloperMetrics struct {
	Name         string   `json:"name" csv:"Name"`
	Commits      int      `json:"commits" csv:"Commits"`
	PRs          int      `json:"prs" csv:"PRs"`
	LinesAdded   int      `json:"linesAdded" csv:"LinesAdded"`
	LinesDeleted int      `json:"linesDeleted" csv:"LinesDeleted"`
	Reviews      int      `json:"reviews" csv:"Reviews"`
	IssuesClosed int      `json:"issuesClosed" csv:"IssuesClosed"`
	Repos        []string `json:"repos" csv:"-"`
	AvgPRSize    int      `json:"avgPRSize" csv:"AvgPRSize"`
	MergeRate    int      `json:"mergeRate" csv:"MergeRate"`
	Impact       int      `json:"impact" csv:"Impact"`
}

// RepoList returns the repositories as a single space delimited string
func (d *DeveloperMetrics) RepoList() string {
	return strings.Join(d.Repos, " ")
}

// WeeklyActivity is a single point of the activity trend chart
type WeeklyActivity struct {
	Date    string `json:"date"`
	Commits int    `json:"commits"`
	PRs     int    `json:"prs"`
}

// TimeRange is the window metrics are aggregated over
type TimeRange string

const (
	Last7Days  TimeRange = "7d"
	Last30Days TimeRange = "30d"
	Last90Days TimeRange = "90d"
	LastYear   TimeRange = "1y"

	DefaultTimeRange = Last30Days
)

// ErrInvalidTimeRange is returned when parsing a value outside of TimeRanges
var ErrInvalidTimeRange = errors.New("invalid time range")

// TimeRanges returns the selectable ranges in display order
func TimeRanges() []TimeRange {
	return []TimeRange{Last7Days, Last30Days, Last90Days, LastYear}
}

// ParseTimeRange converts a string such as "90d" into a TimeRange
func ParseTimeRange(s string) (TimeRange, error) {
	for _, tr := range TimeRanges() {
		if string(tr) == strings.TrimSpace(s) {
			return tr, nil
		}
	}
	return "", errors.Wrapf(ErrInvalidTimeRange, "%q (want one of 7d, 30d, 90d, 1y)", s)
}

// Label returns the human readable name of the range
func (tr TimeRange) Label() string {
	switch tr {
	case Last7Days:
		return "Last 7 Days"
	case Last30Days:
		return "Last 30 Days"
	case Last90Days:
		return "Last 90 Days"
	case LastYear:
		return "Last Year"
	}
	return string(tr)
}

// Since returns the start of the window ending at until
func (tr TimeRange) Since(until time.Time) (time.Time, error) {
	return tparse.AddDuration(until, "-"+string(tr))
}

// Sanitize clamps counters to be non-negative and percentages to 0-100.
// Sources ingesting external data run every record through it.
func Sanitize(d *DeveloperMetrics) *DeveloperMetrics {
	d.Commits = atLeastZero(d.Commits)
	d.PRs = atLeastZero(d.PRs)
	d.Reviews = atLeastZero(d.Reviews)
	d.IssuesClosed = atLeastZero(d.IssuesClosed)
	d.LinesAdded = atLeastZero(d.LinesAdded)
	d.LinesDeleted = atLeastZero(d.LinesDeleted)
	d.AvgPRSize = atLeastZero(d.AvgPRSize)
	d.MergeRate = Percent(d.MergeRate)
	d.Impact = Percent(d.Impact)
	return d
}

// Percent clamps n into [0, 100]
func Percent(n int) int {
	if n > 100 {
		return 100
	}
	return atLeastZero(n)
}

func atLeastZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
