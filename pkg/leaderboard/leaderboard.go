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

// Package leaderboard renders the developer metrics dashboard as HTML.
package leaderboard

import (
	"bytes"
	"fmt"
	"html/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/google/swedash/pkg/metrics"
	"github.com/google/swedash/pkg/summary"
)

const (
	defaultTitle = "SWE Performance Dashboard"
	subtitle     = "Track developer metrics and evaluate impact across repositories"
)

var tmpl = template.Must(template.New("dashboard").Parse(dashboardTmpl))

// Options controls how the page is rendered
type Options struct {
	Title          string
	DisableCaching bool
	AutoRefresh    bool // reload the page every second while loading
	Interactive    bool // render the controls as forms posting back to the server
}

// View is the state the page is rendered from
type View struct {
	TimeRange metrics.TimeRange
	Loading   bool
	Err       error
	Summary   summary.Summary
	Selected  *metrics.DeveloperMetrics
	Activity  []metrics.WeeklyActivity
}

type rangeButton struct {
	Value  string
	Label  string
	Active bool
}

type card struct {
	Title string
	Value string
	Note  string
	Class string
}

type row struct {
	Rank      int
	RankClass string
	*metrics.DeveloperMetrics
	Bar int
}

type detail struct {
	*metrics.DeveloperMetrics
	Stats []card
	Chart chart
}

type page struct {
	Title          string
	Subtitle       string
	DisableCaching bool
	AutoRefresh    bool
	Interactive    bool
	Loading        bool
	Ranges         []rangeButton
	Error          string
	Cards          []card
	Charts         []chart
	Rows           []row
	Detail         *detail
}

// Render returns an HTML formatted dashboard page
func Render(o Options, v View) (string, error) {
	p := build(o, v)

	var tpl bytes.Buffer
	if err := tmpl.Execute(&tpl, p); err != nil {
		return "", fmt.Errorf("execute: %w", err)
	}
	return tpl.String(), nil
}

func build(o Options, v View) page {
	p := page{
		Title:          o.Title,
		Subtitle:       subtitle,
		DisableCaching: o.DisableCaching,
		AutoRefresh:    o.AutoRefresh && v.Loading,
		Interactive:    o.Interactive,
		Loading:        v.Loading,
	}
	if p.Title == "" {
		p.Title = defaultTitle
	}

	for _, tr := range metrics.TimeRanges() {
		p.Ranges = append(p.Ranges, rangeButton{
			Value:  string(tr),
			Label:  tr.Label(),
			Active: tr == v.TimeRange,
		})
	}

	if v.Loading {
		return p
	}

	if v.Err != nil {
		p.Error = v.Err.Error()
	}

	p.Cards = summaryCards(v.Summary)
	p.Charts = []chart{activityChart(v.Activity), impactChart(v.Summary.ImpactDistribution)}

	for i, d := range v.Summary.Ranked {
		p.Rows = append(p.Rows, row{
			Rank:             i + 1,
			RankClass:        rankClass(i + 1),
			DeveloperMetrics: d,
			Bar:              metrics.Percent(d.Impact),
		})
	}

	if v.Selected != nil {
		p.Detail = developerDetail(v.Selected)
	}
	return p
}

func summaryCards(s summary.Summary) []card {
	pr := message.NewPrinter(language.English)
	return []card{
		{Title: "Total Commits", Value: pr.Sprintf("%d", s.Totals.Commits), Note: "Across all repositories", Class: "commits"},
		{Title: "Pull Requests", Value: pr.Sprintf("%d", s.Totals.PRs), Note: "Merged and pending", Class: "prs"},
		{Title: "Code Reviews", Value: pr.Sprintf("%d", s.Totals.Reviews), Note: "Reviews completed", Class: "reviews"},
		{Title: "Avg Impact Score", Value: fmt.Sprintf("%.1f", s.AvgImpact), Note: "Out of 100", Class: "impact"},
	}
}

// rankClass picks the podium styling for the top three
func rankClass(rank int) string {
	if rank <= 3 {
		return fmt.Sprintf("rank-%d", rank)
	}
	return "rank-n"
}

func developerDetail(d *metrics.DeveloperMetrics) *detail {
	return &detail{
		DeveloperMetrics: d,
		Stats: []card{
			{Title: "Total Commits", Value: fmt.Sprint(d.Commits)},
			{Title: "Pull Requests", Value: fmt.Sprint(d.PRs)},
			{Title: "Code Reviews", Value: fmt.Sprint(d.Reviews)},
			{Title: "Issues Closed", Value: fmt.Sprint(d.IssuesClosed)},
			{Title: "Avg PR Size", Value: fmt.Sprintf("%d lines", d.AvgPRSize)},
			{Title: "Merge Rate", Value: fmt.Sprintf("%d%%", d.MergeRate)},
		},
		Chart: changesChart(d),
	}
}
