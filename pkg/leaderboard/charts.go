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

package leaderboard

import (
	"fmt"

	"github.com/google/swedash/pkg/metrics"
	"github.com/google/swedash/pkg/summary"
)

// palette is cycled through for pie slices
var palette = []string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#8884D8", "#82CA9D"}

// chart is drawn client side by Google Charts; Rows is the arrayToDataTable input, header first
type chart struct {
	ID      string
	Title   string
	Kind    string // google.visualization constructor
	Rows    [][]interface{}
	Options map[string]interface{}
}

// ElementID is the id of the element the chart is drawn into
func (c chart) ElementID() string {
	return "chart_" + c.ID
}

func baseOptions() map[string]interface{} {
	return map[string]interface{}{
		"backgroundColor": "transparent",
		"legendTextStyle": map[string]interface{}{"color": "#94a3b8"},
		"hAxis":           map[string]interface{}{"textStyle": map[string]interface{}{"color": "#94a3b8"}},
		"vAxis": map[string]interface{}{
			"textStyle": map[string]interface{}{"color": "#94a3b8"},
			"gridlines": map[string]interface{}{"color": "#334155"},
		},
		"chartArea": map[string]interface{}{"width": "80%", "height": "75%"},
	}
}

func activityChart(as []metrics.WeeklyActivity) chart {
	rows := [][]interface{}{{"Week", "commits", "prs"}}
	for _, a := range as {
		rows = append(rows, []interface{}{a.Date, a.Commits, a.PRs})
	}

	opts := baseOptions()
	opts["colors"] = []string{"#10b981", "#8b5cf6"}
	opts["curveType"] = "function"
	opts["pointSize"] = 8
	opts["lineWidth"] = 2
	opts["legend"] = map[string]interface{}{"position": "bottom", "textStyle": map[string]interface{}{"color": "#94a3b8"}}

	return chart{
		ID:      "activity",
		Title:   "Activity Trends",
		Kind:    "LineChart",
		Rows:    rows,
		Options: opts,
	}
}

// impactChart has one slice per developer, labelled with their first name and score
func impactChart(dist []summary.Slice) chart {
	rows := [][]interface{}{{"Developer", "Impact"}}
	colors := []string{}
	for i, s := range dist {
		rows = append(rows, []interface{}{fmt.Sprintf("%s: %d", summary.FirstName(s.Name), s.Value), s.Value})
		colors = append(colors, palette[i%len(palette)])
	}

	opts := baseOptions()
	opts["colors"] = colors
	opts["pieSliceText"] = "label"
	opts["pieHole"] = 0
	opts["legend"] = map[string]interface{}{"position": "right", "textStyle": map[string]interface{}{"color": "#94a3b8"}}

	return chart{
		ID:      "impact",
		Title:   "Impact Distribution",
		Kind:    "PieChart",
		Rows:    rows,
		Options: opts,
	}
}

// changesChart compares lines added and deleted for a single developer
func changesChart(d *metrics.DeveloperMetrics) chart {
	opts := baseOptions()
	opts["colors"] = []string{"#3b82f6"}
	opts["legend"] = map[string]interface{}{"position": "none"}

	return chart{
		ID:    "changes",
		Title: "Code Changes",
		Kind:  "ColumnChart",
		Rows: [][]interface{}{
			{"Change", "Lines"},
			{"Lines Added", d.LinesAdded},
			{"Lines Deleted", d.LinesDeleted},
		},
		Options: opts,
	}
}
