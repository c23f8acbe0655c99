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

package metrics

// Sample returns the reference dataset. Each call returns a fresh copy.
func Sample() []*DeveloperMetrics {
	return []*DeveloperMetrics{
		{
			Name:         "Alice Chen",
			Commits:      156,
			PRs:          42,
			LinesAdded:   8945,
			LinesDeleted: 3421,
			Reviews:      67,
			IssuesClosed: 23,
			Repos:        []string{"frontend-app", "api-gateway", "shared-components"},
			AvgPRSize:    213,
			MergeRate:    95,
			Impact:       92,
		},
		{
			Name:         "Bob Smith",
			Commits:      134,
			PRs:          38,
			LinesAdded:   7234,
			LinesDeleted: 2876,
			Reviews:      54,
			IssuesClosed: 19,
			Repos:        []string{"backend-services", "database-migrations"},
			AvgPRSize:    190,
			MergeRate:    89,
			Impact:       85,
		},
		{
			Name:         "Carol Davis",
			Commits:      189,
			PRs:          51,
			LinesAdded:   10234,
			LinesDeleted: 4123,
			Reviews:      78,
			IssuesClosed: 31,
			Repos:        []string{"mobile-app", "frontend-app", "design-system"},
			AvgPRSize:    201,
			MergeRate:    92,
			Impact:       94,
		},
		{
			Name:         "David Lee",
			Commits:      98,
			PRs:          28,
			LinesAdded:   5432,
			LinesDeleted: 1987,
			Reviews:      45,
			IssuesClosed: 15,
			Repos:        []string{"infrastructure", "ci-cd"},
			AvgPRSize:    194,
			MergeRate:    87,
			Impact:       78,
		},
		{
			Name:         "Emma Wilson",
			Commits:      167,
			PRs:          44,
			LinesAdded:   9123,
			LinesDeleted: 3654,
			Reviews:      61,
			IssuesClosed: 27,
			Repos:        []string{"api-gateway", "auth-service", "shared-components"},
			AvgPRSize:    207,
			MergeRate:    91,
			Impact:       88,
		},
	}
}

// Activity returns the weekly commit and PR counts for the trend chart.
// These are fixed and do not depend on the developer list.
func Activity() []WeeklyActivity {
	return []WeeklyActivity{
		{Date: "Week 1", Commits: 234, PRs: 45},
		{Date: "Week 2", Commits: 267, PRs: 52},
		{Date: "Week 3", Commits: 289, PRs: 58},
		{Date: "Week 4", Commits: 312, PRs: 63},
	}
}
