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

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/google/swedash/pkg/server/job"
)

var (
	// leaderBoardCmd represents the subcommand for `swedash leaderboard`
	leaderBoardCmd = &cobra.Command{
		Use:           "leaderboard",
		Short:         "Render the dashboard as a static HTML page",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeaderBoard(rootOpts)
		},
	}

	disableCaching bool
	developer      string
	jsonOutput     string
)

func init() {
	leaderBoardCmd.Flags().BoolVar(
		&disableCaching,
		"no-caching",
		false,
		"Disable caching on resulting HTML files")

	leaderBoardCmd.Flags().StringVar(
		&developer,
		"developer",
		"",
		"Open the detail panel for this developer",
	)

	leaderBoardCmd.Flags().StringVar(
		&jsonOutput,
		"json-output",
		"",
		"Filepath to write the loaded developers to as JSON, will omit if none specified",
	)

	rootCmd.AddCommand(leaderBoardCmd)
}

// loadJob runs a single load of the configured source to completion
func loadJob(ctx context.Context, o *job.Opts) (*job.Job, error) {
	src, err := newSource(ctx, rootOpts)
	if err != nil {
		return nil, err
	}

	o.TimeRange = rootOpts.rangeParsed
	j := job.New(ctx, o, src)
	j.Update()
	j.Wait()

	if err := j.State().Err; err != nil {
		j.Shutdown()
		return nil, errors.Wrap(err, "load developers")
	}
	return j, nil
}

func runLeaderBoard(rootOpts *rootOptions) error {
	j, err := loadJob(context.Background(), &job.Opts{
		Title:          rootOpts.title,
		DisableCaching: disableCaching,
	})
	if err != nil {
		return err
	}
	defer j.Shutdown()

	if developer != "" {
		j.Select(developer)
		if _, ok := j.State().SelectedDeveloper(); !ok {
			klog.Warningf("developer %q not found, omitting detail panel", developer)
		}
	}

	if err := writeToJSON(j); err != nil {
		return err
	}

	out, err := j.Render()
	if err != nil {
		return err
	}

	klog.Infof("%d bytes of leaderboard output", len(out))
	fmt.Print(out)

	return nil
}

func writeToJSON(j *job.Job) error {
	if jsonOutput == "" {
		return nil
	}
	b, err := json.Marshal(j.State().Developers)
	if err != nil {
		return err
	}
	return os.WriteFile(jsonOutput, b, 0644)
}
