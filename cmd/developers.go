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
	"os"

	"github.com/spf13/cobra"

	"github.com/google/swedash/pkg/print"
	"github.com/google/swedash/pkg/server/job"
)

// developersCmd represents the subcommand for `swedash developers`
var developersCmd = &cobra.Command{
	Use:           "developers",
	Short:         "Generate the ranked developer list",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDevelopers(rootOpts)
	},
}

func init() {
	rootCmd.AddCommand(developersCmd)
}

func runDevelopers(rootOpts *rootOptions) error {
	j, err := loadJob(context.Background(), &job.Opts{})
	if err != nil {
		return err
	}
	defer j.Shutdown()

	return print.Print(os.Stdout, j.Summary().Ranked, rootOpts.out)
}
