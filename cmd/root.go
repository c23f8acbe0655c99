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
	"flag"
	"fmt"
	"time"

	"github.com/karrick/tparse"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"github.com/google/swedash/pkg/client"
	"github.com/google/swedash/pkg/metrics"
	"github.com/google/swedash/pkg/print"
	"github.com/google/swedash/pkg/source"
)

const dateForm = "2006-01-02"

// Sources selectable with --source
const (
	sourceSample = "sample"
	sourceGitHub = "github"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "swedash",
	Long: `swedash - Developer performance dashboard

swedash aggregates per-developer commits, pull requests, reviews and code churn into a ranked dashboard,
served over HTTP or rendered as a static HTML page.`,
	PersistentPreRunE: initCommand,
}

type rootOptions struct {
	source      string
	repos       []string
	users       []string
	timeRange   string
	until       string
	rangeParsed metrics.TimeRange
	untilParsed time.Time
	title       string
	tokenPath   string
	out         string
	loadDelay   time.Duration
	cacheTTL    time.Duration
}

var rootOpts = &rootOptions{}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		klog.Fatal(err)
	}
}

func init() {
	klog.InitFlags(nil)

	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	rootCmd.PersistentFlags().StringVar(
		&rootOpts.source,
		"source",
		sourceSample,
		"where developer metrics come from - sample/github",
	)

	rootCmd.PersistentFlags().StringSliceVar(
		&rootOpts.repos,
		"repos",
		[]string{},
		"comma-delimited list of repositories or organizations. ex: kubernetes/minikube, google",
	)

	rootCmd.PersistentFlags().StringSliceVar(
		&rootOpts.users,
		"users",
		[]string{},
		"comma-delimiited list of users",
	)

	rootCmd.PersistentFlags().StringVar(
		&rootOpts.timeRange,
		"time-range",
		string(metrics.DefaultTimeRange),
		"initial time range - 7d/30d/90d/1y",
	)

	rootCmd.PersistentFlags().StringVar(
		&rootOpts.until,
		"until",
		"now",
		"end of the time range (date or duration)",
	)

	rootCmd.PersistentFlags().StringVar(
		&rootOpts.title,
		"title",
		"",
		"Title to use for output pages",
	)

	rootCmd.PersistentFlags().StringVar(
		&rootOpts.tokenPath,
		"token-path",
		"",
		"GitHub token path",
	)

	rootCmd.PersistentFlags().StringVar(
		&rootOpts.out,
		"out",
		print.CSV,
		"Output type - CSV/JSON/TEXT. Default is CSV",
	)

	rootCmd.PersistentFlags().DurationVar(
		&rootOpts.loadDelay,
		"load-delay",
		800*time.Millisecond,
		"simulated load time of the sample source",
	)

	rootCmd.PersistentFlags().DurationVar(
		&rootOpts.cacheTTL,
		"cache-ttl",
		10*time.Minute,
		"how long GitHub results are kept per time range",
	)

	// Set up viper flag handling
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
}

// initRootOpts sets up root options, using env variables to set options if
// they haven't been set by flags
func initRootOpts() error {
	// Set up viper environment variable handling
	viper.SetEnvPrefix("swedash")
	envKeys := []string{
		"source", "repos", "users", "time-range", "until", "title", "token-path", "out", "load-delay", "cache-ttl",
	}
	for _, key := range envKeys {
		if err := viper.BindEnv(key); err != nil {
			return err
		}
	}

	// Set options. viper will prioritize flags over env variables
	rootOpts.source = viper.GetString("source")
	rootOpts.repos = viper.GetStringSlice("repos")
	rootOpts.users = viper.GetStringSlice("users")
	rootOpts.timeRange = viper.GetString("time-range")
	rootOpts.until = viper.GetString("until")
	rootOpts.title = viper.GetString("title")
	rootOpts.tokenPath = viper.GetString("token-path")
	rootOpts.out = viper.GetString("out")
	rootOpts.loadDelay = viper.GetDuration("load-delay")
	rootOpts.cacheTTL = viper.GetDuration("cache-ttl")

	if !print.ValidType(rootOpts.out) {
		return fmt.Errorf("Invalid out parameter %s. Must be CSV, JSON or TEXT", rootOpts.out)
	}
	if rootOpts.source != sourceSample && rootOpts.source != sourceGitHub {
		return fmt.Errorf("Invalid source parameter %s. Must be %s or %s", rootOpts.source, sourceSample, sourceGitHub)
	}
	return nil
}

func initCommand(*cobra.Command, []string) error {
	if err := initRootOpts(); err != nil {
		return err
	}

	var err error
	rootOpts.rangeParsed, err = metrics.ParseTimeRange(rootOpts.timeRange)
	if err != nil {
		return errors.Wrap(err, "time-range")
	}

	rootOpts.untilParsed, err = parseUntil(rootOpts.until)
	return err
}

// parseUntil accepts a tparse expression such as "now-1d" or a date
func parseUntil(s string) (time.Time, error) {
	t, err := tparse.ParseNow(dateForm, s)
	if err == nil {
		return t, nil
	}
	klog.Infof("%q not a duration: %v", s, err)
	t, err = time.Parse(dateForm, s)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "until time parse")
	}
	return t, nil
}

// newSource builds the developer metrics source selected by --source
func newSource(ctx context.Context, o *rootOptions) (source.Source, error) {
	if o.source == sourceSample {
		return source.NewStatic(o.loadDelay), nil
	}

	if len(o.repos) == 0 {
		return nil, fmt.Errorf("--repos is required for the %s source", sourceGitHub)
	}

	c, err := client.New(ctx, client.Config{GitHubTokenPath: o.tokenPath})
	if err != nil {
		return nil, err
	}

	// a relative --until such as "now" moves with the clock between reloads
	until := func() time.Time {
		t, err := parseUntil(o.until)
		if err != nil {
			return o.untilParsed
		}
		return t
	}
	return source.NewCached(source.NewGitHub(c, o.repos, o.users, until), o.cacheTTL), nil
}
