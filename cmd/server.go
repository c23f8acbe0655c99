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
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/google/swedash/pkg/server"
	"github.com/google/swedash/pkg/server/job"
)

var serverCmd = &cobra.Command{
	Use:           "server",
	Short:         "Serve the dashboard with web UI",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(rootOpts)
	},
}

type serverOptions struct {
	port            int
	disableCaching  bool
	shutdownTimeout time.Duration
}

var serverOpts = &serverOptions{}

func init() {
	serverCmd.Flags().IntVar(
		&serverOpts.port,
		"port",
		8080,
		"Port for server to listen on")

	serverCmd.Flags().BoolVar(
		&serverOpts.disableCaching,
		"no-caching",
		true,
		"Tell browsers not to cache the dashboard page")

	serverCmd.Flags().DurationVar(
		&serverOpts.shutdownTimeout,
		"shutdown-timeout",
		10*time.Second,
		"How long to wait for in-flight requests on shutdown")

	rootCmd.AddCommand(serverCmd)
}

func runServer(rootOpts *rootOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := newSource(ctx, rootOpts)
	if err != nil {
		return err
	}

	j := job.New(ctx, &job.Opts{
		Title:          rootOpts.title,
		TimeRange:      rootOpts.rangeParsed,
		DisableCaching: serverOpts.disableCaching,
		AutoRefresh:    true,
		Interactive:    true,
	}, src)
	defer j.Shutdown()

	s := server.New(j)

	listenAddr := fmt.Sprintf(":%s", os.Getenv("PORT"))
	if listenAddr == ":" {
		listenAddr = fmt.Sprintf(":%d", serverOpts.port)
	}

	hs := &http.Server{
		Addr:              listenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		klog.Infof("listening on %s", listenAddr)
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	klog.Infof("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), serverOpts.shutdownTimeout)
	defer cancel()
	return hs.Shutdown(sctx)
}
