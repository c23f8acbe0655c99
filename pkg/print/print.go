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

// Package print writes developer lists for the command line.
package print

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/google/swedash/pkg/metrics"
)

// Output types accepted by Print
const (
	CSV  = "CSV"
	JSON = "JSON"
	TEXT = "TEXT"
)

// ValidType reports whether outType is one Print understands
func ValidType(outType string) bool {
	return outType == CSV || outType == JSON || outType == TEXT
}

// Print writes devs to w in the format specified by outType, either CSV/JSON/TEXT
func Print(w io.Writer, devs []*metrics.DeveloperMetrics, outType string) error {
	var (
		err error
		out string
	)

	switch outType {
	case JSON:
		var b []byte
		b, err = json.MarshalIndent(devs, "", "  ")
		out = string(b) + "\n"
	case CSV:
		out, err = gocsv.MarshalString(&devs)
	case TEXT:
		out, err = table(devs)
	default:
		return fmt.Errorf("invalid output type %q. Must be CSV, JSON or TEXT", outType)
	}
	if err != nil {
		return errors.Wrapf(err, "%s marshal", outType)
	}

	klog.Infof("%d bytes of developer output", len(out))
	_, err = io.WriteString(w, out)
	return err
}

// table renders devs as aligned plain text columns
func table(devs []*metrics.DeveloperMetrics) (string, error) {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCOMMITS\tPRS\tREVIEWS\tLINES\tISSUES\tMERGE\tIMPACT\tREPOS")
	for _, d := range devs {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t+%d/-%d\t%d\t%d%%\t%d\t%s\n",
			d.Name, d.Commits, d.PRs, d.Reviews, d.LinesAdded, d.LinesDeleted, d.IssuesClosed, d.MergeRate, d.Impact, d.RepoList())
	}
	if err := tw.Flush(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
