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

// Package server serves the dashboard and its controls over HTTP.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"

	"github.com/gocarina/gocsv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"k8s.io/klog/v2"

	"github.com/google/swedash/pkg/metrics"
	"github.com/google/swedash/pkg/server/job"
	"github.com/google/swedash/pkg/summary"
)

// RendersTotal counts dashboard page renders by outcome
var RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "swedash_page_renders_total",
	Help: "Total number of dashboard page renders",
}, []string{"status"})

type Server struct {
	job *job.Job
}

// New returns a server for j. The first load is started here.
func New(j *job.Job) *Server {
	j.Update()

	return &Server{
		job: j,
	}
}

func (s *Server) Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := s.job.Render()
		if err != nil {
			klog.Errorf("rendering dashboard page: %s", err)
			RendersTotal.WithLabelValues("error").Inc()
			http.Error(w, "rendering failed", http.StatusInternalServerError)
			return
		}
		RendersTotal.WithLabelValues("ok").Inc()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, res)
	}
}

// SetRange selects the posted time range and reloads
func (s *Server) SetRange() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tr, err := metrics.ParseTimeRange(r.FormValue("range"))
		if err != nil {
			klog.Warningf("POST %s: %v", r.URL.Path, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.job.SetTimeRange(tr)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Select opens the detail panel for the posted developer
func (s *Server) Select() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.job.Select(r.FormValue("developer"))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Close closes the detail panel
func (s *Server) Close() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.job.CloseDetail()
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

type dashboard struct {
	TimeRange metrics.TimeRange         `json:"timeRange"`
	Loading   bool                      `json:"loading"`
	Error     string                    `json:"error,omitempty"`
	Summary   summary.Summary           `json:"summary"`
	Selected  *metrics.DeveloperMetrics `json:"selected"`
	Activity  []metrics.WeeklyActivity  `json:"activity"`
}

// Dashboard returns the view state and aggregates as JSON
func (s *Server) Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, sum := s.job.View()
		sel, _ := st.SelectedDeveloper()

		d := dashboard{
			TimeRange: st.TimeRange,
			Loading:   st.Loading,
			Summary:   sum,
			Selected:  sel,
			Activity:  metrics.Activity(),
		}
		if st.Err != nil {
			d.Error = st.Err.Error()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(d); err != nil {
			klog.Errorf("writing dashboard response: %v", err)
		}
	}
}

// DevelopersCSV returns the ranked developers as CSV
func (s *Server) DevelopersCSV() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ranked := s.job.Summary().Ranked

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="developers.csv"`)
		if err := gocsv.Marshal(&ranked, w); err != nil {
			klog.Errorf("writing developers csv: %v", err)
		}
	}
}

// Healthz returns a dummy healthz page - it's always happy here!
func (s *Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

// Threadz returns a threadz page
func (s *Server) Threadz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		klog.Infof("GET %s: %v", r.URL.Path, r.Header)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(stack()); err != nil {
			klog.Errorf("writing threadz response: %v", err)
		}
	}
}

// stack returns a formatted stack trace of all goroutines
// It calls runtime.Stack with a large enough buffer to capture the entire trace.
func stack() []byte {
	buf := make([]byte, 1024)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			return buf[:n]
		}
		buf = make([]byte, 2*len(buf))
	}
}
