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

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wires the handlers of s
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.Root())
	r.Post("/range", s.SetRange())
	r.Post("/select", s.Select())
	r.Post("/close", s.Close())

	r.Get("/api/dashboard", s.Dashboard())
	r.Get("/api/developers.csv", s.DevelopersCSV())

	r.Get("/healthz", s.Healthz())
	r.Get("/threadz", s.Threadz())
	r.Handle("/metrics", promhttp.Handler())

	return r
}
