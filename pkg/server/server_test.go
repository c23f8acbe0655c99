package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/swedash/pkg/metrics"
	"github.com/google/swedash/pkg/server/job"
	"github.com/google/swedash/pkg/source"
)

func newTestServer(t *testing.T) (http.Handler, *job.Job) {
	t.Helper()
	j := job.New(context.Background(), &job.Opts{Interactive: true}, source.NewStatic(0))
	s := New(j)
	j.Wait()
	t.Cleanup(j.Shutdown)
	return s.Router(), j
}

func do(h http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoot(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `<td class="name">Carol Davis</td>`)
	assert.Contains(t, rec.Body.String(), `action="/range"`)
}

func TestSetRange(t *testing.T) {
	h, j := newTestServer(t)

	rec := do(h, http.MethodPost, "/range", url.Values{"range": {"90d"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	j.Wait()
	st := j.State()
	assert.Equal(t, metrics.Last90Days, st.TimeRange)
	assert.False(t, st.Loading)
	assert.Len(t, st.Developers, 5)
}

func TestSetRangeInvalid(t *testing.T) {
	h, j := newTestServer(t)
	before := j.State()

	for _, v := range []string{"", "14d", "all"} {
		rec := do(h, http.MethodPost, "/range", url.Values{"range": {v}})
		assert.Equal(t, http.StatusBadRequest, rec.Code, v)
	}
	assert.Equal(t, before, j.State())
}

func TestSelectAndClose(t *testing.T) {
	h, j := newTestServer(t)

	rec := do(h, http.MethodPost, "/select", url.Values{"developer": {"Bob Smith"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Bob Smith", j.State().Selected)
	assert.Contains(t, do(h, http.MethodGet, "/", nil).Body.String(), `id="detail"`)

	rec = do(h, http.MethodPost, "/close", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "", j.State().Selected)
	assert.NotContains(t, do(h, http.MethodGet, "/", nil).Body.String(), `id="detail"`)
}

func TestDashboardJSON(t *testing.T) {
	h, _ := newTestServer(t)
	do(h, http.MethodPost, "/select", url.Values{"developer": {"Emma Wilson"}})

	rec := do(h, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		TimeRange string `json:"timeRange"`
		Loading   bool   `json:"loading"`
		Summary   struct {
			Totals struct {
				Commits int `json:"commits"`
				PRs     int `json:"prs"`
				Reviews int `json:"reviews"`
			} `json:"totals"`
			AvgImpact float64                     `json:"avgImpact"`
			Ranked    []*metrics.DeveloperMetrics `json:"ranked"`
		} `json:"summary"`
		Selected *metrics.DeveloperMetrics `json:"selected"`
		Activity []metrics.WeeklyActivity  `json:"activity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.Equal(t, "30d", got.TimeRange)
	assert.False(t, got.Loading)
	assert.Equal(t, 744, got.Summary.Totals.Commits)
	assert.Equal(t, 203, got.Summary.Totals.PRs)
	assert.Equal(t, 305, got.Summary.Totals.Reviews)
	assert.InDelta(t, 87.4, got.Summary.AvgImpact, 1e-9)
	require.Len(t, got.Summary.Ranked, 5)
	assert.Equal(t, "Carol Davis", got.Summary.Ranked[0].Name)
	require.NotNil(t, got.Selected)
	assert.Equal(t, 88, got.Selected.Impact)
	assert.Len(t, got.Activity, 4)
}

func TestDevelopersCSV(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(h, http.MethodGet, "/api/developers.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Name,Commits,PRs,LinesAdded,LinesDeleted,Reviews,IssuesClosed,AvgPRSize,MergeRate,Impact", lines[0])
	assert.Equal(t, "Carol Davis,189,51,10234,4123,78,31,201,92,94", lines[1])
	assert.True(t, strings.HasPrefix(lines[5], "David Lee,"))
}

func TestOperationalPages(t *testing.T) {
	h, _ := newTestServer(t)

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/healthz", nil).Code)

	rec := do(h, http.MethodGet, "/threadz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "goroutine")

	do(h, http.MethodGet, "/", nil)
	rec = do(h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "swedash_loads_total")
	assert.Contains(t, rec.Body.String(), "swedash_page_renders_total")
}
