package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/trendline/internal/logging"
	"github.com/dkoosis/trendline/pkg/analysis"
	"github.com/dkoosis/trendline/pkg/chart"
	"github.com/dkoosis/trendline/pkg/pattern"
	"github.com/dkoosis/trendline/pkg/render"
	"github.com/dkoosis/trendline/pkg/series"
)

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeError(t *testing.T, body []byte) errorDetail {
	t.Helper()
	var eb errorBody
	require.NoError(t, json.Unmarshal(body, &eb))
	return eb.Error
}

func TestServer_Routes(t *testing.T) {
	t.Parallel()

	h := New(Options{}).Handler()

	tests := []struct {
		name        string
		target      string
		wantType    string
		wantContain string
	}{
		{name: "host page", target: "/", wantType: "text/html; charset=utf-8", wantContain: "echarts"},
		{name: "svg", target: "/chart.svg", wantType: "image/svg+xml", wantContain: "<svg"},
		{name: "png", target: "/chart.png", wantType: "image/png", wantContain: "PNG"},
		{name: "api", target: "/api/chart", wantType: "application/json", wantContain: `"version":"2.0"`},
		{name: "health", target: "/healthz", wantType: "application/json", wantContain: `"status":"ok"`},
		{name: "index page", target: "/?dataset=index&period=3y&ma=4m,1y&seed=7", wantType: "text/html; charset=utf-8", wantContain: "4-Month MA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := get(t, h, tt.target)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.wantContain)
		})
	}
}

func TestServer_API_ChartsRequestedDataset(t *testing.T) {
	t.Parallel()

	h := New(Options{}).Handler()

	rec := get(t, h, "/api/chart")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Jan","Feb","Mar","Apr","May"`)

	rec = get(t, h, "/api/chart?dataset=index&period=6m")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc struct {
		Patterns []struct {
			Type string `json:"type"`
		} `json:"patterns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.NotEmpty(t, doc.Patterns)
	assert.Equal(t, "line-chart", doc.Patterns[0].Type)
	assert.Greater(t, len(doc.Patterns), 2)
}

func TestServer_API_SameSeedSameBody(t *testing.T) {
	t.Parallel()

	h := New(Options{}).Handler()
	a := get(t, h, "/api/chart?dataset=index&seed=11").Body.String()
	b := get(t, h, "/api/chart?dataset=index&seed=11").Body.String()
	c := get(t, h, "/api/chart?dataset=index&seed=12").Body.String()
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestServer_RejectsInvalidParameters(t *testing.T) {
	t.Parallel()

	h := New(Options{}).Handler()

	for _, q := range []string{"dataset=stocks", "period=2w", "ma=9m", "seed=-1"} {
		t.Run(q, func(t *testing.T) {
			t.Parallel()
			rec := get(t, h, "/api/chart?"+q)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			detail := decodeError(t, rec.Body.Bytes())
			assert.Equal(t, "invalid_parameter", detail.Code)
			assert.Contains(t, detail.Message, strings.SplitN(q, "=", 2)[0])
		})
	}
}

func TestServer_UnknownRouteAndMethod(t *testing.T) {
	t.Parallel()

	h := New(Options{}).Handler()

	rec := get(t, h, "/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec.Body.Bytes()).Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chart", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method_not_allowed", decodeError(t, rec.Body.Bytes()).Code)
}

func TestServer_AppliesSampleStyle(t *testing.T) {
	t.Parallel()

	h := New(Options{Style: chart.Style{LineColor: "#ff9800"}}).Handler()
	rec := get(t, h, "/api/chart")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "#ff9800")
}

func TestServer_LogsRequests(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := New(Options{Logger: logging.NewStructuredLogger(&buf, slog.LevelInfo)}).Handler()
	get(t, h, "/healthz?check=1")

	out := buf.String()
	assert.Contains(t, out, `"msg":"http_request"`)
	assert.Contains(t, out, `"method":"GET"`)
	assert.Contains(t, out, `"path":"/healthz"`)
	assert.Contains(t, out, `"status":200`)
	assert.Contains(t, out, `"query":"check=1"`)
	assert.Contains(t, out, `"component":"http_server"`)
}

func TestParseRequest(t *testing.T) {
	t.Parallel()

	defaults := Request{Dataset: DatasetIndex, Period: series.Period3Y, MovingAverages: []analysis.MovingAverage{analysis.MA1Year}, Seed: 5}

	req, err := parseRequest(url.Values{}, defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, req)

	req, err = parseRequest(url.Values{"ma": {"4m", "1y,4m"}, "period": {"6 Months"}, "dataset": {"sample"}}, defaults)
	require.NoError(t, err)
	assert.Equal(t, DatasetSample, req.Dataset)
	assert.Equal(t, series.Period6M, req.Period)
	assert.Equal(t, []analysis.MovingAverage{analysis.MA4Month, analysis.MA1Year}, req.MovingAverages)

	req, err = parseRequest(url.Values{"ma": {""}}, defaults)
	require.NoError(t, err)
	assert.Empty(t, req.MovingAverages)

	_, err = parseRequest(url.Values{"period": {"2w"}}, defaults)
	require.ErrorIs(t, err, series.ErrUnknownPeriod)

	req, err = parseRequest(url.Values{}, Request{})
	require.NoError(t, err)
	assert.Equal(t, series.Period6M, req.Period)
}

func TestListenAndServe_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	addrCh := make(chan net.Addr, 1)
	done := make(chan error, 1)
	go func() {
		done <- New(Options{}).ListenAndServe(ctx, "127.0.0.1:0", func(a net.Addr) { addrCh <- a })
	}()

	var addr net.Addr
	select {
	case addr = <-addrCh:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr.String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}

func TestListenAndServe_ReportsListenError(t *testing.T) {
	t.Parallel()

	err := New(Options{}).ListenAndServe(context.Background(), "bad-address", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}

func TestServer_Patterns_IndexLeadsWithChart(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	out := s.patterns(Request{Dataset: DatasetIndex, Period: series.Period6M})
	require.NotEmpty(t, out)
	assert.IsType(t, &pattern.LineChart{}, out[0])
}

func TestServer_ServerError_ReportsPatternFailure(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	_, err := render.ChartOf([]pattern.Pattern{&pattern.Error{Source: "index", Message: "no observations"}})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	s.serverError(rec, httptest.NewRequest(http.MethodGet, "/chart.svg", nil), err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	detail := decodeError(t, rec.Body.Bytes())
	assert.Equal(t, "internal", detail.Code)
	assert.Contains(t, detail.Message, "index: no observations")
}
