package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordcycle/internal/metrics"
	"github.com/at-ishikawa/wordcycle/internal/review"
	"github.com/at-ishikawa/wordcycle/internal/testutil"
)

type pushedMetrics struct {
	method string
	path   string
	body   string
}

// pushgateway records every push it receives.
type pushgateway struct {
	mu     sync.Mutex
	pushes []pushedMetrics
	status int
}

func newPushgateway(t *testing.T, status int) (*pushgateway, *httptest.Server) {
	t.Helper()
	gateway := &pushgateway{status: status}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gateway.mu.Lock()
		gateway.pushes = append(gateway.pushes, pushedMetrics{method: r.Method, path: r.URL.Path, body: string(body)})
		gateway.mu.Unlock()
		w.WriteHeader(gateway.status)
	}))
	t.Cleanup(server.Close)
	return gateway, server
}

func (g *pushgateway) received() []pushedMetrics {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]pushedMetrics(nil), g.pushes...)
}

func TestPushMetrics(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		withURL    bool
		wantPushes int
	}{
		{
			name:       "pushes to the gateway under the command group",
			status:     http.StatusOK,
			withURL:    true,
			wantPushes: 1,
		},
		{
			name:       "gateway failure is not returned",
			status:     http.StatusInternalServerError,
			withURL:    true,
			wantPushes: 1,
		},
		{
			name:       "no url disables pushing",
			status:     http.StatusOK,
			wantPushes: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway, server := newPushgateway(t, tt.status)
			registry := prometheus.NewRegistry()
			metrics.NewRecorder(registry).ObserveSelection(review.PoolNew)

			url := ""
			if tt.withURL {
				url = server.URL
			}
			pushMetrics(context.Background(), url, "study", registry)

			pushes := gateway.received()
			require.Len(t, pushes, tt.wantPushes)
			if tt.wantPushes > 0 {
				assert.Equal(t, http.MethodPut, pushes[0].method)
				assert.Equal(t, "/metrics/job/wordcycle/command/study", pushes[0].path)
				assert.Contains(t, pushes[0].body, "wordcycle_selections_total")
			}
		})
	}
}

func TestCommands_PushSessionMetrics(t *testing.T) {
	gateway, server := newPushgateway(t, http.StatusOK)

	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	f, err := os.OpenFile(cfgPath, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("reminder:\n  pushgateway_url: " + server.URL + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	setConfigFile(t, cfgPath)

	csvPath := testutil.WriteCSV(t, tmpDir, "words.csv", [][]string{
		{"word", "level"},
		{"abandon", "B2"},
		{"ability", "A2"},
	})
	_, err = executeCommand(t, newRootCommand(), "", "import", csvPath)
	require.NoError(t, err)

	_, err = executeCommand(t, newRootCommand(), "k\nn\n", "study")
	require.NoError(t, err)
	_, err = executeCommand(t, newRootCommand(), "", "reset", "abandon")
	require.NoError(t, err)

	pushes := gateway.received()
	require.Len(t, pushes, 2)

	assert.Equal(t, "/metrics/job/wordcycle/command/study", pushes[0].path)
	assert.Contains(t, pushes[0].body, "wordcycle_selections_total")
	assert.Contains(t, pushes[0].body, "wordcycle_outcomes_total")
	assert.Contains(t, pushes[0].body, "known")
	assert.Contains(t, pushes[0].body, "advance")

	assert.Equal(t, "/metrics/job/wordcycle/command/reset", pushes[1].path)
	assert.Contains(t, pushes[1].body, "wordcycle_outcomes_total")
	assert.Contains(t, pushes[1].body, "reset")
}
