//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aevon-lab/thermod/internal/core/config"
	"github.com/aevon-lab/thermod/internal/daemon"
	"github.com/stretchr/testify/require"
)

type integrationHarness struct {
	baseURL string
	client  *http.Client
	cfg     *config.Config
	daemon  *daemon.Daemon
	cancel  context.CancelFunc
	done    chan error
}

// stop cancels the daemon and releases its resources.
func (h *integrationHarness) stop(t *testing.T) {
	t.Helper()

	h.cancel()
	select {
	case err := <-h.done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("daemon shutdown timed out")
	}
	require.NoError(t, h.daemon.Close())
}

// newConfig builds a simulator config with short windows rooted at dir.
// THERMOD_ environment overrides are applied on top, as in production.
func newConfig(t *testing.T, dir string) *config.Config {
	t.Helper()

	yaml := fmt.Sprintf(`
server:
  host: 127.0.0.1
  port: %d
  assets_dir: %q
database:
  path: %q
transport:
  kind: simulator
  poll_interval: 20ms
checkpoint:
  path: %q
logs:
  raw:
    path: %q
    cycle: 1000
  hourly:
    path: %q
    cycle: 5
  daily:
    path: %q
aggregation:
  hourly_window: 1s
  daily_window: 3s
  tick: 50ms
`,
		freePort(t), dir,
		filepath.Join(dir, "temperature.db"),
		filepath.Join(dir, "last_record.txt"),
		filepath.Join(dir, "log.txt"),
		filepath.Join(dir, "log_hour.txt"),
		filepath.Join(dir, "log_day.txt"),
	)

	path := filepath.Join(dir, "thermod.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

func startHarness(t *testing.T, cfg *config.Config) *integrationHarness {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d, err := daemon.New(cfg, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	h := &integrationHarness{
		baseURL: "http://" + cfg.Server.Addr(),
		client:  &http.Client{Timeout: 5 * time.Second},
		cfg:     cfg,
		daemon:  d,
		cancel:  cancel,
		done:    make(chan error, 1),
	}
	go func() { h.done <- d.Run(ctx) }()

	waitForHealthy(t, h)
	return h
}

func waitForHealthy(t *testing.T, h *integrationHarness) {
	t.Helper()

	require.Eventually(t, func() bool {
		resp, err := h.client.Get(h.baseURL + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)
}

func getJSON(t *testing.T, h *integrationHarness, path string, out interface{}) int {
	t.Helper()

	resp, err := h.client.Get(h.baseURL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode
}

func freePort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}
