package observability

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fight-ledger/internal/config"
	"github.com/riskibarqy/fight-ledger/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	for _, cfg := range []config.Config{
		{UptraceEnabled: false, ServiceName: "fight-ledger", AppEnv: config.EnvDev},
		{UptraceEnabled: true, UptraceDSN: " ", ServiceName: "fight-ledger", AppEnv: config.EnvDev},
	} {
		shutdown, err := InitUptrace(cfg, logging.NewNop())
		require.NoError(t, err)
		assert.NoError(t, shutdown(context.Background()))
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	require.NoError(t, err)
	assert.NoError(t, stop())
}

func TestPyroscopeConfig(t *testing.T) {
	cfg := config.Config{
		AppEnv:                 config.EnvProd,
		ServiceName:            "fight-ledger",
		ServiceVersion:         "1.4.0",
		PyroscopeAppName:       "fight-ledger-ingest",
		PyroscopeServerAddress: "https://profiles.example.com",
		PyroscopeUploadRate:    15 * time.Second,
	}

	got := pyroscopeConfig(cfg, logging.NewNop())

	assert.Equal(t, "fight-ledger-ingest", got.ApplicationName)
	assert.Equal(t, "https://profiles.example.com", got.ServerAddress)
	assert.Equal(t, 15*time.Second, got.UploadRate)
	assert.Equal(t, map[string]string{"env": "prod", "service": "fight-ledger", "version": "1.4.0"}, got.Tags)
	assert.Contains(t, got.ProfileTypes, pyroscope.ProfileCPU)
	assert.Contains(t, got.ProfileTypes, pyroscope.ProfileMutexDuration)
	assert.NotNil(t, got.Logger)
}

func TestStartPprofServer_Disabled(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	require.NoError(t, err)
	assert.Nil(t, srv)
	assert.NoError(t, srv.Stop(time.Second))
}

func TestStartPprofServer_ServesProfiles(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Stop(time.Second) })

	resp, err := http.Get("http://" + srv.Addr() + "/debug/pprof/cmdline")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
