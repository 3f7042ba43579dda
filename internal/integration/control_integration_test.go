package integration

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/battery-alarm/internal/config"
	"github.com/oshokin/battery-alarm/internal/service/client"
	"github.com/oshokin/battery-alarm/internal/service/common"
	"github.com/oshokin/battery-alarm/internal/service/server"
)

// countingPlayer counts alarm sounds instead of beeping.
type countingPlayer struct {
	plays atomic.Int32
}

// Play implements sound.Player.
func (p *countingPlayer) Play(context.Context) error {
	p.plays.Add(1)
	return nil
}

// freeAddress reserves a loopback port for the test server.
func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	return addr
}

// writeSysfs creates a fake power_supply tree with one mains adapter.
func writeSysfs(t *testing.T, online string) string {
	t.Helper()

	dir := t.TempDir()
	adapter := filepath.Join(dir, "AC")
	require.NoError(t, os.MkdirAll(adapter, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(adapter, "type"), []byte("Mains\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(adapter, "online"), []byte(online+"\n"), 0o600))

	return dir
}

// startMonitor runs `battery-alarm run` in the background with temporary settings.
func startMonitor(t *testing.T, addr, sysfsDir string, player *countingPlayer) (cfgPath string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	cfgPath = filepath.Join(t.TempDir(), "settings.yaml")

	require.NoError(t, config.Save(cfgPath, &config.Config{
		ControlAddress: addr,
		Timeout:        3 * time.Second,
		Power: config.Power{
			Source:   config.SourceSysfs,
			SysfsDir: sysfsDir,
		},
	}))

	done := make(chan error, 1)

	go func() {
		done <- server.Run(ctx, &server.Options{
			ConfigPath: cfgPath,
			Player:     player,
		})
	}()

	return cfgPath, func() {
		cancel()
		require.NoError(t, <-done)
	}
}

// TestControl_Roundtrip starts the real monitor on mains and drives it through the client commands.
func TestControl_Roundtrip(t *testing.T) {
	t.Parallel()

	addr := freeAddress(t)
	player := new(countingPlayer)

	cfgPath, stop := startMonitor(t, addr, writeSysfs(t, "1"), player)
	defer stop()

	ctx := context.Background()

	run := func(action client.Action) string {
		var out bytes.Buffer

		require.NoError(t, client.Run(ctx, &client.Options{
			ConfigPath: cfgPath,
			Action:     action,
			Output:     &out,
		}))

		return strings.TrimSpace(out.String())
	}

	// Status retries until the server is listening and reports the default.
	require.Equal(t, "armed", run(client.ActionStatus))
	require.Equal(t, "disarmed", run(client.ActionToggle))
	require.Equal(t, "disarmed", run(client.ActionStatus))
	require.Equal(t, "armed", run(client.ActionToggle))

	// On mains nothing sounds.
	time.Sleep(100 * time.Millisecond)
	require.Zero(t, player.plays.Load())
}

// TestControl_DisarmStopsAlarm runs the monitor on battery and silences it remotely.
func TestControl_DisarmStopsAlarm(t *testing.T) {
	t.Parallel()

	addr := freeAddress(t)
	player := new(countingPlayer)

	_, stop := startMonitor(t, addr, writeSysfs(t, "0"), player)
	defer stop()

	ctx := context.Background()

	c, err := common.Dial(ctx, addr, common.WithCallTimeout(3*time.Second))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	armed, err := c.Current(ctx)
	require.NoError(t, err)
	require.True(t, armed)

	require.Eventually(t, func() bool {
		return player.plays.Load() >= 2
	}, 3*time.Second, 20*time.Millisecond)

	armed, err = c.Toggle(ctx)
	require.NoError(t, err)
	require.False(t, armed)

	// Allow the in-flight cycle to finish, then the count must stay put.
	time.Sleep(300 * time.Millisecond)

	silenced := player.plays.Load()

	time.Sleep(1200 * time.Millisecond)
	require.Equal(t, silenced, player.plays.Load())
}
