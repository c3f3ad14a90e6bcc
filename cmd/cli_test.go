package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestCurrentRequiresConversationFlags(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "current")
	require.ErrorIs(t, err, errConversationRequired)
}

func TestCurrentWithoutBinding(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "current", "--guild", "123", "--channel", "456")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No VPS is currently logged in for this channel.")
}

func TestCurrentShowsBoundTarget(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSessionsFixture(home, map[string]time.Time{"123_456": time.Now().UTC()}))

	stdout, _, err := executeCLI(t, home, "current", "--guild", "123", "--channel", "456")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Currently logged in VPS for this channel: `web-1`")
}

func TestCurrentShowsStaleBindingUntilSwept(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSessionsFixture(home, map[string]time.Time{"123_456": time.Now().UTC().Add(-2 * time.Hour)}))

	stdout, _, err := executeCLI(t, home, "current", "--guild", "123", "--channel", "456")
	require.NoError(t, err)
	assert.Contains(t, stdout, "`web-1`")

	stdout, _, err = executeCLI(t, home, "sweep")
	require.NoError(t, err)
	assert.Equal(t, "removed 1 expired session(s)\n", stdout)

	stdout, _, err = executeCLI(t, home, "current", "--guild", "123", "--channel", "456")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No VPS is currently logged in for this channel.")
}

func TestCurrentStrictTTLFromEnvironment(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSessionsFixture(home, map[string]time.Time{"123_456": time.Now().UTC().Add(-2 * time.Hour)}))
	t.Setenv("VPSBOT_SESSIONS_STRICT_TTL", "true")

	stdout, _, err := executeCLI(t, home, "current", "--guild", "123", "--channel", "456")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No VPS is currently logged in for this channel.")
}

func TestCurrentAllJSON(t *testing.T) {
	home := t.TempDir()
	now := time.Now().UTC()
	require.NoError(t, writeSessionsFixture(home, map[string]time.Time{
		"1_2": now,
		"3_4": now.Add(-time.Hour),
	}))

	stdout, _, err := executeCLI(t, home, "current", "--all", "--json")
	require.NoError(t, err)

	var views []sessionView
	require.NoError(t, json.Unmarshal([]byte(stdout), &views))
	require.Len(t, views, 2)
	expired := map[string]bool{}
	for _, view := range views {
		expired[view.Key] = view.Expired
		assert.Equal(t, "web-1", view.Target)
	}
	assert.Equal(t, map[string]bool{"1_2": false, "3_4": true}, expired)
}

func TestCurrentAllRendersSessions(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSessionsFixture(home, map[string]time.Time{"1_2": time.Now().UTC()}))

	stdout, _, err := executeCLI(t, home, "current", "--all")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sessions: 1")
	assert.Contains(t, stdout, "1_2")
}

func TestCorruptSessionStoreIsReported(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, ".vpsbot", "cache")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "login_states.toml"), []byte("sessions = [not toml"), 0o600))

	_, _, err := executeCLI(t, home, "current", "--guild", "1", "--channel", "2")
	var decodeErr *domain.DeserializationError
	require.ErrorAs(t, err, &decodeErr)
}

func TestBSONSessionStoreSelectedByEnvironment(t *testing.T) {
	home := t.TempDir()
	t.Setenv("VPSBOT_SESSIONS_FORMAT", "bson")

	stdout, _, err := executeCLI(t, home, "current", "--guild", "1", "--channel", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No VPS is currently logged in for this channel.")

	stdout, _, err = executeCLI(t, home, "sweep")
	require.NoError(t, err)
	assert.Equal(t, "removed 0 expired session(s)\n", stdout)
}

func TestUnsupportedSessionFormat(t *testing.T) {
	home := t.TempDir()
	t.Setenv("VPSBOT_SESSIONS_FORMAT", "yaml")

	_, _, err := executeCLI(t, home, "current", "--guild", "1", "--channel", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported sessions.format")
}

func TestResourcesWithoutBinding(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "resources", "--guild", "1", "--channel", "2")
	require.ErrorIs(t, err, domain.ErrNoActiveSession)
	assert.Contains(t, stdout, "No VPS is currently logged in for this channel.")
}

func TestLoginUnknownTarget(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeTargetsFixture(home))

	stdout, _, err := executeCLI(t, home, "login", "nope", "--guild", "1", "--channel", "2")
	require.ErrorIs(t, err, domain.ErrTargetNotFound)
	assert.Contains(t, stdout, "VPS Login - nope")

	stdout, _, err = executeCLI(t, home, "current", "--guild", "1", "--channel", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No VPS is currently logged in for this channel.")
}

func TestLoginRequiresTargetArgument(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "login", "--guild", "1", "--channel", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestTargetsListsConfiguredHosts(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeTargetsFixture(home))

	stdout, _, err := executeCLI(t, home, "targets")
	require.NoError(t, err)
	assert.Contains(t, stdout, "web-1")
	assert.Contains(t, stdout, "root@10.0.0.5:22")
	assert.Contains(t, stdout, "admin@10.0.0.6:2222")
	assert.NotContains(t, stdout, "hunter2")
}

func TestTargetsWithoutConfiguration(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "targets")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No targets configured.")
}

func TestSecretSetRequiresValue(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "secret", "set", "vpsbot/targets/web-1/password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"value\" not set")
}

func TestInvalidConfigFileIsReported(t *testing.T) {
	home := t.TempDir()
	configPath := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[log\nlevel = "), 0o600))
	t.Setenv("VPSBOT_CONFIG", configPath)

	_, _, err := executeCLI(t, home, "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestConfigFileSetsSamplerMatch(t *testing.T) {
	home := t.TempDir()
	configPath := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[sampler]\nmatch = \"cmdline\"\n"), 0o600))
	t.Setenv("VPSBOT_CONFIG", configPath)

	_, _, err := executeCLI(t, home, "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported process match strategy")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSessionsFixture(home string, sessions map[string]time.Time) error {
	dir := filepath.Join(home, ".vpsbot", "cache")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("version = 1\n")
	for key, createdAt := range sessions {
		fmt.Fprintf(&buf, "\n[sessions.%q]\ntarget_name = \"web-1\"\ncreated_at = %q\n", key, createdAt.Format(time.RFC3339))
	}

	return os.WriteFile(filepath.Join(dir, "login_states.toml"), buf.Bytes(), 0o600)
}

func writeTargetsFixture(home string) error {
	dir := filepath.Join(home, ".vpsbot")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	targets := `version = 1

[[targets]]
name = "web-1"
host = "10.0.0.5"
username = "root"
password = "hunter2"

[[targets]]
name = "db-1"
host = "10.0.0.6"
port = 2222
username = "admin"
password_ref = "vpsbot/targets/db-1/password"
`

	return os.WriteFile(filepath.Join(dir, "targets.toml"), []byte(targets), 0o644)
}
