package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cmdEnv struct {
	db  string
	api string
}

func newCmdEnv(t *testing.T) cmdEnv {
	t.Helper()
	b := newFakeBackend(t)
	return cmdEnv{db: filepath.Join(t.TempDir(), "session.db"), api: b.URL}
}

// run executes one storepulse invocation against the env's backend and
// local store, as separate processes would.
func (e cmdEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", e.db, "--api", e.api, "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_DashboardWithoutSession(t *testing.T) {
	env := newCmdEnv(t)

	out, err := env.run(t, "", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
	assert.Contains(t, out, "Please login.")
}

func TestRoot_ImportFlagsThenDashboard(t *testing.T) {
	env := newCmdEnv(t)

	out, err := env.run(t, "", "session", "import", "--role", "isTenant", "--tenant", "t1", "--token", "tok", "--email", "owner@shop.io")
	require.NoError(t, err)
	assert.Contains(t, out, "Session stored.")
	assert.Contains(t, out, "$1200.50")

	out, err = env.run(t, "", "session", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "owner@shop.io")

	out, err = env.run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out successfully!")

	out, err = env.run(t, "", "session", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Please login.")
}

func TestRoot_ImportJSONAsAdmin(t *testing.T) {
	env := newCmdEnv(t)

	body := `{"role":"isAdmin","accessToken":"adm","tokenType":"Bearer"}` + "\n\n"
	out, err := env.run(t, body, "session", "import", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, "AdminPanel")
	assert.Contains(t, out, "Mugs")

	out, err = env.run(t, "", "customers")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob")

	out, err = env.run(t, "", "analytics", "t1")
	require.NoError(t, err)
	assert.Contains(t, out, "Teapot")
}

func TestRoot_ImportPromptsForToken(t *testing.T) {
	env := newCmdEnv(t)

	orig := getSecret
	t.Cleanup(func() { getSecret = orig })
	var prompted bool
	getSecret = func(w io.Writer, prompt string) ([]byte, error) {
		prompted = true
		return []byte("tok\n"), nil
	}

	_, err := env.run(t, "", "session", "import", "--tenant", "t1")
	require.NoError(t, err)
	assert.True(t, prompted)

	out, err := env.run(t, "", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "UserPanel")
}

func TestRoot_ImportRejectsTenantWithoutID(t *testing.T) {
	env := newCmdEnv(t)

	_, err := env.run(t, "", "session", "import", "--token", "tok")
	require.Error(t, err)

	out, err := env.run(t, "", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func TestRoot_CustomersNeedsAdmin(t *testing.T) {
	env := newCmdEnv(t)

	_, err := env.run(t, "", "session", "import", "--tenant", "t1", "--token", "tok")
	require.NoError(t, err)

	_, err = env.run(t, "", "customers")
	assert.ErrorIs(t, err, errAdminOnly)
}

func TestRoot_Args(t *testing.T) {
	env := newCmdEnv(t)

	_, err := env.run(t, "", "analytics")
	assert.Error(t, err)
	_, err = env.run(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "dashboard")
	assert.Error(t, err)
}
