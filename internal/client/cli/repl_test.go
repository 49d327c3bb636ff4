package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls   []string
	args    [][]string
	flushes int
	err     error
}

func (f *fakeExec) record(name string, args ...string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }
func (f *fakeExec) Go(_ context.Context, path string) error {
	return f.record("go", path)
}
func (f *fakeExec) Refresh(context.Context) error { return f.record("refresh") }
func (f *fakeExec) Tenant(_ context.Context, id string) error {
	return f.record("tenant", id)
}
func (f *fakeExec) Filter(_ context.Context, from, to string) error {
	return f.record("filter", from, to)
}
func (f *fakeExec) ClearFilter(context.Context) error { return f.record("clear") }
func (f *fakeExec) Sync(context.Context) error        { return f.record("sync") }
func (f *fakeExec) Customers(context.Context) error   { return f.record("customers") }
func (f *fakeExec) WhoAmI(context.Context) error      { return f.record("whoami") }
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) flushNotifications() { f.flushes++ }

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(strings.TrimSuffix(toString(v), "\n"))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	default:
		return ""
	}
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"go /mainLayout/tenants",
		"refresh",
		"tenant t1",
		"filter 2024-01-01 2024-01-31",
		"clear",
		"sync",
		"customers",
		"whoami",
		"logout",
		"exit",
		"refresh",
	}, "\n"))

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"go", "refresh", "tenant", "filter", "clear", "sync", "customers", "whoami", "logout"}, exec.calls)
	assert.Equal(t, []string{"/mainLayout/tenants"}, exec.args[0])
	assert.Equal(t, []string{"2024-01-01", "2024-01-31"}, exec.args[3])
	assert.Equal(t, 10, exec.flushes, "notifications flushed after every command")
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	lines := capturePrintln(t)

	input := strings.NewReader("go\ntenant\nfilter 2024-01-01\nfoobar\n\nquit\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	assert.Empty(t, exec.calls)
	out := strings.Join(*lines, "\n")
	assert.Contains(t, out, "Usage: go <path>")
	assert.Contains(t, out, "Usage: tenant <id>")
	assert.Contains(t, out, "Usage: filter <from> <to>")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_PrintsCommandErrors(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{loggedIn: true, err: errors.New("only available on the dashboard")}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("clear\n")))

	assert.Contains(t, strings.Join(*lines, "\n"), "Error: only available on the dashboard")
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("help\n")))
	assert.Contains(t, strings.Join(*lines, "\n"), "session import")
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &fakeExec{loggedIn: true}
	runREPL(ctx, exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("refresh\n")))
	assert.Empty(t, exec.calls)
}
