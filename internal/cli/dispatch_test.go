package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"todolist/internal/cli"
	"todolist/internal/commands"
	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/storage"
	"todolist/internal/testutil"
	"todolist/internal/todo"
)

type factoryCalls struct {
	opened int
	closed int
}

// testFactory returns a factory handing out one store over kv.
func testFactory(t *testing.T, kv *testutil.FakeKV, calls *factoryCalls) cli.StoreFactory {
	t.Helper()
	return func(ctx context.Context, cfg *config.Config) (*todo.Store, func() error, error) {
		calls.opened++
		store, err := todo.NewStore(ctx, storage.NewTaskRepository(kv, cfg.Settings.Storage.Key, cfg.Log))
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { calls.closed++; return nil }, nil
	}
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func newDispatcher(t *testing.T) (*cli.Dispatcher, *testutil.FakeKV, *factoryCalls) {
	t.Helper()
	kv := testutil.NewFakeKV()
	calls := &factoryCalls{}
	return cli.NewDispatcher(commands.DefaultRegistry, testFactory(t, kv, calls)), kv, calls
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d, _, _ := newDispatcher(t)

	_, stderr, code := run(t, d, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	d, _, _ := newDispatcher(t)

	_, stderr, code := run(t, d, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpDoesNotOpenStore(t *testing.T) {
	d, _, calls := newDispatcher(t)

	stdout, stderr, code := run(t, d, "help", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
	if calls.opened != 0 {
		t.Errorf("help opened the store %d times", calls.opened)
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	d, _, _ := newDispatcher(t)

	stdout, _, code := run(t, d, "version", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	d, _, _ := newDispatcher(t)

	_, stderr, code := run(t, d, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	d, _, _ := newDispatcher(t)

	_, stderr, code := run(t, d, "list", "--filter")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -filter\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	d, _, calls := newDispatcher(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	stdout, stderr, code := run(t, d)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%q)", exitcode.Success, code, stderr)
	}
	if stdout != "no tasks yet\n" {
		t.Errorf("expected empty list message, got %q", stdout)
	}
	if calls.opened != 1 || calls.closed != 1 {
		t.Errorf("expected store opened and closed once, got %+v", *calls)
	}
}

func TestDispatcher_AddThenList(t *testing.T) {
	d, kv, _ := newDispatcher(t)
	dir := t.TempDir()

	if _, stderr, code := run(t, d, "add", "--config", dir, "--quiet", "Buy", "milk"); code != exitcode.Success {
		t.Fatalf("add failed: %d %q", code, stderr)
	}
	if _, ok := kv.Value(storage.DefaultTasksKey); !ok {
		t.Fatal("expected tasks saved")
	}

	stdout, _, code := run(t, d, "ls", "--config", dir, "-q")
	if code != exitcode.Success {
		t.Fatalf("list failed: %d", code)
	}
	if stdout != "   1  [ ] Buy milk\n" {
		t.Errorf("unexpected list output %q", stdout)
	}
}

func TestDispatcher_StoreError(t *testing.T) {
	kv := testutil.NewFakeKV()
	kv.GetErr = errors.New("connection refused")
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(t, kv, &factoryCalls{}))

	stdout, stderr, code := run(t, d, "list", "--config", t.TempDir())

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.HasPrefix(stderr, "error: storage error: load tasks: ") || !strings.Contains(stderr, "connection refused") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_ConfigError(t *testing.T) {
	d, _, calls := newDispatcher(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("storage:\n  backend: floppy\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := run(t, d, "list", "--config", dir)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.HasPrefix(stderr, "error: config: ") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if calls.opened != 0 {
		t.Error("store opened despite config error")
	}
}

func TestDispatcher_DebugLogs(t *testing.T) {
	d, _, _ := newDispatcher(t)

	_, stderr, code := run(t, d, "stats", "--config", t.TempDir(), "--debug")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	for _, want := range []string{"msg=cli.dispatch", "cmd=stats", "session="} {
		if !strings.Contains(stderr, want) {
			t.Errorf("expected %q in debug output:\n%s", want, stderr)
		}
	}
}

func TestOpenStore_FileBackend(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)
	dir := t.TempDir()

	if _, stderr, code := run(t, d, "add", "--config", dir, "Buy milk"); code != exitcode.Success {
		t.Fatalf("add failed: %d %q", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, config.StorageDir, storage.DefaultTasksKey+".json")); err != nil {
		t.Fatalf("expected task file: %v", err)
	}

	stdout, _, _ := run(t, d, "list", "--config", dir, "--quiet")
	if stdout != "   1  [ ] Buy milk\n" {
		t.Errorf("tasks did not survive a restart: %q", stdout)
	}
}

func TestOpenStore_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()
	settings := "storage:\n  backend: redis\n  key: work\n  redis_url: redis://" + mr.Addr() + "\n"
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte(settings), 0600); err != nil {
		t.Fatal(err)
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	if _, stderr, code := run(t, d, "add", "--config", dir, "Ship release"); code != exitcode.Success {
		t.Fatalf("add failed: %d %q", code, stderr)
	}
	raw, err := mr.Get(storage.RedisKeyPrefix + "work")
	if err != nil {
		t.Fatalf("expected redis key: %v", err)
	}
	if !strings.Contains(raw, `"text":"Ship release"`) {
		t.Errorf("unexpected stored value %s", raw)
	}
}

func TestDispatcher_TextAfterDoubleDash(t *testing.T) {
	d, _, _ := newDispatcher(t)
	dir := t.TempDir()

	if _, stderr, code := run(t, d, "add", "--config", dir, "--quiet", "--", "-5 degrees outside"); code != exitcode.Success {
		t.Fatalf("add failed: %d %q", code, stderr)
	}

	stdout, _, _ := run(t, d, "list", "--config", dir, "--quiet")
	if stdout != "   1  [ ] -5 degrees outside\n" {
		t.Errorf("unexpected list output %q", stdout)
	}
}

func TestDispatcher_FlagAfterReference(t *testing.T) {
	d, _, _ := newDispatcher(t)
	dir := t.TempDir()
	run(t, d, "add", "--config", dir, "--quiet", "buy", "milk")

	_, stderr, code := run(t, d, "rm", "--config", dir, "1", "--force")
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: flags must come before arguments: --force\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}

	stdout, stderr, code := run(t, d, "rm", "--config", dir, "--force", "1")
	if code != exitcode.Success || stdout != "ok\n" {
		t.Fatalf("rm with leading --force failed: %d %q %q", code, stdout, stderr)
	}
	stdout, _, _ = run(t, d, "list", "--config", dir)
	if stdout != "no tasks yet\n" {
		t.Errorf("expected empty list, got %q", stdout)
	}
}
