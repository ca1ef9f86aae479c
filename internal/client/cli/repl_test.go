package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  map[string][]string
	fail  map[string]error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	return f.fail[name]
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context, args []string) error {
	f.loggedIn = true
	return f.record("login", args)
}
func (f *fakeExec) Token(ctx context.Context, args []string) error {
	return f.record("token", args)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) Status(ctx context.Context) error { return f.record("status", nil) }
func (f *fakeExec) Upload(ctx context.Context, args []string) error {
	return f.record("upload", args)
}
func (f *fakeExec) List(ctx context.Context) error { return f.record("list", nil) }
func (f *fakeExec) Search(ctx context.Context, args []string) error {
	return f.record("search", args)
}
func (f *fakeExec) Filter(ctx context.Context, args []string) error {
	return f.record("filter", args)
}
func (f *fakeExec) Types(ctx context.Context) error { return f.record("types", nil) }
func (f *fakeExec) Show(ctx context.Context, args []string) error {
	return f.record("show", args)
}
func (f *fakeExec) View(ctx context.Context, args []string) error {
	return f.record("view", args)
}
func (f *fakeExec) Thumb(ctx context.Context, args []string) error {
	return f.record("thumb", args)
}
func (f *fakeExec) Download(ctx context.Context, args []string) error {
	return f.record("download", args)
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	return f.record("delete", args)
}
func (f *fakeExec) Export(ctx context.Context, args []string) error {
	return f.record("export", args)
}
func (f *fakeExec) Import(ctx context.Context, args []string) error {
	return f.record("import", args)
}
func (f *fakeExec) Progress(ctx context.Context) error { return f.record("progress", nil) }
func (f *fakeExec) Stats(ctx context.Context) error    { return f.record("stats", nil) }

// capturePrint replaces printlnFn for the test and returns the printed lines.
func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func scannerOf(lines ...string) *bufio.Scanner {
	return bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := capturePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, scannerOf(
		"help",
		"list",
		"login u1",
		"help",
		"upload a.pdf b.png",
		"l",
		"search lab report",
		"filter Lab",
		"types",
		"show 1",
		"view 1",
		"thumb 2",
		"download 1",
		"delete 1",
		"export out.json",
		"import in.json",
		"progress",
		"stats",
		"status",
		"foobar",
		"logout",
		"exit",
		"list",
	))

	want := []string{"login", "upload", "list", "search", "filter", "types", "show", "view",
		"thumb", "download", "delete", "export", "import", "progress", "stats", "status", "logout"}
	assert.Equal(t, want, exec.calls)
	assert.Equal(t, []string{"a.pdf", "b.png"}, exec.args["upload"])
	assert.Equal(t, []string{"lab", "report"}, exec.args["search"])
	assert.Equal(t, []string{"u1"}, exec.args["login"])

	assert.Contains(t, *out, helpLoggedOut)
	assert.Contains(t, *out, helpLoggedIn)
	assert.Contains(t, *out, "Please log in first: login [user]")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1], "nothing runs after exit")
}

func TestRunREPL_ErrorsArePrinted(t *testing.T) {
	out := capturePrint(t)

	exec := &fakeExec{loggedIn: true, fail: map[string]error{"view": errors.New("record has no stored file")}}
	runREPL(context.Background(), exec, func() string { return "" }, scannerOf("view 1", "list"))

	assert.Equal(t, []string{"view", "list"}, exec.calls)
	assert.Contains(t, *out, "Error: record has no stored file")
}

func TestRunREPL_EOFEndsLoop(t *testing.T) {
	capturePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, scannerOf("", "   ", "status"))
	assert.Equal(t, []string{"status"}, exec.calls)
}

func TestRunREPL_TokenWorksLoggedOut(t *testing.T) {
	capturePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, scannerOf("token alice", "list"))
	assert.Equal(t, []string{"token"}, exec.calls)
	assert.Equal(t, []string{"alice"}, exec.args["token"])
}
