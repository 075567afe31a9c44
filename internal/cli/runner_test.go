package cli

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/server"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
)

// isolate keeps user/project config files and TADA_* variables out of the run.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"TADA_BASE_URL", "TADA_THEME", "TADA_NO_COLOR", "TADA_LOG_LEVEL",
		"TADA_LOG_FORMAT", "TADA_LOG_FILE", "TADA_SERVER_ADDR", "TADA_STORE", "TADA_STORE_PATH"} {
		t.Setenv(k, "")
	}
}

func startServer(t *testing.T) string {
	t.Helper()
	st, err := jsonstore.Open(filepath.Join(t.TempDir(), "todos.json"))
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(server.New(st, log.New(io.Discard)).Router())
	t.Cleanup(srv.Close)
	return srv.URL + server.CollectionPath
}

type result struct {
	code        int
	out, errOut string
}

func todo(t *testing.T, baseURL string, args ...string) result {
	t.Helper()
	var out, errb bytes.Buffer
	full := append([]string{"--base-url", baseURL, "--theme", "mono", "--log-level", "error"}, args...)
	code := run(context.Background(), full, &out, &errb)
	return result{code: code, out: out.String(), errOut: errb.String()}
}

func TestCommands(t *testing.T) {
	isolate(t)
	base := startServer(t)

	r := todo(t, base, "ls")
	if r.code != 0 || !strings.Contains(r.out, "No todos yet. Add one above!") {
		t.Fatalf("empty ls: %+v", r)
	}

	r = todo(t, base, "add", "Buy", "milk", "-d", "2 litres")
	if r.code != 0 || r.out != "✔ added #1\n" {
		t.Fatalf("add: %+v", r)
	}
	todo(t, base, "add", "Read book")

	r = todo(t, base, "done", "1")
	if r.code != 0 || !strings.Contains(r.out, "marked done") {
		t.Fatalf("done: %+v", r)
	}

	r = todo(t, base, "ls")
	if r.code != 0 {
		t.Fatalf("ls: %+v", r)
	}
	for _, want := range []string{"#1", "[x] Buy milk", "· 2 litres", "#2", "[ ] Read book", " 50%"} {
		if !strings.Contains(r.out, want) {
			t.Errorf("ls missing %q:\n%s", want, r.out)
		}
	}

	r = todo(t, base, "ls", "--group")
	pending, done := strings.Index(r.out, "Pending"), strings.Index(r.out, "Done")
	if pending < 0 || done < pending || strings.Index(r.out, "Read book") > done {
		t.Errorf("grouped ls:\n%s", r.out)
	}

	r = todo(t, base, "edit", "#2", "--title", "Read two books")
	if r.code != 0 || !strings.Contains(r.out, "updated") {
		t.Fatalf("edit: %+v", r)
	}

	r = todo(t, base, "show", "2")
	if r.code != 0 || !strings.Contains(r.out, "Read two books") || !strings.Contains(r.out, "pending") {
		t.Errorf("show: %+v", r)
	}

	r = todo(t, base, "rm", "1")
	if r.code != 0 || !strings.Contains(r.out, "removed") {
		t.Fatalf("rm: %+v", r)
	}
	r = todo(t, base, "ls")
	if strings.Contains(r.out, "] Buy milk") || !strings.Contains(r.out, "] Read two books") {
		t.Errorf("ls after rm:\n%s", r.out)
	}
}

func TestUsageErrors(t *testing.T) {
	isolate(t)
	base := startServer(t)
	todo(t, base, "add", "Buy milk")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown command", []string{"frobnicate"}, "unknown command"},
		{"empty title", []string{"add", "  "}, "add: empty title"},
		{"bad id", []string{"done", "abc"}, "done: not a todo id: abc"},
		{"missing id", []string{"rm"}, "usage: todo rm <id>"},
		{"unknown id", []string{"done", "99"}, "no todo with id 99"},
		{"rm unknown id", []string{"rm", "99"}, "no todo with id 99"},
		{"edit unknown id", []string{"edit", "99", "--title", "x"}, "no todo with id 99"},
		{"nothing to edit", []string{"edit", "1"}, "nothing to change"},
		{"show unknown", []string{"show", "42"}, "show: no todo with id 42"},
		{"bad flag", []string{"ls", "--bogus"}, "unknown flag"},
		{"bad theme", []string{"--theme", "pastel", "ls"}, "config: theme"},
		{"bad log level", []string{"--log-level", "verbos", "ls"}, `log.level "verbos"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := todo(t, base, tt.args...)
			if r.code != 2 {
				t.Errorf("exit code: got %d, want 2 (%+v)", r.code, r)
			}
			if !strings.Contains(r.errOut, tt.want) || !strings.Contains(r.errOut, "todo --help") {
				t.Errorf("stderr: %q, want %q", r.errOut, tt.want)
			}
		})
	}
}

func TestServerUnreachable(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(nil)
	base := srv.URL + server.CollectionPath
	srv.Close()

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"ls"}, "Failed to fetch todos"},
		{[]string{"add", "Buy milk"}, "Failed to add todo"},
		{[]string{"rm", "1"}, "Failed to fetch todos"},
	}
	for _, tt := range tests {
		r := todo(t, base, tt.args...)
		if r.code != 1 {
			t.Errorf("%v: exit code %d, want 1", tt.args, r.code)
		}
		if !strings.Contains(r.errOut, tt.want) {
			t.Errorf("%v: stderr %q", tt.args, r.errOut)
		}
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"3", 3, true},
		{"#12", 12, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"x", 0, false},
	}
	for _, tt := range tests {
		got, err := parseID("done", tt.raw)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("parseID(%q) = %d, %v", tt.raw, got, err)
		}
	}
}
