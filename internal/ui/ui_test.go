package ui

import (
	"bytes"
	"strings"
	"testing"
)

func useMono(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var o, e bytes.Buffer
	SetOutput(&o, &e)
	SetTheme("mono")
	t.Cleanup(func() {
		SetColorForcing(false, false)
		SetTheme("classic")
	})
	return &o, &e
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 0, 10, "░░░░░░░░░░   0%"},
		{1, 2, 10, "█████░░░░░  50%"},
		{3, 3, 4, "█████ 100%"},
		{1, 3, 6, "██░░░░  33%"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.done, tt.total, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%d,%d,%d) = %q, want %q", tt.done, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestPanelAlignsRows(t *testing.T) {
	o, _ := useMono(t)
	Panel([]string{"Todos", "#1  [ ] Buy milk"})

	want := "+------------------+\n" +
		"| Todos            |\n" +
		"| #1  [ ] Buy milk |\n" +
		"+------------------+\n"
	if got := o.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestFPanelIgnoresEscapes(t *testing.T) {
	useMono(t)
	var b bytes.Buffer
	FPanel(&b, []string{"\x1b[1mab\x1b[0m", "abcd"})
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 4 || lines[0] != "+------+" {
		t.Fatalf("got %q", lines)
	}
	if lines[1] != "| \x1b[1mab\x1b[0m   |" {
		t.Errorf("styled row padding: %q", lines[1])
	}
}

func TestStatusLines(t *testing.T) {
	o, e := useMono(t)
	OK("added #3")
	Fail("Failed to add todo")
	Hint("Run `todo --help` for usage.")

	if o.String() != "✔ added #3\n" {
		t.Errorf("stdout: %q", o.String())
	}
	if !strings.HasPrefix(e.String(), "✖ Failed to add todo\n") || !strings.Contains(e.String(), "--help") {
		t.Errorf("stderr: %q", e.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Buy milk and eggs", 8); got != "Buy mil…" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("short", 8); got != "short" {
		t.Errorf("got %q", got)
	}
}

func TestMonoColorEndsWithTheme(t *testing.T) {
	var o, e bytes.Buffer
	SetOutput(&o, &e)
	SetColorForcing(true, false)
	t.Cleanup(func() {
		SetColorForcing(false, false)
		SetTheme("classic")
	})

	SetTheme("mono")
	if got := Bold("x"); got != "x" {
		t.Errorf("mono should be plain: %q", got)
	}
	SetTheme("classic")
	if got := Bold("x"); !strings.Contains(got, "\x1b[") {
		t.Errorf("classic after mono should be styled again: %q", got)
	}

	SetColorForcing(false, true)
	SetTheme("neon")
	if got := Bold("x"); got != "x" {
		t.Errorf("disabled color should survive a theme switch: %q", got)
	}
}
