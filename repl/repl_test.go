package repl

import (
	"path/filepath"
	"strings"
	"testing"
)

func runSession(t *testing.T, input string, hist *History) string {
	t.Helper()
	var out strings.Builder
	sess := NewSession(strings.NewReader(input), &out, hist)
	if err := sess.Run(); err != nil {
		t.Fatalf("session: %v", err)
	}
	return out.String()
}

func TestSessionAccumulates(t *testing.T) {
	out := runSession(t, "var a = 1;\nfun inc(n) { return n + 1; }\nprint inc(a);\n", nil)
	if !strings.Contains(out, "2\n") {
		t.Errorf("definitions should persist across lines, got %q", out)
	}
}

// A bad line is reported and the session keeps going.
func TestSessionSurvivesErrors(t *testing.T) {
	out := runSession(t, "print nope;\nprint 1 +;\nprint 40 + 2;\n", nil)
	if !strings.Contains(out, "Undefined variable 'nope'.") {
		t.Errorf("runtime error not reported: %q", out)
	}
	if !strings.Contains(out, "Expect expression.") {
		t.Errorf("parse error not reported: %q", out)
	}
	if !strings.Contains(out, "42\n") {
		t.Errorf("session should continue past errors: %q", out)
	}
}

func TestSessionHistoryCommand(t *testing.T) {
	hist, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer hist.Close()

	out := runSession(t, "print 1;\nprint 2;\n:history\n", hist)
	if !strings.Contains(out, "print 1;") || !strings.Contains(out, "print 2;") {
		t.Errorf(":history should list earlier lines, got %q", out)
	}
	if strings.Contains(out, ":history\n:history") {
		t.Errorf(":history itself must not be recorded, got %q", out)
	}

	lines, err := hist.Lines()
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 2 {
		t.Errorf("want 2 recorded lines, got %d: %v", len(lines), lines)
	}
}

func TestSessionBlankLines(t *testing.T) {
	out := runSession(t, "\n   \nprint 1;\n", nil)
	if !strings.Contains(out, "1\n") {
		t.Errorf("blank lines should be skipped, got %q", out)
	}
}
