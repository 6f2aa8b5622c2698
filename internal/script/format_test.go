package script

import (
	"strings"
	"testing"
)

// stripBlanks removes all whitespace so token content can be compared
// independently of layout.
func stripBlanks(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func TestFormatPreservesTokenContent(t *testing.T) {
	inputs := []string{
		`if x > 1 then "a" else "b" end`,
		`let total := 0; for i in range(10) do total := total + i end`,
		`switch status do case 1: "open" case 2: "closed" default: "?" end`,
		`{ a: 1, b: 2 }`,
	}
	for _, src := range inputs {
		got := Format(src, 4)
		if stripBlanks(got) != stripBlanks(src) {
			t.Errorf("content changed:\n src: %q\n got: %q", src, got)
		}
	}
}

func TestFormatIndentsBlocks(t *testing.T) {
	src := `if x then doSomething(x); doMore(x) end`
	got := Format(src, 4)
	lines := strings.Split(got, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected multi-line output, got %q", got)
	}
	// Lines inside the then-block are indented one level.
	if !strings.HasPrefix(lines[1], "    ") {
		t.Errorf("block line not indented: %q", lines[1])
	}
	// The closing end dedents back to column zero.
	last := lines[len(lines)-1]
	if strings.HasPrefix(last, " ") || !strings.HasPrefix(last, "end") {
		t.Errorf("end not dedented: %q", last)
	}
}

func TestFormatSemicolonBreaksLine(t *testing.T) {
	got := Format(`let a := 1; let b := 2`, 4)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), got)
	}
	if !strings.HasPrefix(lines[1], "let b") {
		t.Errorf("second statement = %q, want to start with \"let b\"", lines[1])
	}
}

func TestFormatElseOwnLine(t *testing.T) {
	got := Format(`if x then a else b end`, 2)
	for _, kw := range []string{"else", "end"} {
		found := false
		for _, line := range strings.Split(got, "\n") {
			if strings.TrimSpace(line) == kw || strings.HasPrefix(strings.TrimSpace(line), kw+" ") {
				found = true
			}
		}
		if !found {
			t.Errorf("%q does not start a line in:\n%s", kw, got)
		}
	}
}

func TestFormatIndentSize(t *testing.T) {
	src := `if x then y end`
	got2 := Format(src, 2)
	got8 := Format(src, 8)
	line2 := strings.Split(got2, "\n")[1]
	line8 := strings.Split(got8, "\n")[1]
	if !strings.HasPrefix(line2, "  y") {
		t.Errorf("indent 2: %q", line2)
	}
	if !strings.HasPrefix(line8, "        y") {
		t.Errorf("indent 8: %q", line8)
	}
}

func TestFormatEmptyAndDefaultIndent(t *testing.T) {
	if got := Format("", 4); got != "" {
		t.Errorf("empty input: got %q", got)
	}
	// Non-positive indent falls back to the default width.
	got := Format(`if x then y end`, 0)
	if !strings.Contains(got, "\n    y") {
		t.Errorf("default indent not applied: %q", got)
	}
}

func TestFormatNeverPanicsOnUnbalanced(t *testing.T) {
	inputs := []string{
		"end end end",
		"}}}",
		"if if if",
		"do do do",
	}
	for _, src := range inputs {
		got := Format(src, 4)
		if stripBlanks(got) != stripBlanks(src) {
			t.Errorf("content changed for %q: got %q", src, got)
		}
	}
}
