package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunScenarioBasic(t *testing.T) {
	var out bytes.Buffer
	err := RunScenario(&out, filepath.Join("testdata", "basic.yaml"), false)
	if err != nil {
		t.Fatalf("scenario error: %s", err)
	}
	text := out.String()

	checks := []string{
		`callee greet(name, greeting="hello", **kw)`,
		`bound ("world", "hi", {color: "blue"})`,
		`rebinds: 1 of 3 calls`,
		`bound ("sun", "yo", {})`,
		`pair() takes exactly 2 arguments (3 given)`,
	}
	for _, want := range checks {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunScenarioDump(t *testing.T) {
	var out bytes.Buffer
	if err := RunScenario(&out, filepath.Join("testdata", "basic.yaml"), true); err != nil {
		t.Fatalf("scenario error: %s", err)
	}
	if !strings.Contains(out.String(), "rule shape=") {
		t.Fatalf("dump output missing rule lines:\n%s", out.String())
	}
}

func TestLoadScenarioRejectsUnknownExtension(t *testing.T) {
	if _, err := LoadScenario("scenario.json"); err == nil {
		t.Fatalf("expected extension error")
	}
}
