package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDemoList(t *testing.T) {
	var out strings.Builder
	demoListCmd.SetOut(&out)
	defer demoListCmd.SetOut(nil)

	demoListCmd.Run(demoListCmd, nil)
	for _, want := range []string{"basic", "reactions"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("list output missing %q:\n%s", want, out.String())
		}
	}
}

func TestGetScenario(t *testing.T) {
	origW, origH := demoWidth, demoHeight
	defer func() { demoWidth, demoHeight = origW, origH }()

	demoWidth, demoHeight = 100, 30
	s, err := getScenario("basic")
	if err != nil {
		t.Fatal(err)
	}
	if s.Width != 100 || s.Height != 30 {
		t.Errorf("size = %dx%d, want 100x30", s.Width, s.Height)
	}

	// The built-in scenario is left alone
	again, _ := getScenario("basic")
	if again == s {
		t.Error("getScenario should return a copy")
	}

	if _, err := getScenario("missing"); err == nil || !strings.Contains(err.Error(), "parley demo list") {
		t.Errorf("err = %v", err)
	}
}

func TestRunDemoCast(t *testing.T) {
	t.Setenv("PARLEY_CONFIG_DIR", t.TempDir())
	origOut := demoOutput
	defer func() { demoOutput = origOut }()

	demoOutput = filepath.Join(t.TempDir(), "basic.cast")
	var out strings.Builder
	if err := runDemoCast(&out, "basic"); err != nil {
		t.Fatalf("runDemoCast() error = %v", err)
	}
	if !strings.Contains(out.String(), "Generated "+demoOutput) {
		t.Errorf("output = %q", out.String())
	}

	data, err := os.ReadFile(demoOutput)
	if err != nil {
		t.Fatal(err)
	}
	first, _, _ := strings.Cut(string(data), "\n")
	if !strings.HasPrefix(first, `{"version":2`) {
		t.Errorf("header = %q", first)
	}
}

func TestRunDemoRun(t *testing.T) {
	t.Setenv("PARLEY_CONFIG_DIR", t.TempDir())

	var out strings.Builder
	if err := runDemoRun(&out, "reactions"); err != nil {
		t.Fatalf("runDemoRun() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{"Captured ", "=== Frame 0", "Annotation: Quick reactions"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
