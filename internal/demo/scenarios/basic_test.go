package scenarios

import (
	"testing"

	"github.com/zhubert/parley/internal/demo"
)

func TestAll(t *testing.T) {
	scenarios := All()

	if len(scenarios) != 2 {
		t.Errorf("All() should return 2 scenarios, got %d", len(scenarios))
	}

	// Verify each scenario is valid
	for _, s := range scenarios {
		if err := s.Validate(); err != nil {
			t.Errorf("Scenario %q validation failed: %v", s.Name, err)
		}
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name      string
		wantFound bool
	}{
		{"basic", true},
		{"reactions", true},
		{"nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := Get(tt.name)
			found := scenario != nil

			if found != tt.wantFound {
				t.Errorf("Get(%q) found = %v, want %v", tt.name, found, tt.wantFound)
			}
		})
	}
}

func TestBasicScenarioSteps(t *testing.T) {
	stepTypes := make(map[demo.StepType]bool)
	for _, step := range Basic.Steps {
		stepTypes[step.Type] = true
	}

	for _, want := range []demo.StepType{demo.StepTypeText, demo.StepStatus, demo.StepTypingDone, demo.StepCapture} {
		if !stepTypes[want] {
			t.Errorf("basic scenario has no step of type %d", want)
		}
	}
}

func TestScenariosRun(t *testing.T) {
	t.Setenv("PARLEY_CONFIG_DIR", t.TempDir())

	for _, s := range All() {
		t.Run(s.Name, func(t *testing.T) {
			frames, err := demo.NewExecutor(demo.DefaultExecutorConfig()).Run(s)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if len(frames) < 5 {
				t.Errorf("got %d frames, want at least 5", len(frames))
			}
			for i, f := range frames {
				if f.Content == "" {
					t.Errorf("frame %d is empty", i)
				}
			}
		})
	}
}
