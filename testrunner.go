package easel

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in an interaction script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for an interaction script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input events and screenshots across
// frames for automated visual testing. Attach to a Viewer via
// SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON interaction script and returns a
// TestRunner ready to be attached to a Viewer via SetTestRunner.
//
// Supported actions: "press", "move", "release", "click", "drag",
// "wheel", "wait", and "screenshot".
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the viewer. The runner's step
// method is called from Viewer.Update before input each frame.
func (v *Viewer) SetTestRunner(runner *TestRunner) {
	v.testRunner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Viewer.Update.
func (r *TestRunner) step(v *Viewer) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if v.controller.InjectPending() > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		v.Screenshot(st.Label)
	case "press":
		v.controller.InjectPress(st.X, st.Y, MouseButtonLeft)
	case "move":
		v.controller.InjectMove(st.X, st.Y)
	case "release":
		v.controller.InjectRelease(st.X, st.Y)
	case "click":
		v.controller.InjectClick(st.X, st.Y, MouseButtonLeft)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		v.controller.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wheel":
		v.controller.InjectWheel(st.X, st.Y, st.Delta)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && v.controller.InjectPending() == 0 {
		r.done = true
	}
}
