package gesture

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action   string  `json:"action"`
	Contact  int     `json:"contact,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	FromDist float64 `json:"fromDist,omitempty"`
	ToDist   float64 `json:"toDist,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a gesture script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"press":   true,
	"move":    true,
	"release": true,
	"tap":     true,
	"swipe":   true,
	"pinch":   true,
	"wait":    true,
}

// ScriptRunner sequences injected touches across ticks for automated
// testing and replay. Attach to a Manager via SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON gesture script and returns a ScriptRunner ready
// to be attached to a Manager via SetScriptRunner.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range s.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner to the manager. The runner's step
// method is called from Manager.Update before injected input is applied.
func (m *Manager) SetScriptRunner(runner *ScriptRunner) {
	m.runner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one tick without recognizing anything.
func (r *ScriptRunner) Step(m *Manager) {
	r.step(m)
}

// step advances the runner by one tick. Called from Manager.Update.
func (r *ScriptRunner) step(m *Manager) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(m.injectQueue) > 0 {
		return
	}
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
	case "press":
		m.InjectPress(st.Contact, st.X, st.Y)
	case "move":
		m.InjectMove(st.Contact, st.X, st.Y)
	case "release":
		m.InjectRelease(st.Contact, st.X, st.Y)
	case "tap":
		m.InjectTap(st.Contact, st.X, st.Y)
	case "swipe":
		m.InjectSwipe(st.Contact, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		m.InjectPinch(st.X, st.Y, st.FromDist, st.ToDist, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(m.injectQueue) == 0 {
		r.done = true
	}
}
