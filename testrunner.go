package canopy

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrTargetNotFound is reported when a script step names no visual node
	// in the scene.
	ErrTargetNotFound = errors.New("script target not found")
	// ErrExpectationFailed is reported when an expect step does not see the
	// routed events it asks for.
	ErrExpectationFailed = errors.New("script expectation failed")
)

// ScriptStep is one entry of an interaction script.
//
// Pointer steps (press, move, hover, release, click) aim at a point. With a
// Target the point is At in the target's local frame, or the target's center
// when At is omitted, so scripts keep working when layout moves nodes. With
// no Target, At is in scene coordinates. A drag goes from that point to the
// one given by ToTarget and To, over Frames updates.
//
// An expect step checks the pointer-originated routed events raised since
// the previous expect step: Event names the kind, Target (optional) the
// original source, and Count (optional) the exact number. Without Count at
// least one match is required.
type ScriptStep struct {
	Action   string      `json:"action"`
	Target   string      `json:"target,omitempty"`
	At       *[2]float64 `json:"at,omitempty"`
	ToTarget string      `json:"to_target,omitempty"`
	To       *[2]float64 `json:"to,omitempty"`
	Frames   int         `json:"frames,omitempty"`
	Label    string      `json:"label,omitempty"`
	Event    string      `json:"event,omitempty"`
	Count    *int        `json:"count,omitempty"`
}

// Script is the JSON document LoadTestScript reads.
type Script struct {
	Steps []ScriptStep `json:"steps"`
}

type stepKind uint8

const (
	stepPress stepKind = iota
	stepMove
	stepHover
	stepRelease
	stepClick
	stepDrag
	stepWait
	stepScreenshot
	stepExpect
)

var stepKinds = map[string]stepKind{
	"press":      stepPress,
	"move":       stepMove,
	"hover":      stepHover,
	"release":    stepRelease,
	"click":      stepClick,
	"drag":       stepDrag,
	"wait":       stepWait,
	"screenshot": stepScreenshot,
	"expect":     stepExpect,
}

type compiledStep struct {
	kind stepKind
	ScriptStep
}

// observedEvent is one routed event seen through Scene.Events.
type observedEvent struct {
	name   string
	source *Node
}

// TestRunner plays a Script against a Scene, one step per Update once
// earlier injected input has been consumed. Attach it with SetTestRunner.
type TestRunner struct {
	steps     []compiledStep
	cursor    int
	waitCount int
	done      bool

	observed []observedEvent
	conn     Connection
	failures []error
}

// LoadTestScript parses and validates a JSON interaction script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script Script
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	return NewTestRunner(script)
}

// NewTestRunner validates script and returns a runner for it.
func NewTestRunner(script Script) (*TestRunner, error) {
	if len(script.Steps) == 0 {
		return nil, errors.New("parse test script: no steps")
	}
	steps := make([]compiledStep, len(script.Steps))
	for i, st := range script.Steps {
		kind, ok := stepKinds[st.Action]
		if !ok {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if err := validateStep(kind, st); err != nil {
			return nil, fmt.Errorf("parse test script: step %d (%s): %w", i, st.Action, err)
		}
		steps[i] = compiledStep{kind: kind, ScriptStep: st}
	}
	return &TestRunner{steps: steps}, nil
}

func validateStep(kind stepKind, st ScriptStep) error {
	switch kind {
	case stepPress, stepMove, stepHover, stepRelease, stepClick:
		if st.Target == "" && st.At == nil {
			return errors.New("needs a target or a point")
		}
	case stepDrag:
		if st.Target == "" && st.At == nil {
			return errors.New("needs a start target or point")
		}
		if st.ToTarget == "" && st.To == nil {
			return errors.New("needs an end target or point")
		}
	case stepWait:
		if st.Frames < 0 {
			return errors.New("frames must not be negative")
		}
	case stepExpect:
		if st.Event == "" {
			return errors.New("needs an event name")
		}
		if st.Count != nil && *st.Count < 0 {
			return errors.New("count must not be negative")
		}
	}
	return nil
}

// SetTestRunner attaches runner to the scene, replacing any previous one.
// The runner watches the scene's routed events for its expect steps.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	if s.testRunner != nil {
		s.testRunner.conn.Disconnect()
	}
	s.testRunner = runner
	if runner == nil {
		return
	}
	runner.conn = s.Events.Connect(func(args *RoutedEventArgs) {
		if args.Event == nil {
			return
		}
		runner.observed = append(runner.observed, observedEvent{name: args.Event.Name, source: args.OriginalSource})
	})
}

// Done reports whether every step has run and its input has been consumed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Progress returns the number of steps started and the total.
func (r *TestRunner) Progress() (started, total int) {
	return r.cursor, len(r.steps)
}

// Err joins the failures recorded so far: unresolved targets and unmet
// expectations. A failing step does not stop the script.
func (r *TestRunner) Err() error {
	return errors.Join(r.failures...)
}

func (r *TestRunner) fail(index int, st compiledStep, err error) {
	r.failures = append(r.failures, fmt.Errorf("step %d (%s): %w", index, st.Action, err))
}

// step advances the runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	if len(s.injectQueue) > 0 {
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

	index := r.cursor
	st := r.steps[index]
	r.cursor++
	if err := r.run(s, st); err != nil {
		r.fail(index, st, err)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) run(s *Scene, st compiledStep) error {
	switch st.kind {
	case stepWait:
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
		return nil
	case stepScreenshot:
		s.Screenshot(st.Label)
		return nil
	case stepExpect:
		return r.expect(st)
	}

	x, y, err := s.scriptPoint(st.Target, st.At)
	if err != nil {
		return err
	}
	switch st.kind {
	case stepPress:
		s.InjectPress(x, y)
	case stepMove:
		s.InjectMove(x, y)
	case stepHover:
		s.InjectHover(x, y)
	case stepRelease:
		s.InjectRelease(x, y)
	case stepClick:
		s.InjectClick(x, y)
	case stepDrag:
		tx, ty, err := s.scriptPoint(st.ToTarget, st.To)
		if err != nil {
			return err
		}
		s.InjectDrag(x, y, tx, ty, st.Frames)
	}
	return nil
}

// expect matches and then clears the events observed since the last check.
func (r *TestRunner) expect(st compiledStep) error {
	matched := 0
	for _, e := range r.observed {
		if e.name != st.Event {
			continue
		}
		if st.Target != "" && (e.source == nil || e.source.Name != st.Target) {
			continue
		}
		matched++
	}
	r.observed = r.observed[:0]

	what := st.Event
	if st.Target != "" {
		what += " on " + st.Target
	}
	switch {
	case st.Count != nil && matched != *st.Count:
		return fmt.Errorf("%w: %s raised %d times, want %d", ErrExpectationFailed, what, matched, *st.Count)
	case st.Count == nil && matched == 0:
		return fmt.Errorf("%w: %s was not raised", ErrExpectationFailed, what)
	}
	return nil
}

// scriptPoint resolves a step's point into scene coordinates. A named target
// must be a visual node; the point is in its local frame and defaults to its
// center.
func (s *Scene) scriptPoint(target string, at *[2]float64) (x, y float64, err error) {
	if target == "" {
		return at[0], at[1], nil
	}
	s.ensureLayout()
	v := s.root.FindByName(target).AsVisual()
	if v == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrTargetNotFound, target)
	}
	lx, ly := v.Width()/2, v.Height()/2
	if at != nil {
		lx, ly = at[0], at[1]
	}
	x, y = v.LocalToScene(lx, ly)
	return x, y, nil
}
