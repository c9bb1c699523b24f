package validation

// State is the visible validation state of an input.
type State int

const (
	// Pristine inputs have never been blurred; their errors are computed but hidden.
	Pristine State = iota
	TouchedValid
	TouchedInvalid
)

func (s State) String() string {
	switch s {
	case Pristine:
		return "pristine"
	case TouchedValid:
		return "touched-valid"
	case TouchedInvalid:
		return "touched-invalid"
	default:
		return "unknown"
	}
}

// Machine tracks value, touched flag and the eagerly computed result of one input.
// Transitions happen only on Change and Blur. Every widget (text, date range, skill
// list) composes a Machine instead of keeping its own touched/error copies.
type Machine[T any] struct {
	check    func(T) Result
	value    T
	touched  bool
	result   Result
	reported string
}

// NewMachine creates a pristine machine and evaluates check against the initial value.
func NewMachine[T any](value T, check func(T) Result) *Machine[T] {
	m := &Machine[T]{check: check, value: value}
	m.result = check(value)
	return m
}

// NewField returns a machine for a plain text input.
func NewField(label, value string, rules Rules) *Machine[string] {
	return NewMachine(value, func(v string) Result {
		return Check(label, v, rules)
	})
}

// Change records a new value and re-evaluates it. A message pushed with Report is dropped.
func (m *Machine[T]) Change(value T) Result {
	m.value = value
	m.reported = ""
	m.result = m.check(value)
	return m.Result()
}

// Blur marks the input touched, which makes its error visible.
func (m *Machine[T]) Blur() Result {
	m.touched = true
	m.result = m.check(m.value)
	return m.Result()
}

// Report pushes an externally computed error (e.g. from document validation) into the
// input until the next Change.
func (m *Machine[T]) Report(msg string) {
	m.reported = msg
}

// Value returns the current value.
func (m *Machine[T]) Value() T {
	return m.value
}

// Touched reports whether the input has been blurred at least once.
func (m *Machine[T]) Touched() bool {
	return m.touched
}

// Result returns the current evaluation regardless of touched state.
func (m *Machine[T]) Result() Result {
	if m.reported != "" {
		return invalid(m.reported)
	}
	return m.result
}

// VisibleError returns the message to show next to the input, or "" while pristine.
func (m *Machine[T]) VisibleError() string {
	if !m.touched {
		return ""
	}
	return m.Result().Message
}

// State returns the visible state.
func (m *Machine[T]) State() State {
	switch {
	case !m.touched:
		return Pristine
	case m.Result().Valid:
		return TouchedValid
	default:
		return TouchedInvalid
	}
}
