package ahocorasick

// State is one slot of the persistent double-array automaton. The child of
// state i via byte c lives at slot base(i) XOR c, provided that slot's check
// equals c.
type State struct {
	base      uint32 // stateIdxInvalid when unset (leaf)
	check     byte
	fail      uint32 // always set; root's fail is itself (0)
	outputPos uint32 // outputPosInvalid when unset
}

// newStateBlock returns blockLen freshly-initialised slots, with base and
// outputPos set to their unset sentinels (the zero value is not safe: both
// 0 and outputPos 0 are valid, reachable values).
func newStateBlock() []State {
	block := make([]State, blockLen)
	for i := range block {
		block[i].base = stateIdxInvalid
		block[i].outputPos = outputPosInvalid
	}
	return block
}

// Base returns the state's base value and whether it is set.
func (s State) Base() (uint32, bool) {
	if s.base == stateIdxInvalid {
		return 0, false
	}
	return s.base, true
}

// Check returns the byte label consumed by the in-edge arriving at this
// state.
func (s State) Check() byte {
	return s.check
}

// Fail returns the double-array index of this state's failure target.
func (s State) Fail() uint32 {
	return s.fail
}

// OutputPos returns the starting index of this state's output run and
// whether it is set.
func (s State) OutputPos() (uint32, bool) {
	if s.outputPos == outputPosInvalid {
		return 0, false
	}
	return s.outputPos, true
}

// Output is one record of a state's match run: the pattern value/length
// plus whether this record begins a new run.
type Output struct {
	value   uint32
	length  uint32
	isBegin bool
}

// Value returns the pattern value this output carries.
func (o Output) Value() uint32 {
	return o.value
}

// Length returns the pattern byte length this output carries.
func (o Output) Length() uint32 {
	return o.length
}

// IsBegin reports whether this record starts a new run in the outputs array.
// A state's run is the record at its output_pos followed by every record up
// to, but not including, the next one with IsBegin true. A state whose run is
// the shared tail of a longer run has a non-begin record at its output_pos.
func (o Output) IsBegin() bool {
	return o.isBegin
}

// Automaton is the built double-array Aho-Corasick artifact. It owns only
// states and outputs; all build-time scratch is discarded before it is
// returned. An Automaton is immutable and safe for concurrent read-only use.
type Automaton struct {
	states  []State
	outputs []Output
}

// NumStates returns the number of double-array slots, including unused ones
// inside closed blocks.
func (a *Automaton) NumStates() int {
	return len(a.states)
}

// Base returns state i's base value and whether it is set.
func (a *Automaton) Base(i uint32) (uint32, bool) {
	return a.states[i].Base()
}

// Check returns state i's check byte.
func (a *Automaton) Check(i uint32) byte {
	return a.states[i].Check()
}

// Fail returns state i's fail-link target.
func (a *Automaton) Fail(i uint32) uint32 {
	return a.states[i].Fail()
}

// OutputPos returns state i's output run start and whether it is set.
func (a *Automaton) OutputPos(i uint32) (uint32, bool) {
	return a.states[i].OutputPos()
}

// Outputs returns the flat outputs array, including the trailing sentinel.
func (a *Automaton) Outputs() []Output {
	return a.outputs
}
