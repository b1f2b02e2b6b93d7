package ahocorasick

import (
	"fmt"

	"github.com/coregx/ahocorasick/internal/conv"
)

// trieEdge is one labeled edge out of a sparse-trie state.
type trieEdge struct {
	label byte
	child uint32
}

// trieOutput is the terminal value carried by a sparse-trie state.
// value == valueInvalid means the state is not a pattern terminus.
type trieOutput struct {
	value  uint32
	length uint32
}

// sparseTrie is the transient, pointer-free adjacency-list trie built from
// the input patterns before double-array placement. State 0 is the root.
// Edge lookup is linear; sibling counts are small relative to the 256-byte
// alphabet, so no ordering is imposed or required.
type sparseTrie struct {
	edges   [][]trieEdge
	outputs []trieOutput
}

// newSparseTrie returns a trie containing only the root state.
func newSparseTrie() *sparseTrie {
	return &sparseTrie{
		edges:   [][]trieEdge{nil},
		outputs: []trieOutput{{value: valueInvalid, length: lengthInvalid}},
	}
}

// add inserts pattern with the given value, creating states for any missing
// byte along the path. It fails with PatternScaleError if value or the
// pattern length exceed representable limits, and DuplicatePatternError if
// the pattern was already terminal.
func (t *sparseTrie) add(pattern []byte, value uint32) error {
	if value == valueInvalid {
		return &PatternScaleError{Msg: fmt.Sprintf("pattern value must be < %d", valueInvalid)}
	}
	if uint64(len(pattern)) >= uint64(lengthInvalid) {
		return &PatternScaleError{Msg: fmt.Sprintf("pattern length must be < %d", lengthInvalid)}
	}

	stateID := uint32(0)
	for _, c := range pattern {
		child, ok := t.get(stateID, c)
		if !ok {
			child = conv.IntToUint32(len(t.edges))
			t.edges = append(t.edges, nil)
			t.outputs = append(t.outputs, trieOutput{value: valueInvalid, length: lengthInvalid})
			t.edges[stateID] = append(t.edges[stateID], trieEdge{label: c, child: child})
		}
		stateID = child
	}

	if t.outputs[stateID].value != valueInvalid {
		return &DuplicatePatternError{Pattern: append([]byte(nil), pattern...)}
	}
	t.outputs[stateID] = trieOutput{value: value, length: conv.IntToUint32(len(pattern))}
	return nil
}

// get returns the child of state via byte c, if any.
func (t *sparseTrie) get(state uint32, c byte) (uint32, bool) {
	for _, e := range t.edges[state] {
		if e.label == c {
			return e.child, true
		}
	}
	return 0, false
}

// numStates returns the number of sparse-trie states, including the root.
func (t *sparseTrie) numStates() int {
	return len(t.edges)
}
