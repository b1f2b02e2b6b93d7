package ahocorasick

import (
	"fmt"

	"github.com/coregx/ahocorasick/internal/conv"
)

// statePair links a double-array index to the sparse-trie state it was
// placed from. The visits queue built during fail-link construction is
// reused, in order, as the BFS order for output compaction.
type statePair struct {
	daIdx uint32
	stIdx uint32
}

// extra is builder-private scratch kept alongside each double-array slot.
// It never survives past Build/BuildWithValues.
type extra struct {
	usedBase  bool
	usedIndex bool
	next      uint32 // free-list link; stale once the slot is fixed
	prev      uint32
	output    trieOutput
	processed bool
}

// PatternValue pairs a pattern with an explicit value, for
// Builder.BuildWithValues.
type PatternValue struct {
	Pattern []byte
	Value   uint32
}

// Builder constructs a double-array Aho-Corasick Automaton from a set of
// byte-string patterns. A Builder is single-use: Build and BuildWithValues
// consume it, and a second call returns an error.
type Builder struct {
	states  []State
	outputs []Output
	extras  []extra
	visits  []statePair
	headIdx uint32
	trie    *sparseTrie
	used    bool
}

// NewBuilder creates a Builder whose initial capacity is initSize rounded
// down to a multiple of blockLen, capped at one block (so any initSize below
// blockLen reserves nothing). initSize must not exceed stateIdxInvalid.
func NewBuilder(initSize int) (*Builder, error) {
	if initSize < 0 || uint64(initSize) > uint64(stateIdxInvalid) {
		return nil, &InvalidArgumentError{
			Arg: "initSize",
			Msg: fmt.Sprintf("must be <= %d", stateIdxInvalid),
		}
	}

	initCapa := blockLen
	if rounded := (initSize / blockLen) * blockLen; rounded < initCapa {
		initCapa = rounded
	}

	return &Builder{
		states:  make([]State, 0, initCapa),
		extras:  make([]extra, 0, initCapa),
		headIdx: noIdx,
		trie:    newSparseTrie(),
	}, nil
}

// Add inserts pattern into the trie under construction with the given
// value. It fails with PatternScaleError when value or pattern.len exceed
// representable limits, or DuplicatePatternError when pattern was already
// added.
func (b *Builder) Add(pattern []byte, value uint32) error {
	if b.used {
		return &InvalidArgumentError{Arg: "builder", Msg: "already built"}
	}
	return b.trie.add(pattern, value)
}

// Build consumes the builder and returns the automaton for patterns, where
// pattern i is assigned value i.
func (b *Builder) Build(patterns [][]byte) (*Automaton, error) {
	for i, p := range patterns {
		if err := b.Add(p, conv.IntToUint32(i)); err != nil {
			return nil, err
		}
	}
	return b.finish()
}

// BuildWithValues consumes the builder and returns the automaton for the
// given pattern-value pairs.
func (b *Builder) BuildWithValues(patvals []PatternValue) (*Automaton, error) {
	for _, pv := range patvals {
		if err := b.Add(pv.Pattern, pv.Value); err != nil {
			return nil, err
		}
	}
	return b.finish()
}

// finish runs the remaining build phases (placement, fail links, output
// compaction) and returns the finished, shrunk automaton.
func (b *Builder) finish() (*Automaton, error) {
	if b.used {
		return nil, &InvalidArgumentError{Arg: "builder", Msg: "already built"}
	}
	b.used = true

	trie := b.trie
	b.trie = nil

	if err := b.buildDoubleArray(trie); err != nil {
		return nil, err
	}
	if err := b.addFails(trie); err != nil {
		return nil, err
	}
	if err := b.buildOutputs(); err != nil {
		return nil, err
	}
	b.setDummyOutputs()

	states := b.states
	outputs := b.outputs

	shrunkStates := make([]State, len(states))
	copy(shrunkStates, states)
	shrunkOutputs := make([]Output, len(outputs))
	copy(shrunkOutputs, outputs)

	return &Automaton{states: shrunkStates, outputs: shrunkOutputs}, nil
}
