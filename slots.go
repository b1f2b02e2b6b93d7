package ahocorasick

import (
	"fmt"

	"github.com/coregx/ahocorasick/internal/conv"
)

// buildDoubleArray places every sparse-trie state into the double array, in
// order of trie id, then closes all remaining blocks so every slot's check
// byte is safe to probe.
func (b *Builder) buildDoubleArray(trie *sparseTrie) error {
	stateIDMap := make([]uint32, trie.numStates())
	for i := range stateIDMap {
		stateIDMap[i] = noIdx
	}
	stateIDMap[0] = 0

	b.initArray()

	for i := 0; i < trie.numStates(); i++ {
		idx := stateIDMap[i]
		b.extras[idx].output = trie.outputs[i]

		edges := trie.edges[i]
		if len(edges) == 0 {
			continue
		}

		base := b.findBase(edges)
		if base >= conv.IntToUint32(len(b.states)) {
			if err := b.extendArray(); err != nil {
				return err
			}
		}

		for _, e := range edges {
			childIdx := base ^ uint32(e.label)
			b.fixState(childIdx)
			b.states[childIdx].check = e.label
			stateIDMap[e.child] = childIdx
		}
		b.states[idx].base = base
		b.extras[base].usedBase = true
	}

	// If the root block never closed during placement, close it now so
	// CHECK[0] and the rest of the block get a valid repaired value.
	if len(b.states) <= freeStates {
		b.closeBlock(0)
	}

	for b.headIdx != noIdx {
		b.closeBlock(b.headIdx / blockLen)
	}
	return nil
}

// initArray allocates the first block, links all blockLen slots into a
// circular free list, and fixes slot 0 (root) with check 0.
func (b *Builder) initArray() {
	b.states = append(b.states, newStateBlock()...)
	b.extras = append(b.extras, make([]extra, blockLen)...)
	b.headIdx = 0

	for i := uint32(0); i < blockLen; i++ {
		if i == 0 {
			b.extras[i].prev = blockLen - 1
		} else {
			b.extras[i].prev = i - 1
		}
		if i == blockLen-1 {
			b.extras[i].next = 0
		} else {
			b.extras[i].next = i + 1
		}
	}

	b.states[0].check = 0
	b.fixState(0)
}

// fixState removes slot i from the free list and marks it used_index.
func (b *Builder) fixState(i uint32) {
	b.extras[i].usedIndex = true

	next := b.extras[i].next
	prev := b.extras[i].prev
	b.extras[prev].next = next
	b.extras[next].prev = prev

	if b.headIdx == i {
		if next == i {
			b.headIdx = noIdx
		} else {
			b.headIdx = next
		}
	}
}

// findBase walks the free list looking for a base that places edges[0] at
// the currently-inspected free slot and every other edge at an unclaimed
// slot, without colliding with a base already chosen by another parent. It
// returns len(states) if no such base exists in the free list, signalling
// the caller to extend the array.
func (b *Builder) findBase(edges []trieEdge) uint32 {
	if b.headIdx == noIdx {
		return conv.IntToUint32(len(b.states))
	}
	idx := b.headIdx
	for {
		base := idx ^ uint32(edges[0].label)
		if b.checkValidBase(base, edges) {
			return base
		}
		idx = b.extras[idx].next
		if idx == b.headIdx {
			break
		}
	}
	return conv.IntToUint32(len(b.states))
}

// checkValidBase reports whether base may be used as a parent's base value
// for the given edges: not already claimed as a base, and every sibling
// target slot still unclaimed as a child.
func (b *Builder) checkValidBase(base uint32, edges []trieEdge) bool {
	if b.extras[base].usedBase {
		return false
	}
	for _, e := range edges {
		idx := base ^ uint32(e.label)
		if b.extras[idx].usedIndex {
			return false
		}
	}
	return true
}

// extendArray appends one more block of blockLen slots to the tail of the
// free list, closing the oldest open block once more than freeStates slots
// are outstanding.
func (b *Builder) extendArray() error {
	oldLen := uint32(len(b.states))
	newLen := oldLen + blockLen

	if uint64(oldLen)+blockLen > uint64(stateIdxInvalid) {
		return &AutomatonScaleError{Msg: fmt.Sprintf("states.len() must be <= %d", stateIdxInvalid)}
	}

	b.states = append(b.states, newStateBlock()...)
	b.extras = append(b.extras, make([]extra, blockLen)...)
	for i := oldLen; i < newLen; i++ {
		b.extras[i].next = i + 1
		b.extras[i].prev = i - 1
	}

	if b.headIdx == noIdx {
		b.extras[oldLen].prev = newLen - 1
		b.extras[newLen-1].next = oldLen
		b.headIdx = oldLen
	} else {
		tailIdx := b.extras[b.headIdx].prev
		b.extras[oldLen].prev = tailIdx
		b.extras[tailIdx].next = oldLen
		b.extras[newLen-1].next = b.headIdx
		b.extras[b.headIdx].prev = newLen - 1
	}

	if freeStates <= int(oldLen) {
		b.closeBlock((oldLen - freeStates) / blockLen)
	}

	return nil
}

// closeBlock finalises block blockIdx: earlier blocks must already be
// closed. If this is the first closure touching the block (block 0, or the
// free list head still points inside it), the unused-base repair pass runs
// first; then every remaining free slot in the block is fixed.
func (b *Builder) closeBlock(blockIdx uint32) {
	begIdx := blockIdx * blockLen
	endIdx := begIdx + blockLen

	// noIdx is the maximum uint32, so headIdx < endIdx is false whenever the
	// free list is empty; no separate noIdx check is needed.
	if blockIdx == 0 || b.headIdx < endIdx {
		b.repairUnusedBase(blockIdx)
	}
	for b.headIdx < endIdx {
		b.fixState(b.headIdx)
	}
}

// repairUnusedBase finds a slot in the block never claimed as a base (one
// must exist by pigeonhole: 256 distinct children would need 256 distinct
// XOR targets) and, for every byte c, gives the still-free slot u^c a check
// of c. A runtime probe base(parent)^c with check == c can then never land
// on an unclaimed slot, since that would require base(parent) == u, and u is
// provably unused as a base.
func (b *Builder) repairUnusedBase(blockIdx uint32) {
	begIdx := blockIdx * blockLen
	endIdx := begIdx + blockLen

	unusedBase := endIdx
	for i := begIdx; i < endIdx; i++ {
		if !b.extras[i].usedBase {
			unusedBase = i
			break
		}
	}
	if unusedBase == endIdx {
		panic("ahocorasick: no unused base in block, builder invariant violated")
	}

	for c := 0; c < blockLen; c++ {
		idx := unusedBase ^ uint32(c)
		if idx == 0 || !b.extras[idx].usedIndex {
			b.states[idx].check = byte(c)
		}
	}
}
