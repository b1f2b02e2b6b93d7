package ahocorasick

import "fmt"

// addFails computes each state's failure link in breadth-first order,
// populating b.visits with the BFS order reused by output compaction.
func (b *Builder) addFails(trie *sparseTrie) error {
	b.states[0].fail = 0
	b.visits = make([]statePair, 0, trie.numStates())

	for _, e := range trie.edges[0] {
		daChildIdx, _ := b.childIndex(0, e.label)
		b.states[daChildIdx].fail = 0
		b.visits = append(b.visits, statePair{daIdx: daChildIdx, stIdx: e.child})
	}

	for vi := 0; vi < len(b.visits); vi++ {
		daStateIdx := b.visits[vi].daIdx
		stStateIdx := b.visits[vi].stIdx

		for _, e := range trie.edges[stStateIdx] {
			daChildIdx, _ := b.childIndex(daStateIdx, e.label)

			failIdx := b.states[daStateIdx].fail
			newFailIdx := uint32(0)
			for {
				if childFailIdx, ok := b.childIndex(failIdx, e.label); ok {
					newFailIdx = childFailIdx
					break
				}
				nextFailIdx := b.states[failIdx].fail
				if failIdx == 0 && nextFailIdx == 0 {
					newFailIdx = 0
					break
				}
				failIdx = nextFailIdx
			}
			if newFailIdx > failMax {
				return &AutomatonScaleError{Msg: fmt.Sprintf("fail index must be <= %d", failMax)}
			}

			b.states[daChildIdx].fail = newFailIdx
			b.visits = append(b.visits, statePair{daIdx: daChildIdx, stIdx: e.child})
		}
	}

	return nil
}

// childIndex returns the double-array index of state s's child via byte c,
// if the placer installed that edge.
func (b *Builder) childIndex(s uint32, c byte) (uint32, bool) {
	base, ok := b.states[s].Base()
	if !ok {
		return 0, false
	}
	child := base ^ uint32(c)
	if b.states[child].check != c {
		return 0, false
	}
	return child, true
}
