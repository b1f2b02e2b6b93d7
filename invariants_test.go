package ahocorasick

import (
	"fmt"
	"testing"
)

// TestBuilder_UniquePlacementAndNonCollision checks that every non-root
// state's in-edge is reachable from exactly one parent, and that no two
// edges of the same parent land in the same slot — across a pattern set
// wide enough to force multiple block extensions and closures.
func TestBuilder_UniquePlacementAndNonCollision(t *testing.T) {
	var patterns [][]byte
	for c := 0; c < 256; c++ {
		patterns = append(patterns, []byte{byte(c)})
		patterns = append(patterns, []byte{byte(c), byte((c + 37) % 256)})
		patterns = append(patterns, []byte{byte(c), byte((c + 101) % 256), byte((c + 7) % 256)})
	}

	b, err := NewBuilder(0)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	a, err := b.Build(patterns)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	parentOf := make(map[uint32]uint32)
	for i := 0; i < a.NumStates(); i++ {
		base, ok := a.Base(uint32(i))
		if !ok {
			continue
		}
		seen := make(map[uint32]bool)
		for c := 0; c < 256; c++ {
			child := base ^ uint32(c)
			if a.Check(child) != byte(c) {
				continue
			}
			if seen[child] {
				t.Fatalf("state %d: child %d claimed by two labels", i, child)
			}
			seen[child] = true
			if p, ok := parentOf[child]; ok {
				t.Fatalf("state %d claimed as child by both %d and %d", child, p, i)
			}
			parentOf[child] = uint32(i)
		}
	}

	// The matcher still finds every pattern.
	for _, p := range patterns {
		hits := walk(a, p)
		found := false
		for _, h := range hits {
			if h.start == 0 && h.end == len(p) {
				found = true
			}
		}
		if !found {
			t.Errorf("pattern %v not matched over itself", p)
		}
	}
}

// TestBuilder_FailLinkSuffixProperty checks that every state's fail target
// represents the longest proper suffix of its path that is also a prefix of
// some pattern, by brute force over a small alphabet.
func TestBuilder_FailLinkSuffixProperty(t *testing.T) {
	patterns := []string{"he", "she", "his", "hers"}
	b, err := NewBuilder(0)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	byteSlices := make([][]byte, len(patterns))
	for i, p := range patterns {
		byteSlices[i] = []byte(p)
	}
	a, err := b.Build(byteSlices)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	pathOf := map[uint32]string{0: ""}
	queue := []uint32{0}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		base, ok := a.Base(s)
		if !ok {
			continue
		}
		for c := 0; c < 256; c++ {
			child := base ^ uint32(c)
			if a.Check(child) != byte(c) {
				continue
			}
			if _, seen := pathOf[child]; seen {
				continue
			}
			pathOf[child] = pathOf[s] + string(rune(c))
			queue = append(queue, child)
		}
	}

	isPrefix := func(s string) bool {
		if s == "" {
			return true
		}
		for _, p := range patterns {
			if len(p) >= len(s) && p[:len(s)] == s {
				return true
			}
		}
		return false
	}

	longestSuffixPrefix := func(w string) string {
		for i := 1; i <= len(w); i++ {
			suf := w[i:]
			if isPrefix(suf) {
				return suf
			}
		}
		return ""
	}

	for s, w := range pathOf {
		if s == 0 {
			continue
		}
		wantSuffix := longestSuffixPrefix(w)
		gotFail := a.Fail(s)
		gotSuffix, ok := pathOf[gotFail]
		if !ok {
			t.Fatalf("fail(%d)=%d has no known path", s, gotFail)
		}
		if gotSuffix != wantSuffix {
			t.Errorf("state %q: fail path = %q, want %q", w, gotSuffix, wantSuffix)
		}
	}
}

// TestBuilder_OutputContiguity checks every state's output run is a
// contiguous stretch of the outputs array ending before the next is_begin
// record, and that it starts with an is_begin record unless it is the shared
// tail of a longer run owned by a state whose fail chain reaches it.
func TestBuilder_OutputContiguity(t *testing.T) {
	patterns := []string{"he", "she", "his", "hers", "a", "ab", "abc"}
	b, err := NewBuilder(0)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	byteSlices := make([][]byte, len(patterns))
	for i, p := range patterns {
		byteSlices[i] = []byte(p)
	}
	a, err := b.Build(byteSlices)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	outs := a.Outputs()
	if !outs[len(outs)-1].IsBegin() {
		t.Fatal("final sentinel is not is_begin")
	}

	ownersOf := make(map[uint32][]uint32)
	for i := 0; i < a.NumStates(); i++ {
		if pos, ok := a.OutputPos(uint32(i)); ok {
			ownersOf[pos] = append(ownersOf[pos], uint32(i))
		}
	}
	failChainReaches := func(from, to uint32) bool {
		for s := a.Fail(from); s != 0; s = a.Fail(s) {
			if s == to {
				return true
			}
		}
		return false
	}

	for i := 0; i < a.NumStates(); i++ {
		pos, ok := a.OutputPos(uint32(i))
		if !ok {
			continue
		}
		end := int(pos) + 1
		for end < len(outs) && !outs[end].IsBegin() {
			end++
		}
		if end == len(outs) {
			t.Errorf("state %d: output run at %d has no terminating is_begin record", i, pos)
		}
		if outs[pos].IsBegin() {
			continue
		}
		head := pos
		for head > 0 && !outs[head].IsBegin() {
			head--
		}
		shared := false
		for _, owner := range ownersOf[head] {
			if failChainReaches(owner, uint32(i)) {
				shared = true
			}
		}
		if !outs[head].IsBegin() || !shared {
			t.Errorf("state %d: output run at %d does not start with is_begin and is not the shared tail of a fail-chain descendant's run", i, pos)
		}
	}
}

func ExampleBuilder() {
	b, err := NewBuilder(0)
	if err != nil {
		panic(err)
	}
	a, err := b.Build([][]byte{[]byte("bcd"), []byte("ab"), []byte("a")})
	if err != nil {
		panic(err)
	}
	for _, h := range walk(a, []byte("abcd")) {
		fmt.Println(h.start, h.end, h.value)
	}
	// Output:
	// 0 1 2
	// 0 2 1
	// 1 4 0
}
