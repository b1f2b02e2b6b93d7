// Package ahocorasick builds double-array Aho-Corasick automata for
// multi-pattern byte-string matching.
//
// A Builder takes a set of byte patterns, each carrying a 32-bit value, and
// produces an immutable Automaton laid out as a double array: a trie edge
// labeled by byte c from state s lives at slot base(s) XOR c. This gives a
// compact, cache-friendly representation with O(1) per-byte transitions.
//
// Building proceeds in four phases: the patterns are inserted into a
// transient sparse trie, the trie is placed into the double array via a
// free-slot allocator, Aho-Corasick failure links are computed breadth-first
// over the placed array, and each state's output (match) run is compacted
// into a single shared array with suffix sharing.
//
// This package implements construction only. It does not provide a runtime
// matcher: the Automaton returned by Build/BuildWithValues exposes the
// base/check/fail/output_pos fields a matcher needs (via Automaton and Output
// accessors), but walking those fields to find matches in a haystack is left
// to the caller.
//
// Basic usage:
//
//	b, err := ahocorasick.NewBuilder(0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	automaton, err := b.Build([][]byte{[]byte("bcd"), []byte("ab"), []byte("a")})
//	if err != nil {
//	    log.Fatal(err)
//	}
package ahocorasick
