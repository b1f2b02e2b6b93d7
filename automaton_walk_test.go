package ahocorasick

// matchHit is one reported match in emission order: the half-open byte
// range [start, end) and the value of the pattern that matched there.
type matchHit struct {
	start, end int
	value      uint32
}

// walk drives automaton a over haystack following exactly the transition
// and emission rules an external matcher is contracted to implement: from
// state s on byte c, the
// next state is base(s)^c if that slot's check equals c, else follow
// fail(s) and retry, with root's fail-on-miss staying at root. At every
// position, if the current state's output_pos is set, every record from
// there up to (excluding) the next is_begin record is reported.
//
// This exists only to exercise the builder's output in tests; it is not
// part of the package's public API.
func walk(a *Automaton, haystack []byte) []matchHit {
	var hits []matchHit
	state := uint32(0)

	for i, c := range haystack {
		for {
			if base, ok := a.Base(state); ok {
				next := base ^ uint32(c)
				if a.Check(next) == c {
					state = next
					break
				}
			}
			if state == 0 {
				break
			}
			state = a.Fail(state)
		}

		end := i + 1
		if pos, ok := a.OutputPos(state); ok {
			outs := a.Outputs()
			p := pos
			hits = append(hits, matchHit{start: end - int(outs[p].Length()), end: end, value: outs[p].Value()})
			for p++; !outs[p].IsBegin(); p++ {
				hits = append(hits, matchHit{start: end - int(outs[p].Length()), end: end, value: outs[p].Value()})
			}
		}
	}

	return hits
}
