package ahocorasick

import (
	"fmt"

	"github.com/coregx/ahocorasick/internal/conv"
)

// buildOutputs materialises each visited state's match run into a single
// flat outputs array, walking visits in reverse (deepest states first) so a
// state discovered via another state's fail chain can share its tail.
func (b *Builder) buildOutputs() error {
	checkScale := func() error {
		if uint64(len(b.outputs)) > uint64(outputPosInvalid) {
			return &AutomatonScaleError{Msg: fmt.Sprintf("outputs.len() must be <= %d", outputPosInvalid)}
		}
		return nil
	}

	for vi := len(b.visits) - 1; vi >= 0; vi-- {
		daStateIdx := b.visits[vi].daIdx

		out := b.extras[daStateIdx].output
		if out.value == valueInvalid {
			continue
		}
		if b.extras[daStateIdx].processed {
			continue
		}

		b.extras[daStateIdx].processed = true
		b.states[daStateIdx].outputPos = conv.IntToUint32(len(b.outputs))
		b.outputs = append(b.outputs, Output{value: out.value, length: out.length, isBegin: true})
		if err := checkScale(); err != nil {
			return err
		}

		for {
			daStateIdx = b.states[daStateIdx].fail
			if daStateIdx == 0 {
				break
			}

			out = b.extras[daStateIdx].output
			if out.value == valueInvalid {
				continue
			}

			if b.extras[daStateIdx].processed {
				clonePos := b.states[daStateIdx].outputPos
				for !b.outputs[clonePos].isBegin {
					b.outputs = append(b.outputs, b.outputs[clonePos])
					clonePos++
				}
				if err := checkScale(); err != nil {
					return err
				}
				break
			}

			b.extras[daStateIdx].processed = true
			b.states[daStateIdx].outputPos = conv.IntToUint32(len(b.outputs))
			b.outputs = append(b.outputs, Output{value: out.value, length: out.length, isBegin: false})
		}
	}

	b.outputs = append(b.outputs, Output{value: valueInvalid, length: lengthInvalid, isBegin: true})
	return checkScale()
}

// setDummyOutputs propagates output_pos to states that have no pattern of
// their own but whose nearest fail ancestor does, so matching at such a
// state directly yields that ancestor's run without an explicit fail walk.
func (b *Builder) setDummyOutputs() {
	for _, sp := range b.visits {
		daStateIdx := sp.daIdx
		if b.extras[daStateIdx].processed {
			continue
		}

		failIdx := b.states[daStateIdx].fail
		if pos, ok := b.states[failIdx].OutputPos(); ok {
			b.states[daStateIdx].outputPos = pos
		}
	}
}
