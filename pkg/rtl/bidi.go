package rtl

import (
	"slices"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/shaping"
)

// visualOrder reorders runs given in logical order for a right-to-left
// paragraph: the sequence is reversed, then every stretch of left-to-right
// runs (numbers, Latin) is put back in reading order.
func visualOrder(runs []shaping.Output) []shaping.Output {
	out := slices.Clone(runs)
	slices.Reverse(out)

	for i := 0; i < len(out); {
		if out[i].Direction.Progression() != di.FromTopLeft {
			i++
			continue
		}
		j := i
		for j < len(out) && out[j].Direction.Progression() == di.FromTopLeft {
			j++
		}
		slices.Reverse(out[i:j])
		i = j
	}

	for i := range out {
		out[i].VisualIndex = int32(i)
	}
	return out
}
