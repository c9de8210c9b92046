package mcacollide

import (
	"cmp"
	"slices"
)

// MergeBlocks compresses the blocks of a stack into boxes. Runs along x are
// found first, then stretched along z within each plate, then stacked along y
// across plates. The boxes cover every block of the stack exactly once.
//
// The result is ordered by the height the boxes end at.
func MergeBlocks(stack *BlockStack) []BlockSequence {
	var all []BlockSequence
	var prev []BlockSequence
	prevY := 0

	for i, plate := range stack.Plates() {
		var plane []BlockSequence
		for _, row := range plate.Rows() {
			plane = stretchSequencesByZ(mergeBlocksXRow(row.Blocks), plane, row.Z)
		}

		if i > 0 && prevY == plate.Y-1 {
			prev = stretchSequencesByY(prev, plane)
		}

		// Nothing above can absorb the previous plate any more
		all = append(all, prev...)
		prev, prevY = plane, plate.Y
	}

	return append(all, prev...)
}

// stretchSequencesByY stacks the sequences of the plate below onto the current
// plate. Each previous sequence with the same footprint as a current one is
// absorbed by pulling the current sequence's start down to it. The previous
// sequences that were not absorbed are returned; they are final.
func stretchSequencesByY(prev []BlockSequence, current []BlockSequence) []BlockSequence {
	var remaining []BlockSequence

	for _, seq := range prev {
		absorbed := false
		for i := range current {
			if current[i].Start.Y == seq.End.Y+1 && current[i].SameFootprint(seq) {
				current[i].expandStart(seq.Start)
				absorbed = true
				break
			}
		}

		if !absorbed {
			remaining = append(remaining, seq)
		}
	}

	return remaining
}

// stretchSequencesByZ merges the runs of row z into the open sequences of the
// plate. A run extends the first sequence that ends on the previous row and
// spans the same x interval; otherwise it opens a new sequence.
func stretchSequencesByZ(row []BlockSequence, plane []BlockSequence, z int) []BlockSequence {
	// Only sequences from earlier rows are candidates
	open := len(plane)

	for _, seq := range row {
		merged := false
		for i := 0; i < open; i++ {
			if plane[i].HasZEndOn(z-1) && plane[i].SameXSpan(seq) {
				plane[i].expandZEnd(seq)
				merged = true
				break
			}
		}

		if !merged {
			plane = append(plane, seq)
		}
	}

	return plane
}

// mergeBlocksXRow splits one row into maximal runs of consecutive x.
func mergeBlocksXRow(row []BlockCoordinates) []BlockSequence {
	if len(row) == 0 {
		return nil
	}

	row = slices.Clone(row)
	slices.SortFunc(row, func(a, b BlockCoordinates) int {
		return cmp.Compare(a.X, b.X)
	})

	var sequences []BlockSequence
	start := 0

	for i := 1; i < len(row); i++ {
		if row[i].X != row[i-1].X+1 {
			sequences = append(sequences, NewBlockSequence(row[start], row[i-1]))
			start = i
		}
	}

	return append(sequences, NewBlockSequence(row[start], row[len(row)-1]))
}
