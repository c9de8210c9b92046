package mcacollide

import (
	"maps"
	"slices"
)

// BlockStack groups blocks by height, then by row, which is the order the
// merge passes consume them in.
type BlockStack struct {
	plates map[int]map[int][]BlockCoordinates
	len    int
}

// Plate holds every block at one height.
type Plate struct {
	Y    int
	rows map[int][]BlockCoordinates
}

// Row holds every block sharing one height and one z. Blocks are unordered.
type Row struct {
	Z      int
	Blocks []BlockCoordinates
}

func NewBlockStack(blocks []BlockCoordinates) *BlockStack {
	stack := &BlockStack{
		plates: make(map[int]map[int][]BlockCoordinates),
		len:    len(blocks),
	}

	for _, block := range blocks {
		plate, ok := stack.plates[block.Y]
		if !ok {
			plate = make(map[int][]BlockCoordinates)
			stack.plates[block.Y] = plate
		}
		plate[block.Z] = append(plate[block.Z], block)
	}

	return stack
}

// Len is the number of blocks in the stack.
func (s *BlockStack) Len() int {
	return s.len
}

// Plates returns the plates in ascending y.
func (s *BlockStack) Plates() []Plate {
	plates := make([]Plate, 0, len(s.plates))
	for _, y := range slices.Sorted(maps.Keys(s.plates)) {
		plates = append(plates, Plate{Y: y, rows: s.plates[y]})
	}
	return plates
}

// Rows returns the rows of the plate in ascending z.
func (p Plate) Rows() []Row {
	rows := make([]Row, 0, len(p.rows))
	for _, z := range slices.Sorted(maps.Keys(p.rows)) {
		rows = append(rows, Row{Z: z, Blocks: p.rows[z]})
	}
	return rows
}
