package mcacollide

import "context"

// Export reads the exported box from the region files in dir and merges its
// solid blocks into collision boxes.
func Export(ctx context.Context, dir string, params ExportParams) ([]BlockSequence, error) {
	voxels, err := ReadLevel(ctx, dir, params)
	if err != nil {
		return nil, err
	}

	return Merge(voxels), nil
}

// Merge compresses a set of distinct block coordinates into boxes.
func Merge(voxels []BlockCoordinates) []BlockSequence {
	return MergeBlocks(NewBlockStack(voxels))
}
