package mcacollide

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/richgrov/mcacollide/blocks"
	"github.com/richgrov/mcacollide/level"
)

// ReadLevel collects the coordinates of every solid block inside the exported
// box from the region files in dir. Region files are decoded concurrently and
// the result is unordered.
//
// Region files that were never generated, or are empty, hold no blocks. Any
// error reading or decoding a present file fails the whole call.
func ReadLevel(ctx context.Context, dir string, params ExportParams) ([]BlockCoordinates, error) {
	paths, err := findRegionFiles(dir, NeededFiles(params))
	if err != nil {
		return nil, err
	}

	b := params.bounds()
	skip := params.skipSet()

	g, ctx := errgroup.WithContext(ctx)
	if params.Workers > 0 {
		g.SetLimit(params.Workers)
	}

	results := make(chan []BlockCoordinates, len(paths))
	var waitErr error

	go func() {
		for _, path := range paths {
			g.Go(func() error {
				voxels, err := readRegionFile(ctx, path, b, skip)
				if err != nil {
					return fmt.Errorf("%s: %w", filepath.Base(path), err)
				}

				results <- voxels
				return nil
			})
		}

		waitErr = g.Wait()
		close(results)
	}()

	var all []BlockCoordinates
	for voxels := range results {
		all = append(all, voxels...)
	}

	if waitErr != nil {
		return nil, waitErr
	}
	return all, nil
}

// findRegionFiles resolves the needed region positions to the non-empty files
// present in dir. Anvil files are preferred over McRegion files of the same
// position. Symbolic links are followed.
func findRegionFiles(dir string, needed []level.RegionPos) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(entries))
	for _, entry := range entries {
		present[entry.Name()] = true
	}

	paths := make([]string, 0, len(needed))
	for _, pos := range needed {
		for _, ext := range []string{level.AnvilExt, level.McRegionExt} {
			name := level.FileName(pos, ext)
			if !present[name] {
				continue
			}

			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err != nil {
				return nil, err
			}
			if info.Mode().IsRegular() && info.Size() > 0 {
				paths = append(paths, path)
				break
			}
		}
	}

	return paths, nil
}

func readRegionFile(ctx context.Context, path string, b bounds, skip blocks.Set) ([]BlockCoordinates, error) {
	region, err := level.Open(path)
	if err != nil {
		return nil, err
	}

	xRange := fileRange(region.Pos.X, b.x)
	zRange := fileRange(region.Pos.Z, b.z)

	chunks, err := region.Chunks()
	if err != nil {
		return nil, err
	}

	var voxels []BlockCoordinates
	for _, raw := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		baseX, baseZ := region.ChunkBase(raw.Pos)
		chunkX := Range{baseX, baseX + level.ChunkSize - 1}
		chunkZ := Range{baseZ, baseZ + level.ChunkSize - 1}

		// Skipping here avoids decompressing chunks outside the box
		if !xRange.Overlaps(chunkX) || !zRange.Overlaps(chunkZ) {
			continue
		}

		chunk, err := level.DecodeChunk(raw)
		if err != nil {
			return nil, fmt.Errorf("chunk %d,%d: %w", raw.Pos.X, raw.Pos.Z, err)
		}

		yRange := b.y.Intersect(Range{chunk.MinY(), chunk.MaxY()})
		for y := yRange.Min; y <= yRange.Max; y++ {
			for x := 0; x < level.ChunkSize; x++ {
				for z := 0; z < level.ChunkSize; z++ {
					voxelX, voxelZ := baseX+x, baseZ+z
					if !xRange.Contains(voxelX) || !zRange.Contains(voxelZ) {
						continue
					}

					if skip.Skips(chunk.Block(x, y, z)) {
						continue
					}

					voxels = append(voxels, BlockCoordinates{voxelX, y, voxelZ})
				}
			}
		}
	}

	return voxels, nil
}
