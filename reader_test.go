package mcacollide

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/richgrov/mcacollide/level"
	"github.com/richgrov/mcacollide/level/leveltest"
)

// testLevel writes a small superflat-like world: bedrock at -64, a stone
// floor patch at -63 and a stone pillar at 1, 5.
func testLevel(t *testing.T, opts leveltest.Options) string {
	t.Helper()

	world := leveltest.NewWorld()
	world.Fill(0, -64, 0, 15, -64, 15, "minecraft:bedrock")
	world.Fill(1, -63, 1, 2, -63, 2, "minecraft:stone")
	world.Fill(1, -63, 5, 1, -61, 5, "minecraft:stone")
	world.Set(2, -62, 6, "minecraft:cave_air")

	dir := t.TempDir()
	if _, err := world.Write(dir, opts); err != nil {
		t.Fatal(err)
	}
	return dir
}

func readLevel(t *testing.T, dir string, params ExportParams) []BlockCoordinates {
	t.Helper()

	voxels, err := ReadLevel(context.Background(), dir, params)
	if err != nil {
		t.Fatal(err)
	}
	return voxels
}

func TestReadLevelRanges(t *testing.T) {
	dir := testLevel(t, leveltest.Options{})

	cases := []struct {
		name   string
		params ExportParams
		want   []BlockCoordinates
	}{
		{
			"floor patch",
			ExportParams{Start: BlockCoordinates{1, -63, 1}, End: BlockCoordinates{2, -63, 2}},
			[]BlockCoordinates{{1, -63, 1}, {1, -63, 2}, {2, -63, 1}, {2, -63, 2}},
		},
		{
			"pillar",
			ExportParams{Start: BlockCoordinates{1, -63, 5}, End: BlockCoordinates{2, -60, 6}},
			[]BlockCoordinates{{1, -63, 5}, {1, -62, 5}, {1, -61, 5}},
		},
		{
			"reversed corners",
			ExportParams{Start: BlockCoordinates{2, -60, 6}, End: BlockCoordinates{1, -63, 5}},
			[]BlockCoordinates{{1, -63, 5}, {1, -62, 5}, {1, -61, 5}},
		},
		{
			"skip stone",
			ExportParams{Start: BlockCoordinates{1, -63, 1}, End: BlockCoordinates{2, -63, 2}, SkipBlocks: []string{"minecraft:stone"}},
			nil,
		},
		{
			"skip stone keeps bedrock",
			ExportParams{Start: BlockCoordinates{1, -64, 1}, End: BlockCoordinates{2, -63, 2}, SkipBlocks: []string{"stone"}},
			[]BlockCoordinates{{1, -64, 1}, {1, -64, 2}, {2, -64, 1}, {2, -64, 2}},
		},
		{
			"above everything",
			ExportParams{Start: BlockCoordinates{0, 100, 0}, End: BlockCoordinates{15, 200, 15}},
			nil,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := readLevel(t, dir, c.params)
			if !slices.Equal(got, c.want) {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestReadLevelFormats(t *testing.T) {
	formats := []struct {
		name string
		opts leveltest.Options
	}{
		{"modern", leveltest.Options{}},
		{"flattened", leveltest.Options{Format: leveltest.Flattened, DataVersion: 2230}},
		{"numeric", leveltest.Options{Format: leveltest.Numeric}},
		{"mcregion", leveltest.Options{Format: leveltest.McRegion}},
		{"lz4", leveltest.Options{Compression: level.CompressionLZ4}},
	}

	for _, f := range formats {
		t.Run(f.name, func(t *testing.T) {
			world := leveltest.NewWorld()
			world.Fill(3, 10, 3, 4, 11, 3, "minecraft:stone")
			world.Set(3, 12, 3, "minecraft:dirt")

			dir := t.TempDir()
			if _, err := world.Write(dir, f.opts); err != nil {
				t.Fatal(err)
			}

			got := readLevel(t, dir, ExportParams{Start: BlockCoordinates{0, 0, 0}, End: BlockCoordinates{15, 20, 15}})
			want := []BlockCoordinates{{3, 10, 3}, {4, 10, 3}, {3, 11, 3}, {4, 11, 3}, {3, 12, 3}}
			if !slices.Equal(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestReadLevelAcrossRegions(t *testing.T) {
	world := leveltest.NewWorld()
	points := []BlockCoordinates{{-1, 0, -1}, {0, 0, 0}, {-1, 0, 0}, {0, 0, -1}, {511, 0, 0}, {512, 0, 0}}
	for _, p := range points {
		world.Set(p.X, p.Y, p.Z, "minecraft:stone")
	}

	dir := t.TempDir()
	if _, err := world.Write(dir, leveltest.Options{}); err != nil {
		t.Fatal(err)
	}
	// Generated regions without blocks in range
	for _, name := range []string{"r.-1.1.mca", "r.1.1.mca"} {
		if err := os.WriteFile(filepath.Join(dir, name), make([]byte, 2*level.SectorSize), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	for _, workers := range []int{0, 1, 2} {
		got := readLevel(t, dir, ExportParams{
			Start:   BlockCoordinates{-1, 0, -1},
			End:     BlockCoordinates{512, 0, 512},
			Workers: workers,
		})

		if len(got) != len(points) {
			t.Fatalf("workers %d: got %v, want %v", workers, got, points)
		}
		for _, p := range points {
			if !slices.Contains(got, p) {
				t.Errorf("workers %d: missing %v", workers, p)
			}
		}
	}
}

func TestReadLevelNegativeRegionEdge(t *testing.T) {
	world := leveltest.NewWorld()
	world.Set(-512, 0, -512, "minecraft:stone")
	world.Set(-1, 0, -1, "minecraft:stone")
	world.Set(-513, 0, -513, "minecraft:stone")

	dir := t.TempDir()
	if _, err := world.Write(dir, leveltest.Options{}); err != nil {
		t.Fatal(err)
	}

	got := readLevel(t, dir, ExportParams{Start: BlockCoordinates{-512, 0, -512}, End: BlockCoordinates{-1, 0, -1}})
	want := []BlockCoordinates{{-512, 0, -512}, {-1, 0, -1}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReadLevelMissingRegion(t *testing.T) {
	dir := testLevel(t, leveltest.Options{})

	got := readLevel(t, dir, ExportParams{Start: BlockCoordinates{-5, -64, 0}, End: BlockCoordinates{5, -64, 0}})
	want := []BlockCoordinates{{0, -64, 0}, {1, -64, 0}, {2, -64, 0}, {3, -64, 0}, {4, -64, 0}, {5, -64, 0}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReadLevelEmptyRegionFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "r.0.0.mca"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	got := readLevel(t, dir, ExportParams{End: BlockCoordinates{5, 5, 5}})
	if len(got) != 0 {
		t.Errorf("got %v from an empty region file", got)
	}
}

func TestReadLevelMissingDir(t *testing.T) {
	_, err := ReadLevel(context.Background(), filepath.Join(t.TempDir(), "nope"), ExportParams{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v, want os.ErrNotExist", err)
	}
}

func TestReadLevelPrefersAnvil(t *testing.T) {
	dir := t.TempDir()

	anvil := leveltest.NewWorld()
	anvil.Set(1, 1, 1, "minecraft:stone")
	if _, err := anvil.Write(dir, leveltest.Options{}); err != nil {
		t.Fatal(err)
	}

	old := leveltest.NewWorld()
	old.Set(2, 2, 2, "minecraft:stone")
	if _, err := old.Write(dir, leveltest.Options{Format: leveltest.McRegion}); err != nil {
		t.Fatal(err)
	}

	got := readLevel(t, dir, ExportParams{End: BlockCoordinates{15, 15, 15}})
	if want := []BlockCoordinates{{1, 1, 1}}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReadLevelCorruptRegion(t *testing.T) {
	dir := t.TempDir()
	data := make([]byte, 2*level.SectorSize)
	data[3] = 1 // chunk 0,0 at sector 0

	if err := os.WriteFile(filepath.Join(dir, "r.0.0.mca"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadLevel(context.Background(), dir, ExportParams{End: BlockCoordinates{5, 5, 5}})
	if !errors.Is(err, level.ErrInvalidChunk) {
		t.Fatalf("got %v, want ErrInvalidChunk", err)
	}
}

func TestReadLevelCanceled(t *testing.T) {
	dir := testLevel(t, leveltest.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadLevel(ctx, dir, ExportParams{End: BlockCoordinates{15, 0, 15}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestExport(t *testing.T) {
	dir := testLevel(t, leveltest.Options{})

	boxes, err := Export(context.Background(), dir, ExportParams{
		Start: BlockCoordinates{0, -64, 0},
		End:   BlockCoordinates{15, -60, 15},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []BlockSequence{
		seq(0, -64, 0, 15, -64, 15),
		seq(1, -63, 1, 2, -63, 2),
		seq(1, -63, 5, 1, -61, 5),
	}
	if !slices.Equal(boxes, want) {
		t.Errorf("got %v, want %v", boxes, want)
	}
}

func TestReadLevelFollowsSymlinks(t *testing.T) {
	world := testLevel(t, leveltest.Options{})

	dir := t.TempDir()
	if err := os.Symlink(filepath.Join(world, "r.0.0.mca"), filepath.Join(dir, "r.0.0.mca")); err != nil {
		t.Skipf("symlinks unavailable: %s", err)
	}

	got := readLevel(t, dir, ExportParams{Start: BlockCoordinates{1, -63, 1}, End: BlockCoordinates{2, -63, 2}})
	want := []BlockCoordinates{{1, -63, 1}, {1, -63, 2}, {2, -63, 1}, {2, -63, 2}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReadLevelSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "r.0.0.mca"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := readLevel(t, dir, ExportParams{End: BlockCoordinates{5, 5, 5}})
	if len(got) != 0 {
		t.Errorf("got %v from a directory named like a region", got)
	}
}
