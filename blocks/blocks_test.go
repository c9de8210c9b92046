package blocks_test

import (
	"testing"

	"github.com/richgrov/mcacollide/blocks"
)

func TestIsAir(t *testing.T) {
	for _, name := range []string{blocks.Air, blocks.CaveAir, blocks.VoidAir} {
		if !blocks.IsAir(name) {
			t.Errorf("%s should be air", name)
		}
	}

	if blocks.IsAir("minecraft:stone") {
		t.Error("stone should not be air")
	}
}

func TestSet(t *testing.T) {
	set := blocks.NewSet("stone", "minecraft:dirt", "mymod:ore")

	for _, name := range []string{"minecraft:stone", "minecraft:dirt", "mymod:ore"} {
		if !set.Contains(name) {
			t.Errorf("set should contain %s", name)
		}
	}

	if set.Contains("stone") {
		t.Error("set should only hold namespaced identifiers")
	}

	if !set.Skips(blocks.Air) {
		t.Error("air should always be skipped")
	}

	if set.Skips("minecraft:gravel") {
		t.Error("gravel is not in the set")
	}

	var empty blocks.Set
	if empty.Skips("minecraft:stone") || !empty.Skips(blocks.CaveAir) {
		t.Error("nil set should only skip air")
	}
}

func TestLegacyNames(t *testing.T) {
	cases := map[blocks.BlockType]string{
		blocks.LegacyAir: blocks.Air,
		blocks.Stone:     "minecraft:stone",
		blocks.Grass:     "minecraft:grass_block",
		blocks.Water:     "minecraft:water",
		blocks.Trapdoor:  "minecraft:oak_trapdoor",
		200:              "minecraft:legacy_200",
	}

	for ty, want := range cases {
		if got := ty.Name(); got != want {
			t.Errorf("BlockType(%d).Name() = %s, want %s", ty, got, want)
		}
	}
}

func TestNonCollidable(t *testing.T) {
	set := blocks.NewSet(blocks.NonCollidable()...)

	for _, name := range []string{"minecraft:water", "minecraft:torch", "minecraft:short_grass", "minecraft:kelp"} {
		if !set.Contains(name) {
			t.Errorf("%s should be non-collidable", name)
		}
	}

	for _, name := range []string{blocks.Air, "minecraft:stone", "minecraft:oak_planks"} {
		if set.Contains(name) {
			t.Errorf("%s should not be in the non-collidable preset", name)
		}
	}

	if blocks.Collidable(blocks.Torch) || !blocks.Collidable(blocks.Obsidian) {
		t.Error("unexpected collidable flags")
	}
}
