package blocks

import (
	"strconv"
	"strings"
)

// Namespaced identifiers of the blocks that never produce collision.
const (
	Air     = "minecraft:air"
	CaveAir = "minecraft:cave_air"
	VoidAir = "minecraft:void_air"
)

func IsAir(name string) bool {
	return name == Air || name == CaveAir || name == VoidAir
}

// Namespaced adds the default "minecraft:" namespace to a bare identifier.
func Namespaced(name string) string {
	if name == "" || strings.Contains(name, ":") {
		return name
	}
	return "minecraft:" + name
}

// BlockType is a numeric block id as stored by the legacy McRegion format.
type BlockType byte

const (
	LegacyAir BlockType = iota
	Stone
	Grass
	Dirt
	Cobblestone
	Planks
	Sapling
	Bedrock
	FlowingWater
	Water
	FlowingLava
	Lava
	Sand
	Gravel
	GoldOre
	IronOre
	CoalOre
	Log
	Leaves
	Sponge
	Glass
	LapisOre
	LapisBlock
	Dispenser
	Sandstone
	NoteBlock
	Bed
	PoweredRail
	DetectorRail
	StickyPiston
	Web
	TallGrass
	DeadBush
	Piston
	PistonHead
	Wool
	PistonExtension
	Dandelion
	Rose
	BrownMushroom
	RedMushroom
	GoldBlock
	IronBlock
	DoubleStoneSlab
	Slab
	Bricks
	Tnt
	Bookshelf
	MossStone
	Obsidian
	Torch
	Fire
	Spawner
	WoodStairs
	Chest
	Redstone
	DiamondOre
	DiamondBlock
	CraftingTable
	Wheat
	Farmland
	Furnace
	LitFurnace
	StandingSign
	Door
	Ladder
	Rail
	StoneStairs
	WallSign
	Lever
	StonePressurePlate
	IronDoor
	WoodPressurePlate
	RedstoneOre
	LitRedstoneOre
	RedstoneTorchOff
	RedstoneTorchOn
	StoneButton
	SnowLayer
	Ice
	Snow
	Cactus
	Clay
	SugarCane
	Jukebox
	Fence
	Pumpkin
	Netherrack
	SoulSand
	Glowstone
	Portal
	JackOLantern
	Cake
	RepeaterOff
	RepeaterOn
	LockedChest
	Trapdoor
)

// Name returns the namespaced identifier of a legacy block id. Ids past the
// end of the table are reported as "minecraft:legacy_<id>" so they stay
// solid and can still be skipped by name.
func (ty BlockType) Name() string {
	if int(ty) >= len(properties) {
		return "minecraft:legacy_" + strconv.Itoa(int(ty))
	}
	return properties[ty].name
}
