package blocks

type blockProperties struct {
	name       string
	collidable bool
}

var properties = [...]blockProperties{
	// Air
	{name: "minecraft:air"},
	// Stone
	{name: "minecraft:stone", collidable: true},
	// Grass
	{name: "minecraft:grass_block", collidable: true},
	// Dirt
	{name: "minecraft:dirt", collidable: true},
	// Cobblestone
	{name: "minecraft:cobblestone", collidable: true},
	// Planks
	{name: "minecraft:oak_planks", collidable: true},
	// Sapling
	{name: "minecraft:oak_sapling"},
	// Bedrock
	{name: "minecraft:bedrock", collidable: true},
	// FlowingWater
	{name: "minecraft:flowing_water"},
	// Water
	{name: "minecraft:water"},
	// FlowingLava
	{name: "minecraft:flowing_lava"},
	// Lava
	{name: "minecraft:lava"},
	// Sand
	{name: "minecraft:sand", collidable: true},
	// Gravel
	{name: "minecraft:gravel", collidable: true},
	// GoldOre
	{name: "minecraft:gold_ore", collidable: true},
	// IronOre
	{name: "minecraft:iron_ore", collidable: true},
	// CoalOre
	{name: "minecraft:coal_ore", collidable: true},
	// Log
	{name: "minecraft:oak_log", collidable: true},
	// Leaves
	{name: "minecraft:oak_leaves", collidable: true},
	// Sponge
	{name: "minecraft:sponge", collidable: true},
	// Glass
	{name: "minecraft:glass", collidable: true},
	// LapisOre
	{name: "minecraft:lapis_ore", collidable: true},
	// LapisBlock
	{name: "minecraft:lapis_block", collidable: true},
	// Dispenser
	{name: "minecraft:dispenser", collidable: true},
	// Sandstone
	{name: "minecraft:sandstone", collidable: true},
	// NoteBlock
	{name: "minecraft:note_block", collidable: true},
	// Bed
	{name: "minecraft:red_bed", collidable: true},
	// PoweredRail
	{name: "minecraft:powered_rail"},
	// DetectorRail
	{name: "minecraft:detector_rail"},
	// StickyPiston
	{name: "minecraft:sticky_piston", collidable: true},
	// Web
	{name: "minecraft:cobweb"},
	// TallGrass
	{name: "minecraft:short_grass"},
	// DeadBush
	{name: "minecraft:dead_bush"},
	// Piston
	{name: "minecraft:piston", collidable: true},
	// PistonHead
	{name: "minecraft:piston_head", collidable: true},
	// Wool
	{name: "minecraft:white_wool", collidable: true},
	// PistonExtension
	{name: "minecraft:moving_piston", collidable: true},
	// Dandelion
	{name: "minecraft:dandelion"},
	// Rose
	{name: "minecraft:poppy"},
	// BrownMushroom
	{name: "minecraft:brown_mushroom"},
	// RedMushroom
	{name: "minecraft:red_mushroom"},
	// GoldBlock
	{name: "minecraft:gold_block", collidable: true},
	// IronBlock
	{name: "minecraft:iron_block", collidable: true},
	// DoubleStoneSlab
	{name: "minecraft:smooth_stone", collidable: true},
	// Slab
	{name: "minecraft:smooth_stone_slab", collidable: true},
	// Bricks
	{name: "minecraft:bricks", collidable: true},
	// Tnt
	{name: "minecraft:tnt", collidable: true},
	// Bookshelf
	{name: "minecraft:bookshelf", collidable: true},
	// MossStone
	{name: "minecraft:mossy_cobblestone", collidable: true},
	// Obsidian
	{name: "minecraft:obsidian", collidable: true},
	// Torch
	{name: "minecraft:torch"},
	// Fire
	{name: "minecraft:fire"},
	// Spawner
	{name: "minecraft:spawner", collidable: true},
	// WoodStairs
	{name: "minecraft:oak_stairs", collidable: true},
	// Chest
	{name: "minecraft:chest", collidable: true},
	// Redstone
	{name: "minecraft:redstone_wire"},
	// DiamondOre
	{name: "minecraft:diamond_ore", collidable: true},
	// DiamondBlock
	{name: "minecraft:diamond_block", collidable: true},
	// CraftingTable
	{name: "minecraft:crafting_table", collidable: true},
	// Wheat
	{name: "minecraft:wheat"},
	// Farmland
	{name: "minecraft:farmland", collidable: true},
	// Furnace
	{name: "minecraft:furnace", collidable: true},
	// LitFurnace
	{name: "minecraft:lit_furnace", collidable: true},
	// StandingSign
	{name: "minecraft:oak_sign"},
	// Door
	{name: "minecraft:oak_door", collidable: true},
	// Ladder
	{name: "minecraft:ladder", collidable: true},
	// Rail
	{name: "minecraft:rail"},
	// StoneStairs
	{name: "minecraft:cobblestone_stairs", collidable: true},
	// WallSign
	{name: "minecraft:oak_wall_sign"},
	// Lever
	{name: "minecraft:lever"},
	// StonePressurePlate
	{name: "minecraft:stone_pressure_plate"},
	// IronDoor
	{name: "minecraft:iron_door", collidable: true},
	// WoodPressurePlate
	{name: "minecraft:oak_pressure_plate"},
	// RedstoneOre
	{name: "minecraft:redstone_ore", collidable: true},
	// LitRedstoneOre
	{name: "minecraft:lit_redstone_ore", collidable: true},
	// RedstoneTorchOff
	{name: "minecraft:redstone_torch_off"},
	// RedstoneTorchOn
	{name: "minecraft:redstone_torch"},
	// StoneButton
	{name: "minecraft:stone_button"},
	// SnowLayer
	{name: "minecraft:snow", collidable: true},
	// Ice
	{name: "minecraft:ice", collidable: true},
	// Snow
	{name: "minecraft:snow_block", collidable: true},
	// Cactus
	{name: "minecraft:cactus", collidable: true},
	// Clay
	{name: "minecraft:clay", collidable: true},
	// SugarCane
	{name: "minecraft:sugar_cane"},
	// Jukebox
	{name: "minecraft:jukebox", collidable: true},
	// Fence
	{name: "minecraft:oak_fence", collidable: true},
	// Pumpkin
	{name: "minecraft:pumpkin", collidable: true},
	// Netherrack
	{name: "minecraft:netherrack", collidable: true},
	// SoulSand
	{name: "minecraft:soul_sand", collidable: true},
	// Glowstone
	{name: "minecraft:glowstone", collidable: true},
	// Portal
	{name: "minecraft:nether_portal"},
	// JackOLantern
	{name: "minecraft:jack_o_lantern", collidable: true},
	// Cake
	{name: "minecraft:cake", collidable: true},
	// RepeaterOff
	{name: "minecraft:repeater_off", collidable: true},
	// RepeaterOn
	{name: "minecraft:repeater", collidable: true},
	// LockedChest
	{name: "minecraft:locked_chest", collidable: true},
	// Trapdoor
	{name: "minecraft:oak_trapdoor", collidable: true},
}

// Collidable reports whether a legacy block stops an entity.
func Collidable(ty BlockType) bool {
	if int(ty) >= len(properties) {
		return true
	}
	return properties[ty].collidable
}

// NonCollidable lists namespaced identifiers of common blocks an entity can
// move through. It is a convenient starting point for ExportParams.SkipBlocks.
func NonCollidable() []string {
	names := make([]string, 0, len(properties)+len(modernNonCollidable))
	for _, props := range properties[1:] {
		if !props.collidable {
			names = append(names, props.name)
		}
	}
	return append(names, modernNonCollidable...)
}

var modernNonCollidable = []string{
	"minecraft:grass",
	"minecraft:tall_grass",
	"minecraft:fern",
	"minecraft:large_fern",
	"minecraft:seagrass",
	"minecraft:tall_seagrass",
	"minecraft:kelp",
	"minecraft:kelp_plant",
	"minecraft:vine",
	"minecraft:glow_lichen",
	"minecraft:wall_torch",
	"minecraft:redstone_wall_torch",
	"minecraft:soul_torch",
	"minecraft:soul_wall_torch",
	"minecraft:activator_rail",
	"minecraft:tripwire",
	"minecraft:tripwire_hook",
	"minecraft:light",
	"minecraft:structure_void",
	"minecraft:bubble_column",
}
