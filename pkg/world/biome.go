package world

// Biome identifies the terrain class of a single cell.
type Biome uint8

const (
	// BiomeWater covers the ocean and anything below sea level.
	BiomeWater Biome = iota
	// BiomeCoast is the beach strip along the shoreline.
	BiomeCoast
	// BiomeGrassland is open lowland.
	BiomeGrassland
	// BiomeForest is noise-selected woodland.
	BiomeForest
	// BiomeWetland lines the river banks.
	BiomeWetland
	// BiomeAlpine is high-elevation bare terrain.
	BiomeAlpine

	biomeCount
)

var biomeNames = [...]string{
	BiomeWater:     "water",
	BiomeCoast:     "coast",
	BiomeGrassland: "grassland",
	BiomeForest:    "forest",
	BiomeWetland:   "wetland",
	BiomeAlpine:    "alpine",
}

func (b Biome) String() string {
	if int(b) < len(biomeNames) {
		return biomeNames[b]
	}
	return "unknown"
}

// Biomes returns every defined biome in declaration order.
func Biomes() []Biome {
	out := make([]Biome, biomeCount)
	for i := range out {
		out[i] = Biome(i)
	}
	return out
}
