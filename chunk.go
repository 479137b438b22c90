package strata

import "fmt"

type TileKind uint8

const (
	TileWater TileKind = iota
	TileSand
	TileGrass
	TileForest
	TileRock
	TileSnow
	TileTree
)

var tileKindNames = map[TileKind]string{
	TileWater:  "water",
	TileSand:   "sand",
	TileGrass:  "grass",
	TileForest: "forest",
	TileRock:   "rock",
	TileSnow:   "snow",
	TileTree:   "tree",
}

func (k TileKind) String() string {
	if name, ok := tileKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("tile(%d)", uint8(k))
}

// ChunkData is one generated chunk: a size×size grid of tiles plus a
// heightmap, row-major with (0, 0) at the chunk origin.
type ChunkData struct {
	Coord   Coord
	Size    int
	Tiles   []TileKind
	Heights []int
}

func NewChunkData(coord Coord, size int) *ChunkData {
	return &ChunkData{
		Coord:   coord,
		Size:    size,
		Tiles:   make([]TileKind, size*size),
		Heights: make([]int, size*size),
	}
}

func (d *ChunkData) index(x, y int) int {
	return y*d.Size + x
}

func (d *ChunkData) Tile(x, y int) TileKind {
	return d.Tiles[d.index(x, y)]
}

func (d *ChunkData) SetTile(x, y int, k TileKind) {
	d.Tiles[d.index(x, y)] = k
}

func (d *ChunkData) Height(x, y int) int {
	return d.Heights[d.index(x, y)]
}

func (d *ChunkData) SetHeight(x, y, h int) {
	d.Heights[d.index(x, y)] = h
}

// ChunkSink consumes finished chunks. The painter implements it; the
// generation pipeline writes into it before signaling completion.
type ChunkSink interface {
	PaintChunk(*ChunkData) error
}
