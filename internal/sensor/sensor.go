package sensor

import (
	"fmt"
	"sync"
)

// TileWidth is the side length of the square sensor tiles.
const TileWidth = 16

// TilePixels is the pixel count per tile.
const TilePixels = TileWidth * TileWidth

// Tile owns a TileWidth × TileWidth block of pixels (row-major) and the
// mutex serialising writes to them.
type Tile struct {
	mu     sync.Mutex
	Pixels [TilePixels]Pixel
}

// NewTile creates a tile whose top-left pixel sits at (startX, startY).
func NewTile(startX, startY int) *Tile {
	t := &Tile{}

	i := 0
	for y := 0; y < TileWidth; y++ {
		for x := 0; x < TileWidth; x++ {
			t.Pixels[i].X = startX + x
			t.Pixels[i].Y = startY + y
			i++
		}
	}

	return t
}

// Lock acquires the tile for the duration of a pixel loop.
func (t *Tile) Lock() {
	t.mu.Lock()
}

// Unlock releases the tile.
func (t *Tile) Unlock() {
	t.mu.Unlock()
}

// Sensor is the tiled accumulation target of the renderer. The sensor
// itself is read-shared; all mutation goes through the per-tile locks.
type Sensor struct {
	Width  int
	Height int
	Tiles  []*Tile
}

// New creates a sensor. Both dimensions must be multiples of TileWidth;
// the function panics otherwise.
func New(width, height int) *Sensor {
	if width%TileWidth != 0 {
		panic(fmt.Sprintf("sensor: resolution width must be a multiple of %d", TileWidth))
	}
	if height%TileWidth != 0 {
		panic(fmt.Sprintf("sensor: resolution height must be a multiple of %d", TileWidth))
	}

	gridX := width / TileWidth
	gridY := height / TileWidth

	tiles := make([]*Tile, 0, gridX*gridY)
	for x := 0; x < gridX; x++ {
		for y := 0; y < gridY; y++ {
			tiles = append(tiles, NewTile(x*TileWidth, y*TileWidth))
		}
	}

	return &Sensor{Width: width, Height: height, Tiles: tiles}
}

// NumTiles returns the tile count of one pass.
func (s *Sensor) NumTiles() int {
	return len(s.Tiles)
}

// Tile returns the tile at index.
func (s *Sensor) Tile(index int) *Tile {
	return s.Tiles[index]
}

// Reset clears all pixels.
func (s *Sensor) Reset() {
	for _, t := range s.Tiles {
		t.Lock()
		for i := range t.Pixels {
			t.Pixels[i].Reset()
		}
		t.Unlock()
	}
}
