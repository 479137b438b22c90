package strata

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math/bits"
	"os"
	"path/filepath"
	"sync"

	"github.com/Tnze/go-mc/level"
)

// ChunkPainter paints finished chunks onto per-chunk PNG tiles. It keeps
// a bit-packed heightmap per chunk so Finalize can overlay hillshading
// that is aware of neighboring chunks painted later in the session.
type ChunkPainter struct {
	sync.Mutex

	palette   *Palette
	dir       string
	chunkSize int

	heightmaps map[Coord]*level.BitStorage
	painted    []Coord
}

func NewChunkPainter(dir string, chunkSize int, palette *Palette) *ChunkPainter {
	return &ChunkPainter{
		palette:    palette,
		dir:        dir,
		chunkSize:  chunkSize,
		heightmaps: make(map[Coord]*level.BitStorage),
	}
}

func tileImageName(c Coord) string {
	return fmt.Sprintf("c.%d.%d.png", c.X, c.Y)
}

// PaintChunk renders one pixel per tile and stores the chunk heightmap
// for the shading pass.
func (p *ChunkPainter) PaintChunk(d *ChunkData) error {
	if d.Size != p.chunkSize {
		return fmt.Errorf("chunk (%d, %d) has size %d, painter expects %d", d.Coord.X, d.Coord.Y, d.Size, p.chunkSize)
	}

	img := image.NewRGBA64(image.Rect(0, 0, d.Size, d.Size))
	hm := level.NewBitStorage(bits.Len(uint(MaxHeight)), d.Size*d.Size, nil)

	for x := 0; x < d.Size; x++ {
		for y := 0; y < d.Size; y++ {
			img.Set(x, y, p.palette.Color(d.Tile(x, y), d.Height(x, y)))
			hm.Set(y*d.Size+x, d.Height(x, y))
		}
	}

	fd, err := os.Create(filepath.Join(p.dir, tileImageName(d.Coord)))
	if err != nil {
		return fmt.Errorf("failed to create tile image for (%d, %d): %v", d.Coord.X, d.Coord.Y, err)
	}
	defer fd.Close()

	if err := png.Encode(fd, img); err != nil {
		return fmt.Errorf("failed to encode tile image for (%d, %d): %v", d.Coord.X, d.Coord.Y, err)
	}

	p.Lock()
	p.heightmaps[d.Coord] = hm
	p.painted = append(p.painted, d.Coord)
	p.Unlock()

	return nil
}

// Painted returns the coordinates painted so far, in paint order.
func (p *ChunkPainter) Painted() []Coord {
	p.Lock()
	defer p.Unlock()
	out := make([]Coord, len(p.painted))
	copy(out, p.painted)
	return out
}

// Finalize overlays shading onto every painted tile image. It runs after
// the session drains so that every neighbor that will ever exist is
// available for cross-chunk height lookups.
func (p *ChunkPainter) Finalize() error {
	p.Lock()
	coords := make([]Coord, len(p.painted))
	copy(coords, p.painted)
	p.Unlock()

	errors := make(chan error)

	var wg sync.WaitGroup
	for _, crd := range coords {
		wg.Add(1)
		go func(crd Coord) {
			defer wg.Done()
			err := p.shadeTile(crd)
			if err != nil {
				errors <- err
			}
		}(crd)
	}

	go func() {
		wg.Wait()
		close(errors)
	}()

	for err := range errors {
		return err
	}

	return nil
}

func (p *ChunkPainter) heightmap(crd Coord) *level.BitStorage {
	p.Lock()
	defer p.Unlock()
	return p.heightmaps[crd]
}

// shadeTile merges a shading overlay into a painted tile image. Cells
// below their top or left neighbor get darkened proportionally to the
// height drop, which reads as relief on the assembled map.
func (p *ChunkPainter) shadeTile(crd Coord) error {
	overlay := p.renderShade(crd)

	path := filepath.Join(p.dir, tileImageName(crd))
	fd, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open tile image (%v, %v): %v", crd.X, crd.Y, err)
	}

	srcImg, err := png.Decode(fd)
	fd.Close()
	if err != nil {
		return fmt.Errorf("failed to decode tile image (%v, %v): %v", crd.X, crd.Y, err)
	}

	finalImg := image.NewRGBA64(srcImg.Bounds())
	draw.Draw(finalImg, srcImg.Bounds(), srcImg, image.Point{0, 0}, draw.Src)
	draw.Draw(finalImg, overlay.Bounds(), overlay, image.Point{0, 0}, draw.Over)

	fd, err = os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create tile image (%v, %v): %v", crd.X, crd.Y, err)
	}
	defer fd.Close()

	if err := png.Encode(fd, finalImg); err != nil {
		return fmt.Errorf("failed to encode tile image (%v, %v): %v", crd.X, crd.Y, err)
	}

	return nil
}

func (p *ChunkPainter) renderShade(crd Coord) image.Image {
	size := p.chunkSize
	img := image.NewRGBA64(image.Rect(0, 0, size, size))
	hm := p.heightmap(crd)

	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			height := hm.Get(y*size + x)

			var leftHeight int
			// if x == 0 the left height lives in the neighboring chunk
			if x == 0 {
				leftHeightMap := p.heightmap(Coord{X: crd.X - size, Y: crd.Y})
				if leftHeightMap != nil {
					leftHeight = leftHeightMap.Get(y*size + (size - 1))
				} else {
					leftHeight = height
				}
			} else {
				leftHeight = hm.Get(y*size + (x - 1))
			}

			var topHeight int
			if y == 0 {
				topHeightMap := p.heightmap(Coord{X: crd.X, Y: crd.Y - size})
				if topHeightMap != nil {
					topHeight = topHeightMap.Get((size-1)*size + x)
				} else {
					topHeight = height
				}
			} else {
				topHeight = hm.Get((y-1)*size + x)
			}

			var d int
			if topHeight > height {
				d = (topHeight - height) * 4
			}
			if leftHeight > height {
				d += (leftHeight - height) * 4
			}
			if d > 64 {
				d = 64
			}

			img.Set(x, y, color.RGBA{
				R: 0,
				G: 0,
				B: 0,
				A: uint8(d),
			})
		}
	}

	return img
}
