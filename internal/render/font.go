package render

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce sync.Once
	ttf      *truetype.Font
	ttfErr   error
)

func regularFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		ttf, ttfErr = truetype.Parse(goregular.TTF)
		if ttfErr != nil {
			ttfErr = fmt.Errorf("parse embedded font: %w", ttfErr)
		}
	})
	return ttf, ttfErr
}

// faceCache hands out one face per integer point size. Faces keep glyph
// caches and are confined to a single render call.
type faceCache struct {
	font  *truetype.Font
	faces map[int]font.Face
}

func newFaceCache() (*faceCache, error) {
	f, err := regularFont()
	if err != nil {
		return nil, err
	}
	return &faceCache{font: f, faces: make(map[int]font.Face)}, nil
}

func (c *faceCache) face(size int) font.Face {
	if face, ok := c.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(c.font, &truetype.Options{Size: float64(size)})
	c.faces[size] = face
	return face
}

func (c *faceCache) Close() {
	for _, f := range c.faces {
		f.Close()
	}
}
