package render

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/flanksource/commons/logger"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// fallbackFont is the embedded face used whenever a requested font file is
// missing or unparseable. goregular always parses.
var fallbackFont = func() *truetype.Font {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	return f
}()

// FontCache loads and parses TTF files from a directory once, then hands out
// sized faces. Safe for concurrent use.
type FontCache struct {
	mu    sync.Mutex
	dir   string
	fonts map[string]*truetype.Font
}

// NewFontCache returns a cache reading font files from dir. An empty dir
// serves the embedded fallback for every request.
func NewFontCache(dir string) *FontCache {
	return &FontCache{
		dir:   dir,
		fonts: map[string]*truetype.Font{},
	}
}

func (c *FontCache) parsed(file string) *truetype.Font {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.fonts[file]; ok {
		return f
	}

	f := fallbackFont
	if c.dir != "" && file != "" {
		data, err := os.ReadFile(filepath.Join(c.dir, file))
		if err != nil {
			logger.Debugf("font %s not readable, using fallback: %v", file, err)
		} else if parsedFont, perr := truetype.Parse(data); perr != nil {
			logger.Warnf("font %s unparseable, using fallback: %v", file, perr)
		} else {
			f = parsedFont
		}
	}
	c.fonts[file] = f
	return f
}

// Face returns a rendering face for the given font file at the given size.
func (c *FontCache) Face(file string, size float64) font.Face {
	if size <= 0 {
		size = 12
	}
	return truetype.NewFace(c.parsed(file), &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Measure returns the advance width and line height of text drawn with the
// given font file at the given size, in pixels.
func (c *FontCache) Measure(file string, size float64, text string) (width, height float64) {
	face := c.Face(file, size)
	d := &font.Drawer{Face: face}
	adv := d.MeasureString(text)
	m := face.Metrics()
	return float64(adv) / 64, float64(m.Height) / 64
}
