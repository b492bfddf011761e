package render

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/sketchpad/drawable"
)

// FallbackFamily is used for families that were never registered.
const FallbackFamily = "sans"

type faceKey struct {
	family string
	size   float64
}

// Fonts maps font families to parsed sources and caches faces per size.
type Fonts struct {
	mu      sync.Mutex
	sources map[string]*text.FontSource
	faces   map[faceKey]text.Face
}

// NewFonts returns a registry seeded with the Go fonts under the families
// "sans", "bold", "italic" and "mono".
func NewFonts() (*Fonts, error) {
	f := &Fonts{
		sources: make(map[string]*text.FontSource),
		faces:   make(map[faceKey]text.Face),
	}
	builtin := []struct {
		family string
		data   []byte
	}{
		{FallbackFamily, goregular.TTF},
		{"bold", gobold.TTF},
		{"italic", goitalic.TTF},
		{"mono", gomono.TTF},
	}
	for _, b := range builtin {
		if err := f.Register(b.family, b.data); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Register parses data (TTF or OTF) and makes it available as family.
// Registering an existing family replaces it and drops its cached faces.
func (f *Fonts) Register(family string, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("render: font %q: %w", family, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources[family] = src
	for k := range f.faces {
		if k.family == family {
			delete(f.faces, k)
		}
	}
	return nil
}

// Has reports whether family is registered.
func (f *Fonts) Has(family string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.sources[family]
	return ok
}

// Face returns a face for font. Unknown families fall back to "sans" and a
// non-positive size uses the default size.
func (f *Fonts) Face(font drawable.Font) text.Face {
	size := font.Size
	if size <= 0 {
		size = drawable.DefaultFont.Size
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	family := font.Family
	src, ok := f.sources[family]
	if !ok {
		family = FallbackFamily
		src = f.sources[family]
	}
	if src == nil {
		return nil
	}
	key := faceKey{family, size}
	if face, ok := f.faces[key]; ok {
		return face
	}
	face := src.Face(size)
	f.faces[key] = face
	return face
}

// trim empties the face cache once it holds more than n faces.
func (f *Fonts) trim(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.faces) > n {
		clear(f.faces)
	}
}
