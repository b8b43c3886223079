package measure

import (
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// Candidate font files, tried in order. The regular file is required; the
// bold variant is optional and falls back to the regular face.
var fontCandidates = []struct {
	regular, bold string
}{
	{"DejaVuSans.ttf", "DejaVuSans-Bold.ttf"},
	{"Arial.ttf", "Arial Bold.ttf"},
	{"LiberationSans-Regular.ttf", "LiberationSans-Bold.ttf"},
	{"Helvetica.ttf", "Helvetica-Bold.ttf"},
}

// FontMeasurer measures glyph advances against a parsed TrueType font.
// Faces are built lazily per (size, bold) pair and cached. The cache is
// guarded by a mutex so a multi-threaded host can share one measurer,
// though the reference design assumes a single render goroutine.
type FontMeasurer struct {
	regular *truetype.Font
	bold    *truetype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

// NewFontMeasurer locates a sans-serif font on the host and prepares it for
// measurement. Returns an error when no candidate font can be found or
// parsed; callers should degrade to [Estimator].
func NewFontMeasurer() (*FontMeasurer, error) {
	for _, c := range fontCandidates {
		reg, err := loadFont(c.regular)
		if err != nil {
			continue
		}
		m := &FontMeasurer{regular: reg, faces: make(map[faceKey]font.Face)}
		if b, err := loadFont(c.bold); err == nil {
			m.bold = b
		}
		return m, nil
	}
	return nil, fmt.Errorf("no usable sans-serif font found")
}

func loadFont(name string) (*truetype.Font, error) {
	path, err := findfont.Find(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(data)
}

// LineWidth implements Measurer using real glyph advances.
func (m *FontMeasurer) LineWidth(text string, size float64, bold bool) (float64, error) {
	face, err := m.face(size, bold)
	if err != nil {
		return 0, err
	}
	adv := font.MeasureString(face, text)
	return float64(adv) / 64, nil
}

// FacePath exposes the regular font for renderers that need to draw with
// the same face the layout was measured against.
func (m *FontMeasurer) Face(size float64, bold bool) (font.Face, error) {
	return m.face(size, bold)
}

func (m *FontMeasurer) face(size float64, bold bool) (font.Face, error) {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("invalid font size %v", size)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	k := faceKey{size: size, bold: bold}
	if f, ok := m.faces[k]; ok {
		return f, nil
	}

	src := m.regular
	if bold && m.bold != nil {
		src = m.bold
	}
	f := truetype.NewFace(src, &truetype.Options{Size: size, DPI: 72})
	m.faces[k] = f
	return f, nil
}
