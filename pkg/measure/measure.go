// Package measure provides text measurement for the dimension calculator.
//
// Two implementations exist:
//
//   - [FontMeasurer] measures real glyph advances using a TrueType font
//     located on the host system. This is the path used when rendering,
//     where pixel-accurate boxes matter.
//   - [Estimator] is a deterministic per-character approximation used when
//     no font is available (headless test runs, stripped containers).
//
// Callers never pick between them by hand: [Best] returns the font-backed
// measurer when a usable font exists and the estimator otherwise. Dimension
// computation rounds identically on both paths, so layouts stay
// deterministic regardless of which one ran.
package measure

// Measurer reports the rendered width of a single line of text.
type Measurer interface {
	// LineWidth returns the width in pixels of text drawn at the given
	// font size. Implementations must not fail for empty strings.
	LineWidth(text string, size float64, bold bool) (float64, error)
}

// CharWidth is the estimated advance of one character at the given font
// size. It is also the unit used by the word-wrap column computation, on
// both measurement paths, so wrapping does not depend on which fonts a
// machine happens to have.
func CharWidth(size float64) float64 {
	return 0.62 * size
}

// LineHeight is the vertical advance of one wrapped line at the given font
// size.
func LineHeight(size float64) float64 {
	return 1.25 * size
}

// Estimator measures text as CharWidth per rune. Deterministic and
// allocation-free; the fallback when no font can be loaded.
type Estimator struct{}

// LineWidth implements Measurer.
func (Estimator) LineWidth(text string, size float64, bold bool) (float64, error) {
	n := 0
	for range text {
		n++
	}
	w := float64(n) * CharWidth(size)
	if bold {
		// Bold glyphs run slightly wider.
		w *= 1.05
	}
	return w, nil
}

// Best returns a font-backed measurer when one can be constructed, falling
// back to the estimator. It never fails.
func Best() Measurer {
	if fm, err := NewFontMeasurer(); err == nil {
		return fm
	}
	return Estimator{}
}
