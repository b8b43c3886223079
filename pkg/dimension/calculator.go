// Package dimension computes the bounding box of a mindmap node's text.
//
// Given a node depth and its raw label, the calculator wraps the text per
// the depth's style tier, measures the wrapped lines, and produces a box
// that can never degenerate to zero size. Results are memoized per
// (depth, text) pair because the host editor re-requests dimensions on every
// repaint; invalidation is by exact text match, not a cache flush.
//
// Dimension computation never fails: empty text becomes a single empty
// line, and a measurement failure silently degrades to the deterministic
// estimator. This sits on the render hot path and must not raise.
package dimension

import (
	"math"
	"strings"

	"github.com/Hanzzh/mindmap/pkg/measure"
)

// Dimension is the computed box for one (depth, text) pair.
type Dimension struct {
	Width    float64
	Height   float64
	Lines    []string
	Padding  float64
	MinWidth float64
	MaxWidth float64
	FontSize float64
	Bold     bool
	Class    Class
}

// memoKey addresses the cache. Text length is folded into the key so that
// an editor mutating a string in place cannot alias a stale entry.
type memoKey struct {
	depth  int
	text   string
	length int
}

// Calculator measures and memoizes node dimensions.
type Calculator struct {
	policy   StylePolicy
	measurer measure.Measurer
	memo     map[memoKey]Dimension
}

// NewCalculator builds a calculator with the given policy. A nil measurer
// selects the best available one (font-backed if possible).
func NewCalculator(policy StylePolicy, m measure.Measurer) *Calculator {
	if m == nil {
		m = measure.Best()
	}
	return &Calculator{
		policy:   policy,
		measurer: m,
		memo:     make(map[memoKey]Dimension),
	}
}

// Dimensions returns the bounding box for text rendered at the given depth.
// Results are cached; identical inputs return identical values.
func (c *Calculator) Dimensions(depth int, text string) Dimension {
	key := memoKey{depth: depth, text: text, length: len(text)}
	if d, ok := c.memo[key]; ok {
		return d
	}
	d := c.compute(depth, text)
	c.memo[key] = d
	return d
}

// Invalidate drops every cached entry whose text matches exactly. Called by
// the host when a node label is edited in place.
func (c *Calculator) Invalidate(text string) {
	for k := range c.memo {
		if k.text == text {
			delete(c.memo, k)
		}
	}
}

// CacheLen reports the number of memoized entries.
func (c *Calculator) CacheLen() int { return len(c.memo) }

func (c *Calculator) compute(depth int, text string) Dimension {
	style := c.policy.ForDepth(depth)
	lines := WrapLines(text, style.FontSize, style.MaxWidth)

	textWidth := 0.0
	for _, line := range lines {
		w, err := c.measurer.LineWidth(line, style.FontSize, style.Bold)
		if err != nil {
			// Degrade to the estimator rather than failing.
			w, _ = measure.Estimator{}.LineWidth(line, style.FontSize, style.Bold)
		}
		if w > textWidth {
			textWidth = w
		}
	}

	safety := math.Max(8, 0.05*textWidth)
	width := math.Max(textWidth+2*style.Padding+safety, style.MinWidth)

	lineHeight := measure.LineHeight(style.FontSize)
	height := math.Max(float64(len(lines))*lineHeight+2*style.Padding, 2.0*style.FontSize)

	return Dimension{
		// Both measurement paths ceil so layouts are identical regardless
		// of which path ran.
		Width:    math.Ceil(width),
		Height:   math.Ceil(height),
		Lines:    lines,
		Padding:  style.Padding,
		MinWidth: style.MinWidth,
		MaxWidth: style.MaxWidth,
		FontSize: style.FontSize,
		Bold:     style.Bold,
		Class:    style.Class,
	}
}

// WrapLines splits text into rendered lines. Explicit line breaks are
// honored verbatim. With no maximum width the text stays on one line;
// otherwise a greedy word-wrap packs words up to the column limit derived
// from the estimated character width, never splitting a word.
func WrapLines(text string, fontSize, maxWidth float64) []string {
	if strings.TrimSpace(text) == "" {
		return []string{""}
	}

	raw := strings.Split(text, "\n")
	if maxWidth <= 0 {
		return raw
	}

	maxChars := int(math.Floor(maxWidth / measure.CharWidth(fontSize)))
	if maxChars < 1 {
		maxChars = 1
	}

	var lines []string
	for _, para := range raw {
		lines = append(lines, wrapPara(para, maxChars)...)
	}
	return lines
}

func wrapPara(para string, maxChars int) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if runeLen(current)+1+runeLen(word) > maxChars {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
