package dimension

// Class names the depth-derived style tier of a node.
type Class string

// Style tiers. Root and primary nodes get the large treatment; everything
// deeper is compact.
const (
	ClassRoot    Class = "root"
	ClassPrimary Class = "primary"
	ClassCompact Class = "compact"
)

// Style holds the text metrics for one tier. MaxWidth == 0 means unlimited:
// text stays on one line unless it carries explicit line breaks.
type Style struct {
	Class    Class   `toml:"-"`
	FontSize float64 `toml:"font_size"`
	Bold     bool    `toml:"bold"`
	Padding  float64 `toml:"padding"`
	MinWidth float64 `toml:"min_width"`
	MaxWidth float64 `toml:"max_width"`
}

// StylePolicy maps node depth to a Style. Depth 0 is the single root,
// depth 1 its direct children, everything else is compact.
type StylePolicy struct {
	Root    Style `toml:"root"`
	Primary Style `toml:"primary"`
	Compact Style `toml:"compact"`
}

// DefaultPolicy returns the standard desktop style tiers. Device profiles
// (e.g. tighter mobile spacing) are alternate policy values chosen once at
// startup, never branched on at call sites.
func DefaultPolicy() StylePolicy {
	return StylePolicy{
		Root: Style{
			Class:    ClassRoot,
			FontSize: 20,
			Bold:     true,
			Padding:  14,
			MinWidth: 120,
			MaxWidth: 360,
		},
		Primary: Style{
			Class:    ClassPrimary,
			FontSize: 17,
			Bold:     true,
			Padding:  12,
			MinWidth: 90,
			MaxWidth: 320,
		},
		Compact: Style{
			Class:    ClassCompact,
			FontSize: 14,
			Bold:     false,
			Padding:  8,
			MinWidth: 60,
			MaxWidth: 280,
		},
	}
}

// MobilePolicy returns tighter tiers for small screens: smaller type,
// less padding, and narrower wrap columns.
func MobilePolicy() StylePolicy {
	return StylePolicy{
		Root: Style{
			Class:    ClassRoot,
			FontSize: 17,
			Bold:     true,
			Padding:  10,
			MinWidth: 90,
			MaxWidth: 260,
		},
		Primary: Style{
			Class:    ClassPrimary,
			FontSize: 14,
			Bold:     true,
			Padding:  8,
			MinWidth: 70,
			MaxWidth: 220,
		},
		Compact: Style{
			Class:    ClassCompact,
			FontSize: 12,
			Bold:     false,
			Padding:  6,
			MinWidth: 50,
			MaxWidth: 200,
		},
	}
}

// PolicyByName resolves a named policy. Recognized names are "default"
// and "mobile"; the empty string maps to "default".
func PolicyByName(name string) (StylePolicy, bool) {
	switch name {
	case "", "default":
		return DefaultPolicy(), true
	case "mobile":
		return MobilePolicy(), true
	default:
		return StylePolicy{}, false
	}
}

// ForDepth selects the style tier for a node depth.
func (p StylePolicy) ForDepth(depth int) Style {
	switch {
	case depth <= 0:
		return p.withClass(p.Root, ClassRoot)
	case depth == 1:
		return p.withClass(p.Primary, ClassPrimary)
	default:
		return p.withClass(p.Compact, ClassCompact)
	}
}

// withClass backfills the class tag so policies decoded from TOML (where the
// field is skipped) still report their tier.
func (p StylePolicy) withClass(s Style, c Class) Style {
	s.Class = c
	return s
}
