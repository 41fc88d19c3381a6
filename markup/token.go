// Package markup parses beacon's result markup: the per-line token
// syntax (%I image, %N line break, %L rule, %C center, %B bold) and the
// {text|action|description} result records emitted by handler scripts.
package markup

// Kind discriminates the token variants a line of markup decomposes into.
type Kind int

const (
	// Text is a run of literal characters.
	Text Kind = iota
	// Image is a reference to an image file; the token text is the path.
	Image
	// Break forces a new line.
	Break
	// Rule draws a horizontal separator line.
	Rule
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "Text"
	case Image:
		return "Image"
	case Break:
		return "Break"
	case Rule:
		return "Rule"
	}
	return "Unknown"
}

// ModSet is a fixed-capacity set of rendering modifiers. The modifier
// vocabulary is bounded (center, bold) so a bitmask replaces the
// per-line modifier arrays the markup would otherwise allocate.
type ModSet uint8

const (
	// Center centers the token within the remaining line width.
	Center ModSet = 1 << iota
	// Bold requests the bold font variant.
	Bold
)

// Centered reports whether the set contains the center modifier.
func (m ModSet) Centered() bool { return m&Center != 0 }

// Bolded reports whether the set contains the bold modifier.
func (m ModSet) Bolded() bool { return m&Bold != 0 }

// Token is one unit of parsed markup with its active modifiers.
// For Text tokens Text holds the literal run; for Image tokens it holds
// the image path. Break and Rule tokens carry no payload.
type Token struct {
	Kind Kind
	Text string
	Mods ModSet
}
