// Package keyword is the authoritative catalog of Kumihan block
// decorations: their canonical names, HTML mapping, recognized
// attributes, and the rank that governs how composite decorations nest.
package keyword

// Category classifies what kind of block a keyword produces.
type Category string

const (
	CategoryHeading      Category = "heading"
	CategoryDecoration   Category = "decoration"
	CategoryContainer    Category = "container"
	CategoryCollapsible  Category = "collapsible"
	CategorySpecialTOC   Category = "special_toc"
	CategorySpecialImage Category = "special_image"
)

// AttrSpec describes one attribute a keyword recognizes.
type AttrSpec struct {
	Name     string
	IsColor  bool
	Required bool
}

// Keyword is an immutable descriptor for one Kumihan decoration.
type Keyword struct {
	Name        string
	HTMLTag     string
	CSSClass    string
	Attrs       []AttrSpec
	Category    Category
	NestingRank int
}

// Attr looks up the recognized attribute schema entry by name.
func (k *Keyword) Attr(name string) (AttrSpec, bool) {
	for _, a := range k.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return AttrSpec{}, false
}

// IsInlineOnly reports whether this keyword may appear in the single-line
// `#kw# content ##` inline form (spec.md §4.3 disambiguation rule).
func (k *Keyword) IsInlineOnly() bool {
	switch k.Name {
	case "太字", "イタリック":
		return true
	}
	return false
}
