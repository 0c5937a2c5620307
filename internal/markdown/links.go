package markdown

// Options controls how pages are parsed.
type Options struct {
	// CommonMarkOnly disables the GFM table extension.
	CommonMarkOnly bool
}

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

type Link struct {
	Kind        LinkKind
	Destination string
	Text        string
}
