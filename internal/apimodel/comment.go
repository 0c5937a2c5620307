package apimodel

import "git.home.luguber.info/inful/apimd/internal/docnode"

// Block tags understood by the generator.
const (
	TagExample   = "@example"
	TagThrows    = "@throws"
	TagDecorator = "@decorator"
	TagSee       = "@see"
)

// Block is a tagged custom block of a doc comment.
type Block struct {
	Tag     string
	Content *docnode.Section
}

// ParamBlock documents one parameter.
type ParamBlock struct {
	Name    string
	Content *docnode.Section
}

// DocComment is the parsed documentation of an item. Content sections are
// owned by the model; consumers must clone nodes before placing them in
// another tree.
type DocComment struct {
	Summary      *docnode.Section
	Remarks      *docnode.Section
	Params       []ParamBlock
	Returns      *docnode.Section
	Deprecated   *docnode.Section
	CustomBlocks []Block
	// Modifiers holds modifier tags without the leading "@", e.g. "sealed".
	Modifiers []string
	// InheritDoc is the canonical reference named by an {@inheritDoc} tag.
	InheritDoc string
}

// Blocks returns the custom blocks with tag, in declaration order.
func (d *DocComment) Blocks(tag string) []Block {
	if d == nil {
		return nil
	}
	var out []Block
	for _, b := range d.CustomBlocks {
		if b.Tag == tag {
			out = append(out, b)
		}
	}
	return out
}

// Examples returns the @example blocks in order.
func (d *DocComment) Examples() []Block { return d.Blocks(TagExample) }

// Throws returns the @throws blocks.
func (d *DocComment) Throws() []Block { return d.Blocks(TagThrows) }

// Decorators returns the @decorator blocks.
func (d *DocComment) Decorators() []Block { return d.Blocks(TagDecorator) }

// Param returns the documentation of the named parameter, or nil.
func (d *DocComment) Param(name string) *docnode.Section {
	if d == nil {
		return nil
	}
	for _, p := range d.Params {
		if p.Name == name {
			return p.Content
		}
	}
	return nil
}

// HasRemarks reports whether a non-empty @remarks block exists.
func (d *DocComment) HasRemarks() bool {
	return d != nil && d.Remarks.Len() > 0
}
