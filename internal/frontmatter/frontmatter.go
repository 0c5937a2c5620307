// Package frontmatter reads and writes the YAML block at the head of a
// generated page.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes a front matter block.
const Delimiter = "---"

// ErrMissingClosingDelimiter indicates the document started with a front
// matter delimiter but never closed it.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Document is a page split into its front matter and body.
type Document struct {
	// FrontMatter is the raw YAML between the delimiters.
	FrontMatter []byte
	Body        []byte
	// Had reports whether the page started with a front matter block.
	Had bool
	// Newline is the line ending detected in the page.
	Newline string
}

// Split separates the leading front matter from the body. A page without a
// leading delimiter line yields Had == false and the whole input as body.
func Split(content []byte) (Document, error) {
	nl := detectNewline(content)
	doc := Document{Body: content, Newline: nl}

	open := []byte(Delimiter + nl)
	if !bytes.HasPrefix(content, open) {
		return doc, nil
	}
	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		doc.FrontMatter, doc.Body, doc.Had = []byte{}, rest[len(open):], true
		return doc, nil
	}

	closing := []byte(nl + Delimiter + nl)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		return Document{Newline: nl}, ErrMissingClosingDelimiter
	}
	doc.FrontMatter = rest[:idx+len(nl)]
	doc.Body = rest[idx+len(closing):]
	doc.Had = true
	return doc, nil
}

// Bytes reassembles the page. Without front matter it is the body alone.
func (d Document) Bytes() []byte {
	if !d.Had {
		return d.Body
	}
	nl := d.Newline
	if nl == "" {
		nl = "\n"
	}
	out := make([]byte, 0, 2*(len(Delimiter)+len(nl))+len(d.FrontMatter)+len(d.Body))
	out = append(out, Delimiter+nl...)
	out = append(out, d.FrontMatter...)
	out = append(out, Delimiter+nl...)
	return append(out, d.Body...)
}

// Fields parses the front matter into a map. A page without front matter
// has no fields.
func (d Document) Fields() (map[string]any, error) {
	return ParseYAML(d.FrontMatter)
}

// Join serializes fields and places them ahead of body.
func Join(fields map[string]any, body []byte) ([]byte, error) {
	raw, err := SerializeYAML(fields, "\n")
	if err != nil {
		return nil, err
	}
	return Document{FrontMatter: raw, Body: body, Had: true, Newline: "\n"}.Bytes(), nil
}

// ParseYAML parses raw front matter without delimiters.
func ParseYAML(raw []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// EmbeddedBlocks counts delimiter-enclosed YAML mappings inside body, i.e.
// front matter that leaked into the content.
func EmbeddedBlocks(body []byte) int {
	lines := bytes.Split(bytes.ReplaceAll(body, []byte("\r\n"), []byte("\n")), []byte("\n"))
	count := 0
	for i := 0; i < len(lines); i++ {
		if string(lines[i]) != Delimiter {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if string(lines[j]) != Delimiter {
				continue
			}
			if isMapping(bytes.Join(lines[i+1:j], []byte("\n"))) {
				count++
				i = j
			}
			break
		}
	}
	return count
}

func isMapping(raw []byte) bool {
	var node yaml.Node
	if len(bytes.TrimSpace(raw)) == 0 || yaml.Unmarshal(raw, &node) != nil {
		return false
	}
	return len(node.Content) == 1 && node.Content[0].Kind == yaml.MappingNode
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
