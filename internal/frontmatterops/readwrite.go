package frontmatterops

import "git.home.luguber.info/inful/apimd/internal/frontmatter"

// Read splits a page into its front matter fields and body. A page without
// front matter yields empty fields and the whole input as body.
func Read(content []byte) (fields map[string]any, body []byte, err error) {
	doc, err := frontmatter.Split(content)
	if err != nil {
		return nil, nil, err
	}
	fields, err = doc.Fields()
	if err != nil {
		return nil, nil, err
	}
	return fields, doc.Body, nil
}

// Write places fields ahead of body.
func Write(fields map[string]any, body []byte) ([]byte, error) {
	return frontmatter.Join(fields, body)
}
