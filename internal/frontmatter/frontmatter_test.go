package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontMatter(t *testing.T) {
	input := []byte("## Title\n\nHello\n")

	doc, err := Split(input)
	require.NoError(t, err)
	require.False(t, doc.Had)
	require.Empty(t, doc.FrontMatter)
	require.Equal(t, input, doc.Body)
	require.Equal(t, input, doc.Bytes())
}

func TestSplit_SeparatesFrontMatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: cleanDir function\n---\n## cleanDir function\n")

	doc, err := Split(input)
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, "title: cleanDir function\n", string(doc.FrontMatter))
	require.Equal(t, "## cleanDir function\n", string(doc.Body))
	require.Equal(t, input, doc.Bytes())

	fields, err := doc.Fields()
	require.NoError(t, err)
	require.Equal(t, "cleanDir function", fields["title"])
}

func TestSplit_MissingClosingDelimiter(t *testing.T) {
	_, err := Split([]byte("---\ntitle: x\n## Title\n"))
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF(t *testing.T) {
	input := []byte("---\r\nkey: value\r\n---\r\n# Title\r\n")

	doc, err := Split(input)
	require.NoError(t, err)
	require.Equal(t, "\r\n", doc.Newline)
	require.Equal(t, "key: value\r\n", string(doc.FrontMatter))
	require.Equal(t, "# Title\r\n", string(doc.Body))
	require.Equal(t, input, doc.Bytes())
}

func TestSplit_EmptyBlock(t *testing.T) {
	doc, err := Split([]byte("---\n---\nbody\n"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Empty(t, doc.FrontMatter)

	fields, err := doc.Fields()
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestJoin_RoundTripsThroughSplit(t *testing.T) {
	out, err := Join(map[string]any{"title": "Server class", "kind": "Class"}, []byte("body\n"))
	require.NoError(t, err)
	require.Equal(t, "---\nkind: Class\ntitle: Server class\n---\nbody\n", string(out))

	doc, err := Split(out)
	require.NoError(t, err)
	require.Equal(t, "body\n", string(doc.Body))
}

func TestEmbeddedBlocks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"none", "## Title\n\ntext\n", 0},
		{"thematic break only", "a\n\n---\n\nb\n", 0},
		{"two breaks around prose", "---\njust words\n---\n", 0},
		{"leaked block", "## Title\n---\ntitle: x\nkind: Class\n---\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, EmbeddedBlocks([]byte(tt.body)))
		})
	}
}
