package xref

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apimd/internal/apimodel"
	"git.home.luguber.info/inful/apimd/internal/apimodel/apitest"
	"git.home.luguber.info/inful/apimd/internal/docnode"
)

func TestLinker_Excerpt(t *testing.T) {
	m := apitest.Model(t)
	var unresolved []string
	l := New(m, func(tok apimodel.Token) { unresolved = append(unresolved, tok.CanonicalReference) })

	palette := apitest.Find(t, m, apitest.Ref("Palette"))
	nodes := l.Excerpt(palette.Excerpt)

	require.Len(t, nodes, 5)
	require.Equal(t, "export type Palette = Record<string, ", nodes[0].(*docnode.PlainText).Text)
	link := nodes[1].(*docnode.LinkTag)
	require.Equal(t, "RgbColor", link.LinkText)
	require.Equal(t, "example-base.rgbcolor", link.URLDestination)
	require.Equal(t, "> | ", nodes[2].(*docnode.PlainText).Text)
	// the unresolved Theme token is merged into the trailing text
	require.Equal(t, "[] | Theme", nodes[4].(*docnode.PlainText).Text)
	require.Equal(t, []string{apitest.Ref("Theme")}, unresolved)
}

func TestLinker_ExternalReferencesDegradeToText(t *testing.T) {
	m := apitest.Model(t)
	l := New(m, nil)

	icon := apitest.Find(t, m, apitest.Ref("DocIcon"))
	nodes := l.Excerpt(icon.Excerpt)
	require.Len(t, nodes, 1)
	require.Equal(t, "export declare class DocIcon extends LitElement", nodes[0].(*docnode.PlainText).Text)
}

func TestLink(t *testing.T) {
	m := apitest.Model(t)
	link := Link(apitest.Find(t, m, apitest.Ref("Server")))
	require.Equal(t, "Server", link.LinkText)
	require.Equal(t, "example-base.server", link.URLDestination)
}
