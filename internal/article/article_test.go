package article

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apimd/internal/apimodel"
	"git.home.luguber.info/inful/apimd/internal/docnode"
)

func TestTableCells_AddRowKeepsColumnsAligned(t *testing.T) {
	cells := NewTableCells(ColumnMember, ColumnValue, ColumnDescription)
	cells.AddRow(docnode.NewSection(), nil, docnode.NewSection())
	cells.AddRow(docnode.NewSection(), docnode.NewSection(), docnode.NewSection())

	require.Equal(t, 2, cells.Len())
	for _, c := range cells.Columns() {
		require.Len(t, cells.Column(c), 2)
	}
	require.NotNil(t, cells.Row(0)[1])
	require.Nil(t, cells.Column(ColumnType))

	require.Panics(t, func() { cells.AddRow(docnode.NewSection()) })
	require.Equal(t, 2, cells.Len())
}

func TestTablesPart_Variants(t *testing.T) {
	parts := map[TablesPart]int{
		NewClassTables():     4,
		NewInterfaceTables(): 3,
		NewEnumTables():      1,
		NewParameterTables(): 1,
		NewModelTables():     1,
		NewPackageTables():   8,
	}
	for part, n := range parts {
		tables := part.Tables()
		require.Len(t, tables, n)
		for _, tbl := range tables {
			require.Zero(t, tbl.Cells.Len(), tbl.Name)
		}
	}
	require.Equal(t, []Column{ColumnMethod, ColumnDescription}, NewInterfaceTables().Methods.Columns())
}

func TestMeta_Merge(t *testing.T) {
	m := Meta{FrontMatter: FrontMatter{
		Breadcrumb:  []BreadcrumbLink{{Href: "index", Text: "Home"}},
		DisplayName: "Server",
		Kind:        apimodel.KindClass,
	}}
	m.Merge(Meta{
		FrontMatter:     FrontMatter{Title: "Server class", Breadcrumb: []BreadcrumbLink{{Href: "pkg", Text: "pkg"}}},
		MaybeIncomplete: true,
		Diagnostics:     []string{"base not found"},
	})
	m.Merge(Meta{Diagnostics: []string{"second"}})

	require.Equal(t, "Server", m.FrontMatter.DisplayName)
	require.Equal(t, "Server class", m.FrontMatter.Title)
	require.Len(t, m.FrontMatter.Breadcrumb, 2)
	require.True(t, m.MaybeIncomplete)
	require.Equal(t, []string{"base not found", "second"}, m.Diagnostics)
}

func TestParts_Merge(t *testing.T) {
	summary := docnode.NewSection()
	remarks := docnode.NewSection()
	var p Parts
	p.Merge(Parts{Remarks: &RemarksPart{Summary: summary, Examples: []*docnode.Section{docnode.NewSection()}}})
	p.Merge(Parts{Remarks: &RemarksPart{Remarks: remarks, Examples: []*docnode.Section{docnode.NewSection()}}})
	p.Merge(Parts{Tables: NewEnumTables()})

	require.Same(t, summary, p.Remarks.Summary)
	require.Same(t, remarks, p.Remarks.Remarks)
	require.Len(t, p.Remarks.Examples, 2)
	require.IsType(t, &EnumTables{}, p.Tables)
	require.Nil(t, p.Signature)
}

func TestFrontMatter_Fields(t *testing.T) {
	fm := FrontMatter{
		Breadcrumb:  []BreadcrumbLink{{Href: "index", Text: "Home"}},
		DisplayName: "version",
		Kind:        apimodel.KindVariable,
		ScopedName:  "version",
		Title:       "version variable",
		Source:      &Source{FileURLPath: "dist/src/variables.d.ts"},
	}
	fields := fm.Fields()
	require.Equal(t, "None", fields["releaseTag"])
	require.Equal(t, "Variable", fields["kind"])
	require.Equal(t, []any{map[string]any{"href": "index", "text": "Home"}}, fields["breadcrumb"])
	require.Equal(t, map[string]any{"fileURLPath": "dist/src/variables.d.ts"}, fields["source"])

	fm.Source = nil
	_, ok := fm.Fields()["source"]
	require.False(t, ok)
}
