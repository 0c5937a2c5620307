package tables

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apimd/internal/apimodel"
	"git.home.luguber.info/inful/apimd/internal/apimodel/apitest"
	"git.home.luguber.info/inful/apimd/internal/article"
	"git.home.luguber.info/inful/apimd/internal/docnode"
	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
)

// flatten concatenates the visible text of a cell.
func flatten(sec *docnode.Section) string {
	var b strings.Builder
	docnode.Walk(sec, func(n docnode.Node) bool {
		switch v := n.(type) {
		case *docnode.PlainText:
			b.WriteString(v.Text)
		case *docnode.CodeSpan:
			b.WriteString("`" + v.Code + "`")
		case *docnode.LinkTag:
			b.WriteString("[" + v.LinkText + "](" + v.URLDestination + ")")
		}
		return true
	})
	return b.String()
}

func column(t *testing.T, cells *article.TableCells, c article.Column) []string {
	t.Helper()
	var out []string
	for _, sec := range cells.Column(c) {
		out = append(out, flatten(sec))
	}
	return out
}

func requireRectangular(t *testing.T, part article.TablesPart) {
	t.Helper()
	for _, tbl := range part.Tables() {
		for _, c := range tbl.Cells.Columns() {
			require.Len(t, tbl.Cells.Column(c), tbl.Cells.Len(), "%s.%s", tbl.Name, c)
		}
	}
}

func buildFor(t *testing.T, ref string, opts Options) (Result, *apimodel.Item) {
	t.Helper()
	m := apitest.Model(t)
	item := apitest.Find(t, m, apitest.Ref(ref))
	res, err := New(m, opts).Build(item)
	require.NoError(t, err)
	if res.Part != nil {
		requireRectangular(t, res.Part)
	}
	return res, item
}

func TestBuild_EnumMembers(t *testing.T) {
	res, _ := buildFor(t, "CustomNodeKind", Options{})

	enum, ok := res.Part.(*article.EnumTables)
	require.True(t, ok)
	require.Equal(t, 3, enum.Members.Len())
	require.Equal(t, []string{"DocArticle", "DocSource", "DocToc"}, column(t, enum.Members, article.ColumnMember))
	require.Equal(t, []string{"`\"article\"`", "`\"source\"`", "`\"toc\"`"}, column(t, enum.Members, article.ColumnValue))
	require.Equal(t, "Article root.", column(t, enum.Members, article.ColumnDescription)[0])
	require.Empty(t, res.SubItems)
}

func TestBuild_ClassWithSingleProperty(t *testing.T) {
	res, icon := buildFor(t, "DocIcon", Options{})

	class, ok := res.Part.(*article.ClassTables)
	require.True(t, ok)
	require.Equal(t, 1, class.Properties.Len())
	require.Zero(t, class.Constructors.Len())
	require.Zero(t, class.Methods.Len())
	require.Zero(t, class.Events.Len())

	require.Equal(t, []string{"[name](example-base.docicon.name)"}, column(t, class.Properties, article.ColumnProperty))
	require.Equal(t, []string{"string"}, column(t, class.Properties, article.ColumnType))
	require.Equal(t, []string{"The icon name."}, column(t, class.Properties, article.ColumnDescription))
	require.Equal(t, icon.Members, res.SubItems)
	require.False(t, res.MaybeIncomplete)
}

func TestBuild_ClassModifiersAndRouting(t *testing.T) {
	res, _ := buildFor(t, "Server", Options{})
	class := res.Part.(*article.ClassTables)

	require.Equal(t, 1, class.Constructors.Len())
	require.Equal(t, []string{"`protected`, `readonly`", "`static`"}, column(t, class.Properties, article.ColumnModifiers))
	require.Equal(t, []string{"[onClose](example-base.server.onclose)"}, column(t, class.Events, article.ColumnProperty))
	require.Equal(t, []string{
		"[start()](example-base.server.start)",
		"[listen()](example-base.server.listen)",
		"[listen(port)](example-base.server.listen_1)",
	}, column(t, class.Methods, article.ColumnMethod))
	require.Equal(t, []string{"`abstract`", "", ""}, column(t, class.Methods, article.ColumnModifiers))
	require.Len(t, res.SubItems, 7)
}

func TestModifiersCell_StaticWinsOverAbstract(t *testing.T) {
	item := &apimodel.Item{
		Kind:  apimodel.KindMethod,
		Flags: apimodel.FlagProtected | apimodel.FlagStatic | apimodel.FlagAbstract,
	}
	require.Equal(t, "`protected`, `static`", flatten(modifiersCell(item)))
}

func TestBuild_InheritedMembers(t *testing.T) {
	res, web := buildFor(t, "WebServer", Options{ShowInheritedMembers: true})
	class := res.Part.(*article.ClassTables)

	methods := column(t, class.Methods, article.ColumnDescription)
	require.Len(t, methods, 3)
	require.Equal(t, "Start serving.", methods[0])
	require.Equal(t, " (Inherited from [Server](example-base.server))", methods[1])

	props := column(t, class.Properties, article.ColumnDescription)
	require.Equal(t, "(Beta) Directory to serve.", props[0])

	// inherited members are documented on their own class
	require.Equal(t, web.Members, res.SubItems)
	require.False(t, res.MaybeIncomplete)
}

func TestBuild_MaybeIncomplete(t *testing.T) {
	res, _ := buildFor(t, "DocIcon", Options{ShowInheritedMembers: true})
	require.True(t, res.MaybeIncomplete)
	require.NotEmpty(t, res.Diagnostics)
	require.Equal(t, 1, res.Part.(*article.ClassTables).Properties.Len())
}

func TestBuild_Interface(t *testing.T) {
	res, _ := buildFor(t, "IServer", Options{})
	iface := res.Part.(*article.InterfaceTables)

	require.Equal(t, []string{"[new(port)](example-base.iserver.new)", "[start()](example-base.iserver.start)"},
		column(t, iface.Methods, article.ColumnMethod))
	require.Equal(t, []string{"[host?](example-base.iserver.host)"}, column(t, iface.Properties, article.ColumnProperty))
	require.Equal(t, []string{"(Optional) Host name."}, column(t, iface.Properties, article.ColumnDescription))
	require.Len(t, res.SubItems, 3)
}

func TestBuild_Parameters(t *testing.T) {
	res, _ := buildFor(t, "cleanDir", Options{})
	params := res.Part.(*article.ParameterTables)

	require.Equal(t, []string{"path", "ignoreErrors"}, column(t, params.Parameters, article.ColumnParameter))
	require.Equal(t, []string{"string", "boolean"}, column(t, params.Parameters, article.ColumnType))
	require.Equal(t, []string{"The directory to clean.", "(Optional) Ignore errors while removing."},
		column(t, params.Parameters, article.ColumnDescription))
	require.Equal(t, "Promise<void>Resolves when the directory is empty.", flatten(params.Returns))
	require.Equal(t, "`NodeJS.ErrnoException` when the directory cannot be read.", flatten(params.Throws))
	require.Empty(t, res.SubItems)
}

func TestBuild_ConstructorHasNoReturns(t *testing.T) {
	res, _ := buildFor(t, "Server.constructor", Options{})
	params := res.Part.(*article.ParameterTables)
	require.Equal(t, 1, params.Parameters.Len())
	require.Nil(t, params.Returns)
	require.Nil(t, params.Throws)
}

func TestBuild_Package(t *testing.T) {
	m := apitest.Model(t)
	res, err := New(m, Options{}).Build(m.Packages()[0])
	require.NoError(t, err)
	pkg := res.Part.(*article.PackageTables)

	require.Equal(t, []string{"[DocIcon](example-base.docicon)", "[WebServer](example-base.webserver)"},
		column(t, pkg.Classes, article.ColumnClass))
	require.Equal(t, []string{"[Server](example-base.server)"}, column(t, pkg.AbstractClasses, article.ColumnAbstractClass))
	require.Equal(t, 2, pkg.Functions.Len())
	require.Equal(t, 2, pkg.TypeAliases.Len())
	require.Equal(t, []string{"(Beta) Package version."}, column(t, pkg.Variables, article.ColumnDescription))
	require.Len(t, res.SubItems, 11)
}

func TestBuild_Model(t *testing.T) {
	m := apitest.Model(t)
	res, err := New(m, Options{}).Build(m.Root())
	require.NoError(t, err)
	model := res.Part.(*article.ModelTables)
	require.Equal(t, []string{"[@qingshaner/example-base](example-base)"}, column(t, model.Packages, article.ColumnPackage))
	require.Equal(t, m.Packages(), res.SubItems)
}

func TestBuild_KindsWithoutTables(t *testing.T) {
	for _, ref := range []string{"DocIcon.name", "IServer.host", "RgbColor", "version"} {
		res, _ := buildFor(t, ref, Options{})
		require.Nil(t, res.Part, ref)
		require.Empty(t, res.SubItems, ref)
	}
}

func TestBuild_UnsupportedKind(t *testing.T) {
	m := apitest.Model(t)
	member := apitest.Find(t, m, apitest.Ref("CustomNodeKind.DocToc"))
	_, err := New(m, Options{}).Build(member)
	require.True(t, errors.HasCategory(err, errors.CategoryModel))
}
