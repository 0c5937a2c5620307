package docnode

import "fmt"

// FrontMatter carries page metadata. It renders as nothing in the body; the
// renderer serializes the leading FrontMatter of a document separately.
type FrontMatter struct {
	nodeBase
	Data any
}

// NewFrontMatter wraps page metadata.
func NewFrontMatter(data any) *FrontMatter { return &FrontMatter{Data: data} }

// Kind returns KindFrontMatter.
func (*FrontMatter) Kind() Kind { return KindFrontMatter }

// DefaultHeadingLevel is used by NewHeading.
const DefaultHeadingLevel = 2

type Heading struct {
	nodeBase
	Title string
	Level int
}

// NewHeading returns a level 2 heading.
func NewHeading(title string) *Heading {
	return &Heading{Title: title, Level: DefaultHeadingLevel}
}

// NewHeadingLevel returns a heading at level.
func NewHeadingLevel(title string, level int) *Heading {
	return &Heading{Title: title, Level: level}
}

// Kind returns KindHeading.
func (*Heading) Kind() Kind { return KindHeading }

// Table is a column-aligned grid. The header row is derived from the columns
// and every data row must have exactly len(Columns()) cells.
type Table struct {
	nodeBase
	columns []string
	header  *TableRow
	rows    []*TableRow
}

// NewTable returns an empty table with a header built from columns.
func NewTable(columns ...string) *Table {
	t := &Table{columns: append([]string(nil), columns...)}
	cells := make([]Node, 0, len(columns))
	for _, c := range columns {
		cells = append(cells, NewParagraph(NewPlainText(c)))
	}
	t.header = NewTableRow(cells...)
	attach(t, t.header)
	return t
}

// Kind returns KindTable.
func (*Table) Kind() Kind { return KindTable }

// Columns returns the column titles.
func (t *Table) Columns() []string { return t.columns }

// Header returns the row built from the columns.
func (t *Table) Header() *TableRow { return t.header }

// Rows returns the data rows.
func (t *Table) Rows() []*TableRow { return t.rows }

// Children returns the data rows; the header is available from Header.
func (t *Table) Children() []Node {
	out := make([]Node, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, r)
	}
	return out
}

// AddRow appends a data row built from cells.
func (t *Table) AddRow(cells ...Node) *TableRow {
	if len(cells) != len(t.columns) {
		panic(rowWidthError(len(t.columns), len(cells)))
	}
	row := NewTableRow(cells...)
	t.AppendRow(row)
	return row
}

// AppendRow appends an existing row.
func (t *Table) AppendRow(row *TableRow) {
	if row.Len() != len(t.columns) {
		panic(rowWidthError(len(t.columns), row.Len()))
	}
	attach(t, row)
	t.rows = append(t.rows, row)
}

func rowWidthError(want, got int) *ConstraintError {
	return &ConstraintError{
		Parent: KindTable,
		Child:  KindTableRow,
		Reason: fmt.Sprintf("row has %d cells, table has %d columns", got, want),
	}
}

// TableRow holds one cell per column. Cells are paragraphs or sections.
type TableRow struct{ container }

// NewTableRow returns a row of cells.
func NewTableRow(cells ...Node) *TableRow {
	r := &TableRow{}
	r.adopt(r, cells)
	return r
}

// Kind returns KindTableRow.
func (*TableRow) Kind() Kind { return KindTableRow }

// Cells returns the row's cells.
func (r *TableRow) Cells() []Node { return r.children }

// Len is the cell count.
func (r *TableRow) Len() int { return len(r.children) }

// EmphasisSpan decorates inline content.
type EmphasisSpan struct {
	container
	Bold   bool
	Italic bool
}

// NewEmphasisSpan wraps children in bold and/or italic emphasis.
func NewEmphasisSpan(bold, italic bool, children ...Node) *EmphasisSpan {
	e := &EmphasisSpan{Bold: bold, Italic: italic}
	e.adopt(e, children)
	return e
}

// Kind returns KindEmphasisSpan.
func (*EmphasisSpan) Kind() Kind { return KindEmphasisSpan }

// Append adds inline children.
func (e *EmphasisSpan) Append(children ...Node) { e.adopt(e, children) }

// NoteType selects the look of a NoteBox.
type NoteType string

const (
	NoteDanger  NoteType = "danger"
	NoteInfo    NoteType = "info"
	NoteWarning NoteType = "warning"
)

type NoteBox struct {
	container
	Type NoteType
}

// NewNoteBox returns a note container of noteType.
func NewNoteBox(noteType NoteType, children ...Node) *NoteBox {
	n := &NoteBox{Type: noteType}
	n.adopt(n, children)
	return n
}

// Kind returns KindNoteBox.
func (*NoteBox) Kind() Kind { return KindNoteBox }

// Append adds block children.
func (n *NoteBox) Append(children ...Node) { n.adopt(n, children) }

type BreadcrumbItem struct {
	LinkText       string
	URLDestination string
}

type Breadcrumb struct {
	nodeBase
	Items []BreadcrumbItem
}

// NewBreadcrumb returns a breadcrumb of items.
func NewBreadcrumb(items ...BreadcrumbItem) *Breadcrumb {
	return &Breadcrumb{Items: append([]BreadcrumbItem(nil), items...)}
}

// Kind returns KindBreadcrumb.
func (*Breadcrumb) Kind() Kind { return KindBreadcrumb }
