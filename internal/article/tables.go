package article

import (
	"fmt"

	"git.home.luguber.info/inful/apimd/internal/docnode"
)

// Column names a table column. The renderer maps columns to header labels.
type Column string

const (
	ColumnConstructor   Column = "constructor"
	ColumnMethod        Column = "method"
	ColumnProperty      Column = "property"
	ColumnModifiers     Column = "modifiers"
	ColumnType          Column = "type"
	ColumnDescription   Column = "description"
	ColumnMember        Column = "member"
	ColumnValue         Column = "value"
	ColumnParameter     Column = "parameter"
	ColumnPackage       Column = "package"
	ColumnClass         Column = "class"
	ColumnAbstractClass Column = "abstractClass"
	ColumnEnum          Column = "enum"
	ColumnFunction      Column = "function"
	ColumnInterface     Column = "interface"
	ColumnNamespace     Column = "namespace"
	ColumnTypeAlias     Column = "typeAlias"
	ColumnVariable      Column = "variable"
)

// TableCells stores table content as one cell array per column. Rows are
// added whole, so every column always has the same length.
type TableCells struct {
	columns []Column
	cells   [][]*docnode.Section
}

// NewTableCells returns an empty table with the given columns.
func NewTableCells(columns ...Column) *TableCells {
	return &TableCells{
		columns: append([]Column(nil), columns...),
		cells:   make([][]*docnode.Section, len(columns)),
	}
}

// Columns returns the column order.
func (t *TableCells) Columns() []Column { return t.columns }

// Len returns the number of data rows.
func (t *TableCells) Len() int {
	if t == nil || len(t.cells) == 0 {
		return 0
	}
	return len(t.cells[0])
}

// AddRow appends one cell per column, in column order.
func (t *TableCells) AddRow(cells ...*docnode.Section) {
	if len(cells) != len(t.columns) {
		panic(&docnode.ConstraintError{
			Parent: docnode.KindTable,
			Child:  docnode.KindTableRow,
			Reason: fmt.Sprintf("row has %d cells, table has %d columns", len(cells), len(t.columns)),
		})
	}
	for i, c := range cells {
		if c == nil {
			c = docnode.NewSection()
		}
		t.cells[i] = append(t.cells[i], c)
	}
}

// Column returns the cells of column c, or nil when the table lacks it.
func (t *TableCells) Column(c Column) []*docnode.Section {
	for i, col := range t.columns {
		if col == c {
			return t.cells[i]
		}
	}
	return nil
}

// Row returns the cells of row i in column order.
func (t *TableCells) Row(i int) []*docnode.Section {
	row := make([]*docnode.Section, len(t.columns))
	for c := range t.columns {
		row[c] = t.cells[c][i]
	}
	return row
}

// TableName identifies a table within a tables part.
type TableName string

const (
	TableConstructors    TableName = "constructors"
	TableProperties      TableName = "properties"
	TableMethods         TableName = "methods"
	TableEvents          TableName = "events"
	TableMembers         TableName = "members"
	TableParameters      TableName = "parameters"
	TablePackages        TableName = "packages"
	TableClasses         TableName = "classes"
	TableAbstractClasses TableName = "abstractClasses"
	TableEnums           TableName = "enums"
	TableFunctions       TableName = "functions"
	TableInterfaces      TableName = "interfaces"
	TableNamespaces      TableName = "namespaces"
	TableTypeAliases     TableName = "typeAliases"
	TableVariables       TableName = "variables"
)

// NamedTable pairs a table with its name.
type NamedTable struct {
	Name  TableName
	Cells *TableCells
}

// TablesPart is one of the fixed table layouts. The variant is chosen by
// the kind of the documented item.
type TablesPart interface {
	// Tables lists the tables of the part in render order.
	Tables() []NamedTable
	tablesPart()
}

// ClassTables documents the members of a class.
type ClassTables struct {
	Constructors *TableCells
	Properties   *TableCells
	Methods      *TableCells
	Events       *TableCells
}

// NewClassTables returns empty constructor, property, method and event tables.
func NewClassTables() *ClassTables {
	return &ClassTables{
		Constructors: NewTableCells(ColumnConstructor, ColumnModifiers, ColumnDescription),
		Properties:   NewTableCells(ColumnProperty, ColumnModifiers, ColumnType, ColumnDescription),
		Methods:      NewTableCells(ColumnMethod, ColumnModifiers, ColumnDescription),
		Events:       NewTableCells(ColumnProperty, ColumnModifiers, ColumnType, ColumnDescription),
	}
}

// Tables lists the class tables in render order.
func (c *ClassTables) Tables() []NamedTable {
	return []NamedTable{
		{TableConstructors, c.Constructors},
		{TableProperties, c.Properties},
		{TableMethods, c.Methods},
		{TableEvents, c.Events},
	}
}

// InterfaceTables documents the members of an interface.
type InterfaceTables struct {
	Properties *TableCells
	Methods    *TableCells
	Events     *TableCells
}

// NewInterfaceTables returns empty property, method and event tables.
func NewInterfaceTables() *InterfaceTables {
	return &InterfaceTables{
		Properties: NewTableCells(ColumnProperty, ColumnModifiers, ColumnType, ColumnDescription),
		Methods:    NewTableCells(ColumnMethod, ColumnDescription),
		Events:     NewTableCells(ColumnProperty, ColumnModifiers, ColumnType, ColumnDescription),
	}
}

// Tables lists the interface tables in render order.
func (i *InterfaceTables) Tables() []NamedTable {
	return []NamedTable{
		{TableProperties, i.Properties},
		{TableMethods, i.Methods},
		{TableEvents, i.Events},
	}
}

// EnumTables documents the members of an enum.
type EnumTables struct {
	Members *TableCells
}

// NewEnumTables returns an empty enum member table.
func NewEnumTables() *EnumTables {
	return &EnumTables{Members: NewTableCells(ColumnMember, ColumnValue, ColumnDescription)}
}

// Tables returns the member table.
func (e *EnumTables) Tables() []NamedTable {
	return []NamedTable{{TableMembers, e.Members}}
}

// ParameterTables documents a function-like item.
type ParameterTables struct {
	Parameters *TableCells
	// Returns holds the return type and the @returns block. Nil when the
	// item has no return type.
	Returns *docnode.Section
	// Throws holds the content of every @throws block. Nil when there are none.
	Throws *docnode.Section
}

// NewParameterTables returns empty parameter, returns and throws tables.
func NewParameterTables() *ParameterTables {
	return &ParameterTables{Parameters: NewTableCells(ColumnParameter, ColumnType, ColumnDescription)}
}

// Tables lists parameters, returns and throws.
func (p *ParameterTables) Tables() []NamedTable {
	return []NamedTable{{TableParameters, p.Parameters}}
}

// ModelTables lists the packages of the model.
type ModelTables struct {
	Packages *TableCells
}

// NewModelTables returns an empty package table.
func NewModelTables() *ModelTables {
	return &ModelTables{Packages: NewTableCells(ColumnPackage, ColumnDescription)}
}

// Tables returns the package table.
func (m *ModelTables) Tables() []NamedTable {
	return []NamedTable{{TablePackages, m.Packages}}
}

// PackageTables lists the members of a package or namespace.
type PackageTables struct {
	Classes         *TableCells
	AbstractClasses *TableCells
	Enums           *TableCells
	Functions       *TableCells
	Interfaces      *TableCells
	Namespaces      *TableCells
	TypeAliases     *TableCells
	Variables       *TableCells
}

// NewPackageTables returns one empty table per member category.
func NewPackageTables() *PackageTables {
	return &PackageTables{
		Classes:         NewTableCells(ColumnClass, ColumnDescription),
		AbstractClasses: NewTableCells(ColumnAbstractClass, ColumnDescription),
		Enums:           NewTableCells(ColumnEnum, ColumnDescription),
		Functions:       NewTableCells(ColumnFunction, ColumnDescription),
		Interfaces:      NewTableCells(ColumnInterface, ColumnDescription),
		Namespaces:      NewTableCells(ColumnNamespace, ColumnDescription),
		TypeAliases:     NewTableCells(ColumnTypeAlias, ColumnDescription),
		Variables:       NewTableCells(ColumnVariable, ColumnDescription),
	}
}

// Tables lists the member categories in render order.
func (p *PackageTables) Tables() []NamedTable {
	return []NamedTable{
		{TableClasses, p.Classes},
		{TableAbstractClasses, p.AbstractClasses},
		{TableEnums, p.Enums},
		{TableFunctions, p.Functions},
		{TableInterfaces, p.Interfaces},
		{TableNamespaces, p.Namespaces},
		{TableTypeAliases, p.TypeAliases},
		{TableVariables, p.Variables},
	}
}

func (*ClassTables) tablesPart()     {}
func (*InterfaceTables) tablesPart() {}
func (*EnumTables) tablesPart()      {}
func (*ParameterTables) tablesPart() {}
func (*ModelTables) tablesPart()     {}
func (*PackageTables) tablesPart()   {}
