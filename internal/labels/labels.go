// Package labels holds the user-visible words of generated pages.
package labels

import (
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/apimd/internal/article"
)

// Catalog is one language's set of labels.
type Catalog struct {
	Tag language.Tag

	Home              string
	Alpha             string
	Beta              string
	Optional          string
	InheritedFrom     string
	NotDeclared       string
	DeprecatedWarning string
	IncompleteNote    string
	DoNotEdit         string

	Signature   string
	Decorators  string
	Extends     string
	Implements  string
	ExtendTypes string
	References  string
	Remarks     string
	Example     string
	Returns     string
	Throws      string

	Tables  map[article.TableName]string
	Columns map[article.Column]string
}

var english = Catalog{
	Tag:               language.English,
	Home:              "Home",
	Alpha:             "(Alpha)",
	Beta:              "(Beta)",
	Optional:          "(Optional)",
	InheritedFrom:     "Inherited from",
	NotDeclared:       "(not declared)",
	DeprecatedWarning: "Warning: This API is now obsolete.",
	IncompleteNote:    "(Some inherited members may not be shown because they are not represented in the documentation.)",
	DoNotEdit:         "Do not edit this file. It is automatically generated.",
	Signature:         "Signature",
	Decorators:        "Decorators",
	Extends:           "Extends",
	Implements:        "Implements",
	ExtendTypes:       "Extend Types",
	References:        "References",
	Remarks:           "Remarks",
	Example:           "Example",
	Returns:           "Returns",
	Throws:            "Throws",
	Tables: map[article.TableName]string{
		article.TableConstructors:    "Constructors",
		article.TableProperties:      "Properties",
		article.TableMethods:         "Methods",
		article.TableEvents:          "Events",
		article.TableMembers:         "Enumeration Members",
		article.TableParameters:      "Parameters",
		article.TablePackages:        "Packages",
		article.TableClasses:         "Classes",
		article.TableAbstractClasses: "Abstract Classes",
		article.TableEnums:           "Enumerations",
		article.TableFunctions:       "Functions",
		article.TableInterfaces:      "Interfaces",
		article.TableNamespaces:      "Namespaces",
		article.TableTypeAliases:     "Type Aliases",
		article.TableVariables:       "Variables",
	},
	Columns: map[article.Column]string{
		article.ColumnConstructor:   "Constructor",
		article.ColumnMethod:        "Method",
		article.ColumnProperty:      "Property",
		article.ColumnModifiers:     "Modifiers",
		article.ColumnType:          "Type",
		article.ColumnDescription:   "Description",
		article.ColumnMember:        "Member",
		article.ColumnValue:         "Value",
		article.ColumnParameter:     "Parameter",
		article.ColumnPackage:       "Package",
		article.ColumnClass:         "Class",
		article.ColumnAbstractClass: "Abstract Class",
		article.ColumnEnum:          "Enumeration",
		article.ColumnFunction:      "Function",
		article.ColumnInterface:     "Interface",
		article.ColumnNamespace:     "Namespace",
		article.ColumnTypeAlias:     "Type Alias",
		article.ColumnVariable:      "Variable",
	},
}

var chinese = Catalog{
	Tag:               language.Chinese,
	Home:              "首页",
	Alpha:             "(Alpha)",
	Beta:              "(Beta)",
	Optional:          "(可选)",
	InheritedFrom:     "继承自",
	NotDeclared:       "(未声明)",
	DeprecatedWarning: "警告：此 API 已废弃。",
	IncompleteNote:    "(部分继承成员未在文档中表示，可能未显示。)",
	DoNotEdit:         "请勿编辑此文件，它由工具自动生成。",
	Signature:         "签名",
	Decorators:        "装饰器",
	Extends:           "继承",
	Implements:        "实现",
	ExtendTypes:       "扩展类型",
	References:        "引用",
	Remarks:           "备注",
	Example:           "示例",
	Returns:           "返回值",
	Throws:            "异常",
	Tables: map[article.TableName]string{
		article.TableConstructors:    "构造函数",
		article.TableProperties:      "属性",
		article.TableMethods:         "方法",
		article.TableEvents:          "事件",
		article.TableMembers:         "枚举成员",
		article.TableParameters:      "参数",
		article.TablePackages:        "包",
		article.TableClasses:         "类",
		article.TableAbstractClasses: "抽象类",
		article.TableEnums:           "枚举",
		article.TableFunctions:       "函数",
		article.TableInterfaces:      "接口",
		article.TableNamespaces:      "命名空间",
		article.TableTypeAliases:     "类型别名",
		article.TableVariables:       "变量",
	},
	Columns: map[article.Column]string{
		article.ColumnConstructor:   "构造函数",
		article.ColumnMethod:        "方法",
		article.ColumnProperty:      "属性",
		article.ColumnModifiers:     "修饰符",
		article.ColumnType:          "类型",
		article.ColumnDescription:   "描述",
		article.ColumnMember:        "成员",
		article.ColumnValue:         "值",
		article.ColumnParameter:     "参数",
		article.ColumnPackage:       "包",
		article.ColumnClass:         "类",
		article.ColumnAbstractClass: "抽象类",
		article.ColumnEnum:          "枚举",
		article.ColumnFunction:      "函数",
		article.ColumnInterface:     "接口",
		article.ColumnNamespace:     "命名空间",
		article.ColumnTypeAlias:     "类型别名",
		article.ColumnVariable:      "变量",
	},
}

var (
	catalogs = []Catalog{english, chinese}
	matcher  = language.NewMatcher([]language.Tag{english.Tag, chinese.Tag})
)

// English returns the default catalog.
func English() Catalog { return english }

// For returns the catalog best matching the BCP 47 locale. Unknown or
// malformed locales fall back to English.
func For(locale string) Catalog {
	if locale == "" {
		return english
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return english
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return english
	}
	return catalogs[index]
}

// Table returns the heading of a table, falling back to its name.
func (c Catalog) Table(name article.TableName) string {
	if s, ok := c.Tables[name]; ok {
		return s
	}
	return string(name)
}

// Column returns the header label of a column, falling back to its name.
func (c Catalog) Column(col article.Column) string {
	if s, ok := c.Columns[col]; ok {
		return s
	}
	return string(col)
}
