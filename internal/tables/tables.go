// Package tables builds the tables part of an article from the members of
// an API item.
package tables

import (
	"log/slog"

	"git.home.luguber.info/inful/apimd/internal/apimodel"
	"git.home.luguber.info/inful/apimd/internal/article"
	"git.home.luguber.info/inful/apimd/internal/docnode"
	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
	"git.home.luguber.info/inful/apimd/internal/labels"
	"git.home.luguber.info/inful/apimd/internal/logfields"
	"git.home.luguber.info/inful/apimd/internal/naming"
	"git.home.luguber.info/inful/apimd/internal/xref"
)

// Options configures a Builder.
type Options struct {
	// ShowInheritedMembers adds inherited members to class and interface tables.
	ShowInheritedMembers bool
	Labels               labels.Catalog
	Logger               *slog.Logger
}

// Result is the tables part of one item and the members it consumed.
type Result struct {
	// Part is nil for kinds that have no tables.
	Part article.TablesPart
	// SubItems are the members placed into rows that get pages of their own,
	// in declaration order.
	SubItems []*apimodel.Item
	// MaybeIncomplete reports that inherited members could not all be found.
	MaybeIncomplete bool
	Diagnostics     []string
	// Unresolved counts reference tokens that did not resolve.
	Unresolved int
}

// Builder produces tables parts.
type Builder struct {
	model *apimodel.Model
	opts  Options
}

// New returns a Builder over model.
func New(model *apimodel.Model, opts Options) *Builder {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Labels.Tables == nil {
		opts.Labels = labels.English()
	}
	return &Builder{model: model, opts: opts}
}

// build carries the state of one Build call.
type build struct {
	*Builder
	item   *apimodel.Item
	labels labels.Catalog
	linker *xref.Linker
	res    Result
}

// Build returns the tables part for item. The part variant is a function of
// item.Kind; kinds without tables yield a zero Result. Kinds that should
// never reach table generation return a model error.
func (b *Builder) Build(item *apimodel.Item) (Result, error) {
	st := &build{Builder: b, item: item, labels: b.opts.Labels}
	st.linker = xref.New(b.model, func(tok apimodel.Token) {
		st.res.Unresolved++
		st.res.Diagnostics = append(st.res.Diagnostics, "unresolved reference "+tok.CanonicalReference)
	})

	switch item.Kind {
	case apimodel.KindClass:
		st.res.Part = st.classTables()
	case apimodel.KindInterface:
		st.res.Part = st.interfaceTables()
	case apimodel.KindEnum:
		st.res.Part = st.enumTables()
	case apimodel.KindModel:
		st.res.Part = st.modelTables()
	case apimodel.KindPackage, apimodel.KindNamespace:
		st.res.Part = st.packageTables()
	case apimodel.KindFunction, apimodel.KindMethod, apimodel.KindConstructor,
		apimodel.KindMethodSignature, apimodel.KindConstructSignature:
		st.res.Part = st.parameterTables()
	case apimodel.KindProperty, apimodel.KindPropertySignature,
		apimodel.KindTypeAlias, apimodel.KindVariable:
		return Result{}, nil
	default:
		return Result{}, errors.ModelError("unsupported API item kind").
			WithContext(errors.ContextKind, string(item.Kind)).
			WithContext(errors.ContextAnchor, naming.AnchorID(item)).
			Build()
	}
	return st.res, nil
}

// members returns the members to tabulate, following inheritance when enabled.
func (st *build) members() []*apimodel.Item {
	if !st.opts.ShowInheritedMembers {
		return st.item.Members
	}
	inh := st.model.FindMembersWithInheritance(st.item)
	if inh.MaybeIncomplete {
		st.res.MaybeIncomplete = true
		st.res.Diagnostics = append(st.res.Diagnostics, inh.Messages...)
		for _, msg := range inh.Messages {
			st.opts.Logger.Warn("Inherited members may be incomplete",
				logfields.Anchor(naming.AnchorID(st.item)),
				slog.String("detail", msg))
		}
	}
	return inh.Items
}

// consume records member as a sub-item unless it is inherited.
func (st *build) consume(member *apimodel.Item) {
	if member.Parent() == st.item {
		st.res.SubItems = append(st.res.SubItems, member)
	}
}

func (st *build) classTables() *article.ClassTables {
	t := article.NewClassTables()
	for _, m := range st.members() {
		switch m.Kind {
		case apimodel.KindConstructor:
			t.Constructors.AddRow(titleCell(m), modifiersCell(m), st.descriptionCell(m, st.item))
		case apimodel.KindMethod:
			t.Methods.AddRow(titleCell(m), modifiersCell(m), st.descriptionCell(m, st.item))
		case apimodel.KindProperty:
			target := t.Properties
			if m.IsEventProperty() {
				target = t.Events
			}
			target.AddRow(titleCell(m), modifiersCell(m), st.typeCell(m.PropertyType), st.descriptionCell(m, st.item))
		default:
			continue
		}
		st.consume(m)
	}
	return t
}

func (st *build) interfaceTables() *article.InterfaceTables {
	t := article.NewInterfaceTables()
	for _, m := range st.members() {
		switch m.Kind {
		case apimodel.KindConstructSignature, apimodel.KindMethodSignature:
			t.Methods.AddRow(titleCell(m), st.descriptionCell(m, st.item))
		case apimodel.KindPropertySignature:
			target := t.Properties
			if m.IsEventProperty() {
				target = t.Events
			}
			target.AddRow(titleCell(m), modifiersCell(m), st.typeCell(m.PropertyType), st.descriptionCell(m, st.item))
		default:
			continue
		}
		st.consume(m)
	}
	return t
}

// enumTables lists the members; enum members have no pages of their own.
func (st *build) enumTables() *article.EnumTables {
	t := article.NewEnumTables()
	for _, m := range st.item.Members {
		if m.Kind != apimodel.KindEnumMember {
			continue
		}
		t.Members.AddRow(plainTitleCell(m), initializerCell(m), st.descriptionCell(m, st.item))
	}
	return t
}

func (st *build) modelTables() *article.ModelTables {
	t := article.NewModelTables()
	for _, m := range st.item.Members {
		if m.Kind != apimodel.KindPackage {
			continue
		}
		t.Packages.AddRow(titleCell(m), st.descriptionCell(m, nil))
		st.consume(m)
	}
	return t
}

func (st *build) packageTables() *article.PackageTables {
	t := article.NewPackageTables()
	members := st.item.Members
	if st.item.Kind == apimodel.KindPackage {
		members = nil
		if ep := st.item.EntryPoint(); ep != nil {
			members = ep.Members
		}
	}
	for _, m := range members {
		var target *article.TableCells
		switch m.Kind {
		case apimodel.KindClass:
			target = t.Classes
			if m.IsAbstract() {
				target = t.AbstractClasses
			}
		case apimodel.KindEnum:
			target = t.Enums
		case apimodel.KindFunction:
			target = t.Functions
		case apimodel.KindInterface:
			target = t.Interfaces
		case apimodel.KindNamespace:
			target = t.Namespaces
		case apimodel.KindTypeAlias:
			target = t.TypeAliases
		case apimodel.KindVariable:
			target = t.Variables
		default:
			continue
		}
		target.AddRow(titleCell(m), st.descriptionCell(m, nil))
		st.res.SubItems = append(st.res.SubItems, m)
	}
	return t
}

func (st *build) parameterTables() *article.ParameterTables {
	t := article.NewParameterTables()
	doc := st.item.Doc
	for _, p := range st.item.Parameters {
		lead := st.optionalPrefix(p.IsOptional)
		t.Parameters.AddRow(
			docnode.NewSection(docnode.NewParagraph(text(p.Name))),
			st.typeCell(p.Type),
			prefixedContent(lead, doc.Param(p.Name)),
		)
	}

	if st.item.Kind.Has(apimodel.CapReturnType) {
		var returnsDoc *docnode.Section
		if doc != nil {
			returnsDoc = doc.Returns
		}
		if !st.item.ReturnType.IsEmpty() || returnsDoc != nil {
			sec := docnode.NewSection()
			if !st.item.ReturnType.IsEmpty() {
				sec.Append(docnode.NewParagraph(st.linker.Excerpt(st.item.ReturnType)...))
			}
			if returnsDoc != nil {
				sec.Append(docnode.CloneChildren(returnsDoc)...)
			}
			t.Returns = sec
		}
	}

	if throws := doc.Throws(); len(throws) > 0 {
		sec := docnode.NewSection()
		for _, blk := range throws {
			sec.Append(docnode.CloneChildren(blk.Content)...)
		}
		t.Throws = sec
	}
	return t
}
