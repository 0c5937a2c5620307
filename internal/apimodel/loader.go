package apimodel

import (
	"log/slog"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
)

// packageFile is the on-disk description of one package. JSON documents are
// accepted as well since they are valid YAML.
type packageFile struct {
	Package       string     `yaml:"package"`
	RepositoryURL string     `yaml:"repositoryURL"`
	Doc           *docSpec   `yaml:"doc"`
	Items         []itemSpec `yaml:"items"`
}

type itemSpec struct {
	Kind          string        `yaml:"kind"`
	Name          string        `yaml:"name"`
	ReleaseTag    string        `yaml:"releaseTag"`
	Source        string        `yaml:"source"`
	SourceURL     string        `yaml:"sourceURL"`
	Flags         []string      `yaml:"flags"`
	Excerpt       excerptSpec   `yaml:"excerpt"`
	Parameters    []paramSpec   `yaml:"parameters"`
	ReturnType    excerptSpec   `yaml:"returnType"`
	Type          excerptSpec   `yaml:"type"`
	Initializer   excerptSpec   `yaml:"initializer"`
	Extends       excerptSpec   `yaml:"extends"`
	Implements    []excerptSpec `yaml:"implements"`
	ExtendsTypes  []excerptSpec `yaml:"extendsTypes"`
	OverloadIndex int           `yaml:"overloadIndex"`
	Doc           *docSpec      `yaml:"doc"`
	Members       []itemSpec    `yaml:"members"`
}

type paramSpec struct {
	Name     string      `yaml:"name"`
	Type     excerptSpec `yaml:"type"`
	Optional bool        `yaml:"optional"`
}

type docSpec struct {
	Summary    string            `yaml:"summary"`
	Remarks    string            `yaml:"remarks"`
	Params     map[string]string `yaml:"params"`
	Returns    string            `yaml:"returns"`
	Deprecated *string           `yaml:"deprecated"`
	Examples   []string          `yaml:"examples"`
	Throws     []string          `yaml:"throws"`
	Decorators []string          `yaml:"decorators"`
	See        []string          `yaml:"see"`
	Modifiers  []string          `yaml:"modifiers"`
	InheritDoc string            `yaml:"inheritDoc"`
}

// excerptSpec accepts either a plain string or a list whose elements are
// strings (content) or {text, ref} maps (references).
type excerptSpec []Token

// UnmarshalYAML accepts either a plain string or a token list.
func (e *excerptSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value != "" {
			*e = excerptSpec{{Kind: TokenContent, Text: node.Value}}
		}
		return nil
	case yaml.SequenceNode:
		out := make(excerptSpec, 0, len(node.Content))
		for _, el := range node.Content {
			if el.Kind == yaml.ScalarNode {
				out = append(out, Token{Kind: TokenContent, Text: el.Value})
				continue
			}
			var tok struct {
				Text string `yaml:"text"`
				Ref  string `yaml:"ref"`
			}
			if err := el.Decode(&tok); err != nil {
				return err
			}
			kind := TokenContent
			if tok.Ref != "" {
				kind = TokenReference
			}
			out = append(out, Token{Kind: kind, Text: tok.Text, CanonicalReference: tok.Ref})
		}
		*e = out
		return nil
	default:
		return errors.ModelError("excerpt must be a string or a list").
			WithContext("line", node.Line).
			Build()
	}
}

func (e excerptSpec) excerpt() Excerpt {
	if len(e) == 0 {
		return Excerpt{}
	}
	return Excerpt{Tokens: append([]Token(nil), e...)}
}

// LoadFile reads one package description.
func LoadFile(path string) (*Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read model file").
			WithContext(errors.ContextPath, path).
			Build()
	}
	pkg, err := ParsePackage(data)
	if err != nil {
		if c, ok := errors.AsClassified(err); ok {
			return nil, c.WithContext(errors.ContextPath, path)
		}
		return nil, err
	}
	return pkg, nil
}

// ParsePackage decodes a package description into a Package item holding a
// single EntryPoint.
func ParsePackage(data []byte) (*Item, error) {
	var f packageFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.WrapError(err, errors.CategoryModel, "decode model").Build()
	}
	if strings.TrimSpace(f.Package) == "" {
		return nil, errors.ModelError("package name is required").Build()
	}
	members := make([]*Item, 0, len(f.Items))
	for i := range f.Items {
		it, err := buildItem(&f.Items[i], f.RepositoryURL)
		if err != nil {
			return nil, err
		}
		members = append(members, it)
	}
	return &Item{
		Kind:        KindPackage,
		DisplayName: f.Package,
		Doc:         buildDoc(f.Doc),
		Source:      SourceLocation{RepositoryURL: f.RepositoryURL},
		Members:     []*Item{{Kind: KindEntryPoint, Members: members}},
	}, nil
}

// LoadModel loads every file and builds a Model with @inheritDoc applied.
func LoadModel(logger *slog.Logger, paths ...string) (*Model, error) {
	packages := make([]*Item, 0, len(paths))
	for _, p := range paths {
		pkg, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	m, err := NewModel(packages...)
	if err != nil {
		return nil, err
	}
	m.ApplyInheritDoc(logger)
	return m, nil
}

func buildItem(spec *itemSpec, repositoryURL string) (*Item, error) {
	kind, err := ParseKind(spec.Kind)
	if err != nil {
		return nil, withItem(err, spec.Name)
	}
	if kind == KindModel || kind == KindPackage || kind == KindEntryPoint {
		return nil, errors.ModelError("structural kinds cannot be declared in a package file").
			WithContext(errors.ContextKind, string(kind)).
			WithContext("item", spec.Name).
			Build()
	}
	tag, err := ParseReleaseTag(spec.ReleaseTag)
	if err != nil {
		return nil, withItem(err, spec.Name)
	}
	flags, err := ParseFlags(spec.Flags)
	if err != nil {
		return nil, withItem(err, spec.Name)
	}

	it := &Item{
		Kind:          kind,
		DisplayName:   spec.Name,
		ReleaseTag:    tag,
		Flags:         flags,
		Doc:           buildDoc(spec.Doc),
		Excerpt:       spec.Excerpt.excerpt(),
		ReturnType:    spec.ReturnType.excerpt(),
		PropertyType:  spec.Type.excerpt(),
		Initializer:   spec.Initializer.excerpt(),
		Extends:       spec.Extends.excerpt(),
		OverloadIndex: spec.OverloadIndex,
		Source:        sourceLocation(spec, repositoryURL),
	}
	for _, ex := range spec.Implements {
		it.Implements = append(it.Implements, ex.excerpt())
	}
	for _, ex := range spec.ExtendsTypes {
		it.ExtendsTypes = append(it.ExtendsTypes, ex.excerpt())
	}
	for _, p := range spec.Parameters {
		it.Parameters = append(it.Parameters, Parameter{Name: p.Name, Type: p.Type.excerpt(), IsOptional: p.Optional})
	}
	for i := range spec.Members {
		child, err := buildItem(&spec.Members[i], repositoryURL)
		if err != nil {
			return nil, err
		}
		it.Members = append(it.Members, child)
	}
	return it, nil
}

func withItem(err error, name string) error {
	if c, ok := errors.AsClassified(err); ok {
		return c.WithContext("item", name)
	}
	return err
}

func sourceLocation(spec *itemSpec, repositoryURL string) SourceLocation {
	loc := SourceLocation{FileURLPath: spec.Source, RepositoryURL: spec.SourceURL}
	if loc.RepositoryURL == "" && loc.FileURLPath != "" && repositoryURL != "" {
		loc.RepositoryURL = strings.TrimSuffix(repositoryURL, "/") + "/" + strings.TrimPrefix(loc.FileURLPath, "/")
	}
	return loc
}

func buildDoc(spec *docSpec) *DocComment {
	if spec == nil {
		return nil
	}
	doc := &DocComment{
		Summary:    ParseDocText(spec.Summary),
		Modifiers:  spec.Modifiers,
		InheritDoc: spec.InheritDoc,
	}
	if strings.TrimSpace(spec.Remarks) != "" {
		doc.Remarks = ParseDocText(spec.Remarks)
	}
	if strings.TrimSpace(spec.Returns) != "" {
		doc.Returns = ParseDocText(spec.Returns)
	}
	if spec.Deprecated != nil {
		doc.Deprecated = ParseDocText(*spec.Deprecated)
	}

	names := make([]string, 0, len(spec.Params))
	for name := range spec.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		doc.Params = append(doc.Params, ParamBlock{Name: name, Content: ParseDocText(spec.Params[name])})
	}

	addBlocks := func(tag string, texts []string) {
		for _, t := range texts {
			doc.CustomBlocks = append(doc.CustomBlocks, Block{Tag: tag, Content: ParseDocText(t)})
		}
	}
	addBlocks(TagExample, spec.Examples)
	addBlocks(TagThrows, spec.Throws)
	addBlocks(TagDecorator, spec.Decorators)
	addBlocks(TagSee, spec.See)
	return doc
}
