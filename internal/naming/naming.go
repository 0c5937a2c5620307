// Package naming derives anchor IDs, titles and signatures from the API
// hierarchy. Every function is pure.
package naming

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/apimd/internal/apimodel"
	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
)

// IndexAnchor is the anchor of the model page.
const IndexAnchor = "index"

var (
	unsafeFilenameChars = regexp.MustCompile(`(?i)[^a-z0-9_\-.]`)
	npmScope            = regexp.MustCompile(`^@[^/]+/`)
	lower               = cases.Lower(language.Und)
)

// EncodeFilename replaces every character outside [a-zA-Z0-9_.-] with "_".
func EncodeFilename(s string) string {
	return unsafeFilenameChars.ReplaceAllString(s, "_")
}

// UnscopedPackageName strips an npm scope such as "@scope/".
func UnscopedPackageName(name string) string {
	return npmScope.ReplaceAllString(name, "")
}

// AnchorID joins the encoded names of item's ancestors with ".". Model,
// EntryPoint and EnumMember levels are skipped, packages lose their scope,
// and the n-th overload of a parameter-bearing item gets a "_<n-1>" suffix.
// The model maps to IndexAnchor.
func AnchorID(item *apimodel.Item) string {
	if item.Kind == apimodel.KindModel {
		return IndexAnchor
	}
	var b strings.Builder
	for _, h := range item.Hierarchy() {
		switch h.Kind {
		case apimodel.KindModel, apimodel.KindEntryPoint, apimodel.KindEnumMember:
			continue
		case apimodel.KindPackage:
			b.Reset()
			b.WriteString(EncodeFilename(UnscopedPackageName(h.DisplayName)))
			continue
		}
		b.WriteByte('.')
		b.WriteString(EncodeFilename(h.DisplayName))
		if h.Kind.Has(apimodel.CapParameters) && h.OverloadIndex > 1 {
			b.WriteString("_" + strconv.Itoa(h.OverloadIndex-1))
		}
	}
	return lower.String(b.String())
}

// ConciseSignature is the display name, with the parameter names in
// parentheses for parameter-bearing kinds.
func ConciseSignature(item *apimodel.Item) string {
	if !item.Kind.Has(apimodel.CapParameters) {
		return item.DisplayName
	}
	names := make([]string, 0, len(item.Parameters))
	for _, p := range item.Parameters {
		names = append(names, p.Name)
	}
	return item.DisplayName + "(" + strings.Join(names, ", ") + ")"
}

var titleCategories = map[apimodel.Kind]string{
	apimodel.KindClass:             "class",
	apimodel.KindEnum:              "enum",
	apimodel.KindFunction:          "function",
	apimodel.KindInterface:         "interface",
	apimodel.KindMethod:            "method",
	apimodel.KindMethodSignature:   "method",
	apimodel.KindNamespace:         "namespace",
	apimodel.KindProperty:          "property",
	apimodel.KindPropertySignature: "property",
	apimodel.KindTypeAlias:         "type",
	apimodel.KindVariable:          "variable",
}

// ModelTitle is the title of the model page.
const ModelTitle = "API Reference"

// Title returns the page title of item, e.g. "Server class".
func Title(item *apimodel.Item) (string, error) {
	if category, ok := titleCategories[item.Kind]; ok {
		return item.ScopedName() + " " + category, nil
	}
	switch item.Kind {
	case apimodel.KindConstructor, apimodel.KindConstructSignature:
		return item.ScopedName(), nil
	case apimodel.KindModel:
		return ModelTitle, nil
	case apimodel.KindPackage:
		return UnscopedPackageName(item.DisplayName) + " package", nil
	default:
		return "", errors.ModelError("unknown API item kind for title").
			WithContext(errors.ContextKind, string(item.Kind)).
			WithContext(errors.ContextAnchor, AnchorID(item)).
			Build()
	}
}
