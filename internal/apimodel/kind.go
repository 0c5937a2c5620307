package apimodel

import (
	"strings"

	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
)

// Kind is the variant of an API item.
type Kind string

const (
	KindModel              Kind = "Model"
	KindPackage            Kind = "Package"
	KindEntryPoint         Kind = "EntryPoint"
	KindNamespace          Kind = "Namespace"
	KindClass              Kind = "Class"
	KindInterface          Kind = "Interface"
	KindEnum               Kind = "Enum"
	KindEnumMember         Kind = "EnumMember"
	KindFunction           Kind = "Function"
	KindMethod             Kind = "Method"
	KindMethodSignature    Kind = "MethodSignature"
	KindConstructSignature Kind = "ConstructSignature"
	KindConstructor        Kind = "Constructor"
	KindProperty           Kind = "Property"
	KindPropertySignature  Kind = "PropertySignature"
	KindVariable           Kind = "Variable"
	KindTypeAlias          Kind = "TypeAlias"
)

// Capability is a bit set of the data an item kind can carry.
type Capability uint16

const (
	CapDocumented Capability = 1 << iota
	CapDeclared
	CapReleaseTag
	CapMembers
	CapParameters
	CapReturnType
	CapOptional
	CapProtected
	CapStatic
	CapAbstract
	CapReadonly
	CapInitializer
	CapPropertyType
	CapHeritage
)

const declared = CapDocumented | CapDeclared | CapReleaseTag

var kindCapabilities = map[Kind]Capability{
	KindModel:              CapMembers,
	KindPackage:            CapDocumented | CapMembers,
	KindEntryPoint:         CapMembers,
	KindNamespace:          declared | CapMembers,
	KindClass:              declared | CapMembers | CapAbstract | CapHeritage,
	KindInterface:          declared | CapMembers | CapHeritage,
	KindEnum:               declared | CapMembers,
	KindEnumMember:         declared | CapInitializer,
	KindFunction:           declared | CapParameters | CapReturnType,
	KindMethod:             declared | CapParameters | CapReturnType | CapOptional | CapProtected | CapStatic | CapAbstract,
	KindMethodSignature:    declared | CapParameters | CapReturnType | CapOptional,
	KindConstructSignature: declared | CapParameters | CapReturnType,
	KindConstructor:        declared | CapParameters | CapProtected,
	KindProperty:           declared | CapOptional | CapProtected | CapStatic | CapAbstract | CapReadonly | CapInitializer | CapPropertyType,
	KindPropertySignature:  declared | CapOptional | CapReadonly | CapPropertyType,
	KindVariable:           declared | CapReadonly | CapInitializer | CapPropertyType,
	KindTypeAlias:          declared,
}

// Capabilities returns the capability set of k. Unknown kinds have none.
func (k Kind) Capabilities() Capability { return kindCapabilities[k] }

// Has reports whether k carries every capability in c.
func (k Kind) Has(c Capability) bool { return kindCapabilities[k]&c == c }

// Known reports whether k is a member of the kind vocabulary.
func (k Kind) Known() bool {
	_, ok := kindCapabilities[k]
	return ok
}

// ParseKind matches s case-insensitively against the known kinds.
func ParseKind(s string) (Kind, error) {
	for k := range kindCapabilities {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", errors.ModelError("unknown API item kind").WithContext(errors.ContextKind, s).Build()
}

// ReleaseTag is the stability level attached to a declaration.
type ReleaseTag int

const (
	ReleaseTagNone ReleaseTag = iota
	ReleaseTagAlpha
	ReleaseTagBeta
	ReleaseTagDeprecated
	ReleaseTagStable
)

var releaseTagNames = [...]string{"None", "Alpha", "Beta", "Deprecated", "Stable"}

// String returns the tag name as written in models.
func (r ReleaseTag) String() string {
	if r < 0 || int(r) >= len(releaseTagNames) {
		return releaseTagNames[ReleaseTagNone]
	}
	return releaseTagNames[r]
}

// ParseReleaseTag accepts the tag names plus "public" as an alias of Stable.
// An empty string is ReleaseTagNone.
func ParseReleaseTag(s string) (ReleaseTag, error) {
	if s == "" {
		return ReleaseTagNone, nil
	}
	if strings.EqualFold(s, "public") {
		return ReleaseTagStable, nil
	}
	for i, name := range releaseTagNames {
		if strings.EqualFold(name, s) {
			return ReleaseTag(i), nil
		}
	}
	return ReleaseTagNone, errors.ModelError("unknown release tag").WithContext("release_tag", s).Build()
}

// Flags are the boolean modifiers of an item. They only take effect when the
// item's kind has the matching capability.
type Flags uint8

const (
	FlagOptional Flags = 1 << iota
	FlagAbstract
	FlagStatic
	FlagProtected
	FlagReadonly
	FlagEventProperty
)

// Has reports whether every flag in x is set.
func (f Flags) Has(x Flags) bool { return f&x == x }

var flagNames = map[string]Flags{
	"optional":  FlagOptional,
	"abstract":  FlagAbstract,
	"static":    FlagStatic,
	"protected": FlagProtected,
	"readonly":  FlagReadonly,
	"event":     FlagEventProperty,
}

// ParseFlags combines flag names such as "static" and "readonly".
func ParseFlags(names []string) (Flags, error) {
	var f Flags
	for _, n := range names {
		v, ok := flagNames[strings.ToLower(n)]
		if !ok {
			return 0, errors.ModelError("unknown item flag").WithContext("flag", n).Build()
		}
		f |= v
	}
	return f, nil
}
