package apimodel

import (
	"fmt"
	"strconv"
)

// InheritanceResult is the outcome of FindMembersWithInheritance.
type InheritanceResult struct {
	// Items holds the own members first, then inherited members that are not
	// overridden, walking base types in declaration order.
	Items []*Item
	// MaybeIncomplete is set when a base type could not be followed.
	MaybeIncomplete bool
	Messages        []string
}

// FindMembersWithInheritance collects the members of a class or interface
// together with the members it inherits. Other kinds return their own members.
func (m *Model) FindMembersWithInheritance(item *Item) InheritanceResult {
	var res InheritanceResult
	seen := map[string]bool{}
	visited := map[*Item]bool{}

	var visit func(it *Item)
	visit = func(it *Item) {
		visited[it] = true
		for _, member := range it.Members {
			key := memberKey(member)
			if seen[key] {
				continue
			}
			seen[key] = true
			res.Items = append(res.Items, member)
		}
		for _, base := range baseTypes(it) {
			target, msg := m.resolveBase(it, base)
			if target == nil {
				res.MaybeIncomplete = true
				res.Messages = append(res.Messages, msg)
				continue
			}
			if visited[target] {
				continue
			}
			visit(target)
		}
	}
	visit(item)
	return res
}

func memberKey(it *Item) string {
	return string(it.Kind) + "|" + it.DisplayName + "|" + strconv.Itoa(it.OverloadIndex)
}

func baseTypes(it *Item) []Excerpt {
	switch it.Kind {
	case KindClass:
		if it.Extends.IsEmpty() {
			return nil
		}
		return []Excerpt{it.Extends}
	case KindInterface:
		return it.ExtendsTypes
	default:
		return nil
	}
}

func (m *Model) resolveBase(it *Item, base Excerpt) (*Item, string) {
	refs := base.References()
	if len(refs) == 0 {
		return nil, fmt.Sprintf("unable to analyze base type %q of %s: no reference", base.Text(), it.CanonicalReference())
	}
	target := m.Resolve(refs[0])
	if target == nil {
		return nil, fmt.Sprintf("unable to resolve base type %s of %s", refs[0].CanonicalReference, it.CanonicalReference())
	}
	if target.Kind != it.Kind {
		return nil, fmt.Sprintf("base type %s of %s is a %s, expected %s", refs[0].CanonicalReference, it.CanonicalReference(), target.Kind, it.Kind)
	}
	return target, ""
}
