package apimodel

import (
	"log/slog"

	"git.home.luguber.info/inful/apimd/internal/docnode"
	"git.home.luguber.info/inful/apimd/internal/logfields"
)

// ApplyInheritDoc copies the summary, remarks, params and returns of the
// referenced item into every doc comment carrying an inheritDoc reference.
// Unresolved references are logged and leave the comment untouched;
// self references are ignored. It returns the unresolved references.
func (m *Model) ApplyInheritDoc(logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.Default()
	}
	const (
		pending = iota + 1
		done
	)
	state := map[*Item]int{}
	var unresolved []string

	var apply func(it *Item)
	apply = func(it *Item) {
		if state[it] != 0 {
			return
		}
		state[it] = pending
		defer func() { state[it] = done }()

		ref := it.Doc.InheritDoc
		src := m.ResolveReference(ref)
		switch {
		case src == nil:
			unresolved = append(unresolved, ref)
			logger.Warn("Unresolved @inheritDoc reference",
				logfields.Item(it.CanonicalReference()),
				logfields.Reference(ref))
			return
		case src == it:
			return
		}
		if src.Doc != nil && src.Doc.InheritDoc != "" && state[src] == 0 {
			apply(src)
		}
		copyInheritedDoc(it.Doc, src.Doc)
	}

	m.Walk(func(it *Item) bool {
		if it.Doc != nil && it.Doc.InheritDoc != "" {
			apply(it)
		}
		return true
	})
	return unresolved
}

func copyInheritedDoc(dst, src *DocComment) {
	if src == nil {
		return
	}
	dst.Summary = cloneSection(src.Summary)
	dst.Remarks = cloneSection(src.Remarks)
	dst.Returns = cloneSection(src.Returns)
	dst.Params = make([]ParamBlock, 0, len(src.Params))
	for _, p := range src.Params {
		dst.Params = append(dst.Params, ParamBlock{Name: p.Name, Content: cloneSection(p.Content)})
	}
}

func cloneSection(s *docnode.Section) *docnode.Section {
	if s == nil {
		return nil
	}
	return docnode.Clone(s).(*docnode.Section)
}
