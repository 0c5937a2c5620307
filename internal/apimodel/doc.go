// Package apimodel holds the read-only API item graph that pages are
// generated from.
//
// A Model is a tree of Items: the model root, one Package per loaded file,
// one EntryPoint per package, then the declared items. What an Item can carry
// (parameters, modifiers, a return type, ...) is decided by the capability
// set of its Kind rather than by its Go type. Package files are YAML or JSON
// documents read by LoadFile; doc comment text inside them is Markdown.
package apimodel
