// Package docnode defines the document tree that articles are built from.
//
// The vocabulary is closed: every node has one of the Kind constants and the
// parent to child relationships are fixed by a registry that is populated at
// package initialization and read-only afterwards. Container constructors and
// Append methods panic with a *ConstraintError when a child is not allowed,
// when a node already has a parent, or when a table row does not match the
// table's columns. Validate runs the same checks over an existing tree and
// reports them as errors.
package docnode
