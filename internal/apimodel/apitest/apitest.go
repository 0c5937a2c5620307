// Package apitest provides API models for tests.
package apitest

import (
	_ "embed"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apimd/internal/apimodel"
)

//go:embed testdata/example-base.yaml
var exampleBase []byte

// ExampleBase returns the raw example package description.
func ExampleBase() []byte { return append([]byte(nil), exampleBase...) }

// Model builds a fresh model from the example package.
func Model(t testing.TB) *apimodel.Model {
	t.Helper()
	pkg, err := apimodel.ParsePackage(exampleBase)
	require.NoError(t, err)
	m, err := apimodel.NewModel(pkg)
	require.NoError(t, err)
	m.ApplyInheritDoc(nil)
	return m
}

// Find returns the item with the canonical reference ref or fails the test.
func Find(t testing.TB, m *apimodel.Model, ref string) *apimodel.Item {
	t.Helper()
	it := m.ResolveReference(ref)
	require.NotNil(t, it, "no item %s", ref)
	return it
}

// Ref prefixes a scoped name with the example package name.
func Ref(scoped string) string { return "@qingshaner/example-base!" + scoped }
