package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	require.NotEmpty(t, Version)
	require.Equal(t, Version, String())

	orig := GitCommit
	t.Cleanup(func() { GitCommit = orig })
	GitCommit = "abc123"
	require.Equal(t, Version+" (abc123, "+BuildTime+")", String())
}
