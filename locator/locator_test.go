package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type args []string

func (a args) Get(n int) string {
	if n >= 0 && n < len(a) {
		return a[n]
	}
	return ""
}

func (a args) Len() int { return len(a) }

func TestRepositoryLocator(t *testing.T) {
	var r RepositoryLocator
	require.NoError(t, r.LoadFrom(args{"octo/hello"}))
	assert.Equal(t, "octo", r.Owner)
	assert.Equal(t, "hello", r.Repo)
	assert.Equal(t, "octo/hello", r.String())

	for _, bad := range []string{"", "octo", "/hello", "octo/", "a/b/c"} {
		var r RepositoryLocator
		err := r.LoadFrom(args{bad})
		assert.ErrorAs(t, err, &ArgumentError{}, bad)
	}

	assert.Error(t, (&RepositoryLocator{}).LoadFrom(args{}))
}

func TestArtifactLocator(t *testing.T) {
	var a ArtifactLocator
	require.NoError(t, a.LoadFrom(args{"octo/hello", "42"}))
	assert.Equal(t, "octo", a.Owner)
	assert.Equal(t, int64(42), a.ArtifactID)

	assert.Error(t, (&ArtifactLocator{}).LoadFrom(args{"octo/hello"}))
	assert.Error(t, (&ArtifactLocator{}).LoadFrom(args{"octo/hello", "abc"}))
	assert.Error(t, (&ArtifactLocator{}).LoadFrom(args{"octo/hello", "-1"}))
	assert.Error(t, (&ArtifactLocator{}).LoadFrom(args{"octo", "1"}))
}

func TestRunLocator(t *testing.T) {
	var r RunLocator
	require.NoError(t, r.LoadFrom(args{"octo/hello", "7"}))
	assert.Equal(t, "hello", r.Repo)
	assert.Equal(t, int64(7), r.RunID)

	assert.Error(t, (&RunLocator{}).LoadFrom(args{"octo/hello", "0"}))
}

func TestScopeLocator(t *testing.T) {
	var s ScopeLocator
	require.NoError(t, s.LoadFrom(args{" octo-org "}))
	assert.Equal(t, "octo-org", s.Name)

	assert.Error(t, (&ScopeLocator{}).LoadFrom(args{}))
	assert.Error(t, (&ScopeLocator{}).LoadFrom(args{"octo/hello"}))
}
