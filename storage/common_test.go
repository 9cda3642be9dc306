package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readerOf(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func testStoreArtifact(t *testing.T, provider Provider) {
	desc := ArtifactDescriptor("octo", "hello", 42, "zip")
	item, err := provider.Store(desc, "application/zip", 13, readerOf("hello, world!"))
	require.NoError(t, err)
	assert.Equal(t, int64(13), item.Size)
	assert.Equal(t, "application/zip", item.Mime)
	assert.NotEmpty(t, item.Checksum)
	assert.NotEmpty(t, item.Location)
	assert.False(t, item.Unchanged)

	meta, err := provider.MetadataOf(desc)
	require.NoError(t, err)
	assert.Equal(t, item.Size, meta.Size)
	assert.Equal(t, item.Mime, meta.Mime)
	assert.Equal(t, item.Checksum, meta.Checksum)
	assert.Equal(t, item.Location, meta.Location)
}

func testStoreUnknownSize(t *testing.T, provider Provider) {
	desc := ArtifactDescriptor("octo", "hello", 1, "zip")
	item, err := provider.Store(desc, "application/zip", -1, readerOf("abc"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), item.Size)
}

func testStoreShortRead(t *testing.T, provider Provider) {
	desc := ArtifactDescriptor("octo", "hello", 2, "zip")
	_, err := provider.Store(desc, "application/zip", 100, readerOf("abc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "short download")

	_, err = provider.MetadataOf(desc)
	assert.True(t, IsNotExist(err))
}

func testArtifactNotFound(t *testing.T, provider Provider) {
	_, err := provider.MetadataOf(ArtifactDescriptor("octo", "hello", 404, "zip"))
	require.Error(t, err)
	assert.True(t, IsNotExist(err))
}
