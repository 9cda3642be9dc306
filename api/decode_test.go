package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocov-ci/actions/timestamp"
)

func ptr[T any](v T) *T { return &v }

func rawArtifact(id int64, createdAt string) wireArtifact {
	return wireArtifact{
		ID:                 ptr(id),
		NodeID:             ptr("n"),
		Name:               ptr("a"),
		SizeInMegabytes:    3,
		URL:                ptr("u"),
		ArchiveDownloadURL: ptr("d"),
		Expired:            ptr(false),
		CreatedAt:          createdAt,
		ExpiresAt:          "2023-02-02T03:04:05Z",
		UpdatedAt:          "2023-01-03T03:04:05Z",
	}
}

func TestDecodeArtifact(t *testing.T) {
	t.Run("copies fields", func(t *testing.T) {
		w := rawArtifact(7, "2023-01-02T03:04:05Z")
		w.Expired = ptr(true)
		w.WorkflowRun = &wireWorkflowRun{ID: 9, HeadBranch: "main", HeadSHA: "abc"}

		a, err := decodeArtifact(w)
		require.NoError(t, err)
		assert.Equal(t, int64(7), a.ID)
		assert.Equal(t, "n", a.NodeID)
		assert.Equal(t, "a", a.Name)
		assert.Equal(t, int64(3), a.SizeInMegabytes)
		assert.Equal(t, "u", a.URL)
		assert.Equal(t, "d", a.ArchiveDownloadURL)
		assert.True(t, a.Expired)
		assert.Equal(t, time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC), a.CreatedAt)
		assert.Equal(t, time.Date(2023, 2, 2, 3, 4, 5, 0, time.UTC), a.ExpiresAt)
		assert.Equal(t, time.Date(2023, 1, 3, 3, 4, 5, 0, time.UTC), a.UpdatedAt)
		require.NotNil(t, a.WorkflowRun)
		assert.Equal(t, int64(9), a.WorkflowRun.ID)
		assert.Equal(t, "abc", a.WorkflowRun.HeadSHA)
	})

	t.Run("malformed timestamps", func(t *testing.T) {
		for _, field := range []string{"created_at", "expires_at", "updated_at"} {
			w := rawArtifact(1, "2023-01-02T03:04:05Z")
			switch field {
			case "created_at":
				w.CreatedAt = "not-a-date"
			case "expires_at":
				w.ExpiresAt = "2023-02-02"
			case "updated_at":
				w.UpdatedAt = ""
			}

			a, err := decodeArtifact(w)
			require.Error(t, err, field)
			assert.Contains(t, err.Error(), field)
			assert.Equal(t, Artifact{}, a)

			var fe *timestamp.FormatError
			assert.ErrorAs(t, err, &fe)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		for _, name := range []string{"id", "node_id", "name", "url", "archive_download_url", "expired"} {
			w := rawArtifact(1, "2023-01-02T03:04:05Z")
			switch name {
			case "id":
				w.ID = nil
			case "node_id":
				w.NodeID = nil
			case "name":
				w.Name = nil
			case "url":
				w.URL = nil
			case "archive_download_url":
				w.ArchiveDownloadURL = nil
			case "expired":
				w.Expired = nil
			}

			a, err := decodeArtifact(w)
			assert.Equal(t, Artifact{}, a)

			var mf *MissingFieldError
			require.ErrorAs(t, err, &mf, name)
			assert.Equal(t, name, mf.Field)
		}
	})
}

func TestDecodeArtifactCollection(t *testing.T) {
	t.Run("zero total count is absent", func(t *testing.T) {
		coll, err := decodeArtifactCollection(wireArtifactCollection{TotalCount: ptr(int64(0))})
		require.NoError(t, err)
		assert.Nil(t, coll)
	})

	t.Run("missing total count", func(t *testing.T) {
		coll, err := decodeArtifactCollection(wireArtifactCollection{
			Artifacts: []wireArtifact{rawArtifact(1, "2023-01-02T03:04:05Z")},
		})
		assert.Nil(t, coll)

		var mf *MissingFieldError
		require.ErrorAs(t, err, &mf)
		assert.Equal(t, "total_count", mf.Field)
	})

	t.Run("zero total count with items is absent", func(t *testing.T) {
		coll, err := decodeArtifactCollection(wireArtifactCollection{
			TotalCount: ptr(int64(0)),
			Artifacts:  []wireArtifact{rawArtifact(1, "2023-01-02T03:04:05Z")},
		})
		require.NoError(t, err)
		assert.Nil(t, coll)
	})

	t.Run("preserves order and total", func(t *testing.T) {
		coll, err := decodeArtifactCollection(wireArtifactCollection{
			TotalCount: ptr(int64(10)),
			Artifacts: []wireArtifact{
				rawArtifact(3, "2023-01-02T03:04:05Z"),
				rawArtifact(1, "2023-01-02T03:04:05Z"),
				rawArtifact(2, "2023-01-02T03:04:05Z"),
			},
		})
		require.NoError(t, err)
		require.NotNil(t, coll)
		assert.Equal(t, int64(10), coll.TotalCount)
		require.Len(t, coll.Artifacts, 3)
		assert.Equal(t, int64(3), coll.Artifacts[0].ID)
		assert.Equal(t, int64(1), coll.Artifacts[1].ID)
		assert.Equal(t, int64(2), coll.Artifacts[2].ID)
	})

	t.Run("present but empty page", func(t *testing.T) {
		coll, err := decodeArtifactCollection(wireArtifactCollection{TotalCount: ptr(int64(4))})
		require.NoError(t, err)
		require.NotNil(t, coll)
		assert.Empty(t, coll.Artifacts)
	})

	t.Run("one bad element fails the whole page", func(t *testing.T) {
		coll, err := decodeArtifactCollection(wireArtifactCollection{
			TotalCount: ptr(int64(2)),
			Artifacts: []wireArtifact{
				rawArtifact(1, "2023-01-02T03:04:05Z"),
				rawArtifact(2, "not-a-date"),
			},
		})
		require.Error(t, err)
		assert.Nil(t, coll)
	})
}

func TestDecodeCacheUsage(t *testing.T) {
	var w wireCacheUsage
	require.NoError(t, json.Unmarshal([]byte(`{"total_active_caches_size_in_bytes":3344,"total_active_caches_count":5}`), &w))
	u, err := decodeCacheUsage(w)
	require.NoError(t, err)
	assert.Equal(t, CacheUsage{TotalSizeInBytes: 3344, TotalCount: 5}, u)

	t.Run("missing count", func(t *testing.T) {
		var w wireCacheUsage
		require.NoError(t, json.Unmarshal([]byte(`{"total_active_caches_size_in_bytes":3344}`), &w))
		_, err := decodeCacheUsage(w)

		var mf *MissingFieldError
		require.ErrorAs(t, err, &mf)
		assert.Equal(t, "total_active_caches_count", mf.Field)
	})
}

func TestDecodeRepositoryCacheUsage(t *testing.T) {
	var w wireRepositoryCacheUsage
	require.NoError(t, json.Unmarshal([]byte(`{"full_name":"octo-org/Hello-World","active_caches_size_in_bytes":2322142,"active_caches_count":3}`), &w))

	u, err := decodeRepositoryCacheUsage(w)
	require.NoError(t, err)
	assert.Equal(t, RepositoryCacheUsage{FullName: "octo-org/Hello-World", SizeInBytes: 2322142, Count: 3}, u)

	t.Run("missing name", func(t *testing.T) {
		_, err := decodeRepositoryCacheUsage(wireRepositoryCacheUsage{ActiveCachesSizeInBytes: ptr(int64(1)), ActiveCachesCount: ptr(int64(1))})
		var mf *MissingFieldError
		require.ErrorAs(t, err, &mf)
		assert.Equal(t, "full_name", mf.Field)
	})
}

func repoUsage(name string, size, count int64) wireRepositoryCacheUsage {
	return wireRepositoryCacheUsage{FullName: ptr(name), ActiveCachesSizeInBytes: ptr(size), ActiveCachesCount: ptr(count)}
}

func TestDecodeRepositoryCacheUsageCollection(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		coll, err := decodeRepositoryCacheUsageCollection(wireRepositoryCacheUsageCollection{
			TotalCount:            ptr(int64(0)),
			RepositoryCacheUsages: []wireRepositoryCacheUsage{repoUsage("a/b", 1, 1)},
		})
		require.NoError(t, err)
		assert.Nil(t, coll)
	})

	t.Run("missing total count", func(t *testing.T) {
		coll, err := decodeRepositoryCacheUsageCollection(wireRepositoryCacheUsageCollection{})
		assert.Nil(t, coll)

		var mf *MissingFieldError
		require.ErrorAs(t, err, &mf)
		assert.Equal(t, "total_count", mf.Field)
	})

	t.Run("present", func(t *testing.T) {
		coll, err := decodeRepositoryCacheUsageCollection(wireRepositoryCacheUsageCollection{
			TotalCount: ptr(int64(2)),
			RepositoryCacheUsages: []wireRepositoryCacheUsage{
				repoUsage("o/b", 2, 1),
				repoUsage("o/a", 1, 1),
			},
		})
		require.NoError(t, err)
		require.NotNil(t, coll)
		assert.Equal(t, int64(2), coll.TotalCount)
		assert.Equal(t, []RepositoryCacheUsage{
			{FullName: "o/b", SizeInBytes: 2, Count: 1},
			{FullName: "o/a", SizeInBytes: 1, Count: 1},
		}, coll.Usages)
	})

	t.Run("bad element fails the page", func(t *testing.T) {
		coll, err := decodeRepositoryCacheUsageCollection(wireRepositoryCacheUsageCollection{
			TotalCount:            ptr(int64(1)),
			RepositoryCacheUsages: []wireRepositoryCacheUsage{{FullName: ptr("o/a")}},
		})
		assert.Nil(t, coll)
		assert.Error(t, err)
	})
}
