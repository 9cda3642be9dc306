package api

import (
	"fmt"

	"github.com/cocov-ci/actions/timestamp"
)

// Wire shapes mirror the JSON returned by GitHub. Timestamps stay as
// strings here and are only converted by the decode functions below.
// Fields the server always sends are pointers so a missing key can be told
// apart from a zero value.

type wireArtifact struct {
	ID                 *int64           `json:"id"`
	NodeID             *string          `json:"node_id"`
	Name               *string          `json:"name"`
	SizeInMegabytes    int64            `json:"size_in_megabytes"`
	SizeInBytes        int64            `json:"size_in_bytes"`
	URL                *string          `json:"url"`
	ArchiveDownloadURL *string          `json:"archive_download_url"`
	Expired            *bool            `json:"expired"`
	CreatedAt          string           `json:"created_at"`
	ExpiresAt          string           `json:"expires_at"`
	UpdatedAt          string           `json:"updated_at"`
	WorkflowRun        *wireWorkflowRun `json:"workflow_run"`
}

type wireWorkflowRun struct {
	ID               int64  `json:"id"`
	RepositoryID     int64  `json:"repository_id"`
	HeadRepositoryID int64  `json:"head_repository_id"`
	HeadBranch       string `json:"head_branch"`
	HeadSHA          string `json:"head_sha"`
}

type wireArtifactCollection struct {
	TotalCount *int64         `json:"total_count"`
	Artifacts  []wireArtifact `json:"artifacts"`
}

type wireCacheUsage struct {
	TotalActiveCachesSizeInBytes *int64 `json:"total_active_caches_size_in_bytes"`
	TotalActiveCachesCount       *int64 `json:"total_active_caches_count"`
}

type wireRepositoryCacheUsage struct {
	FullName                *string `json:"full_name"`
	ActiveCachesSizeInBytes *int64  `json:"active_caches_size_in_bytes"`
	ActiveCachesCount       *int64  `json:"active_caches_count"`
}

type wireRepositoryCacheUsageCollection struct {
	TotalCount            *int64                     `json:"total_count"`
	RepositoryCacheUsages []wireRepositoryCacheUsage `json:"repository_cache_usages"`
}

// MissingFieldError indicates a response lacking a field the API always
// sends. It is reported as a transport failure.
type MissingFieldError struct {
	Shape string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing field %q", e.Shape, e.Field)
}

type field struct {
	name    string
	present bool
}

func required(shape string, fields ...field) error {
	for _, f := range fields {
		if !f.present {
			return &MissingFieldError{Shape: shape, Field: f.name}
		}
	}
	return nil
}

func decodeArtifact(w wireArtifact) (Artifact, error) {
	err := required("artifact",
		field{"id", w.ID != nil},
		field{"node_id", w.NodeID != nil},
		field{"name", w.Name != nil},
		field{"url", w.URL != nil},
		field{"archive_download_url", w.ArchiveDownloadURL != nil},
		field{"expired", w.Expired != nil},
	)
	if err != nil {
		return Artifact{}, err
	}

	createdAt, err := timestamp.Parse(w.CreatedAt)
	if err != nil {
		return Artifact{}, fmt.Errorf("artifact %d created_at: %w", *w.ID, err)
	}
	expiresAt, err := timestamp.Parse(w.ExpiresAt)
	if err != nil {
		return Artifact{}, fmt.Errorf("artifact %d expires_at: %w", *w.ID, err)
	}
	updatedAt, err := timestamp.Parse(w.UpdatedAt)
	if err != nil {
		return Artifact{}, fmt.Errorf("artifact %d updated_at: %w", *w.ID, err)
	}

	a := Artifact{
		ID:                 *w.ID,
		NodeID:             *w.NodeID,
		Name:               *w.Name,
		SizeInMegabytes:    w.SizeInMegabytes,
		SizeInBytes:        w.SizeInBytes,
		URL:                *w.URL,
		ArchiveDownloadURL: *w.ArchiveDownloadURL,
		Expired:            *w.Expired,
		CreatedAt:          createdAt,
		ExpiresAt:          expiresAt,
		UpdatedAt:          updatedAt,
	}
	if r := w.WorkflowRun; r != nil {
		a.WorkflowRun = &ArtifactWorkflowRun{
			ID:               r.ID,
			RepositoryID:     r.RepositoryID,
			HeadRepositoryID: r.HeadRepositoryID,
			HeadBranch:       r.HeadBranch,
			HeadSHA:          r.HeadSHA,
		}
	}
	return a, nil
}

// decodeArtifactCollection returns nil when the server reports no artifacts,
// even if it still sent a non-empty list.
func decodeArtifactCollection(w wireArtifactCollection) (*ArtifactCollection, error) {
	if err := required("artifact collection", field{"total_count", w.TotalCount != nil}); err != nil {
		return nil, err
	}
	if *w.TotalCount == 0 {
		return nil, nil
	}

	artifacts := make([]Artifact, 0, len(w.Artifacts))
	for _, raw := range w.Artifacts {
		a, err := decodeArtifact(raw)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}

	return &ArtifactCollection{
		TotalCount: *w.TotalCount,
		Artifacts:  artifacts,
	}, nil
}

func decodeCacheUsage(w wireCacheUsage) (CacheUsage, error) {
	err := required("cache usage",
		field{"total_active_caches_size_in_bytes", w.TotalActiveCachesSizeInBytes != nil},
		field{"total_active_caches_count", w.TotalActiveCachesCount != nil},
	)
	if err != nil {
		return CacheUsage{}, err
	}

	return CacheUsage{
		TotalSizeInBytes: *w.TotalActiveCachesSizeInBytes,
		TotalCount:       *w.TotalActiveCachesCount,
	}, nil
}

func decodeRepositoryCacheUsage(w wireRepositoryCacheUsage) (RepositoryCacheUsage, error) {
	err := required("repository cache usage",
		field{"full_name", w.FullName != nil},
		field{"active_caches_size_in_bytes", w.ActiveCachesSizeInBytes != nil},
		field{"active_caches_count", w.ActiveCachesCount != nil},
	)
	if err != nil {
		return RepositoryCacheUsage{}, err
	}

	return RepositoryCacheUsage{
		FullName:    *w.FullName,
		SizeInBytes: *w.ActiveCachesSizeInBytes,
		Count:       *w.ActiveCachesCount,
	}, nil
}

func decodeRepositoryCacheUsageCollection(w wireRepositoryCacheUsageCollection) (*RepositoryCacheUsageCollection, error) {
	if err := required("repository cache usage collection", field{"total_count", w.TotalCount != nil}); err != nil {
		return nil, err
	}
	if *w.TotalCount == 0 {
		return nil, nil
	}

	usages := make([]RepositoryCacheUsage, len(w.RepositoryCacheUsages))
	for i, raw := range w.RepositoryCacheUsages {
		u, err := decodeRepositoryCacheUsage(raw)
		if err != nil {
			return nil, err
		}
		usages[i] = u
	}

	return &RepositoryCacheUsageCollection{
		TotalCount: *w.TotalCount,
		Usages:     usages,
	}, nil
}
