package api

import (
	"io"
	"time"
)

// Page selects one page of a paginated listing. Zero values fall back to
// DefaultPerPage and the first page.
type Page struct {
	PerPage int
	Page    int
}

const DefaultPerPage = 30

func (p Page) perPage() int {
	if p.PerPage <= 0 {
		return DefaultPerPage
	}
	return p.PerPage
}

func (p Page) page() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

type Artifact struct {
	ID                 int64                `json:"id"`
	NodeID             string               `json:"node_id"`
	Name               string               `json:"name"`
	SizeInMegabytes    int64                `json:"size_in_megabytes"`
	SizeInBytes        int64                `json:"size_in_bytes"`
	URL                string               `json:"url"`
	ArchiveDownloadURL string               `json:"archive_download_url"`
	Expired            bool                 `json:"expired"`
	CreatedAt          time.Time            `json:"created_at"`
	ExpiresAt          time.Time            `json:"expires_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
	WorkflowRun        *ArtifactWorkflowRun `json:"workflow_run,omitempty"`
}

type ArtifactWorkflowRun struct {
	ID               int64  `json:"id"`
	RepositoryID     int64  `json:"repository_id"`
	HeadRepositoryID int64  `json:"head_repository_id"`
	HeadBranch       string `json:"head_branch"`
	HeadSHA          string `json:"head_sha"`
}

// ArtifactCollection is one page of artifacts. TotalCount refers to the whole
// listing and may exceed len(Artifacts).
type ArtifactCollection struct {
	TotalCount int64      `json:"total_count"`
	Artifacts  []Artifact `json:"artifacts"`
}

// ArtifactData is an undecoded artifact archive. Callers must close Body.
type ArtifactData struct {
	ContentType   string
	ContentLength int64
	Body          io.ReadCloser
}

type ListArtifactsInput struct {
	Owner string
	Repo  string
	// Name, when set, only returns artifacts with this exact name.
	Name string
	Page Page
}

type GetArtifactInput struct {
	Owner      string
	Repo       string
	ArtifactID int64
}

type DeleteArtifactInput struct {
	Owner      string
	Repo       string
	ArtifactID int64
}

type GetArtifactDataInput struct {
	Owner      string
	Repo       string
	ArtifactID int64
	// Format defaults to DefaultArchiveFormat.
	Format string
}

const DefaultArchiveFormat = "zip"

type ListRunArtifactsInput struct {
	Owner string
	Repo  string
	RunID int64
	Name  string
	Page  Page
}
