package api

// CacheUsage totals cache consumption for an organization or enterprise.
type CacheUsage struct {
	TotalSizeInBytes int64 `json:"total_size_in_bytes"`
	TotalCount       int64 `json:"total_count"`
}

type RepositoryCacheUsage struct {
	FullName    string `json:"full_name"`
	SizeInBytes int64  `json:"size_in_bytes"`
	Count       int64  `json:"count"`
}

type RepositoryCacheUsageCollection struct {
	TotalCount int64                  `json:"total_count"`
	Usages     []RepositoryCacheUsage `json:"usages"`
}

type GetCacheUsageInput struct {
	// Name is an organization login, or an enterprise slug when Enterprise
	// is set.
	Name       string
	Enterprise bool
}

type GetRepositoryCacheUsageInput struct {
	Owner string
	Repo  string
}

type ListRepositoryCacheUsageInput struct {
	Org  string
	Page Page
}
