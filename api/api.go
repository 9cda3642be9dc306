package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cocov-ci/actions/logging"
)

const DefaultBaseURL = "https://api.github.com"

// Client exposes the GitHub Actions artifact and cache usage endpoints.
// Collection operations return a nil collection and a nil error when the
// server reports a total count of zero.
type Client interface {
	ListArtifacts(ctx context.Context, input ListArtifactsInput) (*ArtifactCollection, error)
	GetArtifact(ctx context.Context, input GetArtifactInput) (*Artifact, error)
	DeleteArtifact(ctx context.Context, input DeleteArtifactInput) error
	GetArtifactData(ctx context.Context, input GetArtifactDataInput) (*ArtifactData, error)
	ListRunArtifacts(ctx context.Context, input ListRunArtifactsInput) (*ArtifactCollection, error)
	GetCacheUsage(ctx context.Context, input GetCacheUsageInput) (*CacheUsage, error)
	GetRepositoryCacheUsage(ctx context.Context, input GetRepositoryCacheUsageInput) (*RepositoryCacheUsage, error)
	ListRepositoryCacheUsage(ctx context.Context, input ListRepositoryCacheUsageInput) (*RepositoryCacheUsageCollection, error)
}

type Option func(i *impl)

// WithBaseURL points the client at another API host, such as a GitHub
// Enterprise Server instance.
func WithBaseURL(baseURL string) Option {
	return func(i *impl) { i.baseURL = baseURL }
}

// WithHTTPClient replaces the default HTTP client. The given client is used
// as is; no logging transport is added to it.
func WithHTTPClient(c *http.Client) Option {
	return func(i *impl) { i.http = c }
}

func WithLogger(log *zap.Logger) Option {
	return func(i *impl) { i.log = log }
}

func New(token string, opts ...Option) Client {
	i := impl{
		baseURL: DefaultBaseURL,
		token:   token,
		log:     zap.L().With(zap.String("component", "api")),
	}
	for _, o := range opts {
		o(&i)
	}
	i.baseURL = strings.TrimSuffix(i.baseURL, "/")
	if i.http == nil {
		i.http = &http.Client{Transport: logging.NewTransport(i.log, nil)}
	}
	return i
}

type impl struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

func escapeAll(a []any) []any {
	out := make([]any, len(a))
	for idx, v := range a {
		if s, ok := v.(string); ok {
			out[idx] = url.PathEscape(s)
		} else {
			out[idx] = v
		}
	}
	return out
}

func (i impl) repoURL(owner, repo string, format string, a ...any) string {
	return fmt.Sprintf("%s/repos/%s/%s/actions/%s", i.baseURL, url.PathEscape(owner), url.PathEscape(repo), fmt.Sprintf(format, escapeAll(a)...))
}

func (i impl) orgURL(org string, format string, a ...any) string {
	return fmt.Sprintf("%s/orgs/%s/actions/%s", i.baseURL, url.PathEscape(org), fmt.Sprintf(format, escapeAll(a)...))
}

func (i impl) enterpriseURL(name string, format string, a ...any) string {
	return fmt.Sprintf("%s/enterprises/%s/actions/%s", i.baseURL, url.PathEscape(name), fmt.Sprintf(format, escapeAll(a)...))
}

func pageParams(p Page) map[string]string {
	return map[string]string{
		"per_page": strconv.Itoa(p.perPage()),
		"page":     strconv.Itoa(p.page()),
	}
}

func (i impl) listArtifacts(ctx context.Context, op, target, name string, page Page) (*ArtifactCollection, error) {
	params := pageParams(page)
	if name != "" {
		params["name"] = name
	}

	raw, err := processRequest[wireArtifactCollection](ctx, i, op, http.MethodGet, target, params)
	if err != nil {
		return nil, err
	}

	coll, err := decodeArtifactCollection(*raw)
	if err != nil {
		return nil, classify(op, err)
	}
	if coll == nil {
		i.log.Debug("Server reported no artifacts", zap.String("op", op), zap.Int("raw_items", len(raw.Artifacts)))
	}
	return coll, nil
}

func (i impl) ListArtifacts(ctx context.Context, input ListArtifactsInput) (*ArtifactCollection, error) {
	return i.listArtifacts(ctx, "ListArtifacts", i.repoURL(input.Owner, input.Repo, "artifacts"), input.Name, input.Page)
}

func (i impl) ListRunArtifacts(ctx context.Context, input ListRunArtifactsInput) (*ArtifactCollection, error) {
	return i.listArtifacts(ctx, "ListRunArtifacts", i.repoURL(input.Owner, input.Repo, "runs/%d/artifacts", input.RunID), input.Name, input.Page)
}

func (i impl) GetArtifact(ctx context.Context, input GetArtifactInput) (*Artifact, error) {
	const op = "GetArtifact"
	raw, err := processRequest[wireArtifact](ctx, i, op, http.MethodGet, i.repoURL(input.Owner, input.Repo, "artifacts/%d", input.ArtifactID), nil)
	if err != nil {
		return nil, err
	}

	a, err := decodeArtifact(*raw)
	if err != nil {
		return nil, classify(op, err)
	}
	return &a, nil
}

func (i impl) DeleteArtifact(ctx context.Context, input DeleteArtifactInput) error {
	return processRequestNoBody(ctx, i, "DeleteArtifact", http.MethodDelete, i.repoURL(input.Owner, input.Repo, "artifacts/%d", input.ArtifactID), nil)
}

func (i impl) GetArtifactData(ctx context.Context, input GetArtifactDataInput) (*ArtifactData, error) {
	format := input.Format
	if format == "" {
		format = DefaultArchiveFormat
	}
	return processRequestStream(ctx, i, "GetArtifactData", i.repoURL(input.Owner, input.Repo, "artifacts/%d/%s", input.ArtifactID, format))
}

func (i impl) GetCacheUsage(ctx context.Context, input GetCacheUsageInput) (*CacheUsage, error) {
	var target string
	if input.Enterprise {
		target = i.enterpriseURL(input.Name, "cache/usage")
	} else {
		target = i.orgURL(input.Name, "cache/usage")
	}

	const op = "GetCacheUsage"
	raw, err := processRequest[wireCacheUsage](ctx, i, op, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	usage, err := decodeCacheUsage(*raw)
	if err != nil {
		return nil, classify(op, err)
	}
	return &usage, nil
}

func (i impl) GetRepositoryCacheUsage(ctx context.Context, input GetRepositoryCacheUsageInput) (*RepositoryCacheUsage, error) {
	const op = "GetRepositoryCacheUsage"
	raw, err := processRequest[wireRepositoryCacheUsage](ctx, i, op, http.MethodGet, i.repoURL(input.Owner, input.Repo, "cache/usage"), nil)
	if err != nil {
		return nil, err
	}
	usage, err := decodeRepositoryCacheUsage(*raw)
	if err != nil {
		return nil, classify(op, err)
	}
	return &usage, nil
}

func (i impl) ListRepositoryCacheUsage(ctx context.Context, input ListRepositoryCacheUsageInput) (*RepositoryCacheUsageCollection, error) {
	const op = "ListRepositoryCacheUsage"
	raw, err := processRequest[wireRepositoryCacheUsageCollection](ctx, i, op, http.MethodGet, i.orgURL(input.Org, "cache/usage-by-repository"), pageParams(input.Page))
	if err != nil {
		return nil, err
	}
	coll, err := decodeRepositoryCacheUsageCollection(*raw)
	if err != nil {
		return nil, classify(op, err)
	}
	return coll, nil
}
