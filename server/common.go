// Package server implements an in-memory subset of the GitHub Actions REST
// API. It backs the client and command tests and is not meant to be exposed
// to real users.
package server

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cocov-ci/actions/logging"
)

type Artifact struct {
	ID          int64
	Name        string
	RunID       int64
	Expired     bool
	CreatedAt   time.Time
	ExpiresAt   time.Time
	UpdatedAt   time.Time
	ContentType string
	Data        []byte
}

type RepositoryCache struct {
	FullName    string
	SizeInBytes int64
	Count       int64
}

type RecordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	Accept        string
}

type Config struct {
	Logger *zap.Logger
	Token  string
}

// Provider holds the fake API state. It is safe for concurrent use.
type Provider struct {
	Logger *zap.Logger
	Token  string

	mu          sync.Mutex
	nextID      int64
	artifacts   map[string][]*Artifact
	caches      map[string][]RepositoryCache
	enterprises map[string][]string
	requests    []RecordedRequest
}

func (c *Config) MakeProvider() *Provider {
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{
		Logger:      log,
		Token:       c.Token,
		nextID:      1,
		artifacts:   map[string][]*Artifact{},
		caches:      map[string][]RepositoryCache{},
		enterprises: map[string][]string{},
	}
}

func repoKey(owner, repo string) string {
	return strings.ToLower(owner + "/" + repo)
}

// AddArtifact stores a copy of a under owner/repo and returns its id. A zero
// ID is replaced by the next free one.
func (p *Provider) AddArtifact(owner, repo string, a Artifact) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if a.ID == 0 {
		a.ID = p.nextID
	}
	if a.ID >= p.nextID {
		p.nextID = a.ID + 1
	}
	if a.ContentType == "" {
		a.ContentType = "application/zip"
	}
	k := repoKey(owner, repo)
	p.artifacts[k] = append(p.artifacts[k], &a)
	return a.ID
}

func (p *Provider) AddRepositoryCache(org string, c RepositoryCache) {
	p.mu.Lock()
	defer p.mu.Unlock()
	k := strings.ToLower(org)
	p.caches[k] = append(p.caches[k], c)
	sort.SliceStable(p.caches[k], func(i, j int) bool {
		return p.caches[k][i].FullName < p.caches[k][j].FullName
	})
}

// AddEnterprise registers an enterprise whose cache usage aggregates orgs.
func (p *Provider) AddEnterprise(name string, orgs ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	k := strings.ToLower(name)
	p.enterprises[k] = append(p.enterprises[k], orgs...)
}

func (p *Provider) Requests() []RecordedRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]RecordedRequest(nil), p.requests...)
}

func (p *Provider) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.requests = append(p.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			RawQuery:      r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Accept:        r.Header.Get("Accept"),
		})
		p.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (p *Provider) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p.Token != "" && r.Header.Get("Authorization") != "token "+p.Token {
			logging.GetLogger(r).Error("Rejecting request with invalid credentials")
			writeMessage(w, http.StatusUnauthorized, "Bad credentials")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (p *Provider) MakeMux() *chi.Mux {
	h := &Handler{p: p}

	r := chi.NewRouter()
	r.Use(logging.RequestLogger(p.Logger))
	r.Use(p.record)

	// Archive downloads are served from a separate, unauthenticated host on
	// GitHub; the redirect target here mimics that.
	r.Get("/_blobs/{owner}/{repo}/{id}", h.HandleBlob)

	r.Group(func(r chi.Router) {
		r.Use(p.authenticate)

		r.Get("/repos/{owner}/{repo}/actions/artifacts", h.HandleListArtifacts)
		r.Get("/repos/{owner}/{repo}/actions/artifacts/{id}", h.HandleGetArtifact)
		r.Delete("/repos/{owner}/{repo}/actions/artifacts/{id}", h.HandleDeleteArtifact)
		r.Get("/repos/{owner}/{repo}/actions/artifacts/{id}/{format}", h.HandleDownloadArtifact)
		r.Get("/repos/{owner}/{repo}/actions/runs/{run}/artifacts", h.HandleListRunArtifacts)
		r.Get("/repos/{owner}/{repo}/actions/cache/usage", h.HandleRepositoryCacheUsage)

		r.Get("/orgs/{org}/actions/cache/usage", h.HandleOrgCacheUsage)
		r.Get("/orgs/{org}/actions/cache/usage-by-repository", h.HandleCacheUsageByRepository)
		r.Get("/enterprises/{enterprise}/actions/cache/usage", h.HandleEnterpriseCacheUsage)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not Found")
	})

	return r
}
