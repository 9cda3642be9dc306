package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cocov-ci/actions/logging"
	"github.com/cocov-ci/actions/timestamp"
)

const (
	defaultPerPage = 30
	maxPerPage     = 100
)

type Handler struct {
	p *Provider
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"message":           message,
		"documentation_url": "https://docs.github.com/rest",
	})
}

func pagination(r *http.Request) (perPage, page int) {
	perPage, page = defaultPerPage, 1
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && v > 0 {
		perPage = v
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	return
}

func paginate[T any](items []T, perPage, page int) []T {
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func baseURL(r *http.Request) string {
	return "http://" + r.Host
}

func (h *Handler) artifactJSON(r *http.Request, owner, repo string, a *Artifact) map[string]any {
	api := fmt.Sprintf("%s/repos/%s/%s/actions/artifacts/%d", baseURL(r), owner, repo, a.ID)
	size := int64(len(a.Data))
	return map[string]any{
		"id":                   a.ID,
		"node_id":              fmt.Sprintf("MDg6QXJ0aWZhY3Q%d", a.ID),
		"name":                 a.Name,
		"size_in_bytes":        size,
		"size_in_megabytes":    size >> 20,
		"url":                  api,
		"archive_download_url": api + "/zip",
		"expired":              a.Expired,
		"created_at":           timestamp.Format(a.CreatedAt),
		"expires_at":           timestamp.Format(a.ExpiresAt),
		"updated_at":           timestamp.Format(a.UpdatedAt),
		"workflow_run": map[string]any{
			"id":          a.RunID,
			"head_branch": "main",
		},
	}
}

func (h *Handler) findArtifact(r *http.Request) (*Artifact, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return nil, false
	}
	for _, a := range h.p.artifacts[repoKey(chi.URLParam(r, "owner"), chi.URLParam(r, "repo"))] {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

func (h *Handler) listArtifacts(w http.ResponseWriter, r *http.Request, match func(a *Artifact) bool) {
	owner, repo := chi.URLParam(r, "owner"), chi.URLParam(r, "repo")
	name := r.URL.Query().Get("name")

	h.p.mu.Lock()
	var matching []*Artifact
	for _, a := range h.p.artifacts[repoKey(owner, repo)] {
		if name != "" && a.Name != name {
			continue
		}
		if match(a) {
			matching = append(matching, a)
		}
	}
	h.p.mu.Unlock()

	perPage, page := pagination(r)
	items := make([]map[string]any, 0, perPage)
	for _, a := range paginate(matching, perPage, page) {
		items = append(items, h.artifactJSON(r, owner, repo, a))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_count": len(matching),
		"artifacts":   items,
	})
}

func (h *Handler) HandleListArtifacts(w http.ResponseWriter, r *http.Request) {
	h.listArtifacts(w, r, func(*Artifact) bool { return true })
}

func (h *Handler) HandleListRunArtifacts(w http.ResponseWriter, r *http.Request) {
	runID, err := strconv.ParseInt(chi.URLParam(r, "run"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}
	h.listArtifacts(w, r, func(a *Artifact) bool { return a.RunID == runID })
}

func (h *Handler) HandleGetArtifact(w http.ResponseWriter, r *http.Request) {
	h.p.mu.Lock()
	defer h.p.mu.Unlock()

	a, ok := h.findArtifact(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}
	writeJSON(w, http.StatusOK, h.artifactJSON(r, chi.URLParam(r, "owner"), chi.URLParam(r, "repo"), a))
}

func (h *Handler) HandleDeleteArtifact(w http.ResponseWriter, r *http.Request) {
	h.p.mu.Lock()
	defer h.p.mu.Unlock()

	a, ok := h.findArtifact(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}

	k := repoKey(chi.URLParam(r, "owner"), chi.URLParam(r, "repo"))
	list := h.p.artifacts[k]
	for i := range list {
		if list[i] == a {
			h.p.artifacts[k] = append(list[:i], list[i+1:]...)
			break
		}
	}
	logging.GetLogger(r).Info("Deleted artifact", zap.Int64("id", a.ID))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleDownloadArtifact(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "format") != "zip" {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}

	h.p.mu.Lock()
	a, ok := h.findArtifact(r)
	h.p.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}
	if a.Expired {
		writeMessage(w, http.StatusGone, "Artifact has expired")
		return
	}

	target := fmt.Sprintf("/_blobs/%s/%s/%d", chi.URLParam(r, "owner"), chi.URLParam(r, "repo"), a.ID)
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) HandleBlob(w http.ResponseWriter, r *http.Request) {
	h.p.mu.Lock()
	a, ok := h.findArtifact(r)
	h.p.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Data)
}

func (h *Handler) orgTotals(org string) (size, count int64) {
	for _, c := range h.p.caches[strings.ToLower(org)] {
		size += c.SizeInBytes
		count += c.Count
	}
	return
}

func (h *Handler) HandleOrgCacheUsage(w http.ResponseWriter, r *http.Request) {
	h.p.mu.Lock()
	size, count := h.orgTotals(chi.URLParam(r, "org"))
	h.p.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"total_active_caches_size_in_bytes": size,
		"total_active_caches_count":         count,
	})
}

func (h *Handler) HandleEnterpriseCacheUsage(w http.ResponseWriter, r *http.Request) {
	h.p.mu.Lock()
	defer h.p.mu.Unlock()

	orgs, ok := h.p.enterprises[strings.ToLower(chi.URLParam(r, "enterprise"))]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}

	var size, count int64
	for _, org := range orgs {
		s, c := h.orgTotals(org)
		size += s
		count += c
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_active_caches_size_in_bytes": size,
		"total_active_caches_count":         count,
	})
}

func (h *Handler) HandleRepositoryCacheUsage(w http.ResponseWriter, r *http.Request) {
	fullName := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "repo")
	usage := RepositoryCache{FullName: fullName}

	h.p.mu.Lock()
	for _, list := range h.p.caches {
		for _, c := range list {
			if strings.EqualFold(c.FullName, fullName) {
				usage = c
			}
		}
	}
	h.p.mu.Unlock()

	writeJSON(w, http.StatusOK, repositoryCacheJSON(usage))
}

func repositoryCacheJSON(c RepositoryCache) map[string]any {
	return map[string]any{
		"full_name":                   c.FullName,
		"active_caches_size_in_bytes": c.SizeInBytes,
		"active_caches_count":         c.Count,
	}
}

func (h *Handler) HandleCacheUsageByRepository(w http.ResponseWriter, r *http.Request) {
	h.p.mu.Lock()
	list := append([]RepositoryCache(nil), h.p.caches[strings.ToLower(chi.URLParam(r, "org"))]...)
	h.p.mu.Unlock()

	perPage, page := pagination(r)
	items := make([]map[string]any, 0, perPage)
	for _, c := range paginate(list, perPage, page) {
		items = append(items, repositoryCacheJSON(c))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_count":             len(list),
		"repository_cache_usages": items,
	})
}
