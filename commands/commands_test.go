package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cocov-ci/actions/api"
	"github.com/cocov-ci/actions/mocks"
	"github.com/cocov-ci/actions/server"
	"github.com/cocov-ci/actions/storage"
)

type MockList struct {
	API     *mocks.MockAPIClient
	Storage *mocks.MockProvider

	token   string
	baseURL string
	storage StorageConfig
}

func nopLogger(bool) (*zap.Logger, error) { return zap.NewNop(), nil }

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, name := range []string{"GITHUB_TOKEN", "GITHUB_API_URL", "CONFIG", "STORAGE_MODE", "LOCAL_STORAGE_PATH", "S3_BUCKET_NAME", "DEV"} {
		for _, env := range envs(name) {
			t.Setenv(env, "")
			require.NoError(t, os.Unsetenv(env))
		}
	}
}

func MakeApp(t *testing.T) (*MockList, func(args ...string) (string, error)) {
	isolateEnv(t)
	ctrl := gomock.NewController(t)
	list := &MockList{
		API:     mocks.NewMockAPIClient(ctrl),
		Storage: mocks.NewMockProvider(ctrl),
	}

	exec := func(args ...string) (string, error) {
		app := NewApp(Deps{
			NewLogger: nopLogger,
			NewClient: func(token, baseURL string, _ *zap.Logger) api.Client {
				list.token = token
				list.baseURL = baseURL
				return list.API
			},
			NewStorage: func(conf StorageConfig, _ *zap.Logger) (storage.Provider, error) {
				list.storage = conf
				return list.Storage, nil
			},
		})
		out := &bytes.Buffer{}
		app.Writer = out
		app.ErrWriter = io.Discard
		err := app.Run(append([]string{"cocov-actions"}, args...))
		return out.String(), err
	}

	return list, exec
}

func TestArtifactsList(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		mock, exec := MakeApp(t)
		created := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
		mock.API.EXPECT().ListArtifacts(gomock.Any(), api.ListArtifactsInput{
			Owner: "octo",
			Repo:  "hello",
			Page:  api.Page{PerPage: 30, Page: 1},
		}).Return(&api.ArtifactCollection{
			TotalCount: 1,
			Artifacts:  []api.Artifact{{ID: 7, Name: "a", CreatedAt: created}},
		}, nil)

		out, err := exec("--token", "t0k", "artifacts", "list", "octo/hello")
		require.NoError(t, err)
		assert.Equal(t, "t0k", mock.token)
		assert.Equal(t, api.DefaultBaseURL, mock.baseURL)

		var decoded api.ArtifactCollection
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, int64(1), decoded.TotalCount)
		require.Len(t, decoded.Artifacts, 1)
		assert.Equal(t, int64(7), decoded.Artifacts[0].ID)
		assert.True(t, created.Equal(decoded.Artifacts[0].CreatedAt))
	})

	t.Run("absent prints null", func(t *testing.T) {
		mock, exec := MakeApp(t)
		mock.API.EXPECT().ListArtifacts(gomock.Any(), api.ListArtifactsInput{
			Owner: "octo",
			Repo:  "hello",
			Name:  "dist",
			Page:  api.Page{PerPage: 10, Page: 2},
		}).Return(nil, nil)

		out, err := exec("--token", "t0k", "artifacts", "list", "--per-page", "10", "--page", "2", "--name", "dist", "octo/hello")
		require.NoError(t, err)
		assert.Equal(t, "null", strings.TrimSpace(out))
	})

	t.Run("client errors are returned", func(t *testing.T) {
		mock, exec := MakeApp(t)
		mock.API.EXPECT().ListArtifacts(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("boom"))

		_, err := exec("--token", "t0k", "artifacts", "list", "octo/hello")
		assert.EqualError(t, err, "boom")
	})

	t.Run("invalid repository", func(t *testing.T) {
		_, exec := MakeApp(t)
		_, err := exec("--token", "t0k", "artifacts", "list", "octo")
		assert.Error(t, err)
	})

	t.Run("missing token", func(t *testing.T) {
		_, exec := MakeApp(t)
		_, err := exec("artifacts", "list", "octo/hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no access token")
	})

	t.Run("token from environment", func(t *testing.T) {
		mock, exec := MakeApp(t)
		t.Setenv("GITHUB_TOKEN", "from-env")
		mock.API.EXPECT().ListArtifacts(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := exec("artifacts", "list", "octo/hello")
		require.NoError(t, err)
		assert.Equal(t, "from-env", mock.token)
	})

	t.Run("configuration file", func(t *testing.T) {
		mock, exec := MakeApp(t)
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("token = \"from-file\"\napi_url = \"https://ghe.example.com/api/v3\"\n"), 0600))
		mock.API.EXPECT().ListArtifacts(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := exec("--config", path, "artifacts", "list", "octo/hello")
		require.NoError(t, err)
		assert.Equal(t, "from-file", mock.token)
		assert.Equal(t, "https://ghe.example.com/api/v3", mock.baseURL)
	})
}

func TestArtifactsRun(t *testing.T) {
	mock, exec := MakeApp(t)
	mock.API.EXPECT().ListRunArtifacts(gomock.Any(), api.ListRunArtifactsInput{
		Owner: "octo",
		Repo:  "hello",
		RunID: 99,
		Page:  api.Page{PerPage: 30, Page: 1},
	}).Return(nil, nil)

	out, err := exec("--token", "t", "artifacts", "run", "octo/hello", "99")
	require.NoError(t, err)
	assert.Equal(t, "null", strings.TrimSpace(out))
}

func TestArtifactsGet(t *testing.T) {
	mock, exec := MakeApp(t)
	mock.API.EXPECT().GetArtifact(gomock.Any(), api.GetArtifactInput{Owner: "octo", Repo: "hello", ArtifactID: 5}).
		Return(&api.Artifact{ID: 5, Name: "dist"}, nil)

	out, err := exec("--token", "t", "artifacts", "get", "octo/hello", "5")
	require.NoError(t, err)

	var decoded api.Artifact
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "dist", decoded.Name)
}

func TestArtifactsDelete(t *testing.T) {
	mock, exec := MakeApp(t)
	mock.API.EXPECT().DeleteArtifact(gomock.Any(), api.DeleteArtifactInput{Owner: "octo", Repo: "hello", ArtifactID: 5}).Return(nil)

	out, err := exec("--token", "t", "artifacts", "delete", "octo/hello", "5")
	require.NoError(t, err)
	assert.JSONEq(t, `{"deleted":5}`, out)
}

func TestArtifactsDownload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mock, exec := MakeApp(t)
		mock.API.EXPECT().GetArtifactData(gomock.Any(), api.GetArtifactDataInput{Owner: "octo", Repo: "hello", ArtifactID: 5, Format: "zip"}).
			Return(&api.ArtifactData{
				ContentType:   "application/zip",
				ContentLength: 5,
				Body:          io.NopCloser(strings.NewReader("hello")),
			}, nil)
		mock.Storage.EXPECT().Store(gomock.Any(), "application/zip", int64(5), gomock.Any()).
			DoAndReturn(func(d storage.ObjectDescriptor, _ string, _ int64, body io.ReadCloser) (*storage.Item, error) {
				assert.Equal(t, []string{"octo", "hello", "5.zip"}, d.PathComponents())
				data, err := io.ReadAll(body)
				require.NoError(t, err)
				assert.Equal(t, "hello", string(data))
				return &storage.Item{Size: 5, Location: "/tmp/x"}, nil
			})

		out, err := exec("--token", "t", "--local-storage-path", "/srv/artifacts", "artifacts", "download", "octo/hello", "5")
		require.NoError(t, err)
		assert.Equal(t, StorageConfig{Mode: "local", LocalStoragePath: "/srv/artifacts"}, mock.storage)

		var item storage.Item
		require.NoError(t, json.Unmarshal([]byte(out), &item))
		assert.Equal(t, "/tmp/x", item.Location)
	})

	t.Run("download failure", func(t *testing.T) {
		mock, exec := MakeApp(t)
		mock.API.EXPECT().GetArtifactData(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("gone"))

		_, err := exec("--token", "t", "artifacts", "download", "octo/hello", "5")
		assert.EqualError(t, err, "gone")
	})

	t.Run("storage failure", func(t *testing.T) {
		mock, exec := MakeApp(t)
		mock.API.EXPECT().GetArtifactData(gomock.Any(), gomock.Any()).Return(&api.ArtifactData{
			ContentLength: -1,
			Body:          io.NopCloser(strings.NewReader("")),
		}, nil)
		mock.Storage.EXPECT().Store(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("disk full"))

		_, err := exec("--token", "t", "artifacts", "download", "octo/hello", "5")
		assert.EqualError(t, err, "disk full")
	})
}

func TestCache(t *testing.T) {
	t.Run("organization usage", func(t *testing.T) {
		mock, exec := MakeApp(t)
		mock.API.EXPECT().GetCacheUsage(gomock.Any(), api.GetCacheUsageInput{Name: "octo"}).
			Return(&api.CacheUsage{TotalSizeInBytes: 10, TotalCount: 2}, nil)

		out, err := exec("--token", "t", "cache", "usage", "octo")
		require.NoError(t, err)
		assert.JSONEq(t, `{"total_size_in_bytes":10,"total_count":2}`, out)
	})

	t.Run("enterprise usage", func(t *testing.T) {
		mock, exec := MakeApp(t)
		mock.API.EXPECT().GetCacheUsage(gomock.Any(), api.GetCacheUsageInput{Name: "corp", Enterprise: true}).
			Return(&api.CacheUsage{}, nil)

		_, err := exec("--token", "t", "cache", "usage", "--enterprise", "corp")
		require.NoError(t, err)
	})

	t.Run("repository usage", func(t *testing.T) {
		mock, exec := MakeApp(t)
		mock.API.EXPECT().GetRepositoryCacheUsage(gomock.Any(), api.GetRepositoryCacheUsageInput{Owner: "octo", Repo: "hello"}).
			Return(&api.RepositoryCacheUsage{FullName: "octo/hello", SizeInBytes: 3, Count: 1}, nil)

		out, err := exec("--token", "t", "cache", "repo", "octo/hello")
		require.NoError(t, err)
		assert.JSONEq(t, `{"full_name":"octo/hello","size_in_bytes":3,"count":1}`, out)
	})

	t.Run("usage by repository", func(t *testing.T) {
		mock, exec := MakeApp(t)
		mock.API.EXPECT().ListRepositoryCacheUsage(gomock.Any(), api.ListRepositoryCacheUsageInput{
			Org:  "octo",
			Page: api.Page{PerPage: 50, Page: 1},
		}).Return(nil, nil)

		out, err := exec("--token", "t", "cache", "repos", "--per-page", "50", "octo")
		require.NoError(t, err)
		assert.Equal(t, "null", strings.TrimSpace(out))
	})
}

func TestEndToEnd(t *testing.T) {
	isolateEnv(t)
	prov := (&server.Config{Logger: zap.NewNop(), Token: "e2e"}).MakeProvider()
	srv := httptest.NewServer(prov.MakeMux())
	t.Cleanup(srv.Close)

	now := time.Date(2023, 3, 4, 5, 6, 7, 0, time.UTC)
	id := prov.AddArtifact("octo", "hello", server.Artifact{
		Name:      "dist",
		RunID:     12,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
		UpdatedAt: now,
		Data:      []byte("zip bytes"),
	})

	run := func(args ...string) string {
		app := NewApp(Deps{NewLogger: nopLogger})
		out := &bytes.Buffer{}
		app.Writer = out
		app.ErrWriter = io.Discard
		require.NoError(t, app.Run(append([]string{"cocov-actions", "--token", "e2e", "--api-url", srv.URL}, args...)))
		return out.String()
	}

	var coll api.ArtifactCollection
	require.NoError(t, json.Unmarshal([]byte(run("artifacts", "run", "octo/hello", "12")), &coll))
	require.Len(t, coll.Artifacts, 1)
	assert.Equal(t, id, coll.Artifacts[0].ID)
	assert.True(t, now.Equal(coll.Artifacts[0].CreatedAt))

	dir := t.TempDir()
	var item storage.Item
	require.NoError(t, json.Unmarshal([]byte(run("--local-storage-path", dir, "artifacts", "download", "octo/hello", fmt.Sprint(id))), &item))
	assert.Equal(t, int64(9), item.Size)

	data, err := os.ReadFile(filepath.Join(dir, "artifacts", "octo", "hello", fmt.Sprintf("%d.zip", id)))
	require.NoError(t, err)
	assert.Equal(t, "zip bytes", string(data))

	run("artifacts", "delete", "octo/hello", fmt.Sprint(id))
	assert.Equal(t, "null", strings.TrimSpace(run("artifacts", "list", "octo/hello")))
}
