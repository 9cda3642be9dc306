package commands

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/cocov-ci/actions/api"
	"github.com/cocov-ci/actions/config"
	"github.com/cocov-ci/actions/logging"
	"github.com/cocov-ci/actions/storage"
)

func envs(base string) []string {
	return []string{"ACTIONS_" + base, base}
}

// StorageConfig selects where downloaded artifacts are written.
type StorageConfig struct {
	Mode             string
	LocalStoragePath string
	S3BucketName     string
}

// Deps builds the collaborators used by commands. Zero fields fall back to
// the real implementations.
type Deps struct {
	NewLogger  func(isDevelopment bool) (*zap.Logger, error)
	NewClient  func(token, baseURL string, log *zap.Logger) api.Client
	NewStorage func(conf StorageConfig, log *zap.Logger) (storage.Provider, error)
}

func (d *Deps) fill() {
	if d.NewLogger == nil {
		d.NewLogger = logging.InitializeLogger
	}
	if d.NewClient == nil {
		d.NewClient = func(token, baseURL string, log *zap.Logger) api.Client {
			return api.New(token, api.WithBaseURL(baseURL), api.WithLogger(log))
		}
	}
	if d.NewStorage == nil {
		d.NewStorage = storageProvider
	}
}

type runner struct {
	deps    Deps
	logger  *zap.Logger
	token   string
	baseURL string
	storage StorageConfig
}

func NewApp(deps Deps) *cli.App {
	deps.fill()
	r := &runner{deps: deps}

	app := cli.NewApp()
	app.Name = "cocov-actions"
	app.Usage = "Inspects GitHub Actions artifacts and cache usage"
	app.Version = "0.1"
	app.Flags = []cli.Flag{
		&cli.StringFlag{Name: "token", EnvVars: envs("GITHUB_TOKEN"), Usage: "GitHub access token"},
		&cli.StringFlag{Name: "api-url", EnvVars: envs("GITHUB_API_URL"), Usage: "GitHub API base URL (default: " + api.DefaultBaseURL + ")"},
		&cli.StringFlag{Name: "config", EnvVars: envs("CONFIG"), Usage: "Path to a TOML configuration file (default: " + config.DefaultPath + ")"},
		&cli.StringFlag{Name: "storage-mode", EnvVars: envs("STORAGE_MODE"), Usage: "Where downloads are stored: local or s3"},
		&cli.StringFlag{Name: "local-storage-path", EnvVars: envs("LOCAL_STORAGE_PATH"), Usage: "Base directory for local downloads"},
		&cli.StringFlag{Name: "s3-bucket-name", EnvVars: envs("S3_BUCKET_NAME"), Usage: "Bucket for s3 downloads"},
		&cli.BoolFlag{Name: "dev", EnvVars: envs("DEV"), Usage: "Verbose, human readable logs"},
	}
	app.Authors = []*cli.Author{
		{Name: "Victor \"Vito\" Gama", Email: "hey@vito.io"},
	}
	app.Copyright = "Copyright (c) 2022-2023 - The Cocov Authors"
	app.Before = r.setup
	app.After = func(*cli.Context) error {
		if r.logger != nil {
			_ = r.logger.Sync()
		}
		return nil
	}

	paging := func() []cli.Flag {
		return []cli.Flag{
			&cli.IntFlag{Name: "per-page", Usage: "Results per page", Value: api.DefaultPerPage},
			&cli.IntFlag{Name: "page", Usage: "Page number", Value: 1},
		}
	}
	artifactFilters := func() []cli.Flag {
		return append(paging(), &cli.StringFlag{Name: "name", Usage: "Only list artifacts with this name"})
	}

	app.Commands = []*cli.Command{
		{
			Name:  "artifacts",
			Usage: "Workflow run artifacts",
			Subcommands: []*cli.Command{
				{Name: "list", Usage: "Lists artifacts of a repository", ArgsUsage: "OWNER/REPO", Flags: artifactFilters(), Action: r.ListArtifacts},
				{Name: "get", Usage: "Shows a single artifact", ArgsUsage: "OWNER/REPO ARTIFACT_ID", Action: r.GetArtifact},
				{Name: "delete", Usage: "Deletes an artifact", ArgsUsage: "OWNER/REPO ARTIFACT_ID", Action: r.DeleteArtifact},
				{
					Name:      "download",
					Usage:     "Downloads an artifact archive into the configured storage",
					ArgsUsage: "OWNER/REPO ARTIFACT_ID",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "format", Usage: "Archive format", Value: api.DefaultArchiveFormat},
					},
					Action: r.DownloadArtifact,
				},
				{Name: "run", Usage: "Lists artifacts of a workflow run", ArgsUsage: "OWNER/REPO RUN_ID", Flags: artifactFilters(), Action: r.ListRunArtifacts},
			},
		},
		{
			Name:  "cache",
			Usage: "Actions cache usage",
			Subcommands: []*cli.Command{
				{
					Name:      "usage",
					Usage:     "Shows cache usage of an organization or enterprise",
					ArgsUsage: "NAME",
					Flags: []cli.Flag{
						&cli.BoolFlag{Name: "enterprise", Usage: "NAME is an enterprise slug"},
					},
					Action: r.CacheUsage,
				},
				{Name: "repo", Usage: "Shows cache usage of a repository", ArgsUsage: "OWNER/REPO", Action: r.RepositoryCacheUsage},
				{Name: "repos", Usage: "Lists cache usage of every repository in an organization", ArgsUsage: "ORG", Flags: paging(), Action: r.ListRepositoryCacheUsage},
			},
		},
	}

	return app
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func (r *runner) setup(ctx *cli.Context) error {
	logger, err := r.deps.NewLogger(ctx.Bool("dev"))
	if err != nil {
		return err
	}
	r.logger = logger

	conf, err := config.Load(ctx.String("config"))
	if err != nil {
		return err
	}

	r.token = firstNonEmpty(ctx.String("token"), conf.Token)
	r.baseURL = firstNonEmpty(ctx.String("api-url"), conf.APIURL, api.DefaultBaseURL)
	r.storage = StorageConfig{
		Mode:             firstNonEmpty(ctx.String("storage-mode"), conf.Storage.Mode, "local"),
		LocalStoragePath: firstNonEmpty(ctx.String("local-storage-path"), conf.Storage.LocalPath, "."),
		S3BucketName:     firstNonEmpty(ctx.String("s3-bucket-name"), conf.Storage.S3Bucket),
	}
	return nil
}

// apiClient builds a client for the current invocation. Commands call it only once
// their arguments have been validated.
func (r *runner) apiClient() (api.Client, error) {
	if r.token == "" {
		return nil, fmt.Errorf("no access token provided: use --token, GITHUB_TOKEN or the configuration file")
	}
	r.logger.Debug("Initializing API client", zap.String("base_url", r.baseURL))
	return r.deps.NewClient(r.token, r.baseURL, r.logger.With(zap.String("component", "api"))), nil
}
