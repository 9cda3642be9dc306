package commands

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/cocov-ci/actions/api"
	"github.com/cocov-ci/actions/locator"
	"github.com/cocov-ci/actions/storage"
)

func (r *runner) ListArtifacts(ctx *cli.Context) error {
	var loc locator.RepositoryLocator
	if err := loc.LoadFrom(ctx.Args()); err != nil {
		return err
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	coll, err := client.ListArtifacts(ctx.Context, api.ListArtifactsInput{
		Owner: loc.Owner,
		Repo:  loc.Repo,
		Name:  ctx.String("name"),
		Page:  pageFrom(ctx),
	})
	if err != nil {
		return err
	}
	if coll == nil {
		r.logger.Info("No artifacts found", zap.String("repository", loc.String()))
	}
	return printJSON(ctx, coll)
}

func (r *runner) ListRunArtifacts(ctx *cli.Context) error {
	var loc locator.RunLocator
	if err := loc.LoadFrom(ctx.Args()); err != nil {
		return err
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	coll, err := client.ListRunArtifacts(ctx.Context, api.ListRunArtifactsInput{
		Owner: loc.Owner,
		Repo:  loc.Repo,
		RunID: loc.RunID,
		Name:  ctx.String("name"),
		Page:  pageFrom(ctx),
	})
	if err != nil {
		return err
	}
	if coll == nil {
		r.logger.Info("No artifacts found",
			zap.String("repository", loc.String()),
			zap.Int64("run_id", loc.RunID))
	}
	return printJSON(ctx, coll)
}

func (r *runner) GetArtifact(ctx *cli.Context) error {
	var loc locator.ArtifactLocator
	if err := loc.LoadFrom(ctx.Args()); err != nil {
		return err
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	a, err := client.GetArtifact(ctx.Context, api.GetArtifactInput{
		Owner:      loc.Owner,
		Repo:       loc.Repo,
		ArtifactID: loc.ArtifactID,
	})
	if err != nil {
		return err
	}
	return printJSON(ctx, a)
}

func (r *runner) DeleteArtifact(ctx *cli.Context) error {
	var loc locator.ArtifactLocator
	if err := loc.LoadFrom(ctx.Args()); err != nil {
		return err
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	err = client.DeleteArtifact(ctx.Context, api.DeleteArtifactInput{
		Owner:      loc.Owner,
		Repo:       loc.Repo,
		ArtifactID: loc.ArtifactID,
	})
	if err != nil {
		return err
	}

	r.logger.Info("Deleted artifact",
		zap.String("repository", loc.String()),
		zap.Int64("artifact_id", loc.ArtifactID))
	return printJSON(ctx, map[string]any{"deleted": loc.ArtifactID})
}

func (r *runner) DownloadArtifact(ctx *cli.Context) error {
	var loc locator.ArtifactLocator
	if err := loc.LoadFrom(ctx.Args()); err != nil {
		return err
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	provider, err := r.deps.NewStorage(r.storage, r.logger)
	if err != nil {
		return err
	}

	format := ctx.String("format")
	data, err := client.GetArtifactData(ctx.Context, api.GetArtifactDataInput{
		Owner:      loc.Owner,
		Repo:       loc.Repo,
		ArtifactID: loc.ArtifactID,
		Format:     format,
	})
	if err != nil {
		return err
	}

	item, err := provider.Store(storage.ArtifactDescriptor(loc.Owner, loc.Repo, loc.ArtifactID, format), data.ContentType, data.ContentLength, data.Body)
	if err != nil {
		r.logger.Error("Failed storing artifact",
			zap.String("repository", loc.String()),
			zap.Int64("artifact_id", loc.ArtifactID),
			zap.Error(err))
		return err
	}

	r.logger.Info("Stored artifact",
		zap.String("location", item.Location),
		zap.Int64("size", item.Size),
		zap.Bool("unchanged", item.Unchanged))
	return printJSON(ctx, item)
}
