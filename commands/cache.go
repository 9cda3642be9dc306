package commands

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/cocov-ci/actions/api"
	"github.com/cocov-ci/actions/locator"
)

func (r *runner) CacheUsage(ctx *cli.Context) error {
	var loc locator.ScopeLocator
	if err := loc.LoadFrom(ctx.Args()); err != nil {
		return err
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	usage, err := client.GetCacheUsage(ctx.Context, api.GetCacheUsageInput{
		Name:       loc.Name,
		Enterprise: ctx.Bool("enterprise"),
	})
	if err != nil {
		return err
	}
	return printJSON(ctx, usage)
}

func (r *runner) RepositoryCacheUsage(ctx *cli.Context) error {
	var loc locator.RepositoryLocator
	if err := loc.LoadFrom(ctx.Args()); err != nil {
		return err
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	usage, err := client.GetRepositoryCacheUsage(ctx.Context, api.GetRepositoryCacheUsageInput{
		Owner: loc.Owner,
		Repo:  loc.Repo,
	})
	if err != nil {
		return err
	}
	return printJSON(ctx, usage)
}

func (r *runner) ListRepositoryCacheUsage(ctx *cli.Context) error {
	var loc locator.ScopeLocator
	if err := loc.LoadFrom(ctx.Args()); err != nil {
		return err
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	coll, err := client.ListRepositoryCacheUsage(ctx.Context, api.ListRepositoryCacheUsageInput{
		Org:  loc.Name,
		Page: pageFrom(ctx),
	})
	if err != nil {
		return err
	}
	if coll == nil {
		r.logger.Info("No repository cache usage found", zap.String("org", loc.Name))
	}
	return printJSON(ctx, coll)
}
