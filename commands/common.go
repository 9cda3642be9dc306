package commands

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/cocov-ci/actions/api"
	"github.com/cocov-ci/actions/storage"
)

func storageProvider(c StorageConfig, log *zap.Logger) (storage.Provider, error) {
	var (
		provider        storage.Provider
		storageLogField zap.Field
		err             error
	)

	switch c.Mode {
	case "local":
		provider, err = storage.NewLocalStorage(c.LocalStoragePath)
		storageLogField = zap.String("local_storage_path", c.LocalStoragePath)
	case "s3":
		if c.S3BucketName == "" {
			return nil, fmt.Errorf("storage mode s3 requires --s3-bucket-name")
		}
		provider, err = storage.NewS3(c.S3BucketName)
		storageLogField = zap.String("bucket_name", c.S3BucketName)
	default:
		return nil, fmt.Errorf("unknown storage mode %q", c.Mode)
	}

	if err != nil {
		log.Error("Storage provider initialization failed", zap.Error(err))
		return nil, err
	}

	log.Info("Storage provider initialization succeeded",
		zap.String("provider_kind", c.Mode),
		storageLogField,
	)

	return provider, nil
}

func pageFrom(ctx *cli.Context) api.Page {
	return api.Page{PerPage: ctx.Int("per-page"), Page: ctx.Int("page")}
}

// printJSON writes v to the application's writer. Absent collections are
// written as null.
func printJSON(ctx *cli.Context, v any) error {
	enc := json.NewEncoder(ctx.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
