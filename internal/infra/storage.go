package infra

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog"

	"github.com/raditia/gerai/internal/config"
	"github.com/raditia/gerai/internal/log"
)

// NewStorageClient connects to the object store holding product images. An
// explicit endpoint (minio and friends) forces path-style addressing.
func NewStorageClient(logger zerolog.Logger, cfg config.Storage) *s3.S3 {
	logger = logger.With().
		Str(log.KeyTag, "main NewStorageClient").
		Str(log.KeyProcess, "initializing storage client").
		Logger()

	logger.Info().Msg("initializing storage client")
	awsConfig := aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)
	}

	sess, err := session.NewSession(&awsConfig)
	if err != nil {
		err = fmt.Errorf("failed initializing storage session with error=%w", err)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("initialized storage client")

	return s3.New(sess)
}
