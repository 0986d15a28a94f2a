package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/raditia/gerai/internal/admin/otel"
	commonErrors "github.com/raditia/gerai/internal/errors"
	"github.com/raditia/gerai/internal/log"
)

// UploadImage stores a product image in the bucket under a random key and
// returns the public URL to embed as image_url.
func (svc *AdminService) UploadImage(
	c context.Context,
	filename string,
	contentType string,
	body io.ReadSeeker,
) (string, error) {
	c, span := otel.Tracer.Start(c, "AdminService UploadImage")
	defer span.End()

	key := fmt.Sprintf("products/%s%s", uuid.New(), path.Ext(filename))
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService UploadImage").
		Str(log.KeyProcess, "uploading image").
		Str("key", key).
		Logger()

	logger.Info().Msg("uploading image")
	_, err := svc.storage.PutObjectWithContext(c, &s3.PutObjectInput{
		Bucket:      aws.String(svc.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		err = fmt.Errorf("failed uploading image with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("uploaded image")

	return strings.TrimRight(svc.cfg.PublicBaseURL, "/") + "/" + key, nil
}
