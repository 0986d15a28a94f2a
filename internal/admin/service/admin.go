package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/raditia/gerai/internal/config"
	"github.com/raditia/gerai/internal/repository"
)

// Keys of the storefront read-through cache; admin mutations drop them so
// customers never see stale catalog data for longer than one request.
const (
	productsCacheKey   = "products:all"
	productCacheKey    = "products:%s"
	categoriesCacheKey = "categories"
	faqsCacheKey       = "faqs"
)

type AdminService struct {
	queries *repository.Queries
	cache   *redis.Client
	storage *s3.S3
	cfg     config.Storage
}

func NewAdminService(
	queries *repository.Queries,
	cache *redis.Client,
	storage *s3.S3,
	cfg config.Storage,
) *AdminService {
	return &AdminService{queries: queries, cache: cache, storage: storage, cfg: cfg}
}

func (svc *AdminService) invalidate(c context.Context, keys ...string) {
	if err := svc.cache.Del(c, keys...).Err(); err != nil {
		zerolog.Ctx(c).
			Warn().
			Err(err).
			Strs("keys", keys).
			Msgf("failed invalidating cache with error=%s", err.Error())
	}
}

func (svc *AdminService) invalidateProduct(c context.Context, id uuid.UUID) {
	svc.invalidate(c, productsCacheKey, fmt.Sprintf(productCacheKey, id))
}
