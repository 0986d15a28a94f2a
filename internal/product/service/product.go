package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	commonErrors "github.com/raditia/gerai/internal/errors"
	"github.com/raditia/gerai/internal/log"
	"github.com/raditia/gerai/internal/repository"
	"github.com/raditia/gerai/internal/product/otel"
	"github.com/raditia/gerai/product/pkg/response"
)

const (
	productsCacheKey   = "products:all"
	productCacheKey    = "products:%s"
	categoriesCacheKey = "categories"
	faqsCacheKey       = "faqs"

	cacheTTL = 5 * time.Minute
)

type ProductService struct {
	queries *repository.Queries
	cache   *redis.Client
}

func NewProductService(queries *repository.Queries, cache *redis.Client) ProductService {
	return ProductService{queries: queries, cache: cache}
}

// readCache fills target from the cache and reports a hit. Cache errors and
// stale payloads count as misses.
func (svc ProductService) readCache(c context.Context, key string, target interface{}) bool {
	payload, err := svc.cache.Get(c, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(payload, target); err != nil {
		zerolog.Ctx(c).
			Warn().
			Str(log.KeyCacheKey, key).
			Err(err).
			Msg("discarding cache payload that no longer unmarshals")
		return false
	}
	return true
}

func (svc ProductService) writeCache(c context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := svc.cache.Set(c, key, payload, cacheTTL).Err(); err != nil {
		zerolog.Ctx(c).
			Warn().
			Str(log.KeyCacheKey, key).
			Err(err).
			Msg("failed writing cache")
	}
}

// FindProducts lists products with optional category, search and sort
// filters. Only the unfiltered listing goes through the cache.
func (svc ProductService) FindProducts(
	c context.Context,
	param repository.FindProductsParams,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Logger()

	unfiltered := !param.CategoryID.Valid && param.Search == "" && param.Sort == ""
	if unfiltered {
		cached := []response.Product{}
		if svc.readCache(c, productsCacheKey, &cached) {
			logger.Info().Str(log.KeyCacheKey, productsCacheKey).Msg("cache hit")
			return cached, nil
		}
	}

	logger = logger.With().Str(log.KeyProcess, "finding products").Logger()
	logger.Info().Msg("finding products")
	rows, err := svc.queries.FindProducts(c, param)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products", len(rows))

	products := response.FromProducts(rows)
	if unfiltered {
		svc.writeCache(c, productsCacheKey, products)
	}
	return products, nil
}

func (svc ProductService) FindProductById(
	c context.Context,
	productId uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, productId.String()).
		Logger()

	key := fmt.Sprintf(productCacheKey, productId.String())
	cached := response.Product{}
	if svc.readCache(c, key, &cached) {
		logger.Info().Str(log.KeyCacheKey, key).Msg("cache hit")
		return cached, nil
	}

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	row, err := svc.queries.FindProductById(c, productId)
	if err != nil {
		err = fmt.Errorf(
			"failed finding productId=%s with error=%w",
			productId.String(),
			err,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("found product")

	product := response.FromProduct(row)
	svc.writeCache(c, key, product)
	return product, nil
}

func (svc ProductService) FindCategories(c context.Context) ([]response.Category, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindCategories").
		Logger()

	cached := []response.Category{}
	if svc.readCache(c, categoriesCacheKey, &cached) {
		logger.Info().Str(log.KeyCacheKey, categoriesCacheKey).Msg("cache hit")
		return cached, nil
	}

	logger = logger.With().Str(log.KeyProcess, "finding categories").Logger()
	logger.Info().Msg("finding categories")
	rows, err := svc.queries.FindCategories(c)
	if err != nil {
		err = fmt.Errorf("failed finding categories with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d categories", len(rows))

	categories := response.FromCategories(rows)
	svc.writeCache(c, categoriesCacheKey, categories)
	return categories, nil
}

func (svc ProductService) FindFaqs(c context.Context) ([]response.Faq, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindFaqs")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindFaqs").
		Logger()

	cached := []response.Faq{}
	if svc.readCache(c, faqsCacheKey, &cached) {
		logger.Info().Str(log.KeyCacheKey, faqsCacheKey).Msg("cache hit")
		return cached, nil
	}

	logger = logger.With().Str(log.KeyProcess, "finding faqs").Logger()
	logger.Info().Msg("finding faqs")
	rows, err := svc.queries.FindFaqs(c)
	if err != nil {
		err = fmt.Errorf("failed finding faqs with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d faqs", len(rows))

	faqs := response.FromFaqs(rows)
	svc.writeCache(c, faqsCacheKey, faqs)
	return faqs, nil
}
