package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/raditia/gerai/internal/admin/otel"
	"github.com/raditia/gerai/admin/pkg/request"
	commonErrors "github.com/raditia/gerai/internal/errors"
	"github.com/raditia/gerai/internal/log"
	"github.com/raditia/gerai/internal/repository"
	"github.com/raditia/gerai/product/pkg/response"
)

func numericFromDecimal(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func nullUUIDFromPointer(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func (svc *AdminService) FindProducts(
	c context.Context,
	params repository.FindProductsParams,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "AdminService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService FindProducts").
		Str(log.KeyProcess, "finding products").
		Logger()

	logger.Info().Msg("finding products")
	products, err := svc.queries.FindProducts(c, params)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products", len(products))

	return response.FromProducts(products), nil
}

func (svc *AdminService) InsertProduct(
	c context.Context,
	params request.UpsertProduct,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "AdminService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService InsertProduct").
		Str(log.KeyShopID, params.ShopID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding shop").Logger()
	logger.Info().Msg("finding shop")
	shop, err := svc.queries.FindShopById(c, params.ShopID)
	if err != nil {
		err = fmt.Errorf("failed finding shop with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("found shop")

	logger = logger.With().Str(log.KeyProcess, "inserting product").Logger()
	logger.Info().Msg("inserting product")
	product, err := svc.queries.InsertProduct(c, repository.InsertProductParams{
		ShopID:      shop.ID,
		CategoryID:  nullUUIDFromPointer(params.CategoryID),
		Name:        params.Name,
		Description: params.Description,
		Price:       numericFromDecimal(params.Price),
		ImageUrl:    params.ImageUrl,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting product with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("inserted product")

	svc.invalidateProduct(c, product.ID)
	return response.FromProduct(product), nil
}

func (svc *AdminService) UpdateProduct(
	c context.Context,
	productId uuid.UUID,
	params request.UpsertProduct,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "AdminService UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService UpdateProduct").
		Str(log.KeyProductID, productId.String()).
		Str(log.KeyProcess, "updating product").
		Logger()

	logger.Info().Msg("updating product")
	product, err := svc.queries.UpdateProduct(c, repository.UpdateProductParams{
		ID:          productId,
		CategoryID:  nullUUIDFromPointer(params.CategoryID),
		Name:        params.Name,
		Description: params.Description,
		Price:       numericFromDecimal(params.Price),
		ImageUrl:    params.ImageUrl,
	})
	if err != nil {
		err = fmt.Errorf("failed updating product with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("updated product")

	svc.invalidateProduct(c, product.ID)
	return response.FromProduct(product), nil
}

func (svc *AdminService) DeleteProduct(c context.Context, productId uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "AdminService DeleteProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService DeleteProduct").
		Str(log.KeyProductID, productId.String()).
		Str(log.KeyProcess, "deleting product").
		Logger()

	logger.Info().Msg("deleting product")
	if err := svc.queries.DeleteProduct(c, productId); err != nil {
		err = fmt.Errorf("failed deleting product with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted product")

	svc.invalidateProduct(c, productId)
	return nil
}

func (svc *AdminService) FindCategories(c context.Context) ([]response.Category, error) {
	c, span := otel.Tracer.Start(c, "AdminService FindCategories")
	defer span.End()

	categories, err := svc.queries.FindCategories(c)
	if err != nil {
		err = fmt.Errorf("failed finding categories with error=%w", err)
		commonErrors.HandleError(err, span)
		zerolog.Ctx(c).Error().Err(err).Msg(err.Error())
		return nil, err
	}
	return response.FromCategories(categories), nil
}

func (svc *AdminService) InsertCategory(
	c context.Context,
	params request.UpsertCategory,
) (response.Category, error) {
	c, span := otel.Tracer.Start(c, "AdminService InsertCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService InsertCategory").
		Str(log.KeyProcess, "inserting category").
		Logger()

	logger.Info().Msg("inserting category")
	category, err := svc.queries.InsertCategory(c, params.Name)
	if err != nil {
		err = fmt.Errorf("failed inserting category with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Category{}, err
	}
	logger.Info().Msg("inserted category")

	svc.invalidate(c, categoriesCacheKey, productsCacheKey)
	return response.Category{ID: category.ID, Name: category.Name}, nil
}

func (svc *AdminService) UpdateCategory(
	c context.Context,
	categoryId uuid.UUID,
	params request.UpsertCategory,
) (response.Category, error) {
	c, span := otel.Tracer.Start(c, "AdminService UpdateCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService UpdateCategory").
		Str(log.KeyProcess, "updating category").
		Logger()

	logger.Info().Msg("updating category")
	category, err := svc.queries.UpdateCategory(c, categoryId, params.Name)
	if err != nil {
		err = fmt.Errorf("failed updating category with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Category{}, err
	}
	logger.Info().Msg("updated category")

	svc.invalidate(c, categoriesCacheKey, productsCacheKey)
	return response.Category{ID: category.ID, Name: category.Name}, nil
}

func (svc *AdminService) DeleteCategory(c context.Context, categoryId uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "AdminService DeleteCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService DeleteCategory").
		Str(log.KeyProcess, "deleting category").
		Logger()

	logger.Info().Msg("deleting category")
	if err := svc.queries.DeleteCategory(c, categoryId); err != nil {
		err = fmt.Errorf("failed deleting category with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted category")

	svc.invalidate(c, categoriesCacheKey, productsCacheKey)
	return nil
}

func (svc *AdminService) FindFaqs(c context.Context) ([]response.Faq, error) {
	c, span := otel.Tracer.Start(c, "AdminService FindFaqs")
	defer span.End()

	faqs, err := svc.queries.FindFaqs(c)
	if err != nil {
		err = fmt.Errorf("failed finding faqs with error=%w", err)
		commonErrors.HandleError(err, span)
		zerolog.Ctx(c).Error().Err(err).Msg(err.Error())
		return nil, err
	}
	return response.FromFaqs(faqs), nil
}

func (svc *AdminService) InsertFaq(
	c context.Context,
	params request.UpsertFaq,
) (response.Faq, error) {
	c, span := otel.Tracer.Start(c, "AdminService InsertFaq")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService InsertFaq").
		Str(log.KeyProcess, "inserting faq").
		Logger()

	logger.Info().Msg("inserting faq")
	faq, err := svc.queries.InsertFaq(c, repository.InsertFaqParams{
		Question: params.Question,
		Answer:   params.Answer,
		Position: params.Position,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting faq with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Faq{}, err
	}
	logger.Info().Msg("inserted faq")

	svc.invalidate(c, faqsCacheKey)
	return response.Faq{
		ID:       faq.ID,
		Question: faq.Question,
		Answer:   faq.Answer,
		Position: faq.Position,
	}, nil
}

func (svc *AdminService) UpdateFaq(
	c context.Context,
	faqId uuid.UUID,
	params request.UpsertFaq,
) (response.Faq, error) {
	c, span := otel.Tracer.Start(c, "AdminService UpdateFaq")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService UpdateFaq").
		Str(log.KeyProcess, "updating faq").
		Logger()

	logger.Info().Msg("updating faq")
	faq, err := svc.queries.UpdateFaq(c, repository.UpdateFaqParams{
		ID:       faqId,
		Question: params.Question,
		Answer:   params.Answer,
		Position: params.Position,
	})
	if err != nil {
		err = fmt.Errorf("failed updating faq with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Faq{}, err
	}
	logger.Info().Msg("updated faq")

	svc.invalidate(c, faqsCacheKey)
	return response.Faq{
		ID:       faq.ID,
		Question: faq.Question,
		Answer:   faq.Answer,
		Position: faq.Position,
	}, nil
}

func (svc *AdminService) DeleteFaq(c context.Context, faqId uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "AdminService DeleteFaq")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService DeleteFaq").
		Str(log.KeyProcess, "deleting faq").
		Logger()

	logger.Info().Msg("deleting faq")
	if err := svc.queries.DeleteFaq(c, faqId); err != nil {
		err = fmt.Errorf("failed deleting faq with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted faq")

	svc.invalidate(c, faqsCacheKey)
	return nil
}
