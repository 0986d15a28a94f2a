package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	commonErrors "github.com/raditia/gerai/internal/errors"
	"github.com/raditia/gerai/internal/log"
	"github.com/raditia/gerai/internal/repository"
	productResponse "github.com/raditia/gerai/product/pkg/response"
	"github.com/raditia/gerai/internal/shop/otel"
	"github.com/raditia/gerai/shop/pkg/request"
	"github.com/raditia/gerai/shop/pkg/response"
	"github.com/raditia/gerai/shop/pkg/status"
)

type ShopService struct {
	queries *repository.Queries
}

func NewShopService(queries *repository.Queries) ShopService {
	return ShopService{queries: queries}
}

func shopResponse(s repository.Shop) response.Shop {
	return response.Shop{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		Name:      s.Name,
		Status:    s.Status,
		CreatedAt: s.CreatedAt.Time,
		UpdatedAt: s.UpdatedAt.Time,
	}
}

// RegisterShop creates the caller's shop in pending status, waiting for admin
// verification. One shop per owner is enforced by the database.
func (svc ShopService) RegisterShop(
	c context.Context,
	ownerId uuid.UUID,
	param request.RegisterShop,
) (response.Shop, error) {
	c, span := otel.Tracer.Start(c, "ShopService RegisterShop")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService RegisterShop").
		Str(log.KeyUserID, ownerId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting shop").Logger()
	logger.Info().Msg("inserting shop")
	shop, err := svc.queries.InsertShop(c, repository.InsertShopParams{
		OwnerID: ownerId,
		Name:    param.Name,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting shop with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Shop{}, err
	}
	logger = logger.With().Str(log.KeyShopID, shop.ID.String()).Logger()
	logger.Info().Msg("inserted shop")

	return shopResponse(shop), nil
}

func (svc ShopService) FindShopByOwner(
	c context.Context,
	ownerId uuid.UUID,
) (response.Shop, error) {
	c, span := otel.Tracer.Start(c, "ShopService FindShopByOwner")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService FindShopByOwner").
		Str(log.KeyUserID, ownerId.String()).
		Logger()

	shop, err := svc.queries.FindShopByOwnerId(c, ownerId)
	if err != nil {
		err = fmt.Errorf(
			"failed finding shop for ownerId=%s with error=%w",
			ownerId.String(),
			err,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Shop{}, err
	}
	return shopResponse(shop), nil
}

// Resubmit moves a rejected shop back to pending for another review round.
func (svc ShopService) Resubmit(
	c context.Context,
	ownerId uuid.UUID,
) (response.Shop, error) {
	c, span := otel.Tracer.Start(c, "ShopService Resubmit")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService Resubmit").
		Str(log.KeyUserID, ownerId.String()).
		Logger()

	shop, err := svc.queries.FindShopByOwnerId(c, ownerId)
	if err != nil {
		err = fmt.Errorf(
			"failed finding shop for ownerId=%s with error=%w",
			ownerId.String(),
			err,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Shop{}, err
	}
	logger = logger.With().Str(log.KeyShopID, shop.ID.String()).Logger()

	if err := status.Validate(shop.Status, status.Pending); err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Shop{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating shop status").Logger()
	logger.Info().Msg("updating shop status")
	updated, err := svc.queries.UpdateShopStatus(c, shop.ID, status.Pending)
	if err != nil {
		err = fmt.Errorf("failed updating shop status with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Shop{}, err
	}
	logger.Info().Msg("updated shop status")

	return shopResponse(updated), nil
}

func (svc ShopService) Dashboard(
	c context.Context,
	ownerId uuid.UUID,
) (response.Dashboard, error) {
	c, span := otel.Tracer.Start(c, "ShopService Dashboard")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService Dashboard").
		Str(log.KeyUserID, ownerId.String()).
		Logger()

	shop, err := svc.queries.FindShopByOwnerId(c, ownerId)
	if err != nil {
		err = fmt.Errorf(
			"failed finding shop for ownerId=%s with error=%w",
			ownerId.String(),
			err,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Dashboard{}, err
	}
	logger = logger.With().Str(log.KeyShopID, shop.ID.String()).Logger()

	productCount, err := svc.queries.CountProductsByShopId(c, shop.ID)
	if err != nil {
		err = fmt.Errorf("failed counting products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Dashboard{}, err
	}

	soldItems, err := svc.queries.CountSoldItemsByShopId(c, shop.ID)
	if err != nil {
		err = fmt.Errorf("failed counting sold items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Dashboard{}, err
	}

	return response.Dashboard{
		Shop:         shopResponse(shop),
		ProductCount: productCount,
		SoldItems:    soldItems,
	}, nil
}

func (svc ShopService) FindOwnProducts(
	c context.Context,
	ownerId uuid.UUID,
) ([]productResponse.Product, error) {
	c, span := otel.Tracer.Start(c, "ShopService FindOwnProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService FindOwnProducts").
		Str(log.KeyUserID, ownerId.String()).
		Logger()

	shop, err := svc.queries.FindShopByOwnerId(c, ownerId)
	if err != nil {
		err = fmt.Errorf(
			"failed finding shop for ownerId=%s with error=%w",
			ownerId.String(),
			err,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	rows, err := svc.queries.FindProductsByShopId(c, shop.ID)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	return productResponse.FromProducts(rows), nil
}

func numericFromDecimal(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func nullUUIDFromPointer(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func (svc ShopService) InsertProduct(
	c context.Context,
	ownerId uuid.UUID,
	param request.UpsertProduct,
) (productResponse.Product, error) {
	c, span := otel.Tracer.Start(c, "ShopService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService InsertProduct").
		Str(log.KeyUserID, ownerId.String()).
		Logger()

	shop, err := svc.queries.FindShopByOwnerId(c, ownerId)
	if err != nil {
		err = fmt.Errorf(
			"failed finding shop for ownerId=%s with error=%w",
			ownerId.String(),
			err,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}
	logger = logger.With().Str(log.KeyShopID, shop.ID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting product").Logger()
	logger.Info().Msg("inserting product")
	product, err := svc.queries.InsertProduct(c, repository.InsertProductParams{
		ShopID:      shop.ID,
		CategoryID:  nullUUIDFromPointer(param.CategoryID),
		Name:        param.Name,
		Description: param.Description,
		Price:       numericFromDecimal(param.Price),
		ImageUrl:    param.ImageUrl,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting product with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}
	logger.Info().Msg("inserted product")

	return productResponse.FromProduct(product), nil
}

func (svc ShopService) UpdateProduct(
	c context.Context,
	ownerId uuid.UUID,
	productId uuid.UUID,
	param request.UpsertProduct,
) (productResponse.Product, error) {
	c, span := otel.Tracer.Start(c, "ShopService UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService UpdateProduct").
		Str(log.KeyUserID, ownerId.String()).
		Str(log.KeyProductID, productId.String()).
		Logger()

	if err := svc.assertOwnership(c, ownerId, productId); err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating product").Logger()
	logger.Info().Msg("updating product")
	product, err := svc.queries.UpdateProduct(c, repository.UpdateProductParams{
		ID:          productId,
		CategoryID:  nullUUIDFromPointer(param.CategoryID),
		Name:        param.Name,
		Description: param.Description,
		Price:       numericFromDecimal(param.Price),
		ImageUrl:    param.ImageUrl,
	})
	if err != nil {
		err = fmt.Errorf("failed updating product with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}
	logger.Info().Msg("updated product")

	return productResponse.FromProduct(product), nil
}

func (svc ShopService) DeleteProduct(
	c context.Context,
	ownerId uuid.UUID,
	productId uuid.UUID,
) error {
	c, span := otel.Tracer.Start(c, "ShopService DeleteProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService DeleteProduct").
		Str(log.KeyUserID, ownerId.String()).
		Str(log.KeyProductID, productId.String()).
		Logger()

	if err := svc.assertOwnership(c, ownerId, productId); err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(log.KeyProcess, "deleting product").Logger()
	logger.Info().Msg("deleting product")
	if err := svc.queries.DeleteProduct(c, productId); err != nil {
		err = fmt.Errorf("failed deleting product with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted product")

	return nil
}

func (svc ShopService) assertOwnership(
	c context.Context,
	ownerId uuid.UUID,
	productId uuid.UUID,
) error {
	shop, err := svc.queries.FindShopByOwnerId(c, ownerId)
	if err != nil {
		return fmt.Errorf(
			"failed finding shop for ownerId=%s with error=%w",
			ownerId.String(),
			err,
		)
	}
	product, err := svc.queries.FindProductById(c, productId)
	if err != nil {
		return fmt.Errorf(
			"failed finding productId=%s with error=%w",
			productId.String(),
			err,
		)
	}
	if product.ShopID != shop.ID {
		return fmt.Errorf(
			"productId=%s does not belong to shopId=%s",
			productId.String(),
			shop.ID.String(),
		)
	}
	return nil
}
