package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/raditia/gerai/internal/cart/otel"
	"github.com/raditia/gerai/cart/pkg/request"
	"github.com/raditia/gerai/cart/pkg/response"
	"github.com/raditia/gerai/cart/pkg/store"
	commonErrors "github.com/raditia/gerai/internal/errors"
	"github.com/raditia/gerai/internal/log"
	"github.com/raditia/gerai/internal/pricing"
	"github.com/raditia/gerai/internal/repository"
)

type CartService struct {
	queries   *repository.Queries
	carts     *store.Manager
	mutations *prometheus.CounterVec
}

func NewCartService(
	queries *repository.Queries,
	carts *store.Manager,
	registry prometheus.Registerer,
) CartService {
	mutations := promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Name: "gerai_cart_mutations_total",
		Help: "Number of cart mutations by operation.",
	}, []string{"operation"})
	return CartService{queries: queries, carts: carts, mutations: mutations}
}

// Carts exposes the session stores so checkout can read and clear them.
func (svc CartService) Carts() *store.Manager {
	return svc.carts
}

func (svc CartService) AddItem(
	c context.Context,
	sessionId string,
	param request.AddCartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeySessionID, sessionId).
		Str(log.KeyProductID, param.ProductId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	product, err := svc.queries.FindProductById(c, param.ProductId)
	if err != nil {
		err = fmt.Errorf(
			"failed finding productId=%s with error=%w",
			param.ProductId.String(),
			err,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found product")

	logger = logger.With().Str(log.KeyProcess, "adding cart item").Logger()
	logger.Info().Msg("adding cart item")
	snapshot := svc.carts.Session(sessionId).Add(c, store.Line{
		ProductID: product.ID,
		Name:      product.Name,
		ImageUrl:  product.ImageUrl,
		Price:     pricing.NewPrice(decimal.NewFromBigInt(product.Price.Int, product.Price.Exp)),
		Quantity:  param.Quantity,
	})
	svc.mutations.WithLabelValues("add").Inc()
	logger.Info().
		Int32(log.KeyCartCount, snapshot.Count).
		Str(log.KeyCartTotal, snapshot.Total.String()).
		Msg("added cart item")

	return response.FromSnapshot(snapshot), nil
}

func (svc CartService) UpdateQuantity(
	c context.Context,
	sessionId string,
	productId uuid.UUID,
	quantity int32,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateQuantity").
		Str(log.KeySessionID, sessionId).
		Str(log.KeyProductID, productId.String()).
		Int32(log.KeyQuantity, quantity).
		Logger()

	logger.Info().Msg("updating cart item quantity")
	snapshot := svc.carts.Session(sessionId).SetQuantity(c, productId, quantity)
	svc.mutations.WithLabelValues("update").Inc()
	logger.Info().
		Int32(log.KeyCartCount, snapshot.Count).
		Msg("updated cart item quantity")

	return response.FromSnapshot(snapshot), nil
}

func (svc CartService) RemoveItem(
	c context.Context,
	sessionId string,
	productId uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeySessionID, sessionId).
		Str(log.KeyProductID, productId.String()).
		Logger()

	logger.Info().Msg("removing cart item")
	snapshot := svc.carts.Session(sessionId).Remove(c, productId)
	svc.mutations.WithLabelValues("remove").Inc()
	logger.Info().Int32(log.KeyCartCount, snapshot.Count).Msg("removed cart item")

	return response.FromSnapshot(snapshot), nil
}

func (svc CartService) Clear(c context.Context, sessionId string) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService Clear")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Clear").
		Str(log.KeySessionID, sessionId).
		Logger()

	logger.Info().Msg("clearing cart")
	snapshot := svc.carts.Session(sessionId).Clear(c)
	svc.mutations.WithLabelValues("clear").Inc()
	logger.Info().Msg("cleared cart")

	return response.FromSnapshot(snapshot), nil
}

// Merge folds a payload of product id and quantity pairs into the session's
// cart, resolving each product against the database. Products that no longer
// exist are skipped instead of failing the whole merge.
func (svc CartService) Merge(
	c context.Context,
	sessionId string,
	param request.MergeCart,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService Merge")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Merge").
		Str(log.KeySessionID, sessionId).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "resolving products").Logger()
	logger.Info().Msgf("resolving %d incoming items", len(param.Items))
	lines := make([]store.Line, 0, len(param.Items))
	for _, item := range param.Items {
		product, err := svc.queries.FindProductById(c, item.ProductId)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				logger.Warn().
					Str(log.KeyProductID, item.ProductId.String()).
					Msg("skipping unknown product")
				continue
			}
			err = fmt.Errorf(
				"failed finding productId=%s with error=%w",
				item.ProductId.String(),
				err,
			)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		lines = append(lines, store.Line{
			ProductID: product.ID,
			Name:      product.Name,
			ImageUrl:  product.ImageUrl,
			Price: pricing.NewPrice(
				decimal.NewFromBigInt(product.Price.Int, product.Price.Exp),
			),
			Quantity: item.Quantity,
		})
	}
	logger.Info().Msgf("resolved %d items", len(lines))

	logger = logger.With().Str(log.KeyProcess, "merging cart").Logger()
	logger.Info().Msg("merging cart")
	snapshot := svc.carts.Session(sessionId).Merge(c, lines)
	svc.mutations.WithLabelValues("merge").Inc()
	logger.Info().Int32(log.KeyCartCount, snapshot.Count).Msg("merged cart")

	return response.FromSnapshot(snapshot), nil
}

func (svc CartService) FindCart(c context.Context, sessionId string) response.Cart {
	c, span := otel.Tracer.Start(c, "CartService FindCart")
	defer span.End()

	return response.FromSnapshot(svc.carts.Session(sessionId).Snapshot(c))
}

func (svc CartService) OpenDrawer(c context.Context, sessionId string) response.Cart {
	_, span := otel.Tracer.Start(c, "CartService OpenDrawer")
	defer span.End()

	return response.FromSnapshot(svc.carts.Session(sessionId).OpenDrawer())
}

func (svc CartService) CloseDrawer(c context.Context, sessionId string) response.Cart {
	_, span := otel.Tracer.Start(c, "CartService CloseDrawer")
	defer span.End()

	return response.FromSnapshot(svc.carts.Session(sessionId).CloseDrawer())
}
