package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/raditia/gerai/internal/admin/otel"
	"github.com/raditia/gerai/internal/constants"
	commonErrors "github.com/raditia/gerai/internal/errors"
	"github.com/raditia/gerai/internal/log"
	"github.com/raditia/gerai/internal/repository"
	"github.com/raditia/gerai/notification/pkg/event"
	"github.com/raditia/gerai/shop/pkg/response"
	"github.com/raditia/gerai/shop/pkg/status"
)

func shopResponse(shop repository.Shop) response.Shop {
	return response.Shop{
		ID:        shop.ID,
		OwnerID:   shop.OwnerID,
		Name:      shop.Name,
		Status:    shop.Status,
		CreatedAt: shop.CreatedAt.Time,
		UpdatedAt: shop.UpdatedAt.Time,
	}
}

// FindShops lists shops filtered by verification status; an empty status
// returns every shop.
func (svc *AdminService) FindShops(c context.Context, byStatus string) ([]response.Shop, error) {
	c, span := otel.Tracer.Start(c, "AdminService FindShops")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService FindShops").
		Str(log.KeyProcess, "finding shops").
		Logger()

	logger.Info().Msg("finding shops")
	shops, err := svc.queries.FindShops(c, byStatus)
	if err != nil {
		err = fmt.Errorf("failed finding shops with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d shops", len(shops))

	result := make([]response.Shop, len(shops))
	for i, shop := range shops {
		result[i] = shopResponse(shop)
	}
	return result, nil
}

// VerifyShop moves a pending shop to approved or rejected. Approval promotes
// the owner to the seller role; either outcome notifies the owner.
func (svc *AdminService) VerifyShop(
	c context.Context,
	shopId uuid.UUID,
	newStatus string,
) (response.Shop, error) {
	c, span := otel.Tracer.Start(c, "AdminService VerifyShop")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService VerifyShop").
		Str(log.KeyShopID, shopId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding shop").Logger()
	logger.Info().Msg("finding shop")
	shop, err := svc.queries.FindShopById(c, shopId)
	if err != nil {
		err = fmt.Errorf("failed finding shop with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Shop{}, err
	}
	logger.Info().Msg("found shop")

	logger = logger.With().Str(log.KeyProcess, "validating transition").Logger()
	logger.Info().Msgf("validating transition from=%s to=%s", shop.Status, newStatus)
	if err := status.Validate(shop.Status, newStatus); err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Shop{}, err
	}
	logger.Info().Msg("validated transition")

	logger = logger.With().Str(log.KeyProcess, "updating shop status").Logger()
	logger.Info().Msg("updating shop status")
	shop, err = svc.queries.UpdateShopStatus(c, shop.ID, newStatus)
	if err != nil {
		err = fmt.Errorf("failed updating shop status with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Shop{}, err
	}
	logger.Info().Msg("updated shop status")

	if newStatus == status.Approved {
		logger = logger.With().Str(log.KeyProcess, "promoting owner").Logger()
		logger.Info().Msg("promoting owner to seller")
		if _, err := svc.queries.UpdateProfileRole(c, shop.OwnerID, constants.RoleSeller); err != nil {
			err = fmt.Errorf("failed promoting owner to seller with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Shop{}, err
		}
		logger.Info().Msg("promoted owner to seller")
	}

	svc.notifyOwner(c, shop, newStatus)

	return shopResponse(shop), nil
}

// notifyOwner inserts a targeted notification about the verification outcome
// and announces it on the feed channel. Failures are logged, never fatal: the
// verification itself already committed.
func (svc *AdminService) notifyOwner(c context.Context, shop repository.Shop, newStatus string) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService notifyOwner").
		Str(log.KeyShopID, shop.ID.String()).
		Logger()

	title := "Pendaftaran toko ditolak"
	message := fmt.Sprintf("Maaf, pendaftaran toko %s belum dapat kami setujui.", shop.Name)
	if newStatus == status.Approved {
		title = "Toko kamu disetujui"
		message = fmt.Sprintf("Selamat! Toko %s sudah aktif dan siap berjualan.", shop.Name)
	}

	inserted, err := svc.queries.InsertNotification(c, repository.InsertNotificationParams{
		UserID:  uuid.NullUUID{UUID: shop.OwnerID, Valid: true},
		Title:   title,
		Message: message,
	})
	if err != nil {
		logger.Error().Err(err).Msgf("failed inserting notification with error=%s", err.Error())
		return
	}

	ownerId := shop.OwnerID
	err = event.Publish(c, svc.cache, event.Notification{
		ID:        inserted.ID,
		UserID:    &ownerId,
		Title:     inserted.Title,
		Message:   inserted.Message,
		CreatedAt: inserted.CreatedAt.Time,
	})
	if err != nil {
		logger.Error().Err(err).Msgf("failed publishing notification with error=%s", err.Error())
	}
}
