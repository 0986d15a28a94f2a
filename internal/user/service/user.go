package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/raditia/gerai/internal/clock"
	"github.com/raditia/gerai/internal/config"
	"github.com/raditia/gerai/internal/constants"
	commonErrors "github.com/raditia/gerai/internal/errors"
	"github.com/raditia/gerai/internal/log"
	"github.com/raditia/gerai/internal/repository"
	"github.com/raditia/gerai/internal/token"
	"github.com/raditia/gerai/internal/user/otel"
	"github.com/raditia/gerai/user/pkg/request"
	"github.com/raditia/gerai/user/pkg/response"
)

type UserService struct {
	queries *repository.Queries
	cache   *redis.Client
	config  config.Application
	clock   clock.Clock
}

func NewUserService(
	queries *repository.Queries,
	cache *redis.Client,
	config config.Application,
	clk clock.Clock,
) *UserService {
	return &UserService{queries: queries, cache: cache, config: config, clock: clk}
}

func profileResponse(p repository.Profile) response.Profile {
	return response.Profile{
		ID:        p.ID,
		Username:  p.Username,
		Email:     p.Email,
		Role:      p.Role,
		CreatedAt: p.CreatedAt.Time,
		UpdatedAt: p.UpdatedAt.Time,
	}
}

func (svc *UserService) Register(
	c context.Context,
	param request.Register,
) (response.Profile, error) {
	c, span := otel.Tracer.Start(c, "UserService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
	logger.Info().Msg("hashing password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Profile{}, err
	}
	logger.Info().Msg("hashed password")

	logger = logger.With().Str(log.KeyProcess, "inserting profile").Logger()
	logger.Info().Msg("inserting profile")
	profile, err := svc.queries.InsertProfile(c, repository.InsertProfileParams{
		Username: param.Username,
		Email:    param.Email,
		Password: string(hashed),
		Role:     constants.RoleCustomer,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting profile with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Profile{}, err
	}
	logger.Info().Msg("inserted profile")

	return profileResponse(profile), nil
}

func (svc *UserService) Login(
	c context.Context,
	param request.Login,
) (response.Login, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding profile").Logger()
	logger.Info().Msg("finding profile by email")
	profile, err := svc.queries.FindProfileByEmail(c, param.Email)
	if err != nil {
		err = errors.Join(err, commonErrors.ErrUserNotFound)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Info().Msg("found profile by email")

	logger = logger.With().Str(log.KeyProcess, "verifying password").Logger()
	logger.Info().Msg("verifying password")
	err = bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(param.Password))
	if err != nil {
		err = commonErrors.ErrPasswordMismatch
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Info().Msg("verified password")

	logger = logger.With().Str(log.KeyProcess, "signing token").Logger()
	logger.Info().Msg("signing token")
	signed, err := token.Sign(profile.ID, profile.Role, svc.config.SecretKey, svc.clock.Now())
	if err != nil {
		err = fmt.Errorf("failed signing token with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Info().Msg("signed token")

	return response.Login{Token: signed, Profile: profileResponse(profile)}, nil
}

// Logout denylists the presented token until it would have expired anyway, so
// dropping it client-side cannot be undone by replaying it.
func (svc *UserService) Logout(c context.Context, raw string) error {
	c, span := otel.Tracer.Start(c, "UserService Logout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Logout").
		Str(log.KeyProcess, "revoking token").
		Logger()

	logger.Info().Msg("revoking token")
	err := svc.cache.Set(c, fmt.Sprintf(constants.KeyRevokedToken, raw), "1", 30*time.Minute).
		Err()
	if err != nil {
		err = fmt.Errorf("failed revoking token with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("revoked token")

	return nil
}

func (svc *UserService) FindProfileById(
	c context.Context,
	userId uuid.UUID,
) (response.Profile, error) {
	c, span := otel.Tracer.Start(c, "UserService FindProfileById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindProfileById").
		Str(log.KeyUserID, userId.String()).
		Logger()

	profile, err := svc.queries.FindProfileById(c, userId)
	if err != nil {
		err = errors.Join(err, commonErrors.ErrUserNotFound)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Profile{}, err
	}
	return profileResponse(profile), nil
}

func (svc *UserService) UpdateProfile(
	c context.Context,
	userId uuid.UUID,
	param request.UpdateProfile,
) (response.Profile, error) {
	c, span := otel.Tracer.Start(c, "UserService UpdateProfile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService UpdateProfile").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "updating profile").Logger()
	logger.Info().Msg("updating profile")
	profile, err := svc.queries.UpdateProfile(c, repository.UpdateProfileParams{
		ID:       userId,
		Username: param.Username,
		Email:    param.Email,
	})
	if err != nil {
		err = fmt.Errorf("failed updating profile with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Profile{}, err
	}
	logger.Info().Msg("updated profile")

	return profileResponse(profile), nil
}
