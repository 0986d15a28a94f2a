package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/raditia/gerai/internal/constants"
	inErrors "github.com/raditia/gerai/internal/errors"
	inHttp "github.com/raditia/gerai/internal/http"
	"github.com/raditia/gerai/internal/log"
	"github.com/raditia/gerai/internal/token"
)

// Auth verifies the bearer token, rejects revoked tokens and attaches the
// parsed token to the request context.
func Auth(secret string, cache *redis.Client) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KeyTag, "middleware Auth").
				Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(authorization), "bearer ") {
				logger.Error().
					Err(inErrors.ErrEmptyAuth).
					Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrEmptyAuth.Error(),
				})
				return
			}
			raw := authorization[len("bearer "):]

			revoked, err := cache.Exists(c, fmt.Sprintf(constants.KeyRevokedToken, raw)).Result()
			if err == nil && revoked > 0 {
				logger.Error().
					Err(inErrors.ErrTokenRevoked).
					Msg(inErrors.ErrTokenRevoked.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrTokenRevoked.Error(),
				})
				return
			}

			jwtToken, err := token.Verify(c, raw, secret)
			if err != nil {
				logger.Error().
					Err(err).
					Msgf("failed verifying token with error=%s", err.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrTokenInvalid.Error(),
				})
				return
			}

			c = token.AttachToContext(c, jwtToken)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}

// AdminOnly requires the admin role. A non-admin bearing a valid token gets
// access denied and the token is revoked, so a retry with the same
// stale elevated-looking session fails at the Auth layer.
func AdminOnly(cache *redis.Client) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := r.Context()
			logger := zerolog.Ctx(c).
				With().
				Str(log.KeyTag, "middleware AdminOnly").
				Logger()

			if role := token.RoleFromContext(c); role != constants.RoleAdmin {
				logger.Error().
					Err(inErrors.ErrNotAdmin).
					Msgf("role=%s attempted admin action", role)

				authorization := r.Header.Get("Authorization")
				raw := authorization[len("bearer "):]
				err := cache.Set(c, fmt.Sprintf(constants.KeyRevokedToken, raw), "1", 30*time.Minute).
					Err()
				if err != nil {
					logger.Error().
						Err(err).
						Msgf("failed revoking token with error=%s", err.Error())
				}

				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusForbidden,
					"message":    inErrors.ErrNotAdmin.Error(),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
