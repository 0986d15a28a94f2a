package token

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/raditia/gerai/internal/constants"
	inErrors "github.com/raditia/gerai/internal/errors"
	"github.com/raditia/gerai/internal/log"
)

// Claims carries the registered set plus the profile role used by the admin
// gate.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func Sign(userId uuid.UUID, role string, secret string, now time.Time) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{constants.AudienceCustomer},
			Issuer:    constants.AppStorefront,
			Subject:   userId.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

func Verify(c context.Context, raw string, secret string) (*jwt.Token, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "token Verify").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing claims").Logger()
	jwtToken, err := jwt.ParseWithClaims(raw,
		&Claims{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithAudience(constants.AudienceCustomer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(constants.AppStorefront),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing claims with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if !jwtToken.Valid {
		logger.Error().
			Err(inErrors.ErrTokenInvalid).
			Msg(inErrors.ErrTokenInvalid.Error())
		return nil, inErrors.ErrTokenInvalid
	}
	return jwtToken, nil
}

type jwtToken struct{}

func AttachToContext(c context.Context, t *jwt.Token) context.Context {
	return context.WithValue(c, jwtToken{}, t)
}

func FromContext(c context.Context) (*jwt.Token, bool) {
	t, ok := c.Value(jwtToken{}).(*jwt.Token)
	return t, ok
}

func UserIdFromContext(c context.Context) (uuid.UUID, error) {
	t, ok := FromContext(c)
	if !ok {
		return uuid.Nil, inErrors.ErrEmptyAuth
	}
	subject, err := t.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed getting subject from jwt with error=%w", err)
	}
	userId, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed parsing subject=%s with error=%w", subject, err)
	}
	return userId, nil
}

func RoleFromContext(c context.Context) string {
	t, ok := FromContext(c)
	if !ok {
		return ""
	}
	claims, ok := t.Claims.(*Claims)
	if !ok {
		return ""
	}
	return claims.Role
}
