package errors

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrEmptyAuth          = errors.New("missing authorization")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrNotAdmin           = errors.New("access denied")
	ErrShopClosed         = errors.New("the shop is closed today")
	ErrCheckoutInFlight   = errors.New("a checkout is already in progress")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidTransition  = errors.New("invalid shop status transition")
	ErrPasswordMismatch   = errors.New("password mismatch")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnparsablePrice    = errors.New("price is not parsable")
	ErrNotificationTarget = errors.New("notification is not addressed to this user")
)

// HandleError records err onto the span; nil is ignored.
func HandleError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.AddEvent(err.Error())
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}
