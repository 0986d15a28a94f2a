package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/raditia/gerai/internal/clock"
	"github.com/raditia/gerai/internal/config"
	inErrors "github.com/raditia/gerai/internal/errors"
	inHttp "github.com/raditia/gerai/internal/http"
	"github.com/raditia/gerai/internal/log"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ShopSchedule gates storefront traffic to the configured open weekdays. The
// clock is injected so the gate is deterministic under test. An empty
// schedule means always open.
func ShopSchedule(cfg config.Schedule, clk clock.Clock) mux.MiddlewareFunc {
	open := map[time.Weekday]bool{}
	for _, day := range cfg.OpenDays {
		if wd, ok := weekdays[strings.ToLower(strings.TrimSpace(day))]; ok {
			open[wd] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := r.Context()
			if len(open) > 0 && !open[clk.Now().Weekday()] {
				logger := zerolog.Ctx(c).
					With().
					Str(log.KeyTag, "middleware ShopSchedule").
					Logger()
				logger.Info().
					Msgf("rejecting request, shop closed on %s", clk.Now().Weekday())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusForbidden,
					"message":    inErrors.ErrShopClosed.Error(),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
