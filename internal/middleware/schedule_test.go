package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/raditia/gerai/internal/clock"
	"github.com/raditia/gerai/internal/config"
)

func TestShopSchedule(t *testing.T) {
	// 2026-08-31 is a monday
	monday := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
	sunday := monday.AddDate(0, 0, -1)

	tests := []struct {
		name           string
		openDays       []string
		now            time.Time
		expectedStatus int
	}{
		{
			name:           "open weekday passes through",
			openDays:       []string{"monday", "tuesday"},
			now:            monday,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "closed weekday is rejected",
			openDays:       []string{"monday", "tuesday"},
			now:            sunday,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "empty schedule means always open",
			openDays:       nil,
			now:            sunday,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "day names are case insensitive",
			openDays:       []string{"Sunday"},
			now:            sunday,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := ShopSchedule(
				config.Schedule{OpenDays: tt.openDays},
				clock.Fixed{T: tt.now},
			)
			handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/products", nil))

			assert.Equal(t, tt.expectedStatus, recorder.Code)
		})
	}
}
