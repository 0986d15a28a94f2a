package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/raditia/gerai/internal/cart/service"
	"github.com/raditia/gerai/cart/pkg/store"
)

func TestCartControllerStatusCodes(t *testing.T) {
	svc := service.NewCartService(nil, store.NewManager(nil), prometheus.NewRegistry())
	router := mux.NewRouter()
	AttachCartController(router, &svc)

	tests := []struct {
		name           string
		method         string
		target         string
		sessionId      string
		expectedStatus int
	}{
		{
			name:           "remove item",
			method:         http.MethodDelete,
			target:         "/carts/items/" + uuid.NewString(),
			sessionId:      "session-a",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "clear cart",
			method:         http.MethodDelete,
			target:         "/carts",
			sessionId:      "session-a",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "remove item without session header",
			method:         http.MethodDelete,
			target:         "/carts/items/" + uuid.NewString(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "clear cart without session header",
			method:         http.MethodDelete,
			target:         "/carts",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "remove item with malformed product id",
			method:         http.MethodDelete,
			target:         "/carts/items/not-a-uuid",
			sessionId:      "session-a",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.sessionId != "" {
				request.Header.Set(headerSessionId, tt.sessionId)
			}
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
		})
	}
}
