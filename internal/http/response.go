package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

const (
	HeaderContentType = "Content-Type"
	HeaderValueJson   = "application/json"
)

// WriteJsonResponse writes body as JSON. Failures crossing this boundary are
// human-readable strings only; no structured error codes leave the process.
func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	logger := zerolog.Ctx(c).With().Str("tag", "WriteJsonResponse").Logger()

	w.Header().Add(HeaderContentType, HeaderValueJson)
	for k, v := range header {
		w.Header().Add(k, v)
	}

	if v, ok := body["statusCode"]; ok {
		w.WriteHeader(v.(int))
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().
			Err(err).
			Msgf("failed encoding response body with error=%s", err.Error())
	}
}
