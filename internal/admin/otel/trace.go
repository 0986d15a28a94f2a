package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/raditia/gerai/internal/constants"
)

var Tracer = otel.Tracer(constants.AppAdmin)
