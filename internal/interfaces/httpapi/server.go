package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tennis-players/internal/platform/logging"
)

// NewRouter wires the routes behind tracing, request logging, CORS and panic
// recovery, outermost first.
func NewRouter(handler *Handler, logger *logging.Logger, corsAllowedOrigins []string) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPlayerRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}
