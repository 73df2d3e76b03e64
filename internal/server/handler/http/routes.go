// Package http provides HTTP routing and middleware configuration
// for the vault daemon.
package http

import (
	"net/http"

	"github.com/keywarden/keywarden/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// vault daemon's command API. It rejects non-loopback peers, tags every
// request with an ID, enforces JSON content types, and logs request
// metadata (never bodies, which carry passwords and keys).
//
// Parameters:
//
//	keysHandler   - handler for key store/retrieve/delete/clear endpoints
//	verifyHandler - handler for password and key-format checks
//	logger        - structured logger for request logging middleware
//
// Routes:
//
//	POST   /api/keys                      → keysHandler.Store
//	POST   /api/keys/retrieve             → keysHandler.Retrieve
//	DELETE /api/keys                      → keysHandler.Clear
//	DELETE /api/keys/{username}/{keyType} → keysHandler.Delete
//	POST   /api/verify/password           → verifyHandler.Password
//	POST   /api/verify/key-format         → verifyHandler.KeyFormat
func NewRouter(
	keysHandler *KeysHandler,
	verifyHandler *VerifyHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// The daemon only ever serves the wallet on the same machine
	r.Use(middleware.RequireLoopback)
	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithRequestLogging(logger))
	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/keys", func(r chi.Router) {
			r.Post("/", keysHandler.Store)
			r.Post("/retrieve", keysHandler.Retrieve)
			r.Delete("/", keysHandler.Clear)
			r.Delete("/{username}/{keyType}", keysHandler.Delete)
		})
		r.Route("/verify", func(r chi.Router) {
			r.Post("/password", verifyHandler.Password)
			r.Post("/key-format", verifyHandler.KeyFormat)
		})
	})

	return r
}
