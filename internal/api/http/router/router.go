package router

import (
	"net/http"

	"github.com/userbase/userbase-server/internal/api/http/handler"
	"github.com/userbase/userbase-server/internal/api/http/middleware"
	"github.com/userbase/userbase-server/internal/logger"
)

// Router assembles handlers and middleware into the HTTP routing table.
type Router struct {
	userService handler.UserService
	bulkService handler.BulkService
	generator   handler.UserGenerator
	apiKey      string
	logger      *logger.Logger
}

// New creates a Router for the given services.
func New(
	userService handler.UserService,
	bulkService handler.BulkService,
	generator handler.UserGenerator,
	apiKey string,
	logger *logger.Logger,
) *Router {
	return &Router{
		userService: userService,
		bulkService: bulkService,
		generator:   generator,
		apiKey:      apiKey,
		logger:      logger,
	}
}

// Register builds the routing table and returns the root handler with the
// API key gate and request logging applied.
func (r *Router) Register() http.Handler {
	userHandler := handler.NewUser(r.userService, r.logger)
	seedHandler := handler.NewSeed(r.bulkService, r.generator, r.logger)
	debugHandler := handler.NewDebug(r.bulkService, r.generator, r.logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/users", userHandler.ListV1)
	mux.HandleFunc("GET /api/v2/users", userHandler.ListV2)
	mux.HandleFunc("POST /api/v1/users/search", userHandler.Search)
	mux.HandleFunc("GET /api/v1/users/count", userHandler.Count)
	mux.HandleFunc("DELETE /api/v1/users/truncate", userHandler.Truncate)
	mux.HandleFunc("GET /api/v1/users/{id}", userHandler.Get)
	mux.HandleFunc("POST /api/v1/users", userHandler.Create)
	mux.HandleFunc("PUT /api/v1/users/{id}", userHandler.Update)
	mux.HandleFunc("DELETE /api/v1/users/{id}", userHandler.Delete)

	mux.HandleFunc("POST /api/v1/seed/users", seedHandler.BulkInsertUsers)

	mux.HandleFunc("GET /api/v1/debug/ping", debugHandler.Ping)
	mux.HandleFunc("GET /api/v1/debug/fake", debugHandler.Fake)
	mux.HandleFunc("POST /api/v1/debug/insert-direct", debugHandler.InsertDirect)

	gate := middleware.NewAPIKey(r.apiKey, r.logger)
	logging := middleware.NewLogging(r.logger)

	return logging.Handle(gate.Handle(mux))
}
