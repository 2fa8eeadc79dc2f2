package routes

import (
	"net/http"

	"github.com/realkdc/top-thc-brands/internal/api/handlers"
	"github.com/realkdc/top-thc-brands/internal/api/middleware"
	"github.com/realkdc/top-thc-brands/pkg/config"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	cfg *config.Config

	brandHandler       *handlers.BrandHandler
	contactHandler     *handlers.ContactHandler
	subscriberHandler  *handlers.SubscriberHandler
	leaderboardHandler *handlers.LeaderboardHandler
	authHandler        *handlers.AuthHandler
	metaHandler        *handlers.MetaHandler

	authMiddleware *middleware.AuthMiddleware
}

// NewRouter creates a new router
func NewRouter(
	cfg *config.Config,
	brandHandler *handlers.BrandHandler,
	contactHandler *handlers.ContactHandler,
	subscriberHandler *handlers.SubscriberHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	authHandler *handlers.AuthHandler,
	metaHandler *handlers.MetaHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		cfg: cfg,

		brandHandler:       brandHandler,
		contactHandler:     contactHandler,
		subscriberHandler:  subscriberHandler,
		leaderboardHandler: leaderboardHandler,
		authHandler:        authHandler,
		metaHandler:        metaHandler,

		authMiddleware: authMiddleware,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Service metadata
	r.mux.HandleFunc("GET /health", r.metaHandler.Health)
	r.mux.HandleFunc("GET /{$}", r.metaHandler.Root)

	// Brand endpoints; writes are restricted to content managers
	r.mux.HandleFunc("GET /api/brands", r.brandHandler.ListBrands)
	r.mux.HandleFunc("GET /api/brands/slug/{slug}", r.brandHandler.GetBrandBySlug)
	r.mux.HandleFunc("GET /api/brands/{id}", r.brandHandler.GetBrand)
	r.handleAdmin("POST /api/brands", r.brandHandler.CreateBrand)
	r.handleAdmin("PUT /api/brands/{id}", r.brandHandler.UpdateBrand)
	r.handleAdmin("DELETE /api/brands/{id}", r.brandHandler.DeleteBrand)

	// Contact endpoints; submission is public, management is not
	r.mux.HandleFunc("POST /api/contact", r.contactHandler.SubmitContact)
	r.handleAdmin("GET /api/contact", r.contactHandler.ListContacts)
	r.handleAdmin("GET /api/contact/{id}", r.contactHandler.GetContact)
	r.handleAdmin("PUT /api/contact/{id}", r.contactHandler.UpdateContactStatus)
	r.handleAdmin("DELETE /api/contact/{id}", r.contactHandler.DeleteContact)

	// Newsletter endpoints
	r.mux.HandleFunc("POST /api/subscribe", r.subscriberHandler.Subscribe)
	r.mux.HandleFunc("DELETE /api/subscribe", r.subscriberHandler.Unsubscribe)

	// Leaderboard endpoints
	r.mux.HandleFunc("GET /api/leaderboard", r.leaderboardHandler.GetLeaderboard)
	r.mux.HandleFunc("POST /api/leaderboard/{brandId}/rate", r.leaderboardHandler.RateBrand)

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.Handle("GET /api/auth/me", r.authMiddleware.RequireAuth(http.HandlerFunc(r.authHandler.Me)))

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(r.cfg)(handler)

	return handler
}

func (r *Router) handleAdmin(pattern string, handlerFunc http.HandlerFunc) {
	r.mux.Handle(pattern, r.authMiddleware.RequireAdmin(handlerFunc))
}
