package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "pixelup-backend/internal/auth"
	"pixelup-backend/internal/images"
	"pixelup-backend/internal/shared/config"
	"pixelup-backend/internal/shared/metrics"
	"pixelup-backend/internal/shared/server/middleware"
	"pixelup-backend/internal/shared/server/respond"
	"pixelup-backend/internal/shared/storage/object"
)

// RouterDeps carries the wired handlers the router needs.
type RouterDeps struct {
	Config        config.Config
	ImagesHandler *images.Handler
	GoogleAuth    *googleauth.GoogleService
	Store         object.ObjectStore
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Object downloads and metrics stay outside the auth chain; everything under
// /api/v1 except the health check and the OAuth flow requires a Bearer token.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())
	registerObjectRoutes(r, deps.Store)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	api.Use(middleware.Auth())
	deps.GoogleAuth.RegisterRoutes(api)
	registerMeRoutes(api)

	enhanceLimiter := middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"ENHANCE": {Rate: 0.5, Burst: 3},
		},
		DefaultGroup: "ENHANCE",
	})
	deps.ImagesHandler.RegisterRoutes(api, enhanceLimiter)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
