package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"targeting-backend/internal/chat"
	"targeting-backend/internal/shared/config"
	"targeting-backend/internal/shared/metrics"
	"targeting-backend/internal/shared/server/middleware"
	"targeting-backend/internal/shared/server/respond"
	"targeting-backend/internal/webscan"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config      config.Config
	ChatHandler *chat.Handler
	ScanHandler *webscan.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "API",
			GroupFor: func(c *gin.Context) string {
				// Static assets and health checks stay unthrottled.
				if c.Request.Method == http.MethodGet {
					return "STATIC"
				}
				return "API"
			},
			Rules: map[string]middleware.RateLimitRule{
				"API": {
					Window: deps.Config.RateLimitWindow,
					Max:    deps.Config.RateLimitMax,
				},
			},
		}),
	)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())
	if deps.ChatHandler != nil {
		deps.ChatHandler.RegisterRoutes(api)
	}
	if deps.ScanHandler != nil {
		deps.ScanHandler.RegisterRoutes(api)
	}

	registerStatic(r, deps.Config.PublicDir)

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
