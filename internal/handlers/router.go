package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sibuku/sibuku-gateway/internal/config"
	"github.com/sibuku/sibuku-gateway/internal/metrics"
	"github.com/sibuku/sibuku-gateway/internal/session"
	"github.com/sibuku/sibuku-gateway/internal/upstream"
)

// NewRouter assembles the gateway: middleware stack, health and metrics
// endpoints, and the full /api surface the storefront talks to.
func NewRouter(cfg config.Config) *gin.Engine {
	api := &API{
		Upstream: upstream.New(cfg.APIBaseURL, cfg.ServiceName),
		Sessions: session.NewManager(cfg.Production()),
	}
	return newRouter(cfg, api)
}

func newRouter(cfg config.Config, api *API) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(metrics.PrometheusMiddleware(cfg.ServiceName))
	router.Use(PageGuard())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/circuit-status", api.circuitStatus)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	group := router.Group("/api")
	{
		group.POST("/auth/login", api.Login)
		group.POST("/auth/register", api.Register)
		group.POST("/auth/logout", api.Logout)

		api.registerCatalog(group)
		api.registerCart(group)
		api.registerOrders(group)
		api.registerProfile(group)
		api.registerAdmin(group.Group("/admin"))
	}

	return router
}

// circuitStatus returns the status of the backend circuit breaker and the
// upload bulkhead, for quick inspection alongside the Prometheus gauges.
func (a *API) circuitStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"backend_circuit": gin.H{
			"name":  "Backend",
			"state": a.Upstream.BreakerState(),
			"value": a.Upstream.BreakerStateValue(),
		},
		"upload_bulkhead": gin.H{
			"name": a.Upstream.UploadGuardName(),
		},
	})
}
