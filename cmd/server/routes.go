package main

import (
	"net/http"

	"company-site.backend/internal/domain/entities"
	"company-site.backend/internal/interfaces/http/handlers"
	"company-site.backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	serviceName    = "company-site-backend"
	serviceVersion = "1.0.0"
)

// resourceHandler is implemented by handlers.ResourceHandler for every kind.
type resourceHandler interface {
	List(c *gin.Context)
	ListPublic(c *gin.Context)
	Get(c *gin.Context)
	GetPublic(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	UpdateStatus(c *gin.Context)
	Delete(c *gin.Context)
	BulkDelete(c *gin.Context)
	BulkStatus(c *gin.Context)
}

type resourceRoute struct {
	kind    entities.Kind
	handler resourceHandler
	// creatable kinds accept POST from the dashboard; the rest arrive from
	// visitors or through uploads.
	creatable bool
	public    bool
}

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	adminHandler      *handlers.AdminHandler
	contentHandler    *handlers.ContentHandler
	revalidateHandler *handlers.RevalidateHandler
	resources         []resourceRoute
	authMiddleware    gin.HandlerFunc
	idempotency       gin.HandlerFunc
}

func applyMiddleware(r *gin.Engine, corsOrigins []string, metrics *middleware.Metrics) {
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware("/health", "/metrics"))
	r.Use(metrics.Middleware())
	r.Use(middleware.CORSMiddleware(corsOrigins))
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine, gatherer prometheus.Gatherer) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// registerUploadsRoute serves files written by the local storage driver.
func registerUploadsRoute(r *gin.Engine, prefix, dir string) {
	if prefix == "" || dir == "" {
		return
	}
	r.Static(prefix, dir)
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/logout", d.authMiddleware, d.authHandler.Logout)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
		}

		api.POST("/revalidate", d.revalidateHandler.Revalidate)

		content := api.Group("/content")
		{
			for _, res := range d.resources {
				if !res.public {
					continue
				}
				group := content.Group("/" + string(res.kind))
				group.GET("", res.handler.ListPublic)
				group.GET("/:slug", res.handler.GetPublic)
			}
			content.POST("/jobs/:slug/applications", d.idempotency, d.contentHandler.Apply)
			content.POST("/uploads", d.idempotency, d.contentHandler.UploadDocument)
			content.POST("/messages", d.idempotency, d.contentHandler.SendMessage)
			content.GET("/search", d.contentHandler.Search)
		}

		admin := api.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireStaff())
		{
			admin.POST("/media/upload", d.adminHandler.UploadMedia)
			admin.GET("/analytics", d.adminHandler.GetAnalytics)
			admin.GET("/statuses", d.adminHandler.GetStatuses)

			for _, res := range d.resources {
				registerResource(admin, res)
			}
		}
	}
}

func registerResource(admin *gin.RouterGroup, res resourceRoute) {
	group := admin.Group("/" + string(res.kind))
	group.GET("", res.handler.List)
	group.GET("/:id", res.handler.Get)
	if res.creatable {
		group.POST("", res.handler.Create)
	}
	group.PUT("/:id", res.handler.Update)
	group.PATCH("/:id/status", res.handler.UpdateStatus)
	group.POST("/bulk-status", res.handler.BulkStatus)
	group.DELETE("/:id", middleware.RequireAdmin(), res.handler.Delete)
	group.POST("/bulk-delete", middleware.RequireAdmin(), res.handler.BulkDelete)
}
