package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the site and admin front-ends to call the API.
// A "*" origin, or none at all, opens the API to everyone and disables
// credentials.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "If-Match", IdempotencyHeader, SessionHeader, RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "ETag", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	cfg.AllowOrigins = origins
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cors.New(cfg)
}
