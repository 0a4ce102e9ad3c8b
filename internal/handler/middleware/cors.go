package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"qr-seat-reservation/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Browser clients read these for ticket downloads and scan throttling.
var requiredExposeHeaders = []string{
	"Content-Disposition",
	"Location",
	"Retry-After",
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
}

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    exposeHeaders(cfg.ExposeHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins, "expose_headers", corsCfg.ExposeHeaders)
	return cors.New(corsCfg)
}

func exposeHeaders(configured []string) []string {
	out := slices.Clone(configured)
	for _, h := range requiredExposeHeaders {
		if !slices.ContainsFunc(out, func(c string) bool { return strings.EqualFold(c, h) }) {
			out = append(out, h)
		}
	}
	return out
}
