package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig holds the configuration for the CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists the origins allowed to call the API. ["*"] allows
	// any; an empty list allows none.
	AllowOrigins []string
	// AllowMethods lists the methods a preflight may approve.
	AllowMethods []string
	// AllowHeaders lists the request headers a preflight may approve.
	AllowHeaders []string
	// ExposeHeaders lists the response headers browser code may read.
	ExposeHeaders []string
	// AllowCredentials lets requests carry cookies.
	AllowCredentials bool
	// MaxAge is how long a preflight result may be cached. Zero omits the header.
	MaxAge time.Duration
}

// DefaultCORSConfig returns a permissive configuration covering the methods
// the resource routes answer to.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        24 * time.Hour,
	}
}

// CORS returns a gin middleware using DefaultCORSConfig.
func CORS() gin.HandlerFunc {
	return CORSWithConfig(DefaultCORSConfig())
}

// CORSWithConfig answers cross-origin requests according to cfg using
// gin-contrib/cors. Allowed origins are always echoed back, so a wildcard
// works together with credentials. Requests without an Origin header pass
// through untouched; cross-origin requests from other origins are refused
// with 403.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	origins := slices.Clone(cfg.AllowOrigins)
	wildcard := slices.Contains(origins, "*")

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return wildcard || slices.Contains(origins, origin)
		},
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
