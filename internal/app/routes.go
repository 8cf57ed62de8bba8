package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foxfriends/woof/internal/pkg"
)

// RouteDeps holds all dependencies needed to register routes.
type RouteDeps struct {
	Modules []Module
	DB      *gorm.DB
	// Prefix is the group every module is mounted under. Empty mounts at the root.
	Prefix string
}

// RegisterRoutes registers all application routes on the given gin.Engine.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if deps == nil {
		return errors.New("route dependencies are nil")
	}
	if len(deps.Modules) == 0 {
		return errors.New("at least one module is required")
	}

	r.GET("/health", healthHandler(deps.DB))

	api := r.Group(deps.Prefix)
	for i, m := range deps.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
		m.RegisterRoutes(api)
	}

	r.NoRoute(noRouteHandler())
	r.NoMethod(noMethodHandler())

	return nil
}

// healthPingTimeout bounds the database ping when the request itself has a
// longer deadline.
const healthPingTimeout = time.Second

type healthReport struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// healthHandler reports "ok" with 200 while the database answers a ping, and
// "degraded" with 503 otherwise.
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := healthReport{Status: "ok", Components: map[string]string{"database": "ok"}}
		code := http.StatusOK

		if err := pingDatabase(c.Request.Context(), db); err != nil {
			report.Status = "degraded"
			report.Components["database"] = "error"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, report)
	}
}

func pingDatabase(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database not configured")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func noRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, pkg.Response{Code: http.StatusNotFound, Message: "not found"})
	}
}

// noMethodHandler only fires when the engine has HandleMethodNotAllowed set.
func noMethodHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, pkg.Response{Code: http.StatusMethodNotAllowed, Message: "method not allowed"})
	}
}
