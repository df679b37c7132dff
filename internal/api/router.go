// Package api wires the TravLog HTTP surface: auth, journal entries, owner
// stats, geocoding proxy, and static photo serving.
package api

import (
	"travlog/internal/middleware"
	"travlog/internal/store"
	"travlog/internal/uploads"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Deps collects everything the routes close over. Rdb may be nil; caching is
// then skipped entirely.
type Deps struct {
	Users      *store.UserStore
	Entries    *store.EntryStore
	Storage    *uploads.Storage
	Rdb        *redis.Client
	JWTSecret  string
	GeocodeURL string
}

// NewRouter builds the gin engine with all routes registered. The browser
// frontend runs on another origin, so CORS stays wide open like the original
// service.
func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// Stored photos are public static files
	r.Static(uploads.URLPrefix, d.Storage.Dir)

	// Auth routes
	r.POST("/register", RegisterHandler(d.Users))
	r.POST("/login", LoginHandler(d.Users, d.JWTSecret))

	// Geocoding proxy used by the map input while composing an entry
	geocodeURL := d.GeocodeURL
	if geocodeURL == "" {
		geocodeURL = DefaultGeocodeURL
	}
	r.GET("/geocode", GeocodeHandler(geocodeURL))

	// Entry routes (protected by JWT)
	auth := r.Group("", middleware.JWTAuthMiddleware(d.JWTSecret))
	auth.POST("/save-travel-entry", CreateEntryHandler(d.Entries, d.Storage, d.Rdb))
	auth.DELETE("/entries/:id", DeleteEntryHandler(d.Entries, d.Rdb))

	owner := auth.Group("/entries/:ownerEmail", middleware.OwnerOnlyMiddleware())
	owner.GET("", ListEntriesHandler(d.Entries, d.Rdb))
	owner.GET("/stats", OwnerStatsHandler(d.Entries, d.Rdb))

	return r
}
