package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"foodbridge/internal/domain/user"
	"foodbridge/internal/handler/api"
	"foodbridge/internal/handler/middleware"
	"foodbridge/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, listingHandler *api.ListingHandler, claimHandler *api.ClaimHandler, adminHandler *api.AdminHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, listingHandler, claimHandler, adminHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, listingHandler *api.ListingHandler, claimHandler *api.ClaimHandler, adminHandler *api.AdminHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		listings := apiGroup.Group("/listings")
		listings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(listings, []route{
				{Method: http.MethodGet, Path: "", Handler: listingHandler.ListOpenListings},
				{Method: http.MethodGet, Path: "/mine", Handler: listingHandler.ListMyListings, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleProvider)}},
				{Method: http.MethodGet, Path: "/stats", Handler: listingHandler.GetProviderStats, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleProvider)}},
				{Method: http.MethodGet, Path: "/:id", Handler: listingHandler.GetListing},
				{Method: http.MethodPost, Path: "", Handler: listingHandler.CreateListing, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleProvider)}},
				{Method: http.MethodDelete, Path: "/:id", Handler: listingHandler.CancelListing, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleProvider)}},
			})
		}

		claims := apiGroup.Group("/claims")
		claims.Use(authMiddleware.RequireAuth())
		{
			addRoutes(claims, []route{
				{Method: http.MethodGet, Path: "", Handler: claimHandler.ListMyClaims},
				{Method: http.MethodGet, Path: "/:id", Handler: claimHandler.GetClaim},
				{Method: http.MethodPost, Path: "", Handler: claimHandler.CreateClaim, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleReceiver)}},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: claimHandler.ApproveClaim, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleProvider)}},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: claimHandler.RejectClaim, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleProvider)}},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: claimHandler.ConfirmPickup, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleProvider)}},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: claimHandler.CompleteDelivery},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: claimHandler.CancelClaim},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/sweep", Handler: adminHandler.RunSweep},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
