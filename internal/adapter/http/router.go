package http

import (
	"github.com/gin-gonic/gin"

	"github.com/brumerie/marketplace-service/internal/adapter/http/middleware"
	"github.com/brumerie/marketplace-service/internal/platform/logger"
)

// NewRouter wires the public, authenticated and admin route groups.
func NewRouter(h *Handler, jwtSecret string, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logging(log))

	api := router.Group("/api")

	// Public browsing surface.
	api.GET("/listings", h.ListListings)
	api.GET("/listings/:id", h.GetListing)
	api.GET("/listings/:id/whatsapp-link", h.WhatsAppLink)
	api.POST("/listings/:id/contact-click", h.ContactClick)
	api.GET("/users/:id", h.GetUser)

	auth := api.Group("", middleware.Auth(jwtSecret, log))
	auth.POST("/listings", h.CreateListing)
	auth.POST("/listings/:id/sold", h.MarkListingSold)
	auth.DELETE("/listings/:id", h.DeleteListing)
	// Self-service routes live under /me to keep them off the /users/:id
	// wildcard.
	auth.GET("/me/quota", h.GetQuota)
	auth.PUT("/me/profile", h.UpdateMyProfile)
	auth.POST("/me/photo", h.UploadMyPhoto)

	admin := api.Group("/admin", middleware.Auth(jwtSecret, log), middleware.AdminOnly())
	admin.POST("/users/:id/verified", h.SetVerifiedBadge)
	admin.POST("/users/:id/sales", h.IncrementSalesCount)

	return router
}
