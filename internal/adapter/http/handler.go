package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/brumerie/marketplace-service/internal/adapter/http/middleware"
	"github.com/brumerie/marketplace-service/internal/adapter/repository/cache"
	"github.com/brumerie/marketplace-service/internal/marketplace/domain"
	"github.com/brumerie/marketplace-service/internal/marketplace/usecase"
	"github.com/brumerie/marketplace-service/internal/platform/logger"
	"github.com/brumerie/marketplace-service/internal/whatsapp"
)

var tracer = otel.Tracer("marketplace-service/http-handler")

type Handler struct {
	listings   *usecase.ListingUsecase
	quota      *usecase.QuotaUsecase
	engagement *usecase.EngagementUsecase
	users      *usecase.UserUsecase
	cache      *cache.ListingCache
	logger     logger.Logger
}

func NewHandler(
	listings *usecase.ListingUsecase,
	quota *usecase.QuotaUsecase,
	engagement *usecase.EngagementUsecase,
	users *usecase.UserUsecase,
	listingCache *cache.ListingCache,
	log logger.Logger,
) *Handler {
	return &Handler{
		listings:   listings,
		quota:      quota,
		engagement: engagement,
		users:      users,
		cache:      listingCache,
		logger:     log,
	}
}

type listingResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Price             int64     `json:"price"`
	Category          string    `json:"category"`
	Neighborhood      string    `json:"neighborhood"`
	Images            []string  `json:"images"`
	SellerID          string    `json:"seller_id"`
	SellerName        string    `json:"seller_name"`
	SellerPhone       string    `json:"seller_phone"`
	SellerPhoto       string    `json:"seller_photo,omitempty"`
	SellerVerified    bool      `json:"seller_verified"`
	ContactClickCount int64     `json:"contact_click_count"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

func toListingResponse(l *domain.Listing) listingResponse {
	return listingResponse{
		ID:                l.ID,
		Title:             l.Title,
		Description:       l.Description,
		Price:             l.Price,
		Category:          l.Category,
		Neighborhood:      l.Neighborhood,
		Images:            l.Images,
		SellerID:          l.Seller.SellerID,
		SellerName:        l.Seller.SellerName,
		SellerPhone:       l.Seller.SellerPhone,
		SellerPhoto:       l.Seller.SellerPhoto,
		SellerVerified:    l.Seller.SellerVerified,
		ContactClickCount: l.ContactClickCount,
		Status:            string(l.Status),
		CreatedAt:         l.CreatedAt,
	}
}

type userResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Neighborhood string    `json:"neighborhood,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	IsVerified   bool      `json:"is_verified"`
	SalesCount   int       `json:"sales_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var quotaErr *domain.QuotaExceededError
	switch {
	case errors.Is(err, domain.ErrListingNotFound), errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidListingData), errors.Is(err, domain.ErrInvalidUserData):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &quotaErr):
		c.JSON(http.StatusForbidden, gin.H{
			"error": quotaErr.Error(),
			"count": quotaErr.Count,
			"limit": quotaErr.Limit,
		})
	default:
		h.logger.Error("handler: internal error", "path", c.FullPath(), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func readUploads(files []*multipart.FileHeader) ([]domain.ImageUpload, error) {
	uploads := make([]domain.ImageUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, domain.ImageUpload{FileName: fh.Filename, Data: data})
	}
	return uploads, nil
}

// ---- Listings ----

func (h *Handler) CreateListing(c *gin.Context) {
	sellerID := middleware.UserID(c)

	ctx, span := tracer.Start(c.Request.Context(), "Handler.CreateListing", oteltrace.WithAttributes(
		attribute.String("seller_id", sellerID),
	))
	defer span.End()

	price, err := strconv.ParseInt(c.PostForm("price"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be an integer amount"})
		return
	}
	draft := domain.ListingDraft{
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		Price:        price,
		Category:     c.PostForm("category"),
		Neighborhood: c.PostForm("neighborhood"),
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form expected"})
		return
	}
	uploads, err := readUploads(form.File["images"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded images"})
		return
	}

	listing, err := h.listings.Publish(ctx, sellerID, draft, uploads)
	if err != nil {
		span.RecordError(err)
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toListingResponse(listing))
}

func (h *Handler) ListListings(c *gin.Context) {
	// Status is not caller-controllable: public browsing only ever sees
	// active listings.
	filter := domain.Filter{
		Category:     c.Query("category"),
		Neighborhood: c.Query("neighborhood"),
		SellerID:     c.Query("seller_id"),
		Query:        c.Query("q"),
	}

	listings, err := h.listings.Search(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	c.JSON(http.StatusOK, gin.H{"listings": out})
}

func (h *Handler) GetListing(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if h.cache != nil {
		cached, err := h.cache.GetListing(ctx, id)
		if err != nil {
			h.logger.Warn("GetListing: cache read failed", "listing_id", id, "error", err.Error())
		} else if cached != nil {
			c.JSON(http.StatusOK, toListingResponse(cached))
			return
		}
	}

	listing, err := h.listings.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.SetListing(ctx, listing); err != nil {
			h.logger.Warn("GetListing: cache write failed", "listing_id", id, "error", err.Error())
		}
	}
	c.JSON(http.StatusOK, toListingResponse(listing))
}

// requireOwnership loads the listing and rejects callers who do not own it.
// Admins bypass the check.
func (h *Handler) requireOwnership(c *gin.Context, id string) bool {
	listing, err := h.listings.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return false
	}
	if listing.Seller.SellerID != middleware.UserID(c) && c.GetString(middleware.RoleKey) != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the owner of this listing"})
		return false
	}
	return true
}

func (h *Handler) MarkListingSold(c *gin.Context) {
	id := c.Param("id")

	ctx, span := tracer.Start(c.Request.Context(), "Handler.MarkListingSold", oteltrace.WithAttributes(
		attribute.String("listing_id", id),
	))
	defer span.End()

	if !h.requireOwnership(c, id) {
		return
	}
	if err := h.listings.MarkSold(ctx, id); err != nil {
		span.RecordError(err)
		h.respondError(c, err)
		return
	}
	h.invalidateCache(c, id)
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteListing(c *gin.Context) {
	id := c.Param("id")

	ctx, span := tracer.Start(c.Request.Context(), "Handler.DeleteListing", oteltrace.WithAttributes(
		attribute.String("listing_id", id),
	))
	defer span.End()

	if !h.requireOwnership(c, id) {
		return
	}
	if err := h.listings.SoftDelete(ctx, id); err != nil {
		span.RecordError(err)
		h.respondError(c, err)
		return
	}
	h.invalidateCache(c, id)
	c.Status(http.StatusNoContent)
}

func (h *Handler) invalidateCache(c *gin.Context, id string) {
	if h.cache == nil {
		return
	}
	if err := h.cache.DeleteListing(c.Request.Context(), id); err != nil {
		h.logger.Warn("handler: cache invalidation failed", "listing_id", id, "error", err.Error())
	}
}

// ContactClick records one confirmed outbound-contact action. It always
// answers 204: the user is already on their way to WhatsApp.
func (h *Handler) ContactClick(c *gin.Context) {
	h.engagement.RecordContactClick(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) WhatsAppLink(c *gin.Context) {
	listing, err := h.listings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url": whatsapp.Link(listing.Seller.SellerPhone, listing.Title, listing.Price),
	})
}

// ---- Users ----

func (h *Handler) GetQuota(c *gin.Context) {
	decision, err := h.quota.CheckPublicationQuota(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := gin.H{
		"eligible": decision.Eligible,
		"count":    decision.Count,
		"limit":    decision.Limit,
	}
	if decision.Reason != "" {
		resp["reason"] = decision.Reason
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse{
		ID:           user.ID,
		Name:         user.Name,
		Neighborhood: user.Neighborhood,
		PhotoURL:     user.PhotoURL,
		IsVerified:   user.IsVerified,
		SalesCount:   user.SalesCount,
		CreatedAt:    user.CreatedAt,
	})
}

type updateProfileRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Neighborhood *string `json:"neighborhood"`
}

func (h *Handler) UpdateMyProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	update := domain.ProfileUpdate{Name: req.Name, Phone: req.Phone, Neighborhood: req.Neighborhood}
	if err := h.users.UpdateProfile(c.Request.Context(), middleware.UserID(c), update); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) UploadMyPhoto(c *gin.Context) {
	fh, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file expected"})
		return
	}
	uploads, err := readUploads([]*multipart.FileHeader{fh})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded photo"})
		return
	}

	url, err := h.users.UploadProfilePhoto(c.Request.Context(), middleware.UserID(c), uploads[0])
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}

// ---- Admin ----

type setVerifiedRequest struct {
	Verified bool `json:"verified"`
}

func (h *Handler) SetVerifiedBadge(c *gin.Context) {
	var req setVerifiedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.users.SetVerifiedBadge(c.Request.Context(), c.Param("id"), req.Verified); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) IncrementSalesCount(c *gin.Context) {
	if err := h.users.IncrementSalesCount(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
