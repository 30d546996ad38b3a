package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"antiquefinder/internal/dto"
	"antiquefinder/internal/metrics"
	"antiquefinder/internal/models"
	"antiquefinder/internal/service"

	"github.com/gin-gonic/gin"
)

type ShopHandler struct {
	svc     service.CatalogService
	reviews service.ReviewService
	metrics *metrics.CatalogMetrics
}

func NewShopHandler(svc service.CatalogService, reviews service.ReviewService, m *metrics.CatalogMetrics) *ShopHandler {
	return &ShopHandler{svc: svc, reviews: reviews, metrics: m}
}

// RegisterRoutes wires the catalog endpoints. Reads are public, writes
// go through the admin auth middleware.
func (h *ShopHandler) RegisterRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	rg.GET("/", h.List)
	rg.GET("/search", h.Search)
	rg.GET("/:shop_id", h.Get)
	rg.GET("/:shop_id/reviews", h.ListReviews)
	rg.POST("/:shop_id/reviews", h.SubmitReview)

	rg.POST("/", adminOnly, h.Create)
	rg.PUT("/:shop_id", adminOnly, h.Update)
	rg.DELETE("/:shop_id", adminOnly, h.Delete)
}

// List returns the full catalog sorted by rating; same contract as an
// empty search.
func (h *ShopHandler) List(c *gin.Context) {
	h.search(c, dto.SearchFilters{ShopType: models.ShopTypeAll})
}

// Search filters the catalog. Empty q matches everything, type "all"
// (or absent) skips the type filter, categories is a comma separated
// list, sort is "desc" (default) or "asc".
func (h *ShopHandler) Search(c *gin.Context) {
	filters := dto.SearchFilters{
		Query:    c.Query("q"),
		ShopType: c.DefaultQuery("type", models.ShopTypeAll),
	}
	if raw := c.Query("categories"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				filters.Categories = append(filters.Categories, name)
			}
		}
	}
	h.search(c, filters)
}

func (h *ShopHandler) search(c *gin.Context, filters dto.SearchFilters) {
	order := dto.ParseSortOrder(c.Query("sort"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.Search(ctx, filters, order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.metrics.RecordSearch(string(order))

	resp := make([]dto.ShopResponse, 0, len(list))
	for _, s := range list {
		resp = append(resp, dto.FromModelToShopResponse(s))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  resp,
		"sort":  order,
		"count": len(resp),
	})
}

func (h *ShopHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("shop_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	shop, err := h.svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	reviews, err := h.reviews.GetByShop(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	count, err := h.reviews.CountByShop(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ShopDetailResponse{
		ShopResponse: dto.FromModelToShopResponse(*shop),
		ReviewsCount: int(count),
		Reviews:      dto.FromModelToReviewResponses(reviews),
	})
}

func (h *ShopHandler) Create(c *gin.Context) {
	var in dto.CreateShopDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	shop, err := h.svc.Register(ctx, in)
	if err != nil {
		c.JSON(registrationStatus(err), gin.H{"error": err.Error()})
		return
	}
	h.metrics.ShopsRegisteredTotal.Inc()

	c.JSON(http.StatusCreated, dto.FromModelToShopResponse(*shop))
}

func (h *ShopHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("shop_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.UpdateShopDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	shop, err := h.svc.Update(ctx, id, in)
	if err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
			return
		}
		c.JSON(registrationStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToShopResponse(*shop))
}

func (h *ShopHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("shop_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ShopHandler) ListReviews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("shop_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	reviews, err := h.reviews.GetByShop(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.FromModelToReviewResponses(reviews)})
}

func (h *ShopHandler) SubmitReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("shop_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.reviews.Submit(ctx, id, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShopNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		case errors.Is(err, service.ErrAuthorRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	h.metrics.ReviewsSubmittedTotal.Inc()

	c.JSON(http.StatusCreated, resp)
}

// registrationStatus maps registration precondition failures to 400 and
// everything else to 500.
func registrationStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrAddressRequired),
		errors.Is(err, service.ErrDuplicateName),
		errors.Is(err, service.ErrCategoryRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
