package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"antiquefinder/internal/dto"
	"antiquefinder/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	rg.GET("/", h.List)
	rg.GET("/:category_id/shops", h.ListShops)
	rg.POST("/", adminOnly, h.Create)
}

func (h *CategoryHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.CategoryResponse, 0, len(list))
	for _, cat := range list {
		resp = append(resp, dto.CategoryFromModel(cat))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *CategoryHandler) ListShops(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("category_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	shops, err := h.svc.GetShops(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.ShopResponse, 0, len(shops))
	for _, s := range shops {
		resp = append(resp, dto.FromModelToShopResponse(s))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var in dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	category, err := h.svc.Create(ctx, in.Name, in.Description)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.CategoryFromModel(*category))
}
