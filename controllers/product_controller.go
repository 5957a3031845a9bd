package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"delivery-service/cache"
	"delivery-service/models"
	"delivery-service/services"
)

type ProductController struct {
	productService *services.ProductService
	productCache   *cache.ProductCache
}

// NewProductController wires the catalog handlers. productCache may be nil
// when redis is not configured.
func NewProductController(productService *services.ProductService, productCache *cache.ProductCache) *ProductController {
	return &ProductController{productService: productService, productCache: productCache}
}

// CreateProduct handles POST /api/products
func (pc *ProductController) CreateProduct(ctx *gin.Context) {
	var req services.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	product, err := pc.productService.Create(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"product": product})
}

// GetProducts handles GET /api/products
func (pc *ProductController) GetProducts(ctx *gin.Context) {
	products, err := pc.productService.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// GetActiveProducts handles GET /api/products/active
func (pc *ProductController) GetActiveProducts(ctx *gin.Context) {
	products, err := pc.productService.ListActive(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// GetAvailableProducts handles GET /api/products/available
func (pc *ProductController) GetAvailableProducts(ctx *gin.Context) {
	products, err := pc.productService.ListAvailable(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// GetPromotionalProducts handles GET /api/products/promotions
func (pc *ProductController) GetPromotionalProducts(ctx *gin.Context) {
	products, err := pc.productService.ListOnPromotion(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProductByID handles GET /api/products/:id with a read-through cache.
func (pc *ProductController) GetProductByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if product, hit := pc.productCache.GetProduct(ctx.Request.Context(), id); hit {
		ctx.JSON(http.StatusOK, gin.H{"product": product, "cached": true})
		return
	}

	product, err := pc.productService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	pc.productCache.SetProductAsync(product)
	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// GetProductsByRestaurant handles GET /api/products/restaurant/:restaurantId
// The available=true query narrows to orderable products only.
func (pc *ProductController) GetProductsByRestaurant(ctx *gin.Context) {
	restaurantID, ok := parseIDParam(ctx, "restaurantId")
	if !ok {
		return
	}
	var (
		products []models.Product
		err      error
	)
	if ctx.Query("available") == "true" {
		products, err = pc.productService.ListAvailableByRestaurant(ctx.Request.Context(), restaurantID)
	} else {
		products, err = pc.productService.ListByRestaurant(ctx.Request.Context(), restaurantID)
	}
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProductsByCategory handles GET /api/products/category/:category
func (pc *ProductController) GetProductsByCategory(ctx *gin.Context) {
	products, err := pc.productService.ListByCategory(ctx.Request.Context(), ctx.Param("category"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProductsByPrice handles GET /api/products/price?min=&max= (cents)
func (pc *ProductController) GetProductsByPrice(ctx *gin.Context) {
	maxStr := ctx.Query("max")
	if maxStr == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'max' is required"})
		return
	}
	max, err := strconv.ParseInt(maxStr, 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'max' value"})
		return
	}

	var products []models.Product
	if minStr := ctx.Query("min"); minStr != "" {
		min, parseErr := strconv.ParseInt(minStr, 10, 64)
		if parseErr != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'min' value"})
			return
		}
		products, err = pc.productService.ListByPriceRange(ctx.Request.Context(), min, max)
	} else {
		products, err = pc.productService.ListByPriceAtMost(ctx.Request.Context(), max)
	}
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProductCategories handles GET /api/products/categories
func (pc *ProductController) GetProductCategories(ctx *gin.Context) {
	categories, err := pc.productService.ListCategories(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

// UpdateProduct handles PUT /api/products/:id
func (pc *ProductController) UpdateProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req services.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	product, err := pc.productService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	pc.productCache.Invalidate(ctx.Request.Context(), id)
	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// ToggleProductActive handles PATCH /api/products/:id/toggle-active
func (pc *ProductController) ToggleProductActive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	product, err := pc.productService.ToggleActive(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	pc.productCache.Invalidate(ctx.Request.Context(), id)
	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// ToggleProductAvailability handles PATCH /api/products/:id/toggle-availability
func (pc *ProductController) ToggleProductAvailability(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	product, err := pc.productService.ToggleAvailability(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	pc.productCache.Invalidate(ctx.Request.Context(), id)
	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// ActivatePromotion handles PATCH /api/products/:id/promotion
func (pc *ProductController) ActivatePromotion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var body struct {
		PromoPrice int64 `json:"promo_price" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	product, err := pc.productService.ActivatePromotion(ctx.Request.Context(), id, body.PromoPrice)
	if err != nil {
		respondError(ctx, err)
		return
	}
	pc.productCache.Invalidate(ctx.Request.Context(), id)
	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// DeactivatePromotion handles DELETE /api/products/:id/promotion
func (pc *ProductController) DeactivatePromotion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	product, err := pc.productService.DeactivatePromotion(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	pc.productCache.Invalidate(ctx.Request.Context(), id)
	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct handles DELETE /api/products/:id
func (pc *ProductController) DeleteProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := pc.productService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	pc.productCache.Invalidate(ctx.Request.Context(), id)
	ctx.Status(http.StatusNoContent)
}
