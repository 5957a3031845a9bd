package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"delivery-service/models"
	"delivery-service/services"
)

type RestaurantController struct {
	restaurantService *services.RestaurantService
}

func NewRestaurantController(restaurantService *services.RestaurantService) *RestaurantController {
	return &RestaurantController{restaurantService: restaurantService}
}

// CreateRestaurant handles POST /api/restaurants
func (rc *RestaurantController) CreateRestaurant(ctx *gin.Context) {
	var req services.RestaurantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	restaurant, err := rc.restaurantService.Create(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"restaurant": restaurant})
}

// GetRestaurants handles GET /api/restaurants
func (rc *RestaurantController) GetRestaurants(ctx *gin.Context) {
	restaurants, err := rc.restaurantService.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// GetActiveRestaurants handles GET /api/restaurants/active
func (rc *RestaurantController) GetActiveRestaurants(ctx *gin.Context) {
	restaurants, err := rc.restaurantService.ListActive(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// GetRestaurantByID handles GET /api/restaurants/:id
func (rc *RestaurantController) GetRestaurantByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	restaurant, err := rc.restaurantService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetRestaurantsByCategory handles GET /api/restaurants/category/:category
func (rc *RestaurantController) GetRestaurantsByCategory(ctx *gin.Context) {
	restaurants, err := rc.restaurantService.ListByCategory(ctx.Request.Context(), ctx.Param("category"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// SearchRestaurants handles GET /api/restaurants/search?name=
func (rc *RestaurantController) SearchRestaurants(ctx *gin.Context) {
	name := ctx.Query("name")
	if name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'name' is required"})
		return
	}
	restaurants, err := rc.restaurantService.SearchByName(ctx.Request.Context(), name)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// GetRestaurantsByDeliveryFee handles GET /api/restaurants/delivery-fee?min=&max=
// Both bounds in cents; min defaults to 0 when omitted.
func (rc *RestaurantController) GetRestaurantsByDeliveryFee(ctx *gin.Context) {
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

	var restaurants []models.Restaurant
	if minStr := ctx.Query("min"); minStr != "" {
		min, parseErr := strconv.ParseInt(minStr, 10, 64)
		if parseErr != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'min' value"})
			return
		}
		restaurants, err = rc.restaurantService.ListByDeliveryFeeRange(ctx.Request.Context(), min, max)
	} else {
		restaurants, err = rc.restaurantService.ListByDeliveryFeeAtMost(ctx.Request.Context(), max)
	}
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// GetRestaurantCategories handles GET /api/restaurants/categories
func (rc *RestaurantController) GetRestaurantCategories(ctx *gin.Context) {
	categories, err := rc.restaurantService.ListCategories(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

// UpdateRestaurant handles PUT /api/restaurants/:id
func (rc *RestaurantController) UpdateRestaurant(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req services.RestaurantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	restaurant, err := rc.restaurantService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// ToggleRestaurantActive handles PATCH /api/restaurants/:id/toggle-active
func (rc *RestaurantController) ToggleRestaurantActive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	restaurant, err := rc.restaurantService.ToggleActive(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// DeleteRestaurant handles DELETE /api/restaurants/:id
func (rc *RestaurantController) DeleteRestaurant(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := rc.restaurantService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
