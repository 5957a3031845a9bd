package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delivery-service/controllers"
	"delivery-service/metrics"
)

// Register mounts every handler on the engine. Route shapes with a literal
// segment (active, search, ...) are declared before the :id routes so gin
// resolves them first.
func Register(
	router *gin.Engine,
	customerController *controllers.CustomerController,
	restaurantController *controllers.RestaurantController,
	productController *controllers.ProductController,
	orderController *controllers.OrderController,
) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	api := router.Group("/api")

	customers := api.Group("/customers")
	{
		customers.POST("", customerController.CreateCustomer)
		customers.GET("", customerController.GetCustomers)
		customers.GET("/active", customerController.GetActiveCustomers)
		customers.GET("/search", customerController.SearchCustomers)
		customers.GET("/check-email", customerController.CheckEmail)
		customers.GET("/email/:email", customerController.GetCustomerByEmail)
		customers.GET("/:id", customerController.GetCustomerByID)
		customers.PUT("/:id", customerController.UpdateCustomer)
		customers.PATCH("/:id/toggle-active", customerController.ToggleCustomerActive)
		customers.DELETE("/:id", customerController.DeleteCustomer)
	}

	restaurants := api.Group("/restaurants")
	{
		restaurants.POST("", restaurantController.CreateRestaurant)
		restaurants.GET("", restaurantController.GetRestaurants)
		restaurants.GET("/active", restaurantController.GetActiveRestaurants)
		restaurants.GET("/search", restaurantController.SearchRestaurants)
		restaurants.GET("/categories", restaurantController.GetRestaurantCategories)
		restaurants.GET("/category/:category", restaurantController.GetRestaurantsByCategory)
		restaurants.GET("/delivery-fee", restaurantController.GetRestaurantsByDeliveryFee)
		restaurants.GET("/:id", restaurantController.GetRestaurantByID)
		restaurants.PUT("/:id", restaurantController.UpdateRestaurant)
		restaurants.PATCH("/:id/toggle-active", restaurantController.ToggleRestaurantActive)
		restaurants.DELETE("/:id", restaurantController.DeleteRestaurant)
	}

	products := api.Group("/products")
	{
		products.POST("", productController.CreateProduct)
		products.GET("", productController.GetProducts)
		products.GET("/active", productController.GetActiveProducts)
		products.GET("/available", productController.GetAvailableProducts)
		products.GET("/promotions", productController.GetPromotionalProducts)
		products.GET("/categories", productController.GetProductCategories)
		products.GET("/category/:category", productController.GetProductsByCategory)
		products.GET("/price", productController.GetProductsByPrice)
		products.GET("/restaurant/:restaurantId", productController.GetProductsByRestaurant)
		products.GET("/:id", productController.GetProductByID)
		products.PUT("/:id", productController.UpdateProduct)
		products.PATCH("/:id/toggle-active", productController.ToggleProductActive)
		products.PATCH("/:id/toggle-availability", productController.ToggleProductAvailability)
		products.PATCH("/:id/promotion", productController.ActivatePromotion)
		products.DELETE("/:id/promotion", productController.DeactivatePromotion)
		products.DELETE("/:id", productController.DeleteProduct)
	}

	orders := api.Group("/orders")
	{
		orders.POST("", orderController.CreateOrder)
		orders.GET("", orderController.GetOrders)
		orders.GET("/active", orderController.GetActiveOrders)
		orders.GET("/period", orderController.GetOrdersByPeriod)
		orders.GET("/number/:number", orderController.GetOrderByNumber)
		orders.GET("/status/:status", orderController.GetOrdersByStatus)
		orders.GET("/customer/:customerId", orderController.GetOrdersByCustomer)
		orders.GET("/restaurant/:restaurantId", orderController.GetOrdersByRestaurant)
		orders.GET("/:id", orderController.GetOrderByID)
		orders.PUT("/:id", orderController.UpdateOrder)
		orders.PATCH("/:id/status", orderController.UpdateOrderStatus)
		orders.PATCH("/:id/confirm", orderController.ConfirmOrder)
		orders.PATCH("/:id/cancel", orderController.CancelOrder)
		orders.PATCH("/:id/deliver", orderController.DeliverOrder)
		orders.DELETE("/:id", orderController.DeleteOrder)
	}
}
