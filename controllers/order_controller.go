package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"delivery-service/models"
	"delivery-service/services"
)

type OrderController struct {
	orderService *services.OrderService
}

func NewOrderController(orderService *services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder handles POST /api/orders
func (oc *OrderController) CreateOrder(ctx *gin.Context) {
	var req services.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, err := oc.orderService.CreateOrder(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetOrders handles GET /api/orders
func (oc *OrderController) GetOrders(ctx *gin.Context) {
	orders, err := oc.orderService.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderByID handles GET /api/orders/:id
func (oc *OrderController) GetOrderByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	order, err := oc.orderService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// GetOrderByNumber handles GET /api/orders/number/:number
func (oc *OrderController) GetOrderByNumber(ctx *gin.Context) {
	order, err := oc.orderService.GetByNumber(ctx.Request.Context(), ctx.Param("number"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// GetActiveOrders handles GET /api/orders/active
func (oc *OrderController) GetActiveOrders(ctx *gin.Context) {
	orders, err := oc.orderService.ListActive(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrdersByStatus handles GET /api/orders/status/:status
func (oc *OrderController) GetOrdersByStatus(ctx *gin.Context) {
	status, ok := models.ParseOrderStatus(ctx.Param("status"))
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
		return
	}
	orders, err := oc.orderService.ListByStatus(ctx.Request.Context(), status)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrdersByCustomer handles GET /api/orders/customer/:customerId
func (oc *OrderController) GetOrdersByCustomer(ctx *gin.Context) {
	customerID, ok := parseIDParam(ctx, "customerId")
	if !ok {
		return
	}
	orders, err := oc.orderService.ListByCustomer(ctx.Request.Context(), customerID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrdersByRestaurant handles GET /api/orders/restaurant/:restaurantId
func (oc *OrderController) GetOrdersByRestaurant(ctx *gin.Context) {
	restaurantID, ok := parseIDParam(ctx, "restaurantId")
	if !ok {
		return
	}
	orders, err := oc.orderService.ListByRestaurant(ctx.Request.Context(), restaurantID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrdersByPeriod handles GET /api/orders/period?from=&to= (RFC 3339)
func (oc *OrderController) GetOrdersByPeriod(ctx *gin.Context) {
	from, err := time.Parse(time.RFC3339, ctx.Query("from"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' timestamp, expected RFC 3339"})
		return
	}
	to, err := time.Parse(time.RFC3339, ctx.Query("to"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' timestamp, expected RFC 3339"})
		return
	}

	orders, err := oc.orderService.ListByPeriod(ctx.Request.Context(), from, to)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrder handles PUT /api/orders/:id with partial-update semantics.
func (oc *OrderController) UpdateOrder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var patch services.UpdateOrderRequest
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, err := oc.orderService.Update(ctx.Request.Context(), id, &patch)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// ConfirmOrder handles PATCH /api/orders/:id/confirm
func (oc *OrderController) ConfirmOrder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	order, err := oc.orderService.Confirm(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder handles PATCH /api/orders/:id/cancel
func (oc *OrderController) CancelOrder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	// body is optional; cancelling without a reason records an empty one
	_ = ctx.ShouldBindJSON(&body)

	order, err := oc.orderService.Cancel(ctx.Request.Context(), id, body.Reason)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// DeliverOrder handles PATCH /api/orders/:id/deliver
func (oc *OrderController) DeliverOrder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	order, err := oc.orderService.Deliver(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus handles PATCH /api/orders/:id/status?status=
func (oc *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	status, valid := models.ParseOrderStatus(ctx.Query("status"))
	if !valid {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
		return
	}

	order, err := oc.orderService.UpdateStatus(ctx.Request.Context(), id, status, ctx.Query("reason"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// DeleteOrder handles DELETE /api/orders/:id
func (oc *OrderController) DeleteOrder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := oc.orderService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
