package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delivery-service/services"
)

type CustomerController struct {
	customerService *services.CustomerService
}

func NewCustomerController(customerService *services.CustomerService) *CustomerController {
	return &CustomerController{customerService: customerService}
}

// CreateCustomer handles POST /api/customers
func (cc *CustomerController) CreateCustomer(ctx *gin.Context) {
	var req services.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	customer, err := cc.customerService.Create(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"customer": customer})
}

// GetCustomers handles GET /api/customers
func (cc *CustomerController) GetCustomers(ctx *gin.Context) {
	customers, err := cc.customerService.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"customers": customers})
}

// GetActiveCustomers handles GET /api/customers/active
func (cc *CustomerController) GetActiveCustomers(ctx *gin.Context) {
	customers, err := cc.customerService.ListActive(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"customers": customers})
}

// GetCustomerByID handles GET /api/customers/:id
func (cc *CustomerController) GetCustomerByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	customer, err := cc.customerService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"customer": customer})
}

// GetCustomerByEmail handles GET /api/customers/email/:email
func (cc *CustomerController) GetCustomerByEmail(ctx *gin.Context) {
	customer, err := cc.customerService.GetByEmail(ctx.Request.Context(), ctx.Param("email"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"customer": customer})
}

// SearchCustomers handles GET /api/customers/search?name=
func (cc *CustomerController) SearchCustomers(ctx *gin.Context) {
	name := ctx.Query("name")
	if name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'name' is required"})
		return
	}
	customers, err := cc.customerService.SearchByName(ctx.Request.Context(), name)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"customers": customers})
}

// CheckEmail handles GET /api/customers/check-email?email=
func (cc *CustomerController) CheckEmail(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'email' is required"})
		return
	}
	exists, err := cc.customerService.EmailExists(ctx.Request.Context(), email)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"exists": exists})
}

// UpdateCustomer handles PUT /api/customers/:id
func (cc *CustomerController) UpdateCustomer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req services.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	customer, err := cc.customerService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"customer": customer})
}

// ToggleCustomerActive handles PATCH /api/customers/:id/toggle-active
func (cc *CustomerController) ToggleCustomerActive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	customer, err := cc.customerService.ToggleActive(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"customer": customer})
}

// DeleteCustomer handles DELETE /api/customers/:id
func (cc *CustomerController) DeleteCustomer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := cc.customerService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
