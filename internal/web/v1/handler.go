package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/duynhne/customer-service/internal/core/domain"
	logicv1 "github.com/duynhne/customer-service/internal/logic/v1"
	"github.com/duynhne/customer-service/middleware"
)

// CustomerHandler handles HTTP requests for customer and address operations
type CustomerHandler struct {
	service *logicv1.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(service *logicv1.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		service: service,
	}
}

// respondError maps service errors onto the API's status codes. Anything
// that is not a validation or not-found error is a storage failure and is
// passed through with its message, per the API contract.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCustomer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer data"})
	case errors.Is(err, domain.ErrInvalidAddress):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address data"})
	case errors.Is(err, domain.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
	case errors.Is(err, domain.ErrAddressNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// CreateCustomer handles POST /api/customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		logger.Warn("Malformed customer payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer data"})
		return
	}

	customerID, err := h.service.CreateCustomer(ctx, req)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to create customer", zap.Error(err))
		respondError(c, err)
		return
	}

	logger.Info("Customer created", zap.Int64("customer_id", customerID))
	message := "Customer created"
	if len(req.Addresses) > 0 {
		message = "Customer and addresses created"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "customerId": customerID})
}

// ListCustomers handles GET /api/customers
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	page := intQuery(c, "page")
	limit := intQuery(c, "limit")

	result, err := h.service.ListCustomers(ctx,
		c.Query("city"), c.Query("state"), c.Query("pin_code"), c.Query("search"),
		c.Query("sortField"), c.Query("sortOrder"), page, limit)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to list customers", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "success",
		"data":       result.Customers,
		"pagination": result.Pagination,
	})
}

// GetCustomer handles GET /api/customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	id, ok := customerID(c)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("customer.id", id))

	detail, err := h.service.GetCustomer(ctx, id)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to get customer", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": detail})
}

// UpdateCustomer handles PUT /api/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	id, ok := customerID(c)
	if !ok {
		return
	}

	var payload domain.CustomerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		logger.Warn("Malformed customer payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer data"})
		return
	}

	if err := h.service.UpdateCustomer(ctx, id, payload); err != nil {
		span.RecordError(err)
		logger.Error("Failed to update customer", zap.Error(err), zap.Int64("customer_id", id))
		respondError(c, err)
		return
	}

	logger.Info("Customer updated", zap.Int64("customer_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Customer updated"})
}

// DeleteCustomer handles DELETE /api/customers/:id
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	id, ok := customerID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCustomer(ctx, id); err != nil {
		span.RecordError(err)
		logger.Error("Failed to delete customer", zap.Error(err), zap.Int64("customer_id", id))
		respondError(c, err)
		return
	}

	logger.Info("Customer deleted", zap.Int64("customer_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}

// AddAddress handles POST /api/customers/:id/addresses
func (h *CustomerHandler) AddAddress(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	id, ok := customerID(c)
	if !ok {
		return
	}

	var payload domain.AddressPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		logger.Warn("Malformed address payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address data"})
		return
	}

	addressID, err := h.service.AddAddress(ctx, id, payload)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to add address", zap.Error(err), zap.Int64("customer_id", id))
		respondError(c, err)
		return
	}

	logger.Info("Address added", zap.Int64("customer_id", id), zap.Int64("address_id", addressID))
	c.JSON(http.StatusOK, gin.H{"message": "Address added", "addressId": addressID})
}

// ListAddresses handles GET /api/customers/:id/addresses
func (h *CustomerHandler) ListAddresses(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	id, ok := customerID(c)
	if !ok {
		return
	}

	addresses, err := h.service.ListAddresses(ctx, id)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to list addresses", zap.Error(err), zap.Int64("customer_id", id))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": addresses})
}

// UpdateAddress handles PUT /api/addresses/:addressId
func (h *CustomerHandler) UpdateAddress(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	id, ok := addressID(c)
	if !ok {
		return
	}

	var payload domain.AddressPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		logger.Warn("Malformed address payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address data"})
		return
	}

	if err := h.service.UpdateAddress(ctx, id, payload); err != nil {
		span.RecordError(err)
		logger.Error("Failed to update address", zap.Error(err), zap.Int64("address_id", id))
		respondError(c, err)
		return
	}

	logger.Info("Address updated", zap.Int64("address_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Address updated"})
}

// DeleteAddress handles DELETE /api/addresses/:addressId
func (h *CustomerHandler) DeleteAddress(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	id, ok := addressID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAddress(ctx, id); err != nil {
		span.RecordError(err)
		logger.Error("Failed to delete address", zap.Error(err), zap.Int64("address_id", id))
		respondError(c, err)
		return
	}

	logger.Info("Address deleted", zap.Int64("address_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}
