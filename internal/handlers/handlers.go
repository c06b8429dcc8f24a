package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prudhivi99/storefront/internal/service"
)

// Handlers holds all HTTP handlers for the storefront API.
type Handlers struct {
	catalog   *service.CatalogService
	cart      *service.CartService
	discounts *service.DiscountService
	reports   *service.ReportService
	auth      *service.AuthService
	health    HealthChecker
}

// HealthChecker reports backing-store connectivity for /health.
type HealthChecker interface {
	Ping() error
}

func NewHandlers(
	catalog *service.CatalogService,
	cart *service.CartService,
	discounts *service.DiscountService,
	reports *service.ReportService,
	authSvc *service.AuthService,
	health HealthChecker,
) *Handlers {
	return &Handlers{
		catalog:   catalog,
		cart:      cart,
		discounts: discounts,
		reports:   reports,
		auth:      authSvc,
		health:    health,
	}
}

// handleError maps service errors onto the response taxonomy: 404 missing
// resource, 400 validation, 401 credentials, 500 everything else.
func handleError(c *gin.Context, err error) {
	var notFound *service.NotFoundError
	var validation *service.ValidationError
	var authErr *service.AuthError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
