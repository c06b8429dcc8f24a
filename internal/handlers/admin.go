package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prudhivi99/storefront/internal/service"
)

// GenerateDiscountCode handles POST /admin/generate_discount_code
func (h *Handlers) GenerateDiscountCode(c *gin.Context) {
	code, err := h.discounts.GenerateDiscountCode(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoDiscountAvailable) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"discount_code": code})
}

// PurchaseDetails handles GET /admin/purchase_details
func (h *Handlers) PurchaseDetails(c *gin.Context) {
	report, err := h.reports.PurchaseDetails(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
