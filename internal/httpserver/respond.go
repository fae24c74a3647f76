package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"scentpos/internal/checkout"
	"scentpos/internal/domain"
	transactionsvc "scentpos/internal/service/transaction"
)

// respondError maps service errors to HTTP statuses. Voucher rejection
// reasons travel to the terminal verbatim so the cashier sees the same
// wording the validator produced.
func respondError(c *gin.Context, err error) {
	var rejected *transactionsvc.VoucherRejectedError
	switch {
	case errors.As(err, &rejected):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "voucher rejected", "reason": rejected.Reason})
	case errors.Is(err, domain.ErrInsufficientStock):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrInsufficientCash):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
