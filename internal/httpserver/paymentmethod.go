package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	paymentmethodrepo "scentpos/internal/repository/paymentmethod"
)

func listPaymentMethods(repo paymentmethodrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		methods, err := repo.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, methods)
	}
}
