package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	transactionsvc "scentpos/internal/service/transaction"
)

func listTransactions(svc *transactionsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		transactions, err := svc.List(c.Request.Context(), limitQuery(c, 50))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, transactions)
	}
}

func getTransaction(svc *transactionsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		transaction, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, transaction)
	}
}

func createTransaction(svc *transactionsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req transactionsvc.CreateInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		created, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}
