package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"scentpos/internal/domain"
	expensesvc "scentpos/internal/service/expense"
)

func listExpenses(svc *expensesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		expenses, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, expenses)
	}
}

type expenseRequest struct {
	Description string    `json:"description" binding:"required"`
	Amount      int64     `json:"amount" binding:"required"`
	SpentAt     time.Time `json:"spentAt"`
}

func createExpense(svc *expensesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req expenseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		created, err := svc.Create(c.Request.Context(), domain.Expense{
			Description: req.Description,
			Amount:      req.Amount,
			SpentAt:     req.SpentAt,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func deleteExpense(svc *expensesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
