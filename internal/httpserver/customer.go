package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scentpos/internal/domain"
	customersvc "scentpos/internal/service/customer"
)

func listCustomers(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := svc.Search(c.Request.Context(), c.Query("search"), limitQuery(c, 10))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

func getCustomer(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

func customerPoints(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := svc.PointHistory(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

type customerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

func createCustomer(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		created, err := svc.Create(c.Request.Context(), domain.Customer{Name: req.Name, Phone: req.Phone})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateCustomer(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		updated, err := svc.Update(c.Request.Context(), domain.Customer{
			ID:    c.Param("id"),
			Name:  req.Name,
			Phone: req.Phone,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteCustomer(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
