package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scentpos/internal/domain"
	productsvc "scentpos/internal/service/product"
)

func listProducts(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if query := c.Query("search"); query != "" {
			products, err := svc.Search(c.Request.Context(), query, limitQuery(c, 20))
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, products)
			return
		}
		products, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProduct(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

type productRequest struct {
	Code         string             `json:"code" binding:"required"`
	Name         string             `json:"name" binding:"required"`
	Type         domain.ProductType `json:"type" binding:"required"`
	CostPrice    int64              `json:"costPrice"`
	SellingPrice int64              `json:"sellingPrice" binding:"required"`
	Stock        int                `json:"stock"`
}

func createProduct(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		created, err := svc.Create(c.Request.Context(), domain.Product{
			Code:         req.Code,
			Name:         req.Name,
			Type:         req.Type,
			CostPrice:    req.CostPrice,
			SellingPrice: req.SellingPrice,
			Stock:        req.Stock,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateProduct(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		updated, err := svc.Update(c.Request.Context(), domain.Product{
			ID:           c.Param("id"),
			Code:         req.Code,
			Name:         req.Name,
			Type:         req.Type,
			CostPrice:    req.CostPrice,
			SellingPrice: req.SellingPrice,
			Stock:        req.Stock,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteProduct(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type adjustStockRequest struct {
	ActualStock *int   `json:"actualStock" binding:"required"`
	Notes       string `json:"notes"`
}

func adjustStock(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adjustStockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		adj, err := svc.AdjustStock(c.Request.Context(), c.Param("id"), *req.ActualStock, req.Notes)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, adj)
	}
}
