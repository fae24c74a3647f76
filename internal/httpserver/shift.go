package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	shiftsvc "scentpos/internal/service/shift"
)

type openShiftRequest struct {
	CashierName string `json:"cashierName" binding:"required"`
	OpeningCash *int64 `json:"openingCash" binding:"required"`
}

func openShift(svc *shiftsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req openShiftRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		shift, err := svc.Open(c.Request.Context(), req.CashierName, *req.OpeningCash)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, shift)
	}
}

type closeShiftRequest struct {
	ActualCash *int64 `json:"actualCash" binding:"required"`
}

func closeShift(svc *shiftsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req closeShiftRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		shift, err := svc.Close(c.Request.Context(), c.Param("id"), *req.ActualCash)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, shift)
	}
}

func activeShift(svc *shiftsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		shift, err := svc.Active(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, shift)
	}
}

func listShifts(svc *shiftsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		shifts, err := svc.List(c.Request.Context(), limitQuery(c, 30))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, shifts)
	}
}
