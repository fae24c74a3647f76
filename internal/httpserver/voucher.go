package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"scentpos/internal/domain"
	vouchersvc "scentpos/internal/service/voucher"
)

func listVouchers(svc *vouchersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		vouchers, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, vouchers)
	}
}

type voucherRequest struct {
	Code        string              `json:"code" binding:"required"`
	Kind        domain.DiscountKind `json:"kind" binding:"required"`
	Value       int64               `json:"value" binding:"required"`
	MaxDiscount int64               `json:"maxDiscount"`
	MinPurchase int64               `json:"minPurchase"`
	Active      bool                `json:"active"`
	StartsAt    time.Time           `json:"startsAt" binding:"required"`
	EndsAt      time.Time           `json:"endsAt" binding:"required"`
	UsageLimit  int                 `json:"usageLimit"`
}

func (r voucherRequest) toDomain(id string) domain.Voucher {
	return domain.Voucher{
		ID:          id,
		Code:        r.Code,
		Kind:        r.Kind,
		Value:       r.Value,
		MaxDiscount: r.MaxDiscount,
		MinPurchase: r.MinPurchase,
		Active:      r.Active,
		StartsAt:    r.StartsAt,
		EndsAt:      r.EndsAt,
		UsageLimit:  r.UsageLimit,
	}
}

func createVoucher(svc *vouchersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req voucherRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		created, err := svc.Create(c.Request.Context(), req.toDomain(""))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateVoucher(svc *vouchersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req voucherRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		updated, err := svc.Update(c.Request.Context(), req.toDomain(c.Param("id")))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteVoucher(svc *vouchersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type validateVoucherRequest struct {
	Code     string `json:"code" binding:"required"`
	Subtotal int64  `json:"subtotal"`
}

// validateVoucher is the terminal's pre-apply check. It always answers
// 200; rejection is data, not an error.
func validateVoucher(svc *vouchersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validateVoucherRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		decision, err := svc.Check(c.Request.Context(), req.Code, req.Subtotal)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, decision)
	}
}
