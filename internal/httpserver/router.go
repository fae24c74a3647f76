package httpserver

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	paymentmethodrepo "scentpos/internal/repository/paymentmethod"
	broadcastsvc "scentpos/internal/service/broadcast"
	customersvc "scentpos/internal/service/customer"
	expensesvc "scentpos/internal/service/expense"
	productsvc "scentpos/internal/service/product"
	shiftsvc "scentpos/internal/service/shift"
	transactionsvc "scentpos/internal/service/transaction"
	vouchersvc "scentpos/internal/service/voucher"
)

// Deps carries every service the route table needs.
type Deps struct {
	Products     *productsvc.Service
	Customers    *customersvc.Service
	Vouchers     *vouchersvc.Service
	Transactions *transactionsvc.Service
	Shifts       *shiftsvc.Service
	Expenses     *expensesvc.Service
	Broadcasts   *broadcastsvc.Service
	Methods      paymentmethodrepo.Repository

	AllowedOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(deps.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: deps.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	products := api.Group("/products")
	products.GET("", listProducts(deps.Products))
	products.GET("/:id", getProduct(deps.Products))
	products.POST("", createProduct(deps.Products))
	products.PUT("/:id", updateProduct(deps.Products))
	products.DELETE("/:id", deleteProduct(deps.Products))
	products.POST("/:id/adjust-stock", adjustStock(deps.Products))

	customers := api.Group("/customers")
	customers.GET("", listCustomers(deps.Customers))
	customers.GET("/:id", getCustomer(deps.Customers))
	customers.GET("/:id/points", customerPoints(deps.Customers))
	customers.POST("", createCustomer(deps.Customers))
	customers.PUT("/:id", updateCustomer(deps.Customers))
	customers.DELETE("/:id", deleteCustomer(deps.Customers))

	vouchers := api.Group("/vouchers")
	vouchers.GET("", listVouchers(deps.Vouchers))
	vouchers.POST("", createVoucher(deps.Vouchers))
	vouchers.PUT("/:id", updateVoucher(deps.Vouchers))
	vouchers.DELETE("/:id", deleteVoucher(deps.Vouchers))
	vouchers.POST("/validate", validateVoucher(deps.Vouchers))

	api.GET("/payment-methods", listPaymentMethods(deps.Methods))

	transactions := api.Group("/transactions")
	transactions.GET("", listTransactions(deps.Transactions))
	transactions.GET("/:id", getTransaction(deps.Transactions))
	transactions.POST("", createTransaction(deps.Transactions))

	shifts := api.Group("/shifts")
	shifts.GET("", listShifts(deps.Shifts))
	shifts.GET("/active", activeShift(deps.Shifts))
	shifts.POST("/open", openShift(deps.Shifts))
	shifts.POST("/:id/close", closeShift(deps.Shifts))

	expenses := api.Group("/expenses")
	expenses.GET("", listExpenses(deps.Expenses))
	expenses.POST("", createExpense(deps.Expenses))
	expenses.DELETE("/:id", deleteExpense(deps.Expenses))

	broadcasts := api.Group("/broadcasts")
	broadcasts.GET("", listBroadcasts(deps.Broadcasts))
	broadcasts.POST("", queueBroadcast(deps.Broadcasts))

	return router
}

// limitQuery reads ?limit= with a fallback. Repositories cap it again
// on their side.
func limitQuery(c *gin.Context, fallback int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
