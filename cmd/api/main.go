package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"scentpos/internal/cache"
	"scentpos/internal/checkout"
	"scentpos/internal/config"
	"scentpos/internal/db"
	"scentpos/internal/events"
	"scentpos/internal/httpserver"
	broadcastrepo "scentpos/internal/repository/broadcast"
	customerrepo "scentpos/internal/repository/customer"
	expenserepo "scentpos/internal/repository/expense"
	paymentmethodrepo "scentpos/internal/repository/paymentmethod"
	productrepo "scentpos/internal/repository/product"
	shiftrepo "scentpos/internal/repository/shift"
	transactionrepo "scentpos/internal/repository/transaction"
	voucherrepo "scentpos/internal/repository/voucher"
	broadcastsvc "scentpos/internal/service/broadcast"
	customersvc "scentpos/internal/service/customer"
	expensesvc "scentpos/internal/service/expense"
	productsvc "scentpos/internal/service/product"
	shiftsvc "scentpos/internal/service/shift"
	transactionsvc "scentpos/internal/service/transaction"
	vouchersvc "scentpos/internal/service/voucher"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	// The broker and cache are optional. A terminal-only deployment runs
	// without either; the services degrade to direct DB access.
	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		conn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			logger.Fatalf("connect to amqp: %v", err)
		}
		defer conn.Close()
		publisher, err = events.NewPublisher(conn)
		if err != nil {
			logger.Fatalf("init publisher: %v", err)
		}
	}

	var productCache cache.ProductCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		productCache = cache.NewRedisCache(client)
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	voucherRepo := voucherrepo.NewPostgres(dbpool, logger)
	transactionRepo := transactionrepo.NewPostgres(dbpool, logger)
	shiftRepo := shiftrepo.NewPostgres(dbpool, logger)
	expenseRepo := expenserepo.NewPostgres(dbpool, logger)
	paymentMethodRepo := paymentmethodrepo.NewPostgres(dbpool)
	broadcastRepo := broadcastrepo.NewPostgres(dbpool, logger)

	productService := productsvc.New(productRepo, productCache, logger)
	customerService := customersvc.New(customerRepo)
	voucherService := vouchersvc.New(voucherRepo)
	shiftService := shiftsvc.New(shiftRepo, transactionRepo, expenseRepo)
	expenseService := expensesvc.New(expenseRepo)
	broadcastService := broadcastsvc.New(broadcastRepo, customerRepo, publisher, logger)
	transactionService := transactionsvc.New(transactionsvc.Deps{
		Repo:      transactionRepo,
		Products:  productRepo,
		Customers: customerRepo,
		Vouchers:  voucherRepo,
		Methods:   paymentMethodRepo,
		Shifts:    shiftRepo,
		Checker:   voucherService,
		Events:    publisher,
		Catalog:   productService,
	}, transactionsvc.Rules{
		Points:   checkout.PointsRule{Block: cfg.PointsRedeemBlock, Discount: cfg.PointsRedeemValue},
		EarnStep: cfg.PointsEarnStep,
	}, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Products:       productService,
		Customers:      customerService,
		Vouchers:       voucherService,
		Transactions:   transactionService,
		Shifts:         shiftService,
		Expenses:       expenseService,
		Broadcasts:     broadcastService,
		Methods:        paymentMethodRepo,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
