package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"marketplace/internal/config"
	"marketplace/internal/db"
	"marketplace/internal/httpserver"
	cartrepo "marketplace/internal/repository/cart"
	categoryrepo "marketplace/internal/repository/category"
	couponrepo "marketplace/internal/repository/coupon"
	orderrepo "marketplace/internal/repository/order"
	productrepo "marketplace/internal/repository/product"
	reviewrepo "marketplace/internal/repository/review"
	userrepo "marketplace/internal/repository/user"
	authsvc "marketplace/internal/service/auth"
	cartsvc "marketplace/internal/service/cart"
	categorysvc "marketplace/internal/service/category"
	couponsvc "marketplace/internal/service/coupon"
	ordersvc "marketplace/internal/service/order"
	paymentsvc "marketplace/internal/service/payment"
	productsvc "marketplace/internal/service/product"
	reviewsvc "marketplace/internal/service/review"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on system environment")
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	userRepo := userrepo.NewPostgres(dbpool, logger)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	couponRepo := couponrepo.NewPostgres(dbpool)
	reviewRepo := reviewrepo.NewPostgres(dbpool)

	authService := authsvc.New(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	productService := productsvc.New(productRepo)
	categoryService := categorysvc.New(categoryRepo)
	cartService := cartsvc.New(cartRepo, productRepo)
	orderService := ordersvc.New(orderRepo, cartRepo, productRepo, couponRepo, logger)
	couponService := couponsvc.New(couponRepo)
	reviewService := reviewsvc.New(reviewRepo, productRepo)
	gateway := paymentsvc.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	paymentService := paymentsvc.New(gateway, orderRepo, orderService, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Auth:       authService,
		Products:   productService,
		Categories: categoryService,
		Carts:      cartService,
		Orders:     orderService,
		Payments:   paymentService,
		Coupons:    couponService,
		Reviews:    reviewService,
		Users:      userRepo,
		Stats:      orderRepo,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
