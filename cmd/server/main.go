package main

import (
	"context"
	"net/http"

	"neoverse-be/internal/api"
	"neoverse-be/internal/cart"
	"neoverse-be/internal/config"
	"neoverse-be/internal/db"
	"neoverse-be/internal/logger"
	"neoverse-be/internal/order"
	"neoverse-be/internal/payment"
	"neoverse-be/internal/product"
	"neoverse-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	gateway := payment.NewStripeGateway(cfg.StripeSecretKey)

	seeded, err := productSvc.SeedIfEmpty(context.Background())
	if err != nil {
		logger.L().Fatal("product seeding failed", zap.Error(err))
	}
	if seeded > 0 {
		logger.L().Info("seeded product catalog", zap.Int("count", seeded))
	}

	router := api.NewRouter(api.Deps{
		Cfg:      cfg,
		Users:    userSvc,
		UserRepo: userRepo,
		Products: productSvc,
		Carts:    cartSvc,
		Orders:   orderSvc,
		Gateway:  gateway,
	})

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
