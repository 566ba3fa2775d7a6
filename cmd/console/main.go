package main

import (
	"context"
	"os"

	"github.com/pakolabs/business-console/internal/app/config"
	"github.com/pakolabs/business-console/internal/app/logger"
	"github.com/pakolabs/business-console/internal/app/model"
	storage "github.com/pakolabs/business-console/internal/app/storage/api"
	"github.com/pakolabs/business-console/internal/app/transport"
	"github.com/pakolabs/business-console/internal/app/usecase/auth"
	"github.com/pakolabs/business-console/internal/app/usecase/order"
	"github.com/pakolabs/business-console/internal/app/usecase/session"
	"go.uber.org/zap"
)

const (
	defaultEmail    = "demo@pako.app"
	defaultPassword = "demo1234"
)

// exitNavigator terminates the console when the expiry modal forces
// re-authentication; an interactive frontend would route to its login view.
type exitNavigator struct{}

func (exitNavigator) NavigateToLogin() {
	zap.L().Warn("session expired, please log in again")
	os.Exit(1)
}

func main() {
	config := config.InitConfig()

	err := logger.Initialize(config)
	if err != nil {
		panic(err)
	}

	store, err := storage.InitStorage(config)
	if err != nil {
		zap.L().Fatal("error while initializing credential store", zap.Error(err))
	}

	coordinator := session.New(store, exitNavigator{})
	client := transport.New(config, store, coordinator)
	authManager := auth.New(client, store)
	orderManager := order.New(client)

	ctx := context.Background()

	authManager.Initialize()
	if !authManager.IsAuthenticated() {
		email := envOr("CONSOLE_EMAIL", defaultEmail)
		password := envOr("CONSOLE_PASSWORD", defaultPassword)

		_, err := authManager.Login(ctx, model.LoginRequest{Email: email, Password: password})
		if err != nil {
			zap.L().Fatal("login failed", zap.Error(err))
		}
	}

	zap.L().Info("authenticated", zap.String("user", authManager.UserName()))

	created, err := orderManager.Create(ctx, model.CreateOrderRequest{
		RestaurantName: "Pako Demo Restaurant",
		CustomerDetails: model.CustomerDetails{
			Name:  "Walk-in Customer",
			Phone: "+905551112233",
		},
		OrderedItems: []model.OrderItemRequest{
			{ItemID: "item_01", Quantity: 2},
			{ItemID: "item_04", Quantity: 1},
		},
		DeliveryInstructions: "Ring the bell twice",
	})
	if err != nil {
		zap.L().Fatal("create order failed", zap.Error(err))
	}

	zap.L().Info("order created",
		zap.String("order_id", created.OrderID),
		zap.Float64("total", created.TotalAmount),
	)

	orders, err := orderManager.List(ctx, order.ListParams{Page: 1, Limit: 10})
	if err != nil {
		zap.L().Fatal("list orders failed", zap.Error(err))
	}

	zap.L().Info("orders listed",
		zap.Int("count", len(orders)),
		zap.Int("pending", len(orderManager.Pending())),
		zap.Int("active", len(orderManager.Active())),
		zap.Int("completed", len(orderManager.Completed())),
	)

	if _, err := orderManager.FetchOne(ctx, created.OrderID); err != nil {
		zap.L().Fatal("fetch order failed", zap.Error(err))
	}

	if current, ok := orderManager.Current(); ok {
		zap.L().Info("current order",
			zap.String("order_id", current.OrderID),
			zap.String("status", string(current.Status)),
		)
	}
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}
