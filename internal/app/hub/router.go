package hub

import (
	"github.com/go-chi/chi/v5"
	"github.com/pakolabs/business-console/internal/app/config"
	"github.com/pakolabs/business-console/internal/app/hub/middleware/auth"
	"github.com/pakolabs/business-console/internal/app/hub/middleware/logger"
)

func CreateRouter(config config.Config) *chi.Mux {
	demoRegistry := NewDemoRegistry()
	businessRegistry := NewBusinessRegistry(config.JWTSecret)

	return createMux(config, demoRegistry, businessRegistry)
}

func createMux(config config.Config, demoRegistry *DemoRegistry, businessRegistry *BusinessRegistry) *chi.Mux {
	demoHandler := NewDemoHandler(demoRegistry)
	businessHandler := NewBusinessHandler(businessRegistry, demoRegistry)

	r := chi.NewRouter()

	r.Use(logger.LoggerMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", demoHandler.Catalog())
		r.Post("/submit-order", demoHandler.SubmitOrder())
		r.Get("/orders", demoHandler.Orders())
		r.Get("/orders/{orderId}", demoHandler.Order())
		r.Patch("/orders/{orderId}/status", demoHandler.UpdateStatus())

		r.Route("/v1", func(r chi.Router) {
			r.Post("/auth/login", businessHandler.Login())
			r.Post("/auth/register/business", businessHandler.Register())

			r.Route("/business/orders", func(r chi.Router) {
				r.Use(auth.Middleware(config.JWTSecret))

				r.Post("/", businessHandler.CreateOrder())
				r.Get("/", businessHandler.ListOrders())
				r.Get("/{orderId}", businessHandler.GetOrder())
				r.Put("/{orderId}", businessHandler.UpdateOrder())
				r.Patch("/{orderId}/status", businessHandler.UpdateOrderStatus())
				r.Post("/{orderId}/cancel", businessHandler.CancelOrder())
			})
		})
	})

	return r
}
