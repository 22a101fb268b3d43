package internal

import (
	"blockd/internal/controllers"
	"blockd/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController, hub providers.BroadcastProviderInterface) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/decision", http.HandlerFunc(apiController.Decision))
	routers.Get("/plan", http.HandlerFunc(apiController.GetPlan))
	routers.Put("/plan", http.HandlerFunc(apiController.PutPlan))
	routers.Get("/flags", http.HandlerFunc(apiController.GetFlags))
	routers.Put("/flags", http.HandlerFunc(apiController.PutFlags))
	routers.Post("/pause", http.HandlerFunc(apiController.StartPause))
	routers.Delete("/pause", http.HandlerFunc(apiController.ClearPause))
	routers.Post("/shield/activate", http.HandlerFunc(apiController.ActivateShield))
	routers.Post("/shield/deactivate", http.HandlerFunc(apiController.DeactivateShield))
	routers.Get("/blocked/today", http.HandlerFunc(apiController.BlockedToday))
	routers.Post("/attempts", http.HandlerFunc(apiController.LogAttempt))
	routers.Get("/attempts/today", http.HandlerFunc(apiController.AttemptsToday))
	routers.Get("/attempts/top", http.HandlerFunc(apiController.TopCulprits))
	routers.Get("/selection", http.HandlerFunc(apiController.GetSelection))
	routers.Put("/selection", http.HandlerFunc(apiController.PutSelection))
	routers.Get("/pairing", http.HandlerFunc(apiController.GetPairing))
	routers.Get("/ws", hub.Handler())
	return routers
}
