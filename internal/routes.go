package internal

import (
	"net/http"

	"tcncore/internal/controllers"
	"tcncore/internal/providers"
	"tcncore/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/tcn", http.HandlerFunc(apiController.RecordTcn))
	routers.Get("/tcn", http.HandlerFunc(apiController.GenerateTcn))
	routers.Get("/alerts", http.HandlerFunc(apiController.GetAlerts))
	routers.Post("/symptoms", http.HandlerFunc(apiController.SubmitSymptoms))
	return routers
}
