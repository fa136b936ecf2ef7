// Package main is the entry point for the cut-calc application.
//
// @title           Cut Calc API
// @version         1.0.0
// @description     API for computing linear cutting plans with kerf loss.
//
//	This service allocates requested cut lengths onto stock bars using a
//	first-fit decreasing strategy and reports per-bar cuts and waste.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/chasecee/cut-calc
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 JWT token with Bearer prefix. Required for stock profile mutations.
//
// @tag.name        Plans
// @tag.description Cutting plan calculation operations
//
// @tag.name        StockProfiles
// @tag.description Stock profile management endpoints
//
// @tag.name        Auth
// @tag.description Authentication endpoints
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"github.com/rs/zerolog/log"

	_ "github.com/chasecee/cut-calc/docs" // swagger docs

	"github.com/chasecee/cut-calc/config"
	"github.com/chasecee/cut-calc/internal/app"
	"github.com/chasecee/cut-calc/internal/middleware"
)

func main() {
	cfg := config.Load()

	router := app.InitializeApp(cfg)
	server := app.NewServer(router, cfg.Server.Port)
	defer middleware.StopAsyncLogger()

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
