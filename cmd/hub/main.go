package main

import (
	"github.com/pakolabs/business-console/internal/app/config"
	"github.com/pakolabs/business-console/internal/app/hub"
	"github.com/pakolabs/business-console/internal/app/logger"
)

func main() {
	config := config.InitConfig()

	err := logger.Initialize(config)
	if err != nil {
		panic(err)
	}

	server := hub.New(config)
	server.StartHTTPServer()
}
