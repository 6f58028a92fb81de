package main

import (
	"github.com/EngStrategy/arenahub-backend-sub000/core/logger"
	"github.com/EngStrategy/arenahub-backend-sub000/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Fatal("run server error", "error", err)
	}
}
