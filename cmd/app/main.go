package main

import (
	"log"

	"github.com/joho/godotenv"

	"Shelf-Life-Backend/cmd/config"
	"Shelf-Life-Backend/internal/utils"
	"Shelf-Life-Backend/pkg/food"
)

func main() {
	// .env is optional; config.yaml remains the primary source.
	_ = godotenv.Load()
	utils.LoadConfig()

	dataDir := utils.GetConfig("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	store, err := food.NewBadgerStore(dataDir)
	if err != nil {
		log.Fatalf("failed to open inventory store: %v", err)
	}
	defer store.Close()

	app, err := config.NewApp(store)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}

	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
