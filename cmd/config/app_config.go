package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"Shelf-Life-Backend/internal/api/handlers"
	"Shelf-Life-Backend/internal/api/routes"
	"Shelf-Life-Backend/internal/middleware"
	"Shelf-Life-Backend/internal/utils"
	"Shelf-Life-Backend/internal/utils/mailing"
	"Shelf-Life-Backend/internal/utils/storage"
	"Shelf-Life-Backend/pkg/food"
	"Shelf-Life-Backend/pkg/recipe"
	"Shelf-Life-Backend/pkg/scan"
)

func NewApp(store food.InventoryStore) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils; the receipt archive is optional
	s3, err := storage.NewAwsS3()
	if err != nil {
		log.Warnf("receipt archive disabled: %v", err)
		s3 = nil
	}

	var mailer food.MailSender
	digestTo := utils.GetConfig("DIGEST_EMAIL")
	if digestTo != "" {
		mailer = mailing.SMTPSender{}
	}

	// acquisition pipeline, ordered tiers
	pipeline := scan.NewPipeline(
		scan.NewOCRProvider(utils.GetConfig("OCR_SERVICE_URL")),
		scan.NewGeminiProvider(utils.GetConfig("GEMINI_API_KEY"), utils.GetConfig("GEMINI_MODEL")),
		scan.NewStaticProvider(),
	)

	// Service
	foodService := food.NewFoodService(store, pipeline, s3, mailer, digestTo)
	recipeService := recipe.NewRecipeService(store, utils.GetConfig("GEMINI_API_KEY"), utils.GetConfig("GEMINI_MODEL"))

	// Handler
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	// routes
	routesConfig := routes.Config{
		App:           app,
		FoodHandler:   foodHandler,
		RecipeHandler: recipeHandler,
		Middleware:    middlewares,
	}
	routesConfig.Setup()
	return app, nil
}
