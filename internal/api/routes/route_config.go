package routes

import (
	"github.com/gofiber/fiber/v2"

	"Shelf-Life-Backend/internal/api/handlers"
	"Shelf-Life-Backend/internal/middleware"
)

type Config struct {
	App           *fiber.App
	FoodHandler   handlers.FoodHandler
	RecipeHandler handlers.RecipeHandler
	Middleware    middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.FoodItems()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) FoodItems() {
	foodItems := c.App.Group("/api/v1/food-items")
	foodItems.Get("/dashboard", c.FoodHandler.GetDashboardStats)

	// Basic CRUD operations
	foodItems.Post("", c.FoodHandler.AddFoodItem)
	foodItems.Get("", c.FoodHandler.GetInventory)
	foodItems.Put("/:id", c.FoodHandler.UpdateFoodItem)
	foodItems.Delete("/:id", c.FoodHandler.DeleteFoodItem)

	// Special operations
	foodItems.Post("/receipt-scan", c.FoodHandler.ScanReceipt)
	foodItems.Post("/digest", c.FoodHandler.SendExpiryDigest)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")
	recipes.Post("/generate", c.RecipeHandler.GenerateRecipes)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
