package handlers

import (
	"github.com/gofiber/fiber/v2"

	"Shelf-Life-Backend/domain"
	"Shelf-Life-Backend/internal/api/presenters"
	"Shelf-Life-Backend/pkg/recipe"
)

type (
	RecipeHandler interface {
		GenerateRecipes(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
	}
}

func (h *recipeHandler) GenerateRecipes(c *fiber.Ctx) error {
	recipes, busy, err := h.recipeService.GenerateRecipes(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, err)
	}

	message := domain.MessageSuccessGetRecipes
	if busy {
		message = domain.MessageRecipeServiceBusy
	}

	return presenters.SuccessResponse(c, domain.GenerateRecipesResponse{
		Recipes:     recipes,
		ServiceBusy: busy,
	}, fiber.StatusOK, message)
}
