package domain

import (
	"errors"

	"Shelf-Life-Backend/entities"
)

var (
	MessageSuccessGetRecipes = "recipes generated successfully"
	MessageRecipeServiceBusy = "the recipe service is currently busy, showing offline suggestions"

	MessageFailedGetRecipes = "failed to generate recipes"

	ErrNoIngredients = errors.New("no ingredients available for recipe generation")
)

type GenerateRecipesResponse struct {
	Recipes     []entities.Recipe `json:"recipes"`
	ServiceBusy bool              `json:"service_busy"`
}
