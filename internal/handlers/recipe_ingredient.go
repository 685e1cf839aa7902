package handlers

import (
	"net/http"
	"strconv"

	applog "pantry/internal/log"
	"pantry/models"
)

// recipeIngredientRoutes serves /recipe/{id}/ingredients and a trailing
// ingredient id for removal.
func (a *API) recipeIngredientRoutes(w http.ResponseWriter, r *http.Request, recipeID uint, rest []string) {
	if len(rest) > 0 && rest[0] != "" {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		idValue, err := strconv.Atoi(rest[0])
		if err != nil || idValue <= 0 {
			writeMessage(w, http.StatusBadRequest, "Invalid ingredient ID")
			return
		}
		a.removeRecipeIngredient(w, r, recipeID, uint(idValue))
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.listRecipeIngredients(w, r, recipeID)
	case http.MethodPost:
		a.putRecipeIngredient(w, r, recipeID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (a *API) listRecipeIngredients(w http.ResponseWriter, r *http.Request, recipeID uint) {
	exists, err := a.recipes.Exists(r.Context(), recipeID)
	if err != nil {
		writeInternalError(w, r, "failed to check recipe", err)
		return
	}
	if !exists {
		writeMessage(w, http.StatusNotFound, "Recipe not found")
		return
	}

	rows, err := a.recipeIngredients.For(r.Context(), recipeID)
	if err != nil {
		writeInternalError(w, r, "failed to list recipe ingredients", err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (a *API) putRecipeIngredient(w http.ResponseWriter, r *http.Request, recipeID uint) {
	exists, err := a.recipes.Exists(r.Context(), recipeID)
	if err != nil {
		writeInternalError(w, r, "failed to check recipe", err)
		return
	}
	if !exists {
		writeMessage(w, http.StatusNotFound, "Recipe not found")
		return
	}

	payload, ok := decodeBody(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ingredientValue, present := payload["ingredient_id"]
	if !present || ingredientValue == nil {
		writeMessage(w, http.StatusBadRequest, "Ingredient is required")
		return
	}
	ingredientNumber, numberOK := ingredientValue.(float64)
	ingredientID, idOK := positiveID(ingredientNumber)
	if !numberOK || !idOK {
		writeMessage(w, http.StatusBadRequest, "Ingredient ID must be a positive number")
		return
	}

	quantityValue, present := payload["quantity"]
	if !present || quantityValue == nil {
		writeMessage(w, http.StatusBadRequest, "Quantity is required")
		return
	}
	quantity, ok := quantityValue.(float64)
	if !ok || quantity <= 0 {
		writeMessage(w, http.StatusBadRequest, "Quantity must be a positive number")
		return
	}

	unit, msg := requireString(payload, "unit", "Unit")
	if msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	ingredient, err := a.ingredients.FindByID(r.Context(), ingredientID)
	if err != nil {
		writeInternalError(w, r, "failed to check ingredient", err)
		return
	}
	if ingredient == nil {
		writeMessage(w, http.StatusBadRequest, "Ingredient not found")
		return
	}

	line := models.RecipeIngredient{
		RecipeID:     recipeID,
		IngredientID: ingredientID,
		Quantity:     quantity,
		Unit:         unit,
	}
	if err := a.recipeIngredients.Put(r.Context(), &line); err != nil {
		writeInternalError(w, r, "failed to save recipe ingredient", err)
		return
	}

	applog.Info(r.Context(), "recipe ingredient saved",
		"recipe_id", recipeID, "ingredient_id", ingredientID, "quantity", quantity)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":           "Recipe ingredient saved successfully",
		"recipe_ingredient": line,
	})
}

func (a *API) removeRecipeIngredient(w http.ResponseWriter, r *http.Request, recipeID, ingredientID uint) {
	row, err := a.recipeIngredients.Remove(r.Context(), recipeID, ingredientID)
	if err != nil {
		writeInternalError(w, r, "failed to remove recipe ingredient", err)
		return
	}
	if row == nil {
		writeMessage(w, http.StatusNotFound, "Recipe ingredient not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
