package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"pantry/internal/dao"
	applog "pantry/internal/log"
	"pantry/models"
)

// RecipeResource handles /recipe, its items, and the nested ingredient and
// cost routes.
func (a *API) RecipeResource(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/recipe"), "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			a.listRecipes(w, r)
		case http.MethodPost:
			a.createRecipe(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	segments := strings.Split(path, "/")
	idValue, err := strconv.Atoi(segments[0])
	if err != nil || idValue <= 0 {
		applog.Debug(r.Context(), "invalid recipe identifier", "identifier", segments[0])
		writeMessage(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}
	recipeID := uint(idValue)

	if len(segments) > 1 {
		switch segments[1] {
		case "ingredients":
			a.recipeIngredientRoutes(w, r, recipeID, segments[2:])
		case "cost":
			if r.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			a.recipeCost(w, r, recipeID)
		default:
			http.NotFound(w, r)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.showRecipe(w, r, recipeID)
	case http.MethodPut:
		a.updateRecipe(w, r, recipeID)
	case http.MethodDelete:
		a.deleteRecipe(w, r, recipeID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (a *API) listRecipes(w http.ResponseWriter, r *http.Request) {
	rows, err := a.recipes.FindAll(r.Context())
	if err != nil {
		writeInternalError(w, r, "failed to list recipes", err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (a *API) showRecipe(w http.ResponseWriter, r *http.Request, recipeID uint) {
	row, err := a.recipes.FindByIDWithIngredients(r.Context(), recipeID)
	if err != nil {
		writeInternalError(w, r, "failed to load recipe", err)
		return
	}
	if row == nil {
		writeMessage(w, http.StatusNotFound, "Recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) createRecipe(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeBody(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	name, msg := requireString(payload, "name", "Name")
	if msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	recipe := models.Recipe{Name: name}

	if value, present := payload["description"]; present && value != nil {
		description, ok := value.(string)
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Description must be a string")
			return
		}
		recipe.Description = description
	}

	if value, present := payload["menu_price"]; present && value != nil {
		price, ok := value.(float64)
		if !ok || price < 0 {
			writeMessage(w, http.StatusBadRequest, "Menu price must be a positive number")
			return
		}
		recipe.MenuPrice = &price
	}

	if err := a.recipes.Insert(r.Context(), &recipe); err != nil {
		writeInternalError(w, r, "failed to create recipe", err)
		return
	}

	applog.Info(r.Context(), "recipe created", "id", recipe.ID, "name", recipe.Name)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Recipe created successfully",
		"recipe":  recipe,
	})
}

func (a *API) updateRecipe(w http.ResponseWriter, r *http.Request, recipeID uint) {
	payload, ok := decodeBody(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fields := map[string]any{}

	if _, present := payload["name"]; present {
		name, msg := requireString(payload, "name", "Name")
		if msg != "" {
			writeMessage(w, http.StatusBadRequest, msg)
			return
		}
		fields["name"] = name
	}

	if value, present := payload["description"]; present {
		description, ok := value.(string)
		if value != nil && !ok {
			writeMessage(w, http.StatusBadRequest, "Description must be a string")
			return
		}
		fields["description"] = description
	}

	if value, present := payload["menu_price"]; present && value != nil {
		price, ok := value.(float64)
		if !ok || price < 0 {
			writeMessage(w, http.StatusBadRequest, "Menu price must be a positive number")
			return
		}
		fields["menu_price"] = price
	}

	if len(fields) == 0 {
		writeMessage(w, http.StatusBadRequest, "No fields to update")
		return
	}

	row, err := a.recipes.UpdateByID(r.Context(), recipeID, fields)
	if err != nil {
		writeInternalError(w, r, "failed to update recipe", err)
		return
	}
	if row == nil {
		writeMessage(w, http.StatusNotFound, "Recipe not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Recipe updated successfully",
		"recipe":  row,
	})
}

func (a *API) deleteRecipe(w http.ResponseWriter, r *http.Request, recipeID uint) {
	row, err := a.recipes.RemoveByID(r.Context(), recipeID)
	if err != nil {
		writeInternalError(w, r, "failed to delete recipe", err)
		return
	}
	if row == nil {
		writeMessage(w, http.StatusNotFound, "Recipe not found")
		return
	}

	if _, err := a.recipeIngredients.RemoveAllFor(r.Context(), "recipe_id", recipeID); err != nil {
		writeInternalError(w, r, "failed to remove recipe ingredient lines", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type recipeCostResponse struct {
	RecipeID  uint                 `json:"recipe_id"`
	Name      string               `json:"name"`
	MenuPrice *float64             `json:"menu_price,omitempty"`
	TotalCost float64              `json:"total_cost"`
	Margin    *float64             `json:"margin,omitempty"`
	Lines     []dao.RecipeCostLine `json:"lines"`
}

func (a *API) recipeCost(w http.ResponseWriter, r *http.Request, recipeID uint) {
	recipe, err := a.recipes.FindByID(r.Context(), recipeID)
	if err != nil {
		writeInternalError(w, r, "failed to load recipe", err)
		return
	}
	if recipe == nil {
		writeMessage(w, http.StatusNotFound, "Recipe not found")
		return
	}

	lines, err := a.recipeCosts.Lines(r.Context(), recipeID)
	if err != nil {
		writeInternalError(w, r, "failed to cost recipe", err)
		return
	}

	total := 0.0
	for _, line := range lines {
		total += line.LineCost
	}

	response := recipeCostResponse{
		RecipeID:  recipe.ID,
		Name:      recipe.Name,
		MenuPrice: recipe.MenuPrice,
		TotalCost: total,
		Lines:     lines,
	}
	if recipe.MenuPrice != nil {
		margin := *recipe.MenuPrice - total
		response.Margin = &margin
	}

	writeJSON(w, http.StatusOK, response)
}
