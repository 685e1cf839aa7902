package handlers

import (
	"net/http"
	"strconv"
	"strings"

	applog "pantry/internal/log"
	"pantry/models"
)

// IngredientResource handles the /ingredient collection and its items.
func (a *API) IngredientResource(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/ingredient"), "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			a.listIngredients(w, r)
		case http.MethodPost:
			a.createIngredient(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	idValue, err := strconv.Atoi(path)
	if err != nil || idValue <= 0 {
		applog.Debug(r.Context(), "invalid ingredient identifier", "identifier", path)
		writeMessage(w, http.StatusBadRequest, "Invalid ingredient ID")
		return
	}
	ingredientID := uint(idValue)

	switch r.Method {
	case http.MethodGet:
		a.showIngredient(w, r, ingredientID)
	case http.MethodPut:
		a.updateIngredient(w, r, ingredientID)
	case http.MethodDelete:
		a.deleteIngredient(w, r, ingredientID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (a *API) listIngredients(w http.ResponseWriter, r *http.Request) {
	rows, err := a.ingredients.FindAll(r.Context())
	if err != nil {
		writeInternalError(w, r, "failed to list ingredients", err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (a *API) showIngredient(w http.ResponseWriter, r *http.Request, ingredientID uint) {
	row, err := a.ingredients.FindByID(r.Context(), ingredientID)
	if err != nil {
		writeInternalError(w, r, "failed to load ingredient", err)
		return
	}
	if row == nil {
		writeMessage(w, http.StatusNotFound, "Ingredient not found")
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// validateIngredientPayload checks the request shape for create, returning
// the enumerated message for the first violation found.
func validateIngredientPayload(payload map[string]any) (models.Ingredient, string) {
	name, msg := requireString(payload, "name", "Name")
	if msg != "" {
		return models.Ingredient{}, msg
	}

	unit, msg := requireString(payload, "unit", "Unit")
	if msg != "" {
		return models.Ingredient{}, msg
	}

	costValue, present := payload["cost_per_unit"]
	if !present || costValue == nil {
		return models.Ingredient{}, "Cost per unit is required"
	}
	cost, ok := costValue.(float64)
	if !ok || cost < 0 {
		return models.Ingredient{}, "Cost per unit must be a positive number"
	}

	vendorValue, present := payload["vendor_id"]
	if !present || vendorValue == nil {
		return models.Ingredient{}, "Vendor is required"
	}
	vendorNumber, ok := vendorValue.(float64)
	if !ok {
		return models.Ingredient{}, "Vendor ID must be a positive number"
	}
	vendorID, ok := positiveID(vendorNumber)
	if !ok {
		return models.Ingredient{}, "Vendor ID must be a positive number"
	}

	return models.Ingredient{
		Name:        name,
		Unit:        unit,
		CostPerUnit: cost,
		VendorID:    vendorID,
	}, ""
}

func (a *API) createIngredient(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeBody(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ingredient, msg := validateIngredientPayload(payload)
	if msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	// Explicit existence check before the insert rather than relying on a
	// database constraint, so the failure maps to a clean 400.
	exists, err := a.entities.Exists(r.Context(), ingredient.VendorID)
	if err != nil {
		writeInternalError(w, r, "failed to check vendor", err)
		return
	}
	if !exists {
		writeMessage(w, http.StatusBadRequest, "Vendor not found")
		return
	}

	if err := a.ingredients.Insert(r.Context(), &ingredient); err != nil {
		writeInternalError(w, r, "failed to create ingredient", err)
		return
	}

	applog.Info(r.Context(), "ingredient created", "id", ingredient.ID, "name", ingredient.Name)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Ingredient created successfully",
		"ingredient": ingredient,
	})
}

func (a *API) updateIngredient(w http.ResponseWriter, r *http.Request, ingredientID uint) {
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

	if _, present := payload["unit"]; present {
		unit, msg := requireString(payload, "unit", "Unit")
		if msg != "" {
			writeMessage(w, http.StatusBadRequest, msg)
			return
		}
		fields["unit"] = unit
	}

	if _, present := payload["cost_per_unit"]; present {
		cost, msg := requireNumber(payload, "cost_per_unit", "Cost per unit")
		if msg != "" || cost < 0 {
			writeMessage(w, http.StatusBadRequest, "Cost per unit must be a positive number")
			return
		}
		fields["cost_per_unit"] = cost
	}

	if _, present := payload["vendor_id"]; present {
		vendorValue, msg := requireNumber(payload, "vendor_id", "Vendor")
		vendorID, ok := positiveID(vendorValue)
		if msg != "" || !ok {
			writeMessage(w, http.StatusBadRequest, "Vendor ID must be a positive number")
			return
		}
		exists, err := a.entities.Exists(r.Context(), vendorID)
		if err != nil {
			writeInternalError(w, r, "failed to check vendor", err)
			return
		}
		if !exists {
			writeMessage(w, http.StatusBadRequest, "Vendor not found")
			return
		}
		fields["vendor_id"] = vendorID
	}

	if len(fields) == 0 {
		writeMessage(w, http.StatusBadRequest, "No fields to update")
		return
	}

	row, err := a.ingredients.UpdateByID(r.Context(), ingredientID, fields)
	if err != nil {
		writeInternalError(w, r, "failed to update ingredient", err)
		return
	}
	if row == nil {
		writeMessage(w, http.StatusNotFound, "Ingredient not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Ingredient updated successfully",
		"ingredient": row,
	})
}

func (a *API) deleteIngredient(w http.ResponseWriter, r *http.Request, ingredientID uint) {
	row, err := a.ingredients.RemoveByID(r.Context(), ingredientID)
	if err != nil {
		writeInternalError(w, r, "failed to delete ingredient", err)
		return
	}
	if row == nil {
		writeMessage(w, http.StatusNotFound, "Ingredient not found")
		return
	}

	if _, err := a.recipeIngredients.RemoveAllFor(r.Context(), "ingredient_id", ingredientID); err != nil {
		writeInternalError(w, r, "failed to remove ingredient from recipes", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
