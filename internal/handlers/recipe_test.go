package handlers

import (
	"fmt"
	"math"
	"net/http"
	"testing"

	"pantry/models"
)

func TestCreateRecipe(t *testing.T) {
	api, db := newTestAPI(t)

	rr := doJSON(t, api.RecipeResource, http.MethodPost, "/recipe",
		`{"name":" Caprese Salad ","description":"Tomato and mozzarella.","menu_price":14.5}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	payload := decodeMap(t, rr)
	if payload["message"] != "Recipe created successfully" {
		t.Fatalf("unexpected message %q", payload["message"])
	}
	created := payload["recipe"].(map[string]any)
	if created["name"] != "Caprese Salad" {
		t.Fatalf("expected trimmed name, got %q", created["name"])
	}
	if created["menu_price"] != 14.5 {
		t.Fatalf("expected menu price 14.5, got %v", created["menu_price"])
	}

	if count := countRows(t, db, &models.Recipe{}); count != 1 {
		t.Fatalf("expected 1 recipe, got %d", count)
	}
}

func TestCreateRecipeValidation(t *testing.T) {
	api, _ := newTestAPI(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing name", `{"menu_price":10}`, "Name is required"},
		{"blank name", `{"name":"  "}`, "Name is required"},
		{"negative price", `{"name":"Soup","menu_price":-4}`, "Menu price must be a positive number"},
		{"price wrong type", `{"name":"Soup","menu_price":"ten"}`, "Menu price must be a positive number"},
		{"description wrong type", `{"name":"Soup","description":7}`, "Description must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, api.RecipeResource, http.MethodPost, "/recipe", tt.body)
			assertMessage(t, rr, http.StatusBadRequest, tt.message)
		})
	}
}

func TestShowRecipeIncludesIngredientLines(t *testing.T) {
	api, db := newTestAPI(t)
	vendor := seedVendor(t, db)
	tomatoes := seedIngredient(t, db, vendor.ID, "Roma Tomatoes", 2.25)
	recipe := seedRecipe(t, db, "Caprese Salad", nil)

	line := models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: tomatoes.ID, Quantity: 0.75, Unit: "lb"}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("failed to seed recipe line: %v", err)
	}

	rr := doJSON(t, api.RecipeResource, http.MethodGet, fmt.Sprintf("/recipe/%d", recipe.ID), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	payload := decodeMap(t, rr)
	lines, ok := payload["ingredients"].([]any)
	if !ok || len(lines) != 1 {
		t.Fatalf("expected 1 preloaded ingredient line, got %v", payload["ingredients"])
	}
}

func TestShowRecipeInvalidAndMissing(t *testing.T) {
	api, _ := newTestAPI(t)

	rr := doJSON(t, api.RecipeResource, http.MethodGet, "/recipe/zero", "")
	assertMessage(t, rr, http.StatusBadRequest, "Invalid recipe ID")

	rr = doJSON(t, api.RecipeResource, http.MethodGet, "/recipe/31337", "")
	assertMessage(t, rr, http.StatusNotFound, "Recipe not found")
}

func TestUpdateRecipe(t *testing.T) {
	api, db := newTestAPI(t)
	recipe := seedRecipe(t, db, "Caprese Salad", nil)

	rr := doJSON(t, api.RecipeResource, http.MethodPut,
		fmt.Sprintf("/recipe/%d", recipe.ID), `{"menu_price":16}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	payload := decodeMap(t, rr)
	updated := payload["recipe"].(map[string]any)
	if updated["menu_price"] != 16.0 {
		t.Fatalf("expected menu price 16, got %v", updated["menu_price"])
	}
}

func TestDeleteRecipeRemovesLines(t *testing.T) {
	api, db := newTestAPI(t)
	vendor := seedVendor(t, db)
	tomatoes := seedIngredient(t, db, vendor.ID, "Roma Tomatoes", 2.25)
	recipe := seedRecipe(t, db, "Caprese Salad", nil)

	line := models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: tomatoes.ID, Quantity: 0.75, Unit: "lb"}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("failed to seed recipe line: %v", err)
	}

	rr := doJSON(t, api.RecipeResource, http.MethodDelete, fmt.Sprintf("/recipe/%d", recipe.ID), "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rr.Code, rr.Body.String())
	}
	if count := countRows(t, db, &models.RecipeIngredient{}); count != 0 {
		t.Fatalf("expected recipe lines removed, %d remain", count)
	}
}

func TestRecipeCostTotalsAndMargin(t *testing.T) {
	api, db := newTestAPI(t)
	vendor := seedVendor(t, db)
	tomatoes := seedIngredient(t, db, vendor.ID, "Roma Tomatoes", 2.0)
	mozzarella := seedIngredient(t, db, vendor.ID, "Mozzarella", 6.0)
	menuPrice := 14.5
	recipe := seedRecipe(t, db, "Caprese Salad", &menuPrice)

	lines := []models.RecipeIngredient{
		{RecipeID: recipe.ID, IngredientID: tomatoes.ID, Quantity: 0.5, Unit: "lb"},
		{RecipeID: recipe.ID, IngredientID: mozzarella.ID, Quantity: 0.25, Unit: "lb"},
	}
	for _, line := range lines {
		lineCopy := line
		if err := db.Create(&lineCopy).Error; err != nil {
			t.Fatalf("failed to seed recipe line: %v", err)
		}
	}

	rr := doJSON(t, api.RecipeResource, http.MethodGet, fmt.Sprintf("/recipe/%d/cost", recipe.ID), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	payload := decodeMap(t, rr)

	// 0.5*2.00 + 0.25*6.00
	wantTotal := 2.5
	if total := payload["total_cost"].(float64); math.Abs(total-wantTotal) > 1e-9 {
		t.Fatalf("expected total cost %.2f, got %v", wantTotal, total)
	}
	wantMargin := menuPrice - wantTotal
	if margin := payload["margin"].(float64); math.Abs(margin-wantMargin) > 1e-9 {
		t.Fatalf("expected margin %.2f, got %v", wantMargin, margin)
	}
	if got := payload["lines"].([]any); len(got) != 2 {
		t.Fatalf("expected 2 cost lines, got %d", len(got))
	}
}

func TestRecipeCostMissingRecipe(t *testing.T) {
	api, _ := newTestAPI(t)

	rr := doJSON(t, api.RecipeResource, http.MethodGet, "/recipe/500/cost", "")
	assertMessage(t, rr, http.StatusNotFound, "Recipe not found")
}

func TestRecipeCostEmptyRecipe(t *testing.T) {
	api, db := newTestAPI(t)
	recipe := seedRecipe(t, db, "Water", nil)

	rr := doJSON(t, api.RecipeResource, http.MethodGet, fmt.Sprintf("/recipe/%d/cost", recipe.ID), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	payload := decodeMap(t, rr)
	if total := payload["total_cost"].(float64); total != 0 {
		t.Fatalf("expected zero total for empty recipe, got %v", total)
	}
	if _, present := payload["margin"]; present {
		t.Fatalf("expected margin omitted without a menu price, got %v", payload["margin"])
	}
}
