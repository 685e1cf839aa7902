package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"pantry/internal/dao"
	applog "pantry/internal/log"
)

// API bundles the entity DAOs behind the HTTP handlers. Dependencies are
// injected at construction time; handlers hold no process-wide state.
type API struct {
	ingredients       *dao.Ingredients
	recipes           *dao.Recipes
	recipeIngredients *dao.RecipeIngredients
	recipeCosts       *dao.RecipeCosts
	entities          *dao.Entities
	addresses         *dao.Addresses
}

// New builds the handler set over the supplied database handle.
func New(database *gorm.DB) *API {
	return &API{
		ingredients:       dao.NewIngredients(database),
		recipes:           dao.NewRecipes(database),
		recipeIngredients: dao.NewRecipeIngredients(database),
		recipeCosts:       dao.NewRecipeCosts(database),
		entities:          dao.NewEntities(database),
		addresses:         dao.NewAddresses(database),
	}
}

// Guard converts any panic escaping a handler into a logged 500 response.
func (a *API) Guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				applog.Error(r.Context(), "handler panicked", "path", r.URL.Path, "panic", recovered)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next(w, r)
	}
}
