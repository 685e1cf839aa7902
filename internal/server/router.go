package server

import (
	"context"
	"net/http"

	"pantry/internal/handlers"
	applog "pantry/internal/log"
)

func newRouter(api *handlers.API) http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	mux.HandleFunc("/healthz", handlers.Health)

	resources := map[string]http.HandlerFunc{
		"/ingredient": api.IngredientResource,
		"/recipe":     api.RecipeResource,
		"/entity":     api.EntityResource,
		"/address":    api.AddressResource,
	}
	for prefix, handler := range resources {
		guarded := api.Guard(handler)
		mux.Handle(prefix, guarded)
		mux.Handle(prefix+"/", guarded)
		applog.Debug(context.Background(), "route registered", "path", prefix)
	}

	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir("web/static"))))
	applog.Debug(context.Background(), "route registered", "path", "/assets/", "static", true)

	mux.HandleFunc("/", handlers.Home)
	applog.Debug(context.Background(), "route registered", "path", "/")

	return mux
}
