package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/freelyform/freelyform/app"
	"github.com/freelyform/freelyform/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/v1", apiRouter(app))
	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	authed := middlewares.Authenticated(app.TokenSecret)
	identified := middlewares.MaybeAuthenticated(app.TokenSecret)

	api.Route("/prefabs", func(r chi.Router) {
		// public surface
		r.Get("/{id}", GetPrefabById(app))
		r.With(identified).Post("/{id}/answers", SubmitAnswer(app))

		// owner surface
		r.Group(func(r chi.Router) {
			r.Use(authed)

			r.Get("/", ListPrefabs(app))
			r.Post("/", CreatePrefab(app))
			r.Patch("/{id}", UpdatePrefab(app))
			r.Delete("/{id}", DeletePrefab(app))

			r.Get("/{id}/answers", ListAnswers(app))
			r.Get("/{id}/answers/export", ExportAnswers(app))
			r.Get("/{id}/answers/{answerId}", GetAnswerById(app))
		})
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}
