package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/freelyform/freelyform/app"
	"github.com/freelyform/freelyform/httpx"
	"github.com/freelyform/freelyform/log"
	"github.com/freelyform/freelyform/model"
	"github.com/freelyform/freelyform/routes/middlewares"
	"github.com/freelyform/freelyform/validation"
)

// prefabInput shadows Active with a pointer so an omitted flag
// defaults to true instead of false.
type prefabInput struct {
	model.Prefab
	Active *bool `json:"active"`
}

func (in prefabInput) toPrefab() model.Prefab {
	p := in.Prefab
	p.Active = in.Active == nil || *in.Active
	return p
}

func CreatePrefab(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input prefabInput
		err := render.DecodeJSON(r.Body, &input)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		prefab := input.toPrefab()
		if err := validation.CheckPrefab(prefab); err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "prefab.check", "%s", err)
			return
		}
		prefab.UserID = middlewares.UserID(r)

		prefab, err = app.Prefabs.Create(r.Context(), prefab)
		if err != nil {
			writeDomainError(w, "db.insert_prefab", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, prefab)
	}
}

func ListPrefabs(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefabs, err := app.Prefabs.ListByUser(r.Context(), middlewares.UserID(r))
		if err != nil {
			writeDomainError(w, "db.get_prefabs", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"prefabs": prefabs,
		})
	}
}

func GetPrefabById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefabId := chi.URLParam(r, "id")
		withHidden := r.URL.Query().Get("withHidden") == "true"

		prefab, err := app.Prefabs.Get(r.Context(), prefabId, withHidden)
		if err != nil {
			writeDomainError(w, "db.get_prefab", err)
			return
		}

		render.JSON(w, r, prefab)
	}
}

func UpdatePrefab(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefabId := chi.URLParam(r, "id")

		prefab, err := app.Prefabs.Get(r.Context(), prefabId, true)
		if err != nil {
			writeDomainError(w, "db.get_prefab", err)
			return
		}
		if prefab.UserID != middlewares.UserID(r) {
			httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, "prefab.update.owner")
			return
		}

		var input prefabInput
		err = render.DecodeJSON(r.Body, &input)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		prefab.Name = input.Name
		prefab.Description = input.Description
		prefab.Tags = input.Tags
		if input.Active != nil {
			prefab.Active = *input.Active
		}
		if input.Groups != nil {
			prefab.Groups = input.Groups
		}

		if err := validation.CheckPrefab(prefab); err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "prefab.check", "%s", err)
			return
		}

		prefab, err = app.Prefabs.Update(r.Context(), prefab)
		if err != nil {
			writeDomainError(w, "db.update_prefab", err)
			return
		}

		render.JSON(w, r, prefab)
	}
}

func DeletePrefab(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefabId := chi.URLParam(r, "id")

		prefab, err := app.Prefabs.Get(r.Context(), prefabId, false)
		if err != nil {
			writeDomainError(w, "db.get_prefab", err)
			return
		}
		if prefab.UserID != middlewares.UserID(r) {
			httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, "prefab.delete.owner")
			return
		}

		if err := app.Prefabs.Delete(r.Context(), prefabId); err != nil {
			writeDomainError(w, "db.delete_prefab", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
