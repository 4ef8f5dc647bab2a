package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/freelyform/freelyform/answer"
	"github.com/freelyform/freelyform/app"
	"github.com/freelyform/freelyform/export"
	"github.com/freelyform/freelyform/httpx"
	"github.com/freelyform/freelyform/log"
	"github.com/freelyform/freelyform/model"
	"github.com/freelyform/freelyform/routes/middlewares"
)

func SubmitAnswer(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefabId := chi.URLParam(r, "id")

		var submission model.AnswerGroup
		err := render.DecodeJSON(r.Body, &submission)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		saved, err := app.Answers.Submit(r.Context(), prefabId, middlewares.UserID(r), submission)
		if err != nil {
			writeDomainError(w, "answer.submit", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": saved.ID,
		})
	}
}

func ListAnswers(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefabId := chi.URLParam(r, "id")

		query, err := answer.ParseGeoQuery(r.URL.Query())
		if err != nil {
			writeDomainError(w, "request.geo_query", err)
			return
		}

		groups, err := app.Answers.List(r.Context(), prefabId, middlewares.UserID(r), query)
		if err != nil {
			writeDomainError(w, "answer.list", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"answers": groups,
		})
	}
}

func GetAnswerById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefabId := chi.URLParam(r, "id")
		answerId := chi.URLParam(r, "answerId")

		group, err := app.Answers.Get(r.Context(), prefabId, answerId, middlewares.UserID(r))
		if err != nil {
			writeDomainError(w, "answer.get", err)
			return
		}

		render.JSON(w, r, group)
	}
}

func ExportAnswers(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefabId := chi.URLParam(r, "id")

		prefab, err := app.Prefabs.Get(r.Context(), prefabId, false)
		if err != nil {
			writeDomainError(w, "db.get_prefab", err)
			return
		}

		groups, err := app.Answers.List(r.Context(), prefabId, middlewares.UserID(r), answer.GeoQuery{})
		if err != nil {
			writeDomainError(w, "answer.list", err)
			return
		}

		book, err := export.Workbook(prefab, groups)
		if err != nil {
			httpx.LogInternalError(w, "export.workbook", err)
			return
		}
		buf, err := book.WriteToBuffer()
		if err != nil {
			httpx.LogInternalError(w, "export.write", err)
			return
		}

		filename := fmt.Sprintf("%s_%s.xlsx", prefab.Name, time.Now().Format("20060102_150405"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
		w.Write(buf.Bytes())
	}
}
