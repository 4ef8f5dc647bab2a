package routes

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/freelyform/freelyform/answer"
	"github.com/freelyform/freelyform/httpx"
	"github.com/freelyform/freelyform/log"
	"github.com/freelyform/freelyform/store"
	"github.com/freelyform/freelyform/validation"
)

// writeDomainError maps domain errors onto HTTP statuses. Validation
// failures travel as 400 with their message, everything unexpected is
// a logged 500.
func writeDomainError(w http.ResponseWriter, code string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.LogNotFound(w, code, nil)
	case errors.Is(err, store.ErrDuplicate):
		httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, code,
			"a response for this prefab and user already exists")
	case errors.Is(err, answer.ErrForbidden):
		httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, code)
	case errors.Is(err, answer.ErrBadQuery):
		httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, code, "%s", err)
	default:
		if _, ok := validation.KindOf(err); ok {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, code, "%s", err)
			return
		}
		httpx.LogInternalError(w, code, err)
	}
}
