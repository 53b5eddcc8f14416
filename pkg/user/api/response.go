package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	apperrors "github.com/redcore/yabutech-api/pkg/errors"
)

// writeError renders a service error as JSON. Validation failures carry
// field-level messages under "errors"; everything else is message-only with
// the status mapped from the error code. Internal causes are never leaked.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"message": "Server Error"})
		return
	}

	body := map[string]interface{}{"message": appErr.Message}
	if appErr.Code == apperrors.ErrCodeInternal {
		body["message"] = "Server Error"
	}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}

	render.Status(r, appErr.HTTPStatusCode())
	render.JSON(w, r, body)
}

func writeBadRequest(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, map[string]string{"message": "unable to parse body"})
}
