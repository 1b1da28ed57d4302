package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"branches-api/internal/model"
	"branches-api/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors to HTTP statuses. Every authentication
// failure collapses into the same 401 body so the response never tells a
// caller whether the email, the password or the token was the problem.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	case errors.Is(err, model.ErrEmailTaken):
		status = http.StatusConflict
		body.Code = "ALREADY_EXISTS"
		body.Message = "Email already registered"
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrUnauthorized),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenInvalid),
		errors.Is(err, model.ErrUserNotFound):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Invalid credentials"
	case errors.Is(err, model.ErrBoardNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Board not found"
	case errors.Is(err, model.ErrColumnNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Column not found"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
		body.Code = "VALIDATION_ERROR"
		body.Message = "Invalid input"
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	writeJSON(w, status, model.ErrorResponse{Error: body})
}

func validationError(message string) *apierror.APIError {
	return apierror.New("VALIDATION_ERROR", message, "", http.StatusUnprocessableEntity)
}
