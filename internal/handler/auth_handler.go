package handler

import (
	"encoding/json"
	"net/http"
	"net/mail"

	"branches-api/internal/middleware"
	"branches-api/internal/model"
	"branches-api/internal/service"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register accepts a JSON body and returns both token kinds on success.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, validationError("invalid JSON body"))
		return
	}

	if _, err := mail.ParseAddress(payload.Email); err != nil {
		writeError(w, validationError("invalid email address"))
		return
	}
	if payload.Password == "" {
		writeError(w, validationError("password is required"))
		return
	}

	tokens, err := h.service.Register(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokens)
}

// Login accepts form-encoded credentials with username carrying the email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if err := r.ParseForm(); err != nil {
		writeError(w, validationError("invalid form body"))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		writeError(w, validationError("username and password are required"))
		return
	}

	tokens, err := h.service.Login(r.Context(), username, password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, identity)
}
