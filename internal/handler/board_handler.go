package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"branches-api/internal/middleware"
	"branches-api/internal/model"
	"branches-api/internal/service"
)

type BoardHandler struct {
	service *service.BoardService
}

func NewBoardHandler(service *service.BoardService) *BoardHandler {
	return &BoardHandler{service: service}
}

func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	boards, err := h.service.ListBoards(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, boards)
}

func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, validationError("invalid JSON body"))
		return
	}

	// Anonymous callers may create boards; the owner is recorded only when a
	// valid token was presented.
	owner, _ := middleware.IdentityFromContext(r.Context())

	board, err := h.service.CreateBoard(r.Context(), payload.Name, owner)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, board)
}

func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.DeleteBoard(r.Context(), boardID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BoardHandler) ListColumns(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	columns, err := h.service.ListColumns(r.Context(), boardID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, columns)
}

func (h *BoardHandler) CreateColumn(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	boardID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.ColumnRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, validationError("invalid JSON body"))
		return
	}

	column, err := h.service.AddColumn(r.Context(), boardID, payload.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, column)
}

func (h *BoardHandler) UpdateColumn(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	boardID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	columnID, err := pathID(r, "cid")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.ColumnRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, validationError("invalid JSON body"))
		return
	}

	column, err := h.service.RenameColumn(r.Context(), boardID, columnID, payload.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, column)
}

func (h *BoardHandler) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	columnID, err := pathID(r, "cid")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.RemoveColumn(r.Context(), boardID, columnID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validationError("invalid path parameter: " + name)
	}
	return id, nil
}
