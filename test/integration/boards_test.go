//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type boardBody struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type columnBody struct {
	ID       int64  `json:"id"`
	BoardID  int64  `json:"board_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"status":"ok"}`, readBody(t, resp))
}

func TestBoardAndColumnLifecycle(t *testing.T) {
	server, _ := newTestServer(t)

	createResp := doJSON(t, http.MethodPost, server.URL+"/boards", map[string]string{"name": "Project"}, "")
	require.Equal(t, http.StatusCreated, createResp.StatusCode)

	var board boardBody
	decodeInto(t, createResp, &board)
	require.Equal(t, "Project", board.Name)
	require.NotZero(t, board.ID)

	listResp := doJSON(t, http.MethodGet, server.URL+"/boards", nil, "")
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var boards []boardBody
	decodeInto(t, listResp, &boards)
	require.Len(t, boards, 1)

	boardURL := fmt.Sprintf("%s/boards/%d", server.URL, board.ID)

	var middle columnBody
	for i, name := range []string{"Todo", "Doing", "Done"} {
		colResp := doJSON(t, http.MethodPost, boardURL+"/columns", map[string]string{"name": name}, "")
		require.Equal(t, http.StatusCreated, colResp.StatusCode)

		var column columnBody
		decodeInto(t, colResp, &column)
		require.Equal(t, board.ID, column.BoardID)
		require.Equal(t, i+1, column.Position)
		if i == 1 {
			middle = column
		}
	}

	deleteResp := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/columns/%d", boardURL, middle.ID), nil, "")
	require.Equal(t, http.StatusNoContent, deleteResp.StatusCode)

	columnsResp := doJSON(t, http.MethodGet, boardURL+"/columns", nil, "")
	require.Equal(t, http.StatusOK, columnsResp.StatusCode)

	var columns []columnBody
	decodeInto(t, columnsResp, &columns)
	require.Len(t, columns, 2)
	require.Equal(t, 1, columns[0].Position)
	require.Equal(t, 3, columns[1].Position)

	renameResp := doJSON(t, http.MethodPut, fmt.Sprintf("%s/columns/%d", boardURL, columns[0].ID),
		map[string]string{"name": "Backlog"}, "")
	require.Equal(t, http.StatusOK, renameResp.StatusCode)

	var renamed columnBody
	decodeInto(t, renameResp, &renamed)
	require.Equal(t, "Backlog", renamed.Name)
	require.Equal(t, 1, renamed.Position)

	boardDeleteResp := doJSON(t, http.MethodDelete, boardURL, nil, "")
	require.Equal(t, http.StatusNoContent, boardDeleteResp.StatusCode)

	goneResp := doJSON(t, http.MethodGet, boardURL+"/columns", nil, "")
	require.Equal(t, http.StatusNotFound, goneResp.StatusCode)
}

func TestColumnRoutesUnknownIDs(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/boards/999/columns", nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/boards/999/columns", map[string]string{"name": "Todo"}, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	createResp := doJSON(t, http.MethodPost, server.URL+"/boards", map[string]string{"name": "Project"}, "")
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	var board boardBody
	decodeInto(t, createResp, &board)

	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/boards/%d/columns/999", server.URL, board.ID),
		map[string]string{"name": "Todo"}, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/boards/%d/columns/999", server.URL, board.ID), nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBoardValidation(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/boards", map[string]string{"name": "  "}, "")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/boards/not-a-number/columns", nil, "")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestBoardOwnerRecordedForAuthenticatedCaller(t *testing.T) {
	server, _ := newTestServer(t)

	registerResp, tokens := register(t, server.URL, "a@x.com", "pw")
	require.Equal(t, http.StatusCreated, registerResp.StatusCode)

	// Authenticated and anonymous creation both succeed on these routes.
	authed := doJSON(t, http.MethodPost, server.URL+"/boards", map[string]string{"name": "Mine"}, tokens.AccessToken)
	require.Equal(t, http.StatusCreated, authed.StatusCode)

	anon := doJSON(t, http.MethodPost, server.URL+"/boards", map[string]string{"name": "Anyone"}, "")
	require.Equal(t, http.StatusCreated, anon.StatusCode)

	listResp := doJSON(t, http.MethodGet, server.URL+"/boards", nil, "")
	var boards []boardBody
	decodeInto(t, listResp, &boards)
	require.Len(t, boards, 2)
}
