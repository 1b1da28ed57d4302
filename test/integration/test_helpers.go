//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"branches-api/internal/config"
	"branches-api/internal/handler"
	"branches-api/internal/middleware"
	"branches-api/internal/repository"
	"branches-api/internal/router"
	"branches-api/internal/service"
)

const testJWTSecret = "test-secret"

// newTestServer wires the full stack over the in-memory stores, mirroring
// what app.New does for the memory backend.
func newTestServer(t *testing.T) (*httptest.Server, *repository.MemoryUserStore) {
	t.Helper()

	cfg := &config.Config{
		ServerPort:      "8000",
		RequestTimeout:  30 * time.Second,
		StoreBackend:    config.StoreBackendMemory,
		JWTSecret:       testJWTSecret,
		JWTAccessTTL:    15 * time.Minute,
		JWTRefreshTTL:   168 * time.Hour,
		AuthRecheckUser: true,
		CORSOrigins:     []string{"*"},
	}

	userStore := repository.NewMemoryUserStore()
	boardStore := repository.NewMemoryBoardStore()

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	authService := service.NewAuthService(userStore, tokenService, cfg.AuthRecheckUser)
	boardService := service.NewBoardService(boardStore)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	server := httptest.NewServer(router.New(cfg, authMiddleware, router.Handlers{
		Auth:  handler.NewAuthHandler(authService),
		Board: handler.NewBoardHandler(boardService),
	}))
	t.Cleanup(server.Close)

	return server, userStore
}

type tokenBody struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func register(t *testing.T, serverURL string, email string, password string) (*http.Response, tokenBody) {
	t.Helper()

	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)

	resp, err := http.Post(serverURL+"/auth/register", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var tokens tokenBody
	if resp.StatusCode == http.StatusCreated {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&tokens))
	}
	return resp, tokens
}

func login(t *testing.T, serverURL string, email string, password string) (*http.Response, tokenBody) {
	t.Helper()

	resp, err := http.PostForm(serverURL+"/auth/login", url.Values{
		"username": {email},
		"password": {password},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var tokens tokenBody
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&tokens))
	}
	return resp, tokens
}

func doJSON(t *testing.T, method string, url string, body any, accessToken string) *http.Response {
	t.Helper()

	var reader io.Reader = bytes.NewReader(nil)
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}
