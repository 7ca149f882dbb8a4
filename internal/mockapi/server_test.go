package mockapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	e, err := NewServer(Options{JWTSecret: testSecret, TokenTTL: time.Hour, Logger: zerolog.Nop()})
	require.NoError(t, err)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+BasePath+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func login(t *testing.T, srv *httptest.Server, email, password string) domain.LoginResponse {
	t.Helper()
	resp, raw := call(t, srv, http.MethodPost, "/auth/login", "", domain.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out domain.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)

	out := login(t, srv, "admin@example.com", "password")
	assert.NotEmpty(t, out.Token)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, "John", out.User.FirstName)

	resp, raw := call(t, srv, http.MethodPost, "/auth/login", "", domain.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Invalid credentials","code":"UNAUTHORIZED"}`, string(raw))
}

func TestUsersRequireToken(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := call(t, srv, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUserLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "admin@example.com", "password").Token

	resp, raw := call(t, srv, http.MethodGet, "/users?search=jane", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list domain.UsersResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 10, list.Limit)

	resp, raw = call(t, srv, http.MethodPost, "/users", token, domain.CreateUserRequest{
		Email: "new@example.com", FirstName: "New", LastName: "Person", Password: "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var created domain.User
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.True(t, created.IsActive)

	name := "Renamed"
	resp, raw = call(t, srv, http.MethodPut, "/users/"+created.ID, token, domain.UpdateUserRequest{FirstName: &name})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Contains(t, string(raw), `"firstName":"Renamed"`)

	resp, raw = call(t, srv, http.MethodDelete, "/users/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"User deleted successfully"}`, string(raw))

	resp, raw = call(t, srv, http.MethodGet, "/users/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), "User not found")
}

func TestCreateValidation(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "admin@example.com", "password").Token

	resp, raw := call(t, srv, http.MethodPost, "/users", token, map[string]string{"email": "bad"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "VALIDATION_ERROR")
}

func TestDeleteRequiresAdmin(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "admin@example.com", "password").Token

	resp, raw := call(t, srv, http.MethodPost, "/users", admin, domain.CreateUserRequest{
		Email: "plain@example.com", FirstName: "Plain", LastName: "User", Password: "secret1", Role: domain.RoleUser,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	plain := login(t, srv, "plain@example.com", "secret1").Token
	resp, _ = call(t, srv, http.MethodDelete, "/users/2", plain, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = call(t, srv, http.MethodPost, "/users/bulk-delete", plain, domain.BulkDeleteRequest{IDs: []string{"2"}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBulkDelete(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "admin@example.com", "password").Token

	resp, raw := call(t, srv, http.MethodPost, "/users/bulk-delete", token, domain.BulkDeleteRequest{IDs: []string{"2", "404"}})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.JSONEq(t, `{"message":"Users deleted successfully","deleted":1}`, string(raw))
}

func TestRefresh(t *testing.T) {
	srv := newTestServer(t)
	first := login(t, srv, "admin@example.com", "password")

	resp, raw := call(t, srv, http.MethodPost, "/auth/refresh", "", domain.RefreshRequest{RefreshToken: first.RefreshToken})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out domain.RefreshResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.NotEqual(t, first.Token, out.Token)
	assert.NotEqual(t, first.RefreshToken, out.RefreshToken)

	resp, _ = call(t, srv, http.MethodGet, "/users", out.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRefreshRejectsWrongTokens(t *testing.T) {
	srv := newTestServer(t)
	first := login(t, srv, "admin@example.com", "password")

	resp, _ := call(t, srv, http.MethodPost, "/auth/refresh", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw := call(t, srv, http.MethodPost, "/auth/refresh", "", domain.RefreshRequest{RefreshToken: first.Token})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, string(raw))

	resp, _ = call(t, srv, http.MethodPost, "/auth/refresh", "", domain.RefreshRequest{RefreshToken: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, srv, http.MethodGet, "/users", first.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUploadAvatar(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "admin@example.com", "password").Token

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("avatar", "face.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png"))
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+BasePath+"/users/2/avatar", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user domain.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, "/avatars/2/face.png", user.Avatar)
}
