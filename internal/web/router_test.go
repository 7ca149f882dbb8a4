package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventops/rooming-dashboard/internal/apiclient"
	"github.com/eventops/rooming-dashboard/internal/core/service"
	"github.com/eventops/rooming-dashboard/internal/core/store"
	"github.com/eventops/rooming-dashboard/internal/infrastructure/fixtures"
	"github.com/eventops/rooming-dashboard/internal/infrastructure/storage"
	"github.com/eventops/rooming-dashboard/internal/mockapi"
	"github.com/eventops/rooming-dashboard/internal/query"
	"github.com/eventops/rooming-dashboard/internal/web/handler"
	"github.com/eventops/rooming-dashboard/internal/web/view"
)

type testApp struct {
	e       *echo.Echo
	session *store.AuthStore
	nav     *handler.LoginNavigator
}

// newTestApp wires the dashboard to a mock API the same way main does.
func newTestApp(t *testing.T, devMode bool, opts ...func(*Deps)) *testApp {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()

	api, err := mockapi.NewServer(mockapi.Options{JWTSecret: "test-secret", TokenTTL: time.Hour, Logger: log})
	require.NoError(t, err)
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	session := store.NewAuthStore(ctx, storage.NewFileSessionStorage(filepath.Join(t.TempDir(), "session.json")), log)
	nav := handler.NewLoginNavigator(log)
	client, err := apiclient.New(srv.URL+mockapi.BasePath, log, apiclient.WithSession(session, nav))
	require.NoError(t, err)

	qc := query.New(query.Config{StaleTime: time.Minute, CacheTime: time.Minute, Retry: query.NoRetry}, log)
	rfps := store.NewRFPStore()
	records, err := fixtures.Embedded().Load(ctx)
	require.NoError(t, err)
	rfps.SetRFPs(records)

	deps := Deps{
		Session:   session,
		RFPs:      rfps,
		Users:     query.NewUsers(qc, service.NewUserService(client, log)),
		Auth:      service.NewAuthService(client, session, log),
		Navigator: nav,
		Settings:  view.Settings{Env: "test", APIBaseURL: client.BaseURL(), SessionStore: "file"},
		DevMode:   devMode,
		Logger:    log,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	e, err := NewRouter(deps)
	require.NoError(t, err)

	return &testApp{e: e, session: session, nav: nav}
}

func (a *testApp) get(target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func (a *testApp) post(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	rec := a.post("/login", url.Values{"email": {"admin@example.com"}, "password": {"password"}})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	require.True(t, a.session.IsAuthenticated())
}

// ---- Board ----

func TestBoard_ShowsAllCards(t *testing.T) {
	app := newTestApp(t, false)

	rec := app.get("/")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Rooming List Management: Events")
	assert.Equal(t, 6, strings.Count(body, `<article class="card"`))
	assert.Contains(t, body, "tag-teal")
}

func TestBoard_SearchAndStatusFilter(t *testing.T) {
	app := newTestApp(t, false)

	rec := app.get("/dashboard?search=staff")
	assert.Equal(t, 2, strings.Count(rec.Body.String(), `<article class="card"`))

	rec = app.get("/dashboard?search=&filter=1&status=Confirmed")
	assert.Equal(t, 1, strings.Count(rec.Body.String(), `<article class="card"`))
	assert.Contains(t, rec.Body.String(), "UMF-Artists")

	rec = app.get("/dashboard?filter=1&status=confirmed")
	assert.Contains(t, rec.Body.String(), "No rooming lists match")
}

// ---- Auth ----

func TestProtectedPages_RedirectAnonymous(t *testing.T) {
	app := newTestApp(t, false)

	for _, target := range []string{"/users", "/settings"} {
		rec := app.get(target)
		assert.Equal(t, http.StatusFound, rec.Code, target)
		assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderLocation), "/login?next="), target)
	}
}

func TestLoginForm_PrefillsDemoAccountOnlyWithMockAPI(t *testing.T) {
	plain := newTestApp(t, false).get("/login")
	require.Equal(t, http.StatusOK, plain.Code)
	assert.NotContains(t, plain.Body.String(), `value="admin@example.com"`)

	mock := newTestApp(t, false, func(d *Deps) { d.Settings.MockAPI = true }).get("/login")
	require.Equal(t, http.StatusOK, mock.Code)
	assert.Contains(t, mock.Body.String(), `value="admin@example.com"`)
	assert.Contains(t, mock.Body.String(), `value="password"`)
}

func TestLogin_WrongPasswordStaysSignedOut(t *testing.T) {
	app := newTestApp(t, false)

	rec := app.post("/login", url.Values{"email": {"admin@example.com"}, "password": {"nope"}})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
	assert.False(t, app.session.IsAuthenticated())
}

func TestLogin_ThenLogout(t *testing.T) {
	app := newTestApp(t, false)
	app.login(t)

	rec := app.get("/users")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "John Doe")
	assert.Contains(t, rec.Body.String(), "Jane Smith")

	rec = app.post("/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.False(t, app.session.IsAuthenticated())
}

func TestExpiredToken_EndsSessionAndRedirects(t *testing.T) {
	app := newTestApp(t, false)
	app.login(t)
	user := app.session.User()
	app.session.Login(context.Background(), *user, "not-a-valid-token")

	rec := app.get("/users")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.False(t, app.session.IsAuthenticated())
	assert.Empty(t, app.session.Token())

	rec = app.get("/login")
	assert.Contains(t, rec.Body.String(), "Your session has expired")
	assert.False(t, app.nav.TakeExpired())
}

// ---- Users ----

func TestCreateUser_ListIsRefetched(t *testing.T) {
	app := newTestApp(t, false)
	app.login(t)
	require.NotContains(t, app.get("/users").Body.String(), "Ada Lovelace")

	rec := app.post("/users", url.Values{
		"email":     {"ada@example.com"},
		"firstName": {"Ada"},
		"lastName":  {"Lovelace"},
		"password":  {"secret1"},
		"role":      {"user"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	rec = app.get("/users?notice=created")
	assert.Contains(t, rec.Body.String(), "Ada Lovelace")
	assert.Contains(t, rec.Body.String(), "User created.")
}

func TestCreateUser_ValidationIsInline(t *testing.T) {
	app := newTestApp(t, false)
	app.login(t)

	rec := app.post("/users", url.Values{
		"email":     {"not-an-email"},
		"firstName": {"Ada"},
		"lastName":  {"Lovelace"},
		"password":  {"123"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validation failed")
	assert.Contains(t, rec.Body.String(), `value="Ada"`)
}

func TestUserDetail_NotFoundIsInline(t *testing.T) {
	app := newTestApp(t, false)
	app.login(t)

	rec := app.get("/users/does-not-exist")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestDeleteUser_DropsDetail(t *testing.T) {
	app := newTestApp(t, false)
	app.login(t)
	require.Equal(t, http.StatusOK, app.get("/users/2").Code)

	rec := app.post("/users/2/delete", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	assert.Equal(t, http.StatusNotFound, app.get("/users/2").Code)
}

func TestSettings_SaveProfileUpdatesSession(t *testing.T) {
	app := newTestApp(t, false)
	app.login(t)

	rec := app.post("/settings/profile", url.Values{"firstName": {"Johnny"}, "lastName": {"Doe"}})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	assert.Equal(t, "Johnny", app.session.User().FirstName)
	assert.Contains(t, app.get("/settings").Body.String(), "Johnny Doe")
}

// ---- Routing and error boundary ----

func TestUnknownPathRedirectsHome(t *testing.T) {
	app := newTestApp(t, false)

	rec := app.get("/no/such/page")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestErrorBoundary(t *testing.T) {
	cases := map[string]struct {
		devMode   bool
		showStack bool
	}{
		"dev":        {devMode: true, showStack: true},
		"production": {devMode: false, showStack: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := newTestApp(t, tc.devMode)
			app.e.GET("/boom", func(echo.Context) error { panic("kaboom") })

			rec := app.get("/boom?x=1")

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, "Oops! Something went wrong")
			assert.Contains(t, body, "Try again")
			assert.Contains(t, body, `href="/boom?x=1"`)
			assert.Equal(t, tc.showStack, strings.Contains(body, "kaboom"))
		})
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, false)
	assert.Equal(t, http.StatusOK, app.get("/health").Code)
	assert.Equal(t, http.StatusOK, app.get("/metrics").Code)
}
