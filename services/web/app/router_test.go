package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/creditpath-web/pkg"
	middleware "github.com/nimeshabuddhika/creditpath-web/pkg/middlewares"
	"github.com/nimeshabuddhika/creditpath-web/pkg/session"
	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testApp struct {
	router *gin.Engine
	store  *session.MemoryStore
}

// fakeBackend answers like the credit-risk API.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)

		switch r.URL.Path {
		case backend.LoginEndpoint:
			if body["password"] != "secret" {
				_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": false, "detail": "bad creds"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "token": "T", "name": "Nimesha"})
		case backend.RegisterEndpoint:
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "message": "Registered"})
		case backend.PredictEndpoint:
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"prediction": "Approved", "percentage": 87, "emoji": "✅", "name": body["name"],
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T, backendURL string) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client, err := backend.NewClient(backend.Config{BaseURL: backendURL})
	require.NoError(t, err)

	store := session.NewMemoryStore()
	r, err := NewRouter(Dependencies{
		Logger: zap.NewNop(),
		Client: client,
		Store:  store,
		Guard:  pkg.NewLocalBusyGuard(),
		Cookie: middleware.CookieOptions{},
	})
	require.NoError(t, err)
	return &testApp{router: r, store: store}
}

func (a *testApp) do(method, path string, form url.Values, sid string) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: pkg.SessionCookie, Value: sid})
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) signIn(t *testing.T, sid, name string) {
	t.Helper()
	require.NoError(t, a.store.Save(context.Background(), session.Session{ID: sid, Token: "T", Name: name}))
}

func sessionCookie(rec *httptest.ResponseRecorder) string {
	var id string
	for _, c := range rec.Result().Cookies() {
		if c.Name == pkg.SessionCookie {
			id = c.Value
		}
	}
	return id
}

func TestHealth(t *testing.T) {
	a := newTestApp(t, fakeBackend(t).URL)
	rec := a.do(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMainPage_WithoutTokenRedirectsToLogin(t *testing.T) {
	a := newTestApp(t, fakeBackend(t).URL)

	rec := a.do(http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.NotEmpty(t, sessionCookie(rec))

	// a name alone is not enough
	require.NoError(t, a.store.Save(context.Background(), session.Session{ID: "sid", Name: "N"}))
	rec = a.do(http.MethodGet, "/", nil, "sid")
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = a.do(http.MethodPost, "/predict", url.Values{}, "sid")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLoginPage_WithTokenRedirectsToMain(t *testing.T) {
	a := newTestApp(t, fakeBackend(t).URL)
	a.signIn(t, "sid", "N")

	rec := a.do(http.MethodGet, "/login", nil, "sid")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLoginPage_RegistrationToggle(t *testing.T) {
	a := newTestApp(t, fakeBackend(t).URL)

	rec := a.do(http.MethodGet, "/login", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="loginForm"`)
	assert.NotContains(t, rec.Body.String(), `id="regArea"`)
	assert.Contains(t, rec.Body.String(), `href="/login?register=1"`)

	rec = a.do(http.MethodGet, "/login?register=1", nil, "")
	assert.Contains(t, rec.Body.String(), `id="regArea"`)
	assert.Contains(t, rec.Body.String(), `href="/login"`)
}

func TestLogin_SuccessStoresSessionAndRedirects(t *testing.T) {
	a := newTestApp(t, fakeBackend(t).URL)

	rec := a.do(http.MethodPost, "/login", url.Values{"email": {"a@b.c"}, "password": {"secret"}}, "")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	sid := sessionCookie(rec)
	require.NotEmpty(t, sid)
	sess, err := a.store.Load(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, "T", sess.Token)
	assert.Equal(t, "Nimesha", sess.Name)

	rec = a.do(http.MethodGet, "/", nil, sid)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<span id="userName">Nimesha</span>`)
	assert.NotContains(t, rec.Body.String(), `id="popupOverlay"`)
}

func TestLogin_RotatesSessionID(t *testing.T) {
	a := newTestApp(t, fakeBackend(t).URL)

	rec := a.do(http.MethodPost, "/login", url.Values{"email": {"a@b.c"}, "password": {"secret"}}, "before")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.NotEqual(t, "before", sessionCookie(rec))
}

func TestLogin_Failures(t *testing.T) {
	a := newTestApp(t, fakeBackend(t).URL)

	rec := a.do(http.MethodPost, "/login", url.Values{"email": {"  "}, "password": {""}}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Enter email and password")
	assert.Zero(t, a.store.Len())

	rec = a.do(http.MethodPost, "/login", url.Values{"email": {"a@b.c"}, "password": {"wrong"}}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad creds")
	assert.Contains(t, rec.Body.String(), `value="a@b.c"`)
	assert.Zero(t, a.store.Len())
}

func TestLogin_BackendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	a := newTestApp(t, srv.URL)

	rec := a.do(http.MethodPost, "/login", url.Values{"email": {"a@b.c"}, "password": {"secret"}}, "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Backend unreachable")
}

func TestRegister(t *testing.T) {
	a := newTestApp(t, fakeBackend(t).URL)

	rec := a.do(http.MethodPost, "/register", url.Values{"name": {"Ann"}, "email": {""}, "password": {"pw"}}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please fill all")
	assert.Contains(t, rec.Body.String(), `id="regArea"`)
	assert.Contains(t, rec.Body.String(), `value="Ann"`)

	rec = a.do(http.MethodPost, "/register", url.Values{"name": {"Ann"}, "email": {"a@b.c"}, "password": {"pw"}}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Registered successfully. Please login.")
	assert.NotContains(t, rec.Body.String(), `id="regArea"`)
	assert.Zero(t, a.store.Len())
}

func TestPredict_RendersPopup(t *testing.T) {
	a := newTestApp(t, fakeBackend(t).URL)
	a.signIn(t, "sid", "N")

	rec := a.do(http.MethodPost, "/predict", url.Values{"b_name": {"Alice"}, "b_age": {"41"}}, "sid")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="popupOverlay"`)
	assert.Contains(t, body, `<div id="p_emoji">✅</div>`)
	assert.Contains(t, body, `<div id="p_name">Alice</div>`)
	assert.Contains(t, body, "Prediction: Approved")
	assert.Contains(t, body, "Probability: 87%")
	assert.Contains(t, body, `value="41"`)
}

func TestPredict_InvalidNumberShowsNotice(t *testing.T) {
	a := newTestApp(t, fakeBackend(t).URL)
	a.signIn(t, "sid", "N")

	rec := a.do(http.MethodPost, "/predict", url.Values{"b_age": {"abc"}}, "sid")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid age")
	assert.NotContains(t, rec.Body.String(), `id="popupOverlay"`)
}

func TestClosePopupAndClearForm(t *testing.T) {
	a := newTestApp(t, fakeBackend(t).URL)
	a.signIn(t, "sid", "N")

	rec := a.do(http.MethodPost, "/popup/close", url.Values{"b_name": {"Alice"}}, "sid")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `id="popupOverlay"`)
	assert.Contains(t, rec.Body.String(), `value="Alice"`)

	rec = a.do(http.MethodPost, "/clear", url.Values{"b_name": {"Alice"}}, "sid")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `value="Alice"`)
}

func TestLogout(t *testing.T) {
	a := newTestApp(t, fakeBackend(t).URL)
	a.signIn(t, "sid", "N")

	rec := a.do(http.MethodPost, "/logout", nil, "sid")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, pkg.SessionCookie, cookies[len(cookies)-1].Name)
	assert.Negative(t, cookies[len(cookies)-1].MaxAge)

	sess, err := a.store.Load(context.Background(), "sid")
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())

	rec = a.do(http.MethodGet, "/", nil, "sid")
	assert.Equal(t, http.StatusFound, rec.Code)
}
