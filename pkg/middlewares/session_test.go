package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/creditpath-web/pkg"
	"github.com/nimeshabuddhika/creditpath-web/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingStore struct{ session.Store }

func (failingStore) Load(context.Context, string) (session.Session, error) {
	return session.Session{}, assert.AnError
}

func newEngine(store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceID(zap.NewNop()), Session(store, CookieOptions{Secure: true}, zap.NewNop()))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, CurrentSession(c).Name)
	})
	r.GET("/private", RequireSession(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/public", RedirectIfAuthenticated(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func serve(r *gin.Engine, path, sid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: pkg.SessionCookie, Value: sid})
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSession_IssuesCookie(t *testing.T) {
	rec := serve(newEngine(session.NewMemoryStore()), "/whoami", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(pkg.HeaderTraceId))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, pkg.SessionCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestSession_LoadsExisting(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), session.Session{ID: "sid", Token: "T", Name: "Ann"}))

	rec := serve(newEngine(store), "/whoami", "sid")
	assert.Equal(t, "Ann", rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestGuards(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), session.Session{ID: "in", Token: "T"}))
	r := newEngine(store)

	rec := serve(r, "/private", "out")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, pkg.LoginPath, rec.Header().Get("Location"))
	assert.Equal(t, http.StatusOK, serve(r, "/private", "in").Code)

	rec = serve(r, "/public", "in")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, pkg.MainPath, rec.Header().Get("Location"))
	assert.Equal(t, http.StatusOK, serve(r, "/public", "out").Code)
}

func TestSession_StoreFailureIsSignedOut(t *testing.T) {
	r := newEngine(failingStore{})
	assert.Equal(t, http.StatusFound, serve(r, "/private", "sid").Code)
}
