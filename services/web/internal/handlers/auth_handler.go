package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/creditpath-web/pkg"
	middleware "github.com/nimeshabuddhika/creditpath-web/pkg/middlewares"
	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/services"
	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/templates"
	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/views"
	"go.uber.org/zap"
)

const registerQuery = "register"

type AuthHandler struct {
	logger  *zap.Logger
	service services.AuthService
	cookie  middleware.CookieOptions
}

func NewAuthHandler(logger *zap.Logger, svc services.AuthService, cookie middleware.CookieOptions) *AuthHandler {
	return &AuthHandler{logger: logger, service: svc, cookie: cookie}
}

// RegisterRoutes registers the login page routes. Signed-in users are sent to the main page.
func (h *AuthHandler) RegisterRoutes(r *gin.Engine) {
	g := r.Group("", middleware.RedirectIfAuthenticated())
	g.GET(pkg.LoginPath, h.LoginPage)
	g.POST(pkg.LoginPath, h.Login)
	g.POST("/register", h.Register)
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.render(c, views.LoginPage{RegOpen: c.Query(registerQuery) == "1"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var creds views.Credentials
	_ = c.ShouldBind(&creds) // missing fields stay empty and fail validation

	sess, err := h.service.Login(c.Request.Context(), c.GetString(pkg.TraceId), middleware.CurrentSession(c), creds)
	if err != nil {
		h.render(c, views.LoginPage{Notice: errorNotice(c, h.logger, err), Email: creds.Email})
		return
	}

	middleware.SetSessionCookie(c, sess.ID, h.cookie)
	c.Redirect(http.StatusFound, pkg.MainPath)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var reg views.Registration
	_ = c.ShouldBind(&reg)

	err := h.service.Register(c.Request.Context(), c.GetString(pkg.TraceId), middleware.CurrentSession(c), reg)
	if err != nil {
		h.render(c, views.LoginPage{
			Notice:   errorNotice(c, h.logger, err),
			RegOpen:  true,
			RegName:  reg.Name,
			RegEmail: reg.Email,
		})
		return
	}

	h.render(c, views.LoginPage{
		Notice:  infoNotice(services.MsgRegistered),
		RegOpen: services.ToggleRegistrationPanel(true),
	})
}

func (h *AuthHandler) render(c *gin.Context, page views.LoginPage) {
	page.ToggleRegHref = pkg.LoginPath
	if !page.RegOpen {
		page.ToggleRegHref = pkg.LoginPath + "?" + registerQuery + "=1"
	}
	c.HTML(statusOf(page.Notice), templates.LoginPage, page)
}
