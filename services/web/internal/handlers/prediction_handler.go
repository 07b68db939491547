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

type PredictionHandler struct {
	logger  *zap.Logger
	service services.PredictionService
	auth    services.AuthService
	cookie  middleware.CookieOptions
}

func NewPredictionHandler(logger *zap.Logger, svc services.PredictionService, auth services.AuthService, cookie middleware.CookieOptions) *PredictionHandler {
	return &PredictionHandler{logger: logger, service: svc, auth: auth, cookie: cookie}
}

// RegisterRoutes registers the main page routes behind the session guard.
func (h *PredictionHandler) RegisterRoutes(r *gin.Engine) {
	g := r.Group("", middleware.RequireSession())
	g.GET(pkg.MainPath, h.MainPage)
	g.POST("/predict", h.Predict)
	g.POST("/popup/close", h.ClosePopup)
	g.POST("/clear", h.ClearForm)
	g.POST("/logout", h.Logout)
}

func (h *PredictionHandler) MainPage(c *gin.Context) {
	h.render(c, views.MainPage{})
}

func (h *PredictionHandler) Predict(c *gin.Context) {
	var form views.ApplicantForm
	_ = c.ShouldBind(&form)

	popup, err := h.service.Predict(c.Request.Context(), c.GetString(pkg.TraceId), middleware.CurrentSession(c), form)
	if err != nil {
		h.render(c, views.MainPage{Notice: errorNotice(c, h.logger, err), Form: form})
		return
	}
	h.render(c, views.MainPage{Form: form, Popup: popup})
}

func (h *PredictionHandler) ClosePopup(c *gin.Context) {
	var form views.ApplicantForm
	_ = c.ShouldBind(&form)
	h.render(c, views.MainPage{Form: form, Popup: services.ClosePopup()})
}

func (h *PredictionHandler) ClearForm(c *gin.Context) {
	h.render(c, views.MainPage{Form: services.ClearForm()})
}

func (h *PredictionHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), c.GetString(pkg.TraceId), middleware.CurrentSession(c)); err != nil {
		h.render(c, views.MainPage{Notice: errorNotice(c, h.logger, err)})
		return
	}
	middleware.ClearSessionCookie(c, h.cookie)
	c.Redirect(http.StatusFound, pkg.LoginPath)
}

func (h *PredictionHandler) render(c *gin.Context, page views.MainPage) {
	page.UserName = middleware.CurrentSession(c).Name
	c.HTML(statusOf(page.Notice), templates.MainPage, page)
}
