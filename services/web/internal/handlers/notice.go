package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/creditpath-web/pkg"
	"go.uber.org/zap"
)

const infoCode = "INFO"

// errorNotice converts err into a page notice, logging it with the trace id.
func errorNotice(c *gin.Context, logger *zap.Logger, err error) *pkg.Notice {
	n := pkg.ToNotice(logger, c.GetString(pkg.TraceId), err)
	return &n
}

func infoNotice(msg string) *pkg.Notice {
	return &pkg.Notice{Status: http.StatusOK, Code: infoCode, Message: msg}
}

// statusOf is the HTTP status a page carrying n is rendered with.
func statusOf(n *pkg.Notice) int {
	if n == nil || n.Status == 0 {
		return http.StatusOK
	}
	return n.Status
}
