package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/resumedash/internal/apiclient"
	"github.com/resumedash/internal/logger"
	"go.uber.org/zap"
)

// errorPage feeds error.html.
type errorPage struct {
	Heading  string
	Status   int
	Code     string
	Message  string
	Details  string
	ID       string
	BackHref string
}

func newErrorPage(title string, err error) errorPage {
	if apiErr, ok := apiclient.AsError(err); ok {
		status := apiErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusInternalServerError
		}
		return errorPage{
			Heading:  title,
			Status:   status,
			Code:     string(apiErr.Code),
			Message:  apiErr.Message,
			Details:  apiErr.Details,
			ID:       apiErr.ID,
			BackHref: "/dashboard",
		}
	}
	return errorPage{
		Heading:  "Unexpected Error",
		Status:   http.StatusInternalServerError,
		Message:  "An unexpected error occurred",
		Details:  "Unknown",
		BackHref: "/dashboard",
	}
}

// renderError 渲染读取失败时的错误页面。
func (a *API) renderError(c *gin.Context, title string, err error) {
	logger.FromContext(c.Request.Context()).Warn("page load failed", zap.String("page", title), zap.Error(err))
	c.Error(err)

	page := newErrorPage(title, err)
	if wantsJSON(c) {
		c.JSON(page.Status, gin.H{
			"error":   page.Message,
			"title":   page.Heading,
			"code":    page.Code,
			"details": page.Details,
			"id":      page.ID,
		})
		return
	}
	a.renderHTML(c, page.Status, "error.html", gin.H{
		"title": page.Heading,
		"error": page,
	})
}
