package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/resumedash/internal/logger"
	"github.com/resumedash/internal/toast"
)

// ListToasts 返回当前会话仍在显示的提示
func (a *API) ListToasts(c *gin.Context) {
	toasts := a.notifier(c).List()
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"toasts": toasts})
		return
	}
	a.renderHTML(c, http.StatusOK, "toasts.html", gin.H{"toasts": toasts})
}

// HideToast 手动关闭一条提示，未知 id 不报错
func (a *API) HideToast(c *gin.Context) {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidToastID)
		return
	}

	n := a.notifier(c)
	n.Hide(id)

	if isHTMX(c) {
		a.renderHTML(c, http.StatusOK, "toasts.html", gin.H{"toasts": n.List()})
		return
	}
	c.Status(http.StatusNoContent)
}

// StreamToasts 通过 websocket 推送提示的显示与隐藏
func (a *API) StreamToasts(c *gin.Context) {
	toast.ServeStream(c.Writer, c.Request, a.notifier(c), logger.FromContext(c.Request.Context()))
}
