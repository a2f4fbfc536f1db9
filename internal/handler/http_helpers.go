package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// JSON 调用方看到的错误信息
const (
	msgInProgress         = "Another submission is still in progress, please wait"
	msgDeleteInProgress   = "The delete is still in progress, please wait"
	msgDeleteNotConfirmed = "Confirm the delete before executing it"
	msgSessionSave        = "Failed to save the session"
	msgInvalidToastID     = "Invalid toast id"
	msgInvalidJSON        = "Request body is not valid JSON"
	msgInvalidForm        = "Could not parse the form"
	msgImagesDisabled     = "Image storage is not configured"
	msgInvalidImagePath   = "Invalid image path"
	msgMissingImage       = "Choose an image to upload"
	msgUnreadableImage    = "Could not read the uploaded image"
	msgInvalidState       = "Sign-in state is invalid, please sign in again"
	msgMissingCode        = "Authorization code is missing"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseInt64Param(c *gin.Context, key string) (int64, error) {
	raw := c.Param(key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return id, nil
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

// formValues 读取表单字段；JSON 请求体会被展开成同名字段。
func formValues(c *gin.Context) (url.Values, bool) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var body map[string]interface{}
		if !bindJSON(c, &body, msgInvalidJSON) {
			return nil, false
		}
		values := url.Values{}
		for key, value := range body {
			if value == nil {
				continue
			}
			values.Set(key, fmt.Sprint(value))
		}
		return values, true
	}

	if err := c.Request.ParseForm(); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidForm)
		return nil, false
	}
	return c.Request.PostForm, true
}

// redirectBack 返回来源页面，来源缺失或跨站时回到 fallback。
func redirectBack(c *gin.Context, fallback string) {
	target := fallback
	if ref := c.GetHeader("Referer"); ref != "" {
		if u, err := url.Parse(ref); err == nil && (u.Host == "" || u.Host == c.Request.Host) && strings.HasPrefix(u.Path, "/") {
			target = u.RequestURI()
		}
	}
	c.Redirect(http.StatusSeeOther, target)
}
