package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/resumedash/internal/identity"
	"github.com/resumedash/internal/logger"
	"go.uber.org/zap"
)

const (
	// cookie 会话中的键
	cookieSessionID  = "sid"
	cookieOAuthState = "oauth_state"

	// gin 上下文中的键
	sessionIDKey   = "session_id"
	userContextKey = "current_user"
)

// User is the signed-in administrator shown in templates.
type User struct {
	Subject string
	Email   string
	Roles   []string
}

func currentUser(c *gin.Context) (User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return User{}, false
	}
	u, ok := value.(User)
	return u, ok
}

// Login 生成 state 并跳转到身份提供方
func (a *API) Login(c *gin.Context) {
	state := identity.NewState()

	session := sessions.Default(c)
	session.Set(cookieOAuthState, state)
	if err := session.Save(); err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, msgSessionSave)
		return
	}

	c.Redirect(http.StatusFound, a.auth.AuthCodeURL(state))
}

// Callback 校验 state，换取令牌并建立会话
func (a *API) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	session := sessions.Default(c)
	expected, _ := session.Get(cookieOAuthState).(string)
	session.Delete(cookieOAuthState)

	if reason := c.Query("error"); reason != "" {
		log.Warn("identity provider rejected login",
			zap.String("error", reason),
			zap.String("description", c.Query("error_description")))
		_ = session.Save()
		a.renderUnauthorized(c)
		return
	}

	if expected == "" || c.Query("state") != expected {
		_ = session.Save()
		respondError(c, http.StatusBadRequest, msgInvalidState)
		return
	}

	code := c.Query("code")
	if code == "" {
		_ = session.Save()
		respondError(c, http.StatusBadRequest, msgMissingCode)
		return
	}

	signedIn, err := a.auth.Exchange(ctx, code)
	if err != nil {
		log.Warn("token exchange failed", zap.Error(err))
		_ = session.Save()
		c.Error(err)
		a.renderHTML(c, http.StatusBadGateway, "error.html", gin.H{
			"title": "Sign-in failed",
			"error": errorPage{
				Heading:  "Sign-in failed",
				Status:   http.StatusBadGateway,
				Message:  "The identity provider did not accept the sign-in",
				Details:  err.Error(),
				BackHref: "/auth/login",
			},
		})
		return
	}

	if err := a.sessions.Save(ctx, signedIn); err != nil {
		log.Error("persist session failed", zap.Error(err))
		_ = session.Save()
		respondError(c, http.StatusInternalServerError, msgSessionSave)
		return
	}

	session.Set(cookieSessionID, signedIn.ID)
	if err := session.Save(); err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, msgSessionSave)
		return
	}

	log.Info("signed in", zap.String("user_id", signedIn.Subject), zap.Strings("roles", signedIn.Roles))
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout 清除本地会话并跳转到身份提供方的登出地址
func (a *API) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	session := sessions.Default(c)
	if sid, ok := session.Get(cookieSessionID).(string); ok && sid != "" {
		if err := a.sessions.Delete(ctx, sid); err != nil && !errors.Is(err, identity.ErrSessionNotFound) {
			logger.FromContext(ctx).Warn("delete session failed", zap.Error(err))
		}
		a.toasts.Drop(sid)
	}
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true, Secure: a.secure, SameSite: http.SameSiteLaxMode})
	if err := session.Save(); err != nil {
		c.Error(err)
	}

	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	target := a.auth.LogoutURL(scheme + "://" + c.Request.Host + "/")

	if isHTMX(c) {
		c.Header("HX-Redirect", target)
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// Unauthorized 渲染无权限页面
func (a *API) Unauthorized(c *gin.Context) {
	a.renderUnauthorized(c)
}

func (a *API) renderUnauthorized(c *gin.Context) {
	if wantsJSON(c) {
		respondError(c, http.StatusForbidden, "Not Authorized")
		return
	}
	a.renderHTML(c, http.StatusForbidden, "unauthorized.html", gin.H{
		"title":   "Not Authorized",
		"message": "Sorry, please contact an administrator to get access to this website",
	})
}
