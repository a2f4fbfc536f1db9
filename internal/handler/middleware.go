package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/resumedash/internal/apiclient"
	"github.com/resumedash/internal/identity"
	"github.com/resumedash/internal/logger"
	"go.uber.org/zap"
)

// AuthRequired 校验会话、按需刷新令牌并要求 Admin 角色。
// 通过后请求上下文携带访问令牌与带用户标识的 logger。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		log := logger.FromContext(ctx)

		session := sessions.Default(c)
		sid, _ := session.Get(cookieSessionID).(string)
		if sid == "" {
			a.abortRedirect(c, "/auth/login", http.StatusUnauthorized)
			return
		}

		signedIn, err := a.sessions.Get(ctx, sid)
		if err != nil {
			if !errors.Is(err, identity.ErrSessionNotFound) {
				log.Warn("load session failed", zap.Error(err))
			}
			a.abortRedirect(c, "/auth/login", http.StatusUnauthorized)
			return
		}

		if a.auth.NeedsRefresh(signedIn) {
			if err := a.auth.Refresh(ctx, signedIn); err != nil {
				log.Info("token refresh failed", zap.String("user_id", signedIn.Subject), zap.Error(err))
				if err := a.sessions.Delete(ctx, sid); err != nil && !errors.Is(err, identity.ErrSessionNotFound) {
					log.Warn("delete session failed", zap.Error(err))
				}
				a.abortRedirect(c, "/auth/login", http.StatusUnauthorized)
				return
			}
			if err := a.sessions.Save(ctx, signedIn); err != nil {
				c.Error(err)
			}
		}

		if !signedIn.HasRole(identity.AdminRole) {
			a.abortRedirect(c, "/unauthorized", http.StatusForbidden)
			return
		}

		roles := signedIn.Roles
		if roles == nil {
			roles = []string{}
		}
		c.Set(sessionIDKey, sid)
		c.Set("user_id", signedIn.Subject)
		c.Set(userContextKey, User{Subject: signedIn.Subject, Email: signedIn.Email, Roles: roles})

		reqLog := log.With(zap.String("user_id", signedIn.Subject))
		ctx = apiclient.WithAccessToken(ctx, signedIn.AccessToken)
		ctx = logger.WithContext(ctx, reqLog)
		c.Request = c.Request.WithContext(ctx)

		encodedRoles, _ := json.Marshal(roles)
		c.Header("X-User-Email", signedIn.Email)
		c.Header("X-User-Id", signedIn.Subject)
		c.Header("X-User-Roles", string(encodedRoles))

		c.Next()
	}
}

// abortRedirect 对 HTMX 使用 HX-Redirect，对 JSON 调用方返回 status。
func (a *API) abortRedirect(c *gin.Context, target string, status int) {
	switch {
	case isHTMX(c):
		c.Header("HX-Redirect", target)
		c.AbortWithStatus(http.StatusNoContent)
	case wantsJSON(c):
		c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status), "redirect": target})
	default:
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}
