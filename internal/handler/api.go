package handler

import (
	"context"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/resumedash/internal/blob"
	"github.com/resumedash/internal/identity"
	"github.com/resumedash/internal/service"
	"github.com/resumedash/internal/toast"
	"github.com/resumedash/internal/view"
	"go.uber.org/zap"
)

// Authenticator is the part of the identity provider the handlers use.
type Authenticator interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*identity.Session, error)
	NeedsRefresh(s *identity.Session) bool
	Refresh(ctx context.Context, s *identity.Session) error
	LogoutURL(returnTo string) string
}

// ImageStore backs the profile and project image endpoints.
type ImageStore interface {
	Current(ctx context.Context, directory string) (*blob.Image, error)
	Replace(ctx context.Context, directory string, data []byte) (*blob.Image, error)
	Delete(ctx context.Context, directory string) error
}

// Options 汇总 API 需要的依赖。Images 为空时图片接口返回 503。
type Options struct {
	Actions  *service.Actions
	Auth     Authenticator
	Sessions identity.SessionStore
	Toasts   *toast.Registry
	Images   ImageStore
	Logger   *zap.Logger
	// SecureCookies marks the session cookie Secure; set it behind TLS.
	SecureCookies bool
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	actions  *service.Actions
	auth     Authenticator
	sessions identity.SessionStore
	toasts   *toast.Registry
	images   ImageStore
	log      *zap.Logger
	secure   bool

	// inflight 记录每个会话正在执行的表单或删除操作，重复提交直接返回 409。
	inflight sync.Map
}

// NewAPI constructs a handler set with shared services.
func NewAPI(opts Options) *API {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	toasts := opts.Toasts
	if toasts == nil {
		toasts = toast.NewRegistry()
	}
	return &API{
		actions:  opts.Actions,
		auth:     opts.Auth,
		sessions: opts.Sessions,
		toasts:   toasts,
		images:   opts.Images,
		log:      log,
		secure:   opts.SecureCookies,
	}
}

// Toasts exposes the per-session notifier registry for the prune loop.
func (a *API) Toasts() *toast.Registry {
	return a.toasts
}

// acquire marks key as running. The returned release must be called once
// the operation has settled; calling it again is a no-op.
func (a *API) acquire(key string) (func(), bool) {
	if _, loaded := a.inflight.LoadOrStore(key, struct{}{}); loaded {
		return nil, false
	}
	var once sync.Once
	return func() { once.Do(func() { a.inflight.Delete(key) }) }, true
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	developerID := c.Param("id")
	if _, exists := payload["nav"]; !exists {
		payload["nav"] = view.NavItems(developerID, c.Request.URL.Path)
	}
	if _, exists := payload["developerId"]; !exists {
		payload["developerId"] = developerID
	}
	if _, exists := payload["toasts"]; !exists {
		if sid := c.GetString(sessionIDKey); sid != "" {
			payload["toasts"] = a.toasts.For(sid).List()
		}
	}
	if _, exists := payload["user"]; !exists {
		if u, ok := currentUser(c); ok {
			payload["user"] = u
		}
	}
	if title, ok := payload["title"].(string); ok {
		payload["title"] = strings.TrimSpace(title)
	}

	c.HTML(status, template, payload)
}

// RenderHTML 在向模板渲染时自动附加导航、当前用户与待显示的提示。
func (a *API) RenderHTML(c *gin.Context, status int, template string, data gin.H) {
	a.renderHTML(c, status, template, data)
}
