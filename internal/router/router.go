package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/resumedash/internal/handler"
	"github.com/resumedash/internal/logger"
	"github.com/resumedash/internal/metrics"
	"github.com/resumedash/internal/view"
	"go.uber.org/zap"
)

const sessionCookieName = "resumedash_session"

// Deps 汇总路由需要的依赖。
type Deps struct {
	API           *handler.API
	Logger        *zap.Logger
	SessionSecret string
	SecureCookies bool
	TemplateGlob  string
	StaticDir     string
	// HTMLRender 不为空时替代模板加载，测试使用。
	HTMLRender render.HTMLRender
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(deps.Logger))
	r.Use(metrics.Middleware())

	// 配置会话中间件
	store := cookie.NewStore([]byte(deps.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   deps.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookieName, store))

	// 加载模板并添加自定义函数
	if deps.HTMLRender != nil {
		r.HTMLRender = deps.HTMLRender
	} else {
		r.SetFuncMap(view.FuncMap())
		r.LoadHTMLGlob(deps.TemplateGlob)
	}

	// 静态文件服务
	if deps.StaticDir != "" {
		r.Static("/static", deps.StaticDir)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := deps.API

	r.GET("/auth/login", api.Login)
	r.GET("/auth/callback", api.Callback)
	r.GET("/auth/logout", api.Logout)
	r.POST("/auth/logout", api.Logout)
	r.GET("/unauthorized", api.Unauthorized)

	// 需要 Admin 角色的路由
	auth := r.Group("")
	auth.Use(api.AuthRequired())
	{
		auth.GET("/", api.Home)
		auth.GET("/dashboard", api.ShowDashboard)
		auth.POST("/developers", api.CreateDeveloper)

		auth.GET("/developer/:id/profile", api.ShowProfile)
		auth.POST("/developer/:id/profile", api.UpdateProfile)
		registerDelete(auth, "/developer/:id/delete", api.DeveloperDelete())
		registerImage(auth, "/developer/:id/profile/image", api.ProfileImage())

		auth.GET("/developer/:id/experiences", api.ShowExperiences)
		auth.POST("/developer/:id/experiences", api.CreateExperience)
		auth.POST("/developer/:id/experiences/:expId", api.UpdateExperience)
		registerDelete(auth, "/developer/:id/experiences/:expId/delete", api.ExperienceDelete())

		auth.GET("/developer/:id/projects", api.ShowProjects)
		auth.POST("/developer/:id/skills", api.CreateSkill)
		auth.POST("/developer/:id/skills/:skillId", api.UpdateSkill)
		registerDelete(auth, "/developer/:id/skills/:skillId/delete", api.SkillDelete())
		auth.POST("/developer/:id/skills/:skillId/projects", api.CreateProject)
		auth.POST("/developer/:id/skills/:skillId/projects/:projectId", api.UpdateProject)
		registerDelete(auth, "/developer/:id/skills/:skillId/projects/:projectId/delete", api.ProjectDelete())
		registerImage(auth, "/developer/:id/skills/:skillId/projects/:projectId/image", api.ProjectImage())

		auth.GET("/developer/:id/social-media-links", api.ShowSocialMediaLinks)
		auth.POST("/developer/:id/social-media-links", api.CreateSocialMediaLink)
		registerDelete(auth, "/developer/:id/social-media-links/:network/delete", api.SocialMediaLinkDelete())

		auth.GET("/toasts", api.ListToasts)
		auth.GET("/toasts/stream", api.StreamToasts)
		auth.POST("/toasts/:id/hide", api.HideToast)
	}

	return r
}

func registerDelete(g gin.IRoutes, path string, h handler.DeleteHandlers) {
	// 打开弹窗会写入会话，所以不用 GET
	g.POST(path+"/open", h.Open)
	g.POST(path, h.Execute)
	g.POST(path+"/cancel", h.Cancel)
}

func registerImage(g gin.IRoutes, path string, h handler.ImageHandlers) {
	g.GET(path, h.Show)
	g.POST(path, h.Upload)
	g.DELETE(path, h.Delete)
	// 普通表单无法发送 DELETE
	g.POST(path+"/delete", h.Delete)
}
