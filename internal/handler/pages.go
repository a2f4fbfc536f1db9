package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/resumedash/internal/blob"
	"github.com/resumedash/internal/logger"
	"github.com/resumedash/internal/toast"
	"github.com/resumedash/internal/view"
	"go.uber.org/zap"
)

// Home 跳转到面板
func (a *API) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/dashboard")
}

// ShowDashboard 渲染开发者列表
func (a *API) ShowDashboard(c *gin.Context) {
	developers, err := a.actions.Developers.List(c.Request.Context())
	if err != nil {
		a.renderError(c, "Something went wrong trying to fetch developers", err)
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"developers": developers})
		return
	}
	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title":      "Dashboard",
		"developers": developers,
	})
}

// ShowProfile 渲染开发者资料编辑页
func (a *API) ShowProfile(c *gin.Context) {
	ctx := c.Request.Context()
	developer, err := a.actions.Developers.Get(ctx, c.Param("id"))
	if err != nil {
		a.renderError(c, "Something went wrong trying to fetch developer", err)
		return
	}

	var image *blob.Image
	if a.images != nil {
		if dir, err := blob.ProfileDirectory(developer.ID); err == nil {
			image = a.currentImage(c, dir)
		}
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"developer": developer, "image": image})
		return
	}
	a.renderHTML(c, http.StatusOK, "profile.html", gin.H{
		"title":     "Edit Developer",
		"developer": developer,
		"image":     image,
	})
}

// ShowExperiences 渲染经历列表
func (a *API) ShowExperiences(c *gin.Context) {
	experiences, err := a.actions.Experiences.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.renderError(c, "Something went wrong trying to fetch Experiences", err)
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"experiences": experiences})
		return
	}
	a.renderHTML(c, http.StatusOK, "experiences.html", gin.H{
		"title":       "Experience",
		"experiences": experiences,
	})
}

// ShowProjects 渲染技能及其项目
func (a *API) ShowProjects(c *gin.Context) {
	ctx := c.Request.Context()
	skills, err := a.actions.Skills.ListWithProjects(ctx, c.Param("id"))
	if err != nil {
		a.renderError(c, "Something went wrong trying to fetch Projects", err)
		return
	}

	images := map[string]*blob.Image{}
	if a.images != nil {
		for _, skill := range skills {
			for _, project := range skill.Projects {
				dir, err := blob.ProjectDirectory(c.Param("id"), skill.ID, project.ID)
				if err != nil {
					continue
				}
				if img := a.currentImage(c, dir); img != nil {
					images[project.ID] = img
				}
			}
		}
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"skills": skills, "images": images})
		return
	}
	a.renderHTML(c, http.StatusOK, "projects.html", gin.H{
		"title":  "Projects",
		"skills": skills,
		"images": images,
	})
}

// ShowSocialMediaLinks 渲染社交链接
func (a *API) ShowSocialMediaLinks(c *gin.Context) {
	links, err := a.actions.SocialMedia.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.renderError(c, "Something went wrong trying to fetch social media links", err)
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"links": links, "available": view.AvailableNetworkOptions(links)})
		return
	}
	a.renderHTML(c, http.StatusOK, "social_media_links.html", gin.H{
		"title":     "Social Media Links:",
		"links":     links,
		"available": view.AvailableNetworkOptions(links),
	})
}

// currentImage 读取目录下的图片，失败时只提示不阻断页面。
func (a *API) currentImage(c *gin.Context, dir string) *blob.Image {
	img, err := a.images.Current(c.Request.Context(), dir)
	if err != nil {
		a.imageFailed(c, err)
		return nil
	}
	return img
}

func (a *API) imageFailed(c *gin.Context, err error) string {
	message := "An unexpected error occurred"
	var opErr *blob.OpError
	if errors.As(err, &opErr) {
		message = opErr.UserMessage()
	}
	logger.FromContext(c.Request.Context()).Warn("image operation failed", zap.Error(err))
	a.notifier(c).Show(message, toast.Error)
	return message
}
