package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/resumedash/internal/form"
	"github.com/resumedash/internal/model"
	"github.com/resumedash/internal/toast"
	"github.com/resumedash/internal/validation"
)

func (a *API) notifier(c *gin.Context) *toast.Notifier {
	return a.toasts.For(c.GetString(sessionIDKey))
}

// submitForm 为当前请求构建一个提交控制器并按调用方类型返回结果。
// redirect 为成功后跳转的地址，可根据结果计算。
func submitForm[T any](a *API, c *gin.Context, cfg form.SubmissionConfig[T], redirect func(model.ActionResult) string) {
	values, ok := formValues(c)
	if !ok {
		return
	}

	release, ok := a.acquire(c.GetString(sessionIDKey) + " " + c.Request.Method + " " + c.Request.URL.Path)
	if !ok {
		respondError(c, http.StatusConflict, msgInProgress)
		return
	}

	var refreshed bool
	cfg.Notifier = a.notifier(c)
	cfg.Refresh = func() { refreshed = true }
	// 远端调用可能比请求活得更久，直到转换结束才释放
	cfg.OnSettled = release

	out, err := form.NewSubmission(cfg).Submit(c.Request.Context(), values)
	if !out.Submitted {
		release()
	}
	if errors.Is(err, form.ErrBusy) {
		respondError(c, http.StatusConflict, msgInProgress)
		return
	}

	// 未完成时转换仍在后台运行，不能读取 refreshed
	target, didRefresh := "", false
	if out.Completed {
		didRefresh = refreshed
		if out.Result.Success && redirect != nil {
			target = redirect(out.Result)
		}
	}
	a.respondOutcome(c, out, didRefresh, target)
}

// respondOutcome 把控制器的结果写回：JSON 调用方拿到结构化结果，
// HTMX 拿到片段与刷新头，普通表单被重定向。
func (a *API) respondOutcome(c *gin.Context, out form.Outcome, refreshed bool, redirect string) {
	switch {
	case out.Invalid():
		if wantsJSON(c) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"issues": out.Issues, "fieldErrors": fieldErrors(out.Issues)})
			return
		}
		status := http.StatusUnprocessableEntity
		if isHTMX(c) {
			status = http.StatusOK
		}
		a.renderHTML(c, status, "form_errors.html", gin.H{"issues": out.Issues})

	case !out.Completed:
		// 调用方已离开，结果只会以提示的形式出现
		if wantsJSON(c) {
			c.JSON(http.StatusAccepted, gin.H{"pending": true})
			return
		}
		if isHTMX(c) {
			a.renderHTML(c, http.StatusAccepted, "toasts.html", nil)
			return
		}
		redirectBack(c, "/dashboard")

	case !out.Result.Success:
		if wantsJSON(c) {
			c.JSON(http.StatusOK, out.Result)
			return
		}
		if isHTMX(c) {
			a.renderHTML(c, http.StatusOK, "toasts.html", nil)
			return
		}
		redirectBack(c, "/dashboard")

	default:
		if wantsJSON(c) {
			body := gin.H{"success": true, "message": out.Result.Message, "id": out.Result.ID}
			if redirect != "" {
				body["redirect"] = redirect
			}
			c.JSON(http.StatusOK, body)
			return
		}
		if isHTMX(c) {
			if redirect != "" {
				c.Header("HX-Redirect", redirect)
			} else if refreshed {
				c.Header("HX-Refresh", "true")
			}
			a.renderHTML(c, http.StatusOK, "toasts.html", nil)
			return
		}
		if redirect != "" {
			c.Redirect(http.StatusSeeOther, redirect)
			return
		}
		redirectBack(c, "/dashboard")
	}
}

func fieldErrors(issues []validation.Issue) map[string]string {
	out := make(map[string]string, len(issues))
	for _, issue := range issues {
		if _, exists := out[issue.Field()]; !exists {
			out[issue.Field()] = issue.Message
		}
	}
	return out
}

// CreateDeveloper 创建默认开发者并跳转到其资料页
func (a *API) CreateDeveloper(c *gin.Context) {
	submitForm(a, c, form.SubmissionConfig[struct{}]{
		Transform: func(url.Values) struct{} { return struct{}{} },
		Submit: func(ctx context.Context, _ struct{}) model.ActionResult {
			return a.actions.CreateDefaultDeveloper(ctx)
		},
	}, func(result model.ActionResult) string {
		if result.ID == "" {
			return ""
		}
		return "/developer/" + url.PathEscape(result.ID) + "/profile"
	})
}

// UpdateProfile 保存开发者资料
func (a *API) UpdateProfile(c *gin.Context) {
	id := c.Param("id")
	submitForm(a, c, form.SubmissionConfig[model.DeveloperProfileInput]{
		Validator: validation.New(validation.DeveloperProfileSchema()),
		Transform: form.DeveloperProfile,
		Submit: func(ctx context.Context, input model.DeveloperProfileInput) model.ActionResult {
			return a.actions.UpdateDeveloperProfile(ctx, id, input)
		},
	}, nil)
}

// CreateExperience 新增经历
func (a *API) CreateExperience(c *gin.Context) {
	id := c.Param("id")
	submitForm(a, c, form.SubmissionConfig[model.ExperienceInput]{
		Validator: validation.New(validation.ExperienceSchema()),
		Transform: form.Experience,
		Submit: func(ctx context.Context, input model.ExperienceInput) model.ActionResult {
			return a.actions.CreateExperience(ctx, id, input)
		},
	}, nil)
}

// UpdateExperience 更新经历
func (a *API) UpdateExperience(c *gin.Context) {
	id, expID := c.Param("id"), c.Param("expId")
	submitForm(a, c, form.SubmissionConfig[model.ExperienceInput]{
		Validator: validation.New(validation.ExperienceSchema()),
		Transform: form.Experience,
		Submit: func(ctx context.Context, input model.ExperienceInput) model.ActionResult {
			return a.actions.UpdateExperience(ctx, id, expID, input)
		},
	}, nil)
}

// CreateSkill 新增技能
func (a *API) CreateSkill(c *gin.Context) {
	id := c.Param("id")
	submitForm(a, c, form.SubmissionConfig[model.SkillInput]{
		Validator: validation.New(validation.SkillSchema()),
		Transform: form.Skill,
		Submit: func(ctx context.Context, input model.SkillInput) model.ActionResult {
			return a.actions.CreateSkill(ctx, id, input)
		},
	}, nil)
}

// UpdateSkill 更新技能
func (a *API) UpdateSkill(c *gin.Context) {
	id, skillID := c.Param("id"), c.Param("skillId")
	submitForm(a, c, form.SubmissionConfig[model.SkillInput]{
		Validator: validation.New(validation.SkillSchema()),
		Transform: form.Skill,
		Submit: func(ctx context.Context, input model.SkillInput) model.ActionResult {
			return a.actions.UpdateSkill(ctx, id, skillID, input)
		},
	}, nil)
}

// CreateProject 在技能下新增项目
func (a *API) CreateProject(c *gin.Context) {
	id, skillID := c.Param("id"), c.Param("skillId")
	submitForm(a, c, form.SubmissionConfig[model.ProjectInput]{
		Validator: validation.New(validation.ProjectSchema()),
		Transform: form.Project,
		Submit: func(ctx context.Context, input model.ProjectInput) model.ActionResult {
			return a.actions.CreateProject(ctx, id, skillID, input)
		},
	}, nil)
}

// UpdateProject 更新项目
func (a *API) UpdateProject(c *gin.Context) {
	id, skillID, projectID := c.Param("id"), c.Param("skillId"), c.Param("projectId")
	submitForm(a, c, form.SubmissionConfig[model.ProjectInput]{
		Validator: validation.New(validation.ProjectSchema()),
		Transform: form.Project,
		Submit: func(ctx context.Context, input model.ProjectInput) model.ActionResult {
			return a.actions.UpdateProject(ctx, id, skillID, projectID, input)
		},
	}, nil)
}

// CreateSocialMediaLink 添加社交链接
func (a *API) CreateSocialMediaLink(c *gin.Context) {
	id := c.Param("id")
	submitForm(a, c, form.SubmissionConfig[model.SocialMediaLinkInput]{
		Validator: validation.New(validation.SocialMediaLinkSchema()),
		Transform: form.SocialMediaLink,
		Submit: func(ctx context.Context, input model.SocialMediaLinkInput) model.ActionResult {
			return a.actions.CreateSocialMediaLink(ctx, id, input)
		},
	}, nil)
}
