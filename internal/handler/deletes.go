package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/resumedash/internal/form"
	"github.com/resumedash/internal/modal"
	"github.com/resumedash/internal/model"
)

const modalKeyPrefix = "modal:"

// sessionModalState 把确认弹窗的开关保存在 cookie 会话里，跨请求保持。
// 调用方负责在写响应前 Save。
type sessionModalState struct {
	session sessions.Session
	key     string
}

func (s sessionModalState) Get() bool {
	open, _ := s.session.Get(s.key).(bool)
	return open
}

func (s sessionModalState) Set(open bool) {
	if open {
		s.session.Set(s.key, true)
		return
	}
	s.session.Delete(s.key)
}

// deleteTarget describes one deletable resource of the current request.
type deleteTarget struct {
	key         string
	title       string
	description string
	action      string
	run         form.DeleteFunc
	// redirect, when set, replaces the refresh after a successful delete.
	redirect string
}

// DeleteHandlers are the open, confirm and cancel endpoints of one resource.
type DeleteHandlers struct {
	Open    gin.HandlerFunc
	Execute gin.HandlerFunc
	Cancel  gin.HandlerFunc
}

func (a *API) deleteHandlers(target func(c *gin.Context) deleteTarget) DeleteHandlers {
	return DeleteHandlers{
		Open:    func(c *gin.Context) { a.openDelete(c, target(c)) },
		Execute: func(c *gin.Context) { a.executeDelete(c, target(c)) },
		Cancel:  func(c *gin.Context) { a.cancelDelete(c, target(c)) },
	}
}

// DeveloperDelete 删除开发者，成功后回到面板
func (a *API) DeveloperDelete() DeleteHandlers {
	return a.deleteHandlers(func(c *gin.Context) deleteTarget {
		id := c.Param("id")
		return deleteTarget{
			key:         "developer:" + id,
			title:       "Delete developer?",
			description: "Are you sure you want to delete this developer? This action cannot be undone.",
			action:      "/developer/" + url.PathEscape(id) + "/delete",
			run: func(ctx context.Context) model.ActionResult {
				return a.actions.DeleteDeveloper(ctx, id)
			},
			redirect: "/dashboard",
		}
	})
}

func (a *API) ExperienceDelete() DeleteHandlers {
	return a.deleteHandlers(func(c *gin.Context) deleteTarget {
		id, expID := c.Param("id"), c.Param("expId")
		return deleteTarget{
			key:         "experience:" + id + ":" + expID,
			title:       "Delete experience?",
			description: "Are you sure you want to delete this experience? This action cannot be undone.",
			action:      "/developer/" + url.PathEscape(id) + "/experiences/" + url.PathEscape(expID) + "/delete",
			run: func(ctx context.Context) model.ActionResult {
				return a.actions.DeleteExperience(ctx, id, expID)
			},
		}
	})
}

func (a *API) SkillDelete() DeleteHandlers {
	return a.deleteHandlers(func(c *gin.Context) deleteTarget {
		id, skillID := c.Param("id"), c.Param("skillId")
		return deleteTarget{
			key:         "skill:" + id + ":" + skillID,
			title:       "Delete skill?",
			description: "Deleting this skill also removes its projects. This action cannot be undone.",
			action:      "/developer/" + url.PathEscape(id) + "/skills/" + url.PathEscape(skillID) + "/delete",
			run: func(ctx context.Context) model.ActionResult {
				return a.actions.DeleteSkill(ctx, id, skillID)
			},
		}
	})
}

func (a *API) ProjectDelete() DeleteHandlers {
	return a.deleteHandlers(func(c *gin.Context) deleteTarget {
		id, skillID, projectID := c.Param("id"), c.Param("skillId"), c.Param("projectId")
		return deleteTarget{
			key:         "project:" + id + ":" + skillID + ":" + projectID,
			title:       "Delete project?",
			description: "Are you sure you want to delete this project? This action cannot be undone.",
			action: "/developer/" + url.PathEscape(id) + "/skills/" + url.PathEscape(skillID) +
				"/projects/" + url.PathEscape(projectID) + "/delete",
			run: func(ctx context.Context) model.ActionResult {
				return a.actions.DeleteProject(ctx, id, skillID, projectID)
			},
		}
	})
}

func (a *API) SocialMediaLinkDelete() DeleteHandlers {
	return a.deleteHandlers(func(c *gin.Context) deleteTarget {
		id, network := c.Param("id"), c.Param("network")
		return deleteTarget{
			key:         "social:" + id + ":" + network,
			title:       "Delete " + network + " link?",
			description: "Are you sure you want to delete this social media link? This action cannot be undone.",
			action:      "/developer/" + url.PathEscape(id) + "/social-media-links/" + url.PathEscape(network) + "/delete",
			run: func(ctx context.Context) model.ActionResult {
				return a.actions.DeleteSocialMediaLink(ctx, id, network)
			},
		}
	})
}

// newDelete 构建当前请求的删除控制器，refreshed 与 navigated 仅在结果完成后可读。
func (a *API) newDelete(c *gin.Context, target deleteTarget, refreshed, navigated *bool, settled func()) (*form.Delete, sessions.Session) {
	session := sessions.Default(c)
	m := modal.New(modal.Options{State: sessionModalState{session: session, key: modalKeyPrefix + target.key}})

	cfg := form.DeleteConfig{
		Delete:             target.run,
		ConfirmTitle:       target.title,
		ConfirmDescription: target.description,
		Modal:              m,
		Notifier:           a.notifier(c),
		OnSettled:          settled,
		Refresh: func() {
			if refreshed != nil {
				*refreshed = true
			}
		},
	}
	if target.redirect != "" {
		cfg.OnSuccess = func() {
			if navigated != nil {
				*navigated = true
			}
		}
	}
	return form.NewDelete(cfg), session
}

func (a *API) renderDeleteModal(c *gin.Context, d *form.Delete, target deleteTarget, message string) {
	a.renderHTML(c, http.StatusOK, "delete_modal.html", gin.H{
		"open":        d.IsOpen(),
		"title":       d.ConfirmTitle(),
		"description": d.ConfirmDescription(),
		"action":      target.action,
		"error":       message,
	})
}

// openDelete 打开确认弹窗
func (a *API) openDelete(c *gin.Context, target deleteTarget) {
	d, session := a.newDelete(c, target, nil, nil, nil)
	d.Open()
	if err := session.Save(); err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, msgSessionSave)
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"open": true, "title": d.ConfirmTitle(), "description": d.ConfirmDescription()})
		return
	}
	a.renderDeleteModal(c, d, target, "")
}

// cancelDelete 关闭确认弹窗
func (a *API) cancelDelete(c *gin.Context, target deleteTarget) {
	d, session := a.newDelete(c, target, nil, nil, nil)
	d.Close()
	if err := session.Save(); err != nil {
		c.Error(err)
	}

	switch {
	case wantsJSON(c):
		c.JSON(http.StatusOK, gin.H{"open": false})
	case isHTMX(c):
		a.renderDeleteModal(c, d, target, "")
	default:
		redirectBack(c, "/dashboard")
	}
}

// executeDelete 在弹窗已打开时执行删除
func (a *API) executeDelete(c *gin.Context, target deleteTarget) {
	release, ok := a.acquire(c.GetString(sessionIDKey) + " delete " + target.key)
	if !ok {
		respondError(c, http.StatusConflict, msgDeleteInProgress)
		return
	}

	var refreshed, navigated bool
	d, session := a.newDelete(c, target, &refreshed, &navigated, release)

	out, err := d.Execute(c.Request.Context())
	if !out.Submitted {
		release()
	}
	switch {
	case errors.Is(err, form.ErrNotConfirmed):
		respondError(c, http.StatusConflict, msgDeleteNotConfirmed)
		return
	case errors.Is(err, form.ErrBusy):
		respondError(c, http.StatusConflict, msgDeleteInProgress)
		return
	}

	if !out.Completed {
		a.respondOutcome(c, out, false, "")
		return
	}
	if err := session.Save(); err != nil {
		c.Error(err)
	}

	if !out.Result.Success {
		switch {
		case wantsJSON(c):
			c.JSON(http.StatusOK, out.Result)
		case isHTMX(c):
			a.renderDeleteModal(c, d, target, out.Result.Message)
		default:
			redirectBack(c, "/dashboard")
		}
		return
	}

	redirect := ""
	if navigated {
		redirect = target.redirect
	}
	a.respondOutcome(c, out, refreshed, redirect)
}
