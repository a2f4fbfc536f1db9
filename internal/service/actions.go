package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/resumedash/internal/logger"
	"github.com/resumedash/internal/model"
	"go.uber.org/zap"
)

const unexpectedErrorMessage = "An unexpected error occurred"

// Actions wraps the resource services into mutations that never fail with
// an error: every outcome becomes a model.ActionResult.
type Actions struct {
	Developers  *DeveloperService
	Experiences *ExperienceService
	Skills      *SkillService
	Projects    *ProjectService
	SocialMedia *SocialMediaLinkService
}

// NewActions builds every resource service on top of one requester.
func NewActions(api Requester) *Actions {
	return &Actions{
		Developers:  NewDeveloperService(api),
		Experiences: NewExperienceService(api),
		Skills:      NewSkillService(api),
		Projects:    NewProjectService(api),
		SocialMedia: NewSocialMediaLinkService(api),
	}
}

func succeeded(message, id string) model.ActionResult {
	return model.ActionResult{Success: true, Message: message, ID: id}
}

func failed(ctx context.Context, action string, err error) model.ActionResult {
	logger.FromContext(ctx).Warn("action failed", zap.String("action", action), zap.Error(err))

	message := unexpectedErrorMessage
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		message = err.Error()
	}
	return model.ActionResult{Success: false, Message: message}
}

func (a *Actions) CreateDefaultDeveloper(ctx context.Context) model.ActionResult {
	created, err := a.Developers.CreateDefault(ctx)
	if err != nil {
		return failed(ctx, "developer.create_default", err)
	}
	return succeeded("Developer created successfully", created.DeveloperID)
}

func (a *Actions) UpdateDeveloperProfile(ctx context.Context, developerID string, input model.DeveloperProfileInput) model.ActionResult {
	if err := a.Developers.Update(ctx, developerID, input); err != nil {
		return failed(ctx, "developer.update", err)
	}
	return succeeded("Developer profile updated successfully", developerID)
}

func (a *Actions) DeleteDeveloper(ctx context.Context, developerID string) model.ActionResult {
	if err := a.Developers.Delete(ctx, developerID); err != nil {
		return failed(ctx, "developer.delete", err)
	}
	return succeeded("Developer deleted successfully", developerID)
}

func (a *Actions) CreateExperience(ctx context.Context, developerID string, input model.ExperienceInput) model.ActionResult {
	created, err := a.Experiences.Create(ctx, developerID, input)
	if err != nil {
		return failed(ctx, "experience.create", err)
	}
	return succeeded("Experience created successfully", created.ExperienceID)
}

func (a *Actions) UpdateExperience(ctx context.Context, developerID, experienceID string, input model.ExperienceInput) model.ActionResult {
	if err := a.Experiences.Update(ctx, developerID, experienceID, input); err != nil {
		return failed(ctx, "experience.update", err)
	}
	return succeeded("Experience updated successfully", experienceID)
}

func (a *Actions) DeleteExperience(ctx context.Context, developerID, experienceID string) model.ActionResult {
	if err := a.Experiences.Delete(ctx, developerID, experienceID); err != nil {
		return failed(ctx, "experience.delete", err)
	}
	return succeeded(fmt.Sprintf("Experience with id %s deleted successfully", experienceID), experienceID)
}

func (a *Actions) CreateSkill(ctx context.Context, developerID string, input model.SkillInput) model.ActionResult {
	created, err := a.Skills.Create(ctx, developerID, input)
	if err != nil {
		return failed(ctx, "skill.create", err)
	}
	return succeeded(fmt.Sprintf("Skill with id: %s added successfully", created.SkillID), created.SkillID)
}

func (a *Actions) UpdateSkill(ctx context.Context, developerID, skillID string, input model.SkillInput) model.ActionResult {
	if err := a.Skills.Update(ctx, developerID, skillID, input); err != nil {
		return failed(ctx, "skill.update", err)
	}
	return succeeded(fmt.Sprintf("Skill with id: %s updated successfully", skillID), skillID)
}

func (a *Actions) DeleteSkill(ctx context.Context, developerID, skillID string) model.ActionResult {
	if err := a.Skills.Delete(ctx, developerID, skillID); err != nil {
		return failed(ctx, "skill.delete", err)
	}
	return succeeded(fmt.Sprintf("Skill with id: %s deleted successfully", skillID), skillID)
}

func (a *Actions) CreateProject(ctx context.Context, developerID, skillID string, input model.ProjectInput) model.ActionResult {
	created, err := a.Projects.Create(ctx, developerID, skillID, input)
	if err != nil {
		return failed(ctx, "project.create", err)
	}
	return succeeded("Project created successfully", created.ProjectID)
}

func (a *Actions) UpdateProject(ctx context.Context, developerID, skillID, projectID string, input model.ProjectInput) model.ActionResult {
	if err := a.Projects.Update(ctx, developerID, skillID, projectID, input); err != nil {
		return failed(ctx, "project.update", err)
	}
	return succeeded("Project updated successfully", projectID)
}

func (a *Actions) DeleteProject(ctx context.Context, developerID, skillID, projectID string) model.ActionResult {
	if err := a.Projects.Delete(ctx, developerID, skillID, projectID); err != nil {
		return failed(ctx, "project.delete", err)
	}
	return succeeded(fmt.Sprintf("Project with id: %s deleted successfully", projectID), projectID)
}

func (a *Actions) CreateSocialMediaLink(ctx context.Context, developerID string, input model.SocialMediaLinkInput) model.ActionResult {
	created, err := a.SocialMedia.Create(ctx, developerID, input)
	if err != nil {
		return failed(ctx, "social_media.create", err)
	}
	return succeeded("Social media link created successfully", created.SocialMediaLinkID)
}

func (a *Actions) DeleteSocialMediaLink(ctx context.Context, developerID, network string) model.ActionResult {
	if err := a.SocialMedia.Delete(ctx, developerID, network); err != nil {
		return failed(ctx, "social_media.delete", err)
	}
	return succeeded(fmt.Sprintf("Social media link for %s deleted successfully", network), "")
}
