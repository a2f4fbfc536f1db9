package service

import (
	"context"
	"net/http"

	"github.com/resumedash/internal/apiclient"
	"github.com/resumedash/internal/model"
)

// ProjectService covers /api/developer/{id}/skill/{skillId}/project.
type ProjectService struct {
	api Requester
}

func NewProjectService(api Requester) *ProjectService {
	return &ProjectService{api: api}
}

func projectBase(developerID, skillID string) (string, error) {
	devID, err := requireID(developerID, "Developer ID is required")
	if err != nil {
		return "", err
	}
	sID, err := requireID(skillID, "Skill ID is required")
	if err != nil {
		return "", err
	}
	return "/api/developer/" + devID + "/skill/" + sID + "/project", nil
}

func (s *ProjectService) Create(ctx context.Context, developerID, skillID string, input model.ProjectInput) (model.CreatedProject, error) {
	base, err := projectBase(developerID, skillID)
	if err != nil {
		return model.CreatedProject{}, err
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodPost, base, input, apiclient.WithOperation("project.create"))
	if err != nil {
		return model.CreatedProject{}, err
	}
	if err := requireData(env, "Failed to create Project"); err != nil {
		return model.CreatedProject{}, err
	}
	return apiclient.DecodeData[model.CreatedProject](env)
}

func (s *ProjectService) Update(ctx context.Context, developerID, skillID, projectID string, input model.ProjectInput) error {
	base, err := projectBase(developerID, skillID)
	if err != nil {
		return err
	}
	id, err := requireID(projectID, "Project ID is required")
	if err != nil {
		return err
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodPut, base+"/"+id, input, apiclient.WithOperation("project.update"))
	if err != nil {
		return err
	}
	return requireSuccess(env, "Failed to update project")
}

func (s *ProjectService) Delete(ctx context.Context, developerID, skillID, projectID string) error {
	base, err := projectBase(developerID, skillID)
	if err != nil {
		return err
	}
	id, err := requireID(projectID, "Project ID is required")
	if err != nil {
		return err
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodDelete, base+"/"+id, nil, apiclient.WithOperation("project.delete"))
	if err != nil {
		return err
	}
	return requireSuccess(env, "Failed to delete project")
}
