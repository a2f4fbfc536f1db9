package service

import (
	"context"
	"net/http"

	"github.com/resumedash/internal/apiclient"
	"github.com/resumedash/internal/model"
)

// ExperienceService covers /api/developer/{id}/experience[s].
type ExperienceService struct {
	api Requester
}

func NewExperienceService(api Requester) *ExperienceService {
	return &ExperienceService{api: api}
}

func experiencePath(developerID string) (string, error) {
	id, err := requireID(developerID, "Developer ID is required")
	if err != nil {
		return "", err
	}
	return "/api/developer/" + id + "/experience", nil
}

func (s *ExperienceService) List(ctx context.Context, developerID string) ([]model.Experience, error) {
	base, err := experiencePath(developerID)
	if err != nil {
		return nil, err
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodGet, base+"s", nil, apiclient.WithOperation("experience.list"))
	if err != nil {
		return nil, err
	}
	if err := requireData(env, "Failed to get experiences"); err != nil {
		return nil, err
	}
	return apiclient.DecodeData[[]model.Experience](env)
}

func (s *ExperienceService) Create(ctx context.Context, developerID string, input model.ExperienceInput) (model.CreatedExperience, error) {
	base, err := experiencePath(developerID)
	if err != nil {
		return model.CreatedExperience{}, err
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodPost, base, input, apiclient.WithOperation("experience.create"))
	if err != nil {
		return model.CreatedExperience{}, err
	}
	if err := requireData(env, "Failed to create Experience"); err != nil {
		return model.CreatedExperience{}, err
	}
	return apiclient.DecodeData[model.CreatedExperience](env)
}

func (s *ExperienceService) Update(ctx context.Context, developerID, experienceID string, input model.ExperienceInput) error {
	base, err := experiencePath(developerID)
	if err != nil {
		return err
	}
	expID, err := requireID(experienceID, "Experience ID is required")
	if err != nil {
		return err
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodPut, base+"/"+expID, input, apiclient.WithOperation("experience.update"))
	if err != nil {
		return err
	}
	return requireSuccess(env, "Failed to update experience")
}

func (s *ExperienceService) Delete(ctx context.Context, developerID, experienceID string) error {
	base, err := experiencePath(developerID)
	if err != nil {
		return err
	}
	expID, err := requireID(experienceID, "Experience ID is required")
	if err != nil {
		return err
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodDelete, base+"/"+expID, nil, apiclient.WithOperation("experience.delete"))
	if err != nil {
		return err
	}
	return requireSuccess(env, "Failed to delete experience")
}
