package service

import (
	"context"
	"net/http"

	"github.com/resumedash/internal/apiclient"
	"github.com/resumedash/internal/model"
)

// SkillService covers /api/Developer/{id}/skill[s].
type SkillService struct {
	api Requester
}

func NewSkillService(api Requester) *SkillService {
	return &SkillService{api: api}
}

func skillBase(developerID string) (string, error) {
	id, err := requireID(developerID, "Developer ID is required")
	if err != nil {
		return "", err
	}
	return "/api/Developer/" + id + "/skill", nil
}

// ListWithProjects returns the developer's skills with their projects nested.
func (s *SkillService) ListWithProjects(ctx context.Context, developerID string) ([]model.DeveloperSkill, error) {
	base, err := skillBase(developerID)
	if err != nil {
		return nil, err
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodGet, base+"s/with-projects", nil, apiclient.WithOperation("skill.list_with_projects"))
	if err != nil {
		return nil, err
	}
	if err := requireData(env, "Failed to get developer skills"); err != nil {
		return nil, err
	}
	return apiclient.DecodeData[[]model.DeveloperSkill](env)
}

func (s *SkillService) Create(ctx context.Context, developerID string, input model.SkillInput) (model.CreatedSkill, error) {
	base, err := skillBase(developerID)
	if err != nil {
		return model.CreatedSkill{}, err
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodPost, base, input, apiclient.WithOperation("skill.create"))
	if err != nil {
		return model.CreatedSkill{}, err
	}
	if err := requireData(env, "Failed to create developer skill"); err != nil {
		return model.CreatedSkill{}, err
	}
	return apiclient.DecodeData[model.CreatedSkill](env)
}

func (s *SkillService) Update(ctx context.Context, developerID, skillID string, input model.SkillInput) error {
	base, err := skillBase(developerID)
	if err != nil {
		return err
	}
	id, err := requireID(skillID, "Skill ID is required")
	if err != nil {
		return err
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodPut, base+"/"+id, input, apiclient.WithOperation("skill.update"))
	if err != nil {
		return err
	}
	return requireSuccess(env, "Failed to update developer skill")
}

func (s *SkillService) Delete(ctx context.Context, developerID, skillID string) error {
	base, err := skillBase(developerID)
	if err != nil {
		return err
	}
	id, err := requireID(skillID, "Skill ID is required")
	if err != nil {
		return err
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodDelete, base+"/"+id, nil, apiclient.WithOperation("skill.delete"))
	if err != nil {
		return err
	}
	return requireSuccess(env, "Failed to delete developer skill")
}
