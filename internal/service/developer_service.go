package service

import (
	"context"
	"net/http"

	"github.com/resumedash/internal/apiclient"
	"github.com/resumedash/internal/model"
)

// DeveloperService covers /api/Developers and /api/Developer.
type DeveloperService struct {
	api Requester
}

func NewDeveloperService(api Requester) *DeveloperService {
	return &DeveloperService{api: api}
}

// List returns every developer without nested resources.
func (s *DeveloperService) List(ctx context.Context) ([]model.Developer, error) {
	return s.list(ctx, "/api/Developers", "developers.list")
}

// ListWithDetails returns every developer including experiences, links and skills.
func (s *DeveloperService) ListWithDetails(ctx context.Context) ([]model.Developer, error) {
	return s.list(ctx, "/api/Developers/with-details", "developers.list_with_details")
}

func (s *DeveloperService) list(ctx context.Context, path, operation string) ([]model.Developer, error) {
	env, err := s.api.RequestAuthenticated(ctx, http.MethodGet, path, nil, apiclient.WithOperation(operation))
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &unsuccessfulError{message: "Failed to retrieve developers: " + env.Message}
	}
	developers, err := apiclient.DecodeData[[]model.Developer](env)
	if err != nil {
		return nil, err
	}
	if developers == nil {
		developers = []model.Developer{}
	}
	return developers, nil
}

func (s *DeveloperService) Get(ctx context.Context, developerID string) (model.Developer, error) {
	return s.get(ctx, developerID, "", "developer.get", "Failed to retrieve developer")
}

func (s *DeveloperService) GetWithDetails(ctx context.Context, developerID string) (model.Developer, error) {
	return s.get(ctx, developerID, "/with-details", "developer.get_with_details", "Failed to retrieve developer details")
}

func (s *DeveloperService) get(ctx context.Context, developerID, suffix, operation, fallback string) (model.Developer, error) {
	id, err := requireID(developerID, "Developer ID is required")
	if err != nil {
		return model.Developer{}, err
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodGet, "/api/Developer/"+id+suffix, nil, apiclient.WithOperation(operation))
	if err != nil {
		return model.Developer{}, err
	}
	if err := requireData(env, fallback); err != nil {
		return model.Developer{}, err
	}
	return apiclient.DecodeData[model.Developer](env)
}

// CreateDefault asks the API to create a placeholder developer.
func (s *DeveloperService) CreateDefault(ctx context.Context) (model.CreatedDeveloper, error) {
	env, err := s.api.RequestAuthenticated(ctx, http.MethodPost, "/api/Developer/add-new-default", nil, apiclient.WithOperation("developer.create_default"))
	if err != nil {
		return model.CreatedDeveloper{}, err
	}
	if err := requireData(env, "Failed to create developer"); err != nil {
		return model.CreatedDeveloper{}, err
	}
	return apiclient.DecodeData[model.CreatedDeveloper](env)
}

func (s *DeveloperService) Update(ctx context.Context, developerID string, input model.DeveloperProfileInput) error {
	id, err := requireID(developerID, "Developer ID is required")
	if err != nil {
		return err
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodPut, "/api/Developer/"+id, input, apiclient.WithOperation("developer.update"))
	if err != nil {
		return err
	}
	return requireSuccess(env, "Failed to update developer")
}

func (s *DeveloperService) Delete(ctx context.Context, developerID string) error {
	id, err := requireID(developerID, "Developer ID is required")
	if err != nil {
		return err
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodDelete, "/api/Developer/"+id, nil, apiclient.WithOperation("developer.delete"))
	if err != nil {
		return err
	}
	return requireSuccess(env, "Failed to delete developer")
}
