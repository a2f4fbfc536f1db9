package service

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/resumedash/internal/apiclient"
	"github.com/resumedash/internal/model"
)

// SocialMediaLinkService covers /api/developer/{id}/social-media. Links are
// keyed by network name, one per network.
type SocialMediaLinkService struct {
	api Requester
}

func NewSocialMediaLinkService(api Requester) *SocialMediaLinkService {
	return &SocialMediaLinkService{api: api}
}

func socialBase(developerID string) (string, error) {
	id, err := requireID(developerID, "Developer ID is required")
	if err != nil {
		return "", err
	}
	return "/api/developer/" + id + "/social-media", nil
}

func (s *SocialMediaLinkService) List(ctx context.Context, developerID string) ([]model.SocialMediaLink, error) {
	base, err := socialBase(developerID)
	if err != nil {
		return nil, err
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodGet, base, nil, apiclient.WithOperation("social_media.list"))
	if err != nil {
		return nil, err
	}
	if err := requireData(env, "Failed to get social media links"); err != nil {
		return nil, err
	}
	return apiclient.DecodeData[[]model.SocialMediaLink](env)
}

func (s *SocialMediaLinkService) Create(ctx context.Context, developerID string, input model.SocialMediaLinkInput) (model.CreatedSocialMediaLink, error) {
	base, err := socialBase(developerID)
	if err != nil {
		return model.CreatedSocialMediaLink{}, err
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodPost, base, input, apiclient.WithOperation("social_media.create"))
	if err != nil {
		return model.CreatedSocialMediaLink{}, err
	}
	if err := requireData(env, "Failed to create social media link"); err != nil {
		return model.CreatedSocialMediaLink{}, err
	}
	return apiclient.DecodeData[model.CreatedSocialMediaLink](env)
}

// Delete removes the developer's link for network.
func (s *SocialMediaLinkService) Delete(ctx context.Context, developerID, network string) error {
	base, err := socialBase(developerID)
	if err != nil {
		return err
	}
	network = strings.TrimSpace(network)
	if network == "" {
		return apiclient.InvalidFormatError("Social media network is required")
	}
	env, err := s.api.RequestAuthenticated(ctx, http.MethodDelete, base+"?network="+url.QueryEscape(network), nil, apiclient.WithOperation("social_media.delete"))
	if err != nil {
		return err
	}
	return requireSuccess(env, "Failed to delete social media link")
}
