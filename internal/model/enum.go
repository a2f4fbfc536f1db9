package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ExperienceType classifies an experience entry.
type ExperienceType string

const (
	ExperienceWork          ExperienceType = "Work"
	ExperienceEducation     ExperienceType = "Education"
	ExperienceCertification ExperienceType = "Certification"
	ExperienceInternship    ExperienceType = "Internship"
)

// ExperienceTypes lists the accepted experience types in display order.
func ExperienceTypes() []ExperienceType {
	return []ExperienceType{ExperienceWork, ExperienceEducation, ExperienceCertification, ExperienceInternship}
}

// SocialMediaNetwork is the numeric network enum used by the remote API.
type SocialMediaNetwork int

const (
	NetworkFacebook SocialMediaNetwork = iota
	NetworkX
	NetworkInstagram
	NetworkLinkedIn
	NetworkWhatsApp
	NetworkGithub
	NetworkGitLab
)

var socialMediaNetworkNames = []string{"Facebook", "X", "Instagram", "LinkedIn", "WhatsApp", "Github", "GitLab"}

// SocialMediaNetworkNames returns the network names accepted by forms.
func SocialMediaNetworkNames() []string {
	names := make([]string, len(socialMediaNetworkNames))
	copy(names, socialMediaNetworkNames)
	return names
}

func (n SocialMediaNetwork) String() string {
	if n < 0 || int(n) >= len(socialMediaNetworkNames) {
		return "Unknown"
	}
	return socialMediaNetworkNames[n]
}

// ParseSocialMediaNetwork resolves a network by its exact name.
func ParseSocialMediaNetwork(name string) (SocialMediaNetwork, error) {
	trimmed := strings.TrimSpace(name)
	for i, candidate := range socialMediaNetworkNames {
		if candidate == trimmed {
			return SocialMediaNetwork(i), nil
		}
	}
	return 0, fmt.Errorf("unknown social media network %q", name)
}

// UnmarshalJSON accepts either the numeric value or the network name.
func (n *SocialMediaNetwork) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		*n = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		if value, err := strconv.Atoi(name); err == nil {
			*n = SocialMediaNetwork(value)
			return nil
		}
		parsed, err := ParseSocialMediaNetwork(name)
		if err != nil {
			return err
		}
		*n = parsed
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid social media network %s", raw)
	}
	*n = SocialMediaNetwork(value)
	return nil
}
