package model

import "time"

// DeveloperProfileInput is the payload sent when a developer profile is updated.
type DeveloperProfileInput struct {
	Name                    string    `json:"name" validate:"min=2,max=50"`
	Email                   string    `json:"email" validate:"email"`
	GreetingTitle           string    `json:"greetingTitle" validate:"min=2,max=50"`
	GreetingMessage         string    `json:"greetingMessage" validate:"min=2,max=350"`
	MissionTitle            string    `json:"missionTitle" validate:"min=2,max=50"`
	MissionDescription      string    `json:"missionDescription" validate:"min=2,max=350"`
	ITExperienceStartDate   time.Time `json:"itExperienceStartDate" validate:"date"`
	WorkExperienceStartDate time.Time `json:"workExperienceStartDate" validate:"date,notfuture"`
}

// ExperienceInput is the payload for creating or updating an experience.
type ExperienceInput struct {
	ExperienceTypeName string     `json:"experienceTypeName" validate:"experiencetype"`
	StartDate          time.Time  `json:"startDate" validate:"date,notfuture"`
	EndDate            *time.Time `json:"endDate" validate:"omitnil,date,notfuture"`
	LocationName       string     `json:"locationName" validate:"min=2,max=100"`
	Title              string     `json:"title" validate:"min=2,max=100"`
	Description        string     `json:"description" validate:"min=10,max=1000"`
}

// SkillInput is the payload for creating or updating a developer skill.
type SkillInput struct {
	Name             string `json:"name" validate:"min=2,max=50"`
	ProficiencyLevel int    `json:"proficiencyLevel" validate:"min=-1,max=100"`
}

// ProjectInput is the payload for creating or updating a project.
type ProjectInput struct {
	Title       string `json:"title" validate:"min=2,max=50"`
	Description string `json:"description" validate:"min=2,max=500"`
}

// SocialMediaLinkInput is the payload for attaching a social link to a developer.
type SocialMediaLinkInput struct {
	SocialMediaURL         string `json:"socialMediaUrl" validate:"url,min=5,max=2000"`
	SocialMediaNetworkName string `json:"socialMediaNetworkName" validate:"socialnetwork"`
}

// Created ids returned by the remote API.
type (
	CreatedDeveloper struct {
		DeveloperID string `json:"developerId"`
	}
	CreatedExperience struct {
		ExperienceID string `json:"experienceId"`
	}
	CreatedSkill struct {
		SkillID string `json:"skillId"`
	}
	CreatedProject struct {
		ProjectID string `json:"projectId"`
	}
	CreatedSocialMediaLink struct {
		SocialMediaLinkID string `json:"socialMediaLinkId"`
	}
)
