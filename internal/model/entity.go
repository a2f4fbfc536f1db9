package model

// Greeting is the headline block shown on a developer's public profile.
type Greeting struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Mission is the developer's mission statement.
type Mission struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Developer mirrors the remote API's developer resource. Dates are kept as
// the ISO strings the API returns.
type Developer struct {
	ID                      string            `json:"id"`
	Name                    string            `json:"name"`
	Email                   string            `json:"email"`
	ImageURL                string            `json:"imageUrl"`
	CreatedByID             string            `json:"CreatedById,omitempty"`
	CreatedAt               string            `json:"CreatedAt,omitempty"`
	Greeting                Greeting          `json:"greeting"`
	Mission                 Mission           `json:"mission"`
	ITExperienceStartDate   string            `json:"itExperienceStartDate"`
	WorkExperienceStartDate string            `json:"workExperienceStartDate"`
	Experiences             []Experience      `json:"experiences,omitempty"`
	SocialMediaLinks        []SocialMediaLink `json:"socialMediaLinks,omitempty"`
	Skills                  []DeveloperSkill  `json:"developerProficiencies,omitempty"`
}

type Experience struct {
	ID             string         `json:"id"`
	ExperienceType ExperienceType `json:"experienceType"`
	StartDate      string         `json:"startDate"`
	EndDate        *string        `json:"endDate"`
	LocationName   string         `json:"locationName"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
}

// DeveloperSkill is a technology the developer rates on a -1..100 scale,
// where -1 means unrated.
type DeveloperSkill struct {
	ID               string    `json:"id"`
	TechnologyName   string    `json:"technologyName"`
	ProficiencyLevel int       `json:"proficiencyLevel"`
	Projects         []Project `json:"projects,omitempty"`
}

// Unrated reports whether the skill carries no proficiency rating.
func (s DeveloperSkill) Unrated() bool {
	return s.ProficiencyLevel == UnratedProficiency
}

type Project struct {
	ID          string `json:"id"`
	ImageURL    string `json:"imageUrl"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type SocialMediaLink struct {
	ID             string             `json:"id"`
	SocialMediaURL string             `json:"socialMediaUrl"`
	Network        SocialMediaNetwork `json:"network"`
}

// UnratedProficiency marks a skill without a proficiency rating.
const UnratedProficiency = -1
