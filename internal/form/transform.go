package form

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/resumedash/internal/model"
)

// DateLayout is the value format of <input type="date">.
const DateLayout = time.DateOnly

func text(values url.Values, key string) string {
	return values.Get(key)
}

// firstText 返回第一个存在的键的值，表单和 JSON 调用方用的字段名不同
func firstText(values url.Values, keys ...string) string {
	for _, key := range keys {
		if values.Has(key) {
			return values.Get(key)
		}
	}
	return ""
}

// number 解析失败时回退为 0
func number(values url.Values, key string) int {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}

// date returns the zero time for missing or malformed values so the
// validator rejects them.
func date(values url.Values, key string) time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(values.Get(key)))
	if err != nil {
		return time.Time{}
	}
	return t
}

// optionalDate is nil for an empty field.
func optionalDate(values url.Values, key string) *time.Time {
	if strings.TrimSpace(values.Get(key)) == "" {
		return nil
	}
	t := date(values, key)
	return &t
}

func DeveloperProfile(values url.Values) model.DeveloperProfileInput {
	return model.DeveloperProfileInput{
		Name:                    text(values, "name"),
		Email:                   text(values, "email"),
		GreetingTitle:           text(values, "greetingTitle"),
		GreetingMessage:         text(values, "greetingMessage"),
		MissionTitle:            text(values, "missionTitle"),
		MissionDescription:      text(values, "missionDescription"),
		ITExperienceStartDate:   date(values, "itExperienceStartDate"),
		WorkExperienceStartDate: date(values, "workExperienceStartDate"),
	}
}

// Experience reads the "experienceType" select, or "experienceTypeName"
// from JSON bodies, into ExperienceTypeName.
func Experience(values url.Values) model.ExperienceInput {
	return model.ExperienceInput{
		ExperienceTypeName: firstText(values, "experienceType", "experienceTypeName"),
		StartDate:          date(values, "startDate"),
		EndDate:            optionalDate(values, "endDate"),
		LocationName:       text(values, "locationName"),
		Title:              text(values, "title"),
		Description:        text(values, "description"),
	}
}

func Skill(values url.Values) model.SkillInput {
	return model.SkillInput{
		Name:             text(values, "name"),
		ProficiencyLevel: number(values, "proficiencyLevel"),
	}
}

func Project(values url.Values) model.ProjectInput {
	return model.ProjectInput{
		Title:       text(values, "title"),
		Description: text(values, "description"),
	}
}

// SocialMediaLink reads the "network" select, or "socialMediaNetworkName"
// from JSON bodies, into SocialMediaNetworkName.
func SocialMediaLink(values url.Values) model.SocialMediaLinkInput {
	return model.SocialMediaLinkInput{
		SocialMediaURL:         text(values, "socialMediaUrl"),
		SocialMediaNetworkName: firstText(values, "network", "socialMediaNetworkName"),
	}
}
