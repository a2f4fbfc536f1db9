package form

import (
	"net/url"
	"testing"
	"time"
)

func TestExperienceTransform(t *testing.T) {
	values := url.Values{
		"experienceType": {"Work"},
		"startDate":      {"2022-03-01"},
		"endDate":        {""},
		"locationName":   {"Ghent"},
		"title":          {"Engineer"},
		"description":    {"Built things for people"},
	}

	got := Experience(values)
	if got.ExperienceTypeName != "Work" {
		t.Fatalf("expected experience type from the experienceType field, got %q", got.ExperienceTypeName)
	}
	if want := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC); !got.StartDate.Equal(want) {
		t.Fatalf("unexpected start date %v", got.StartDate)
	}
	if got.EndDate != nil {
		t.Fatalf("expected nil end date for an empty field, got %v", got.EndDate)
	}
}

func TestExperienceTransformInvalidDates(t *testing.T) {
	got := Experience(url.Values{"startDate": {"not-a-date"}, "endDate": {"31/12/2023"}})

	if !got.StartDate.IsZero() {
		t.Fatalf("expected zero start date, got %v", got.StartDate)
	}
	if got.EndDate == nil || !got.EndDate.IsZero() {
		t.Fatalf("expected a present but zero end date, got %v", got.EndDate)
	}
}

func TestMissingFieldsBecomeEmpty(t *testing.T) {
	got := DeveloperProfile(url.Values{})
	if got.Name != "" || got.Email != "" || got.MissionDescription != "" {
		t.Fatalf("expected empty strings, got %+v", got)
	}
	if !got.ITExperienceStartDate.IsZero() {
		t.Fatalf("expected zero date, got %v", got.ITExperienceStartDate)
	}
}

func TestSkillProficiencyFallback(t *testing.T) {
	cases := map[string]int{
		"":     0,
		"abc":  0,
		"42":   42,
		" 7 ":  7,
		"-1":   -1,
		"55.9": 55,
	}
	for raw, want := range cases {
		got := Skill(url.Values{"name": {"Go"}, "proficiencyLevel": {raw}})
		if got.ProficiencyLevel != want {
			t.Fatalf("proficiency %q: expected %d, got %d", raw, want, got.ProficiencyLevel)
		}
	}
}

func TestSocialMediaLinkReadsNetworkField(t *testing.T) {
	got := SocialMediaLink(url.Values{
		"socialMediaUrl": {"https://github.com/someone"},
		"network":        {"Github"},
	})
	if got.SocialMediaNetworkName != "Github" || got.SocialMediaURL != "https://github.com/someone" {
		t.Fatalf("unexpected link input %+v", got)
	}
}

func TestTransformsAcceptJSONFieldNames(t *testing.T) {
	exp := Experience(url.Values{
		"experienceTypeName": {"Education"},
		"startDate":          {"2020-09-01"},
		"title":              {"MSc"},
	})
	if exp.ExperienceTypeName != "Education" {
		t.Fatalf("expected experienceTypeName to be read, got %+v", exp)
	}

	link := SocialMediaLink(url.Values{
		"socialMediaUrl":         {"https://github.com/someone"},
		"socialMediaNetworkName": {"Github"},
	})
	if link.SocialMediaNetworkName != "Github" {
		t.Fatalf("expected socialMediaNetworkName to be read, got %+v", link)
	}

	both := Experience(url.Values{"experienceType": {"Work"}, "experienceTypeName": {"Education"}})
	if both.ExperienceTypeName != "Work" {
		t.Fatalf("expected the form field to win, got %q", both.ExperienceTypeName)
	}
}
