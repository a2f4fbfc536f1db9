package validation

// DeveloperProfileSchema validates model.DeveloperProfileInput.
func DeveloperProfileSchema() Schema {
	return NewSchema(nil, map[string]string{
		"name.min":                          "Name must be at least 2 characters long",
		"name.max":                          "Name cannot exceed 50 characters",
		"email.email":                       "Please enter a valid email address",
		"greetingTitle.min":                 "Greeting title must be at least 2 characters long",
		"greetingTitle.max":                 "Greeting title cannot exceed 50 characters",
		"greetingMessage.min":               "Greeting message must be at least 2 characters long",
		"greetingMessage.max":               "Greeting message cannot exceed 350 characters",
		"missionTitle.min":                  "Mission title must be at least 2 characters long",
		"missionTitle.max":                  "Mission title cannot exceed 50 characters",
		"missionDescription.min":            "Mission description must be at least 2 characters long",
		"missionDescription.max":            "Mission description cannot exceed 350 characters",
		"itExperienceStartDate.date":        "Please select when you started in IT",
		"workExperienceStartDate.date":      "Please select when you started working",
		"workExperienceStartDate.notfuture": "Work experience start date cannot be in the future",
	})
}

// ExperienceSchema validates model.ExperienceInput, including the end-after-start rule.
func ExperienceSchema() Schema {
	return NewSchema(nil, map[string]string{
		"experienceTypeName.experiencetype": "Please select a valid experience type",
		"startDate.date":                    "Please select a start date",
		"startDate.notfuture":               "Start date cannot be in the future",
		"endDate.date":                      "Please enter a valid date",
		"endDate.notfuture":                 "End date cannot be in the future",
		"endDate.endafterstart":             "End date must be after start date",
		"locationName.min":                  "Location name must be at least 2 characters long",
		"locationName.max":                  "Location name cannot exceed 100 characters",
		"title.min":                         "Title must be at least 2 characters long",
		"title.max":                         "Title cannot exceed 100 characters",
		"description.min":                   "Description must be at least 10 characters long",
		"description.max":                   "Description cannot exceed 1000 characters",
	})
}

func SkillSchema() Schema {
	return NewSchema(nil, map[string]string{
		"name.min":             "Skill name must be at least 2 characters long",
		"name.max":             "Skill name cannot exceed 50 characters",
		"proficiencyLevel.min": "Proficiency level must be at least -1 and at most 100. with -1 being no rating",
		"proficiencyLevel.max": "Proficiency level cannot exceed 100",
	})
}

func ProjectSchema() Schema {
	return NewSchema(nil, map[string]string{
		"title.min":       "Title must be at least 2 characters long",
		"title.max":       "Title cannot exceed 50 characters",
		"description.min": "Description must be at least 2 characters long",
		"description.max": "Description cannot exceed 500 characters",
	})
}

func SocialMediaLinkSchema() Schema {
	return NewSchema(nil, map[string]string{
		"socialMediaUrl.url":                   "Please enter a valid URL",
		"socialMediaUrl.min":                   "URL must be at least 5 characters long",
		"socialMediaUrl.max":                   "URL cannot exceed 2000 characters",
		"socialMediaNetworkName.socialnetwork": "Please select a valid social media network",
	})
}
