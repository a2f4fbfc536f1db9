package view

import "html/template"

// FuncMap exposes the view helpers to HTML templates.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatInput":     FormatInputValue,
		"formatDate":      FormatDate,
		"formatEndDate":   FormatOptionalDate,
		"proficiency":     SkillProficiency,
		"markdown":        MarkdownPreview,
		"networkIcon":     func(name string) template.HTML { return template.HTML(NetworkIconSVG(name)) },
		"networkOptions":  NetworkOptions,
		"experienceTypes": ExperienceTypeOptions,
	}
}
