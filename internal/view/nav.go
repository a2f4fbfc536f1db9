package view

import (
	"net/url"
	"strings"

	"github.com/resumedash/internal/model"
)

// NavItem is one link of the top navigation.
type NavItem struct {
	Label  string
	Href   string
	Active bool
	// Action items are rendered as buttons (sign out).
	Action bool
}

type navDefinition struct {
	label             string
	path              string
	requiresDeveloper bool
}

var navDefinitions = []navDefinition{
	{label: "Dashboard", path: "/dashboard"},
	{label: "Developer", path: "/developer/{id}/profile", requiresDeveloper: true},
	{label: "Projects", path: "/developer/{id}/projects", requiresDeveloper: true},
	{label: "Experiences", path: "/developer/{id}/experiences", requiresDeveloper: true},
	{label: "Social Media Links", path: "/developer/{id}/social-media-links", requiresDeveloper: true},
}

// NavItems builds the navigation for the current page. Developer-scoped
// links are omitted when no developer is selected.
func NavItems(developerID, currentPath string) []NavItem {
	items := make([]NavItem, 0, len(navDefinitions)+1)
	for _, def := range navDefinitions {
		if def.requiresDeveloper && developerID == "" {
			continue
		}
		href := strings.ReplaceAll(def.path, "{id}", url.PathEscape(developerID))
		items = append(items, NavItem{Label: def.label, Href: href, Active: href == currentPath})
	}
	items = append(items, NavItem{Label: "Sign out", Href: "/auth/logout", Action: true})
	return items
}

// ExperienceTypeOption is one entry of the experience type select.
type ExperienceTypeOption struct {
	Value string
	Label string
}

func ExperienceTypeOptions() []ExperienceTypeOption {
	types := model.ExperienceTypes()
	options := make([]ExperienceTypeOption, 0, len(types))
	for _, t := range types {
		options = append(options, ExperienceTypeOption{Value: string(t), Label: string(t)})
	}
	return options
}
