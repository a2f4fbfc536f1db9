package view

import (
	"strings"

	"github.com/resumedash/internal/model"
)

// NetworkOption is one entry of the social network select.
type NetworkOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type networkIconAsset struct {
	Name  string
	Label string
	SVG   string
}

var (
	networkIconDefinitions = []networkIconAsset{
		{Name: "Facebook", Label: "Facebook", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" aria-hidden="true"><rect x="2.25" y="2.25" width="19.5" height="19.5" rx="5"/><text x="12" y="16" text-anchor="middle" font-size="12" font-family="sans-serif" fill="currentColor" stroke="none">f</text></svg>`},
		{Name: "X", Label: "X / Twitter", SVG: `<svg viewBox="0 0 24 24" fill="currentColor" aria-hidden="true"><path d="M18.901 1.153h3.68l-8.04 9.19L24 22.846h-7.406l-5.8-7.584-6.638 7.584H.474l8.6-9.83L0 1.154h7.594l5.243 6.932ZM17.61 20.644h2.039L6.486 3.24H4.298Z"/></svg>`},
		{Name: "Instagram", Label: "Instagram", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"><rect x="2.25" y="2.25" width="19.5" height="19.5" rx="5.25"/><circle cx="12" cy="12" r="4.5"/><circle cx="17.4" cy="6.6" r=".6" fill="currentColor"/></svg>`},
		{Name: "LinkedIn", Label: "LinkedIn", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" aria-hidden="true"><rect x="2.25" y="2.25" width="19.5" height="19.5" rx="5"/><text x="12" y="16" text-anchor="middle" font-size="9" font-family="sans-serif" fill="currentColor" stroke="none">in</text></svg>`},
		{Name: "WhatsApp", Label: "WhatsApp", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"><path d="M3.75 20.25l1.2-4.05A8.25 8.25 0 1 1 8.1 19.2z"/><path d="M9 8.25c.3 2.7 2.1 4.65 4.95 5.55l1.05-1.2 1.8.9-.45 1.5c-3.6.3-7.2-3.3-7.2-6.9l1.5-.45.9 1.8z"/></svg>`},
		{Name: "Github", Label: "GitHub", SVG: `<svg viewBox="0 0 24 24" fill="currentColor" aria-hidden="true"><path d="M12 .297c-6.63 0-12 5.373-12 12 0 5.303 3.438 9.8 8.205 11.385.6.113.82-.258.82-.577 0-.285-.01-1.04-.015-2.04-3.338.724-4.042-1.61-4.042-1.61-.546-1.142-1.335-1.512-1.335-1.512-1.087-.744.084-.729.084-.729 1.205.084 1.838 1.236 1.838 1.236 1.07 1.835 2.809 1.305 3.495.998.108-.776.417-1.305.76-1.605-2.665-.3-5.466-1.332-5.466-5.93 0-1.31.465-2.38 1.235-3.22-.135-.303-.54-1.523.105-3.176 0 0 1.005-.322 3.3 1.23.96-.267 1.98-.399 3-.405 1.02.006 2.04.138 3 .405 2.28-1.552 3.285-1.23 3.285-1.23.645 1.653.24 2.873.12 3.176.765.84 1.23 1.91 1.23 3.22 0 4.61-2.805 5.625-5.475 5.92.42.36.81 1.096.81 2.22 0 1.606-.015 2.896-.015 3.286 0 .315.21.69.825.57C20.565 22.092 24 17.592 24 12.297c0-6.627-5.373-12-12-12"/></svg>`},
		{Name: "GitLab", Label: "GitLab", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linejoin="round" aria-hidden="true"><path d="M12 21.75 2.25 13.5l2.4-10.5 2.85 7.5h9l2.85-7.5 2.4 10.5z"/></svg>`},
	}
	defaultNetworkIcon = networkIconAsset{Name: "default", Label: "Link", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M12 21c4.193 0 7.716-2.867 8.716-6.747M12 21c-4.193 0-7.716-2.867-8.716-6.747M12 21c2.485 0 4.5-4.03 4.5-9s-2.015-9-4.5-9m0 18c-2.485 0-4.5-4.03-4.5-9s2.015-9 4.5-9m0-0c3.365 0 6.299 1.847 7.843 4.582M12 3c-3.365 0-6.299 1.847-7.843 4.582m15.686 0c.737 1.305 1.157 2.812 1.157 4.418 0 .778-.099 1.533-.284 2.253m-.873 4.836C18.133 15.685 15.162 16.5 12 16.5s-6.134-.815-8.716-2.247m0 0A8.948 8.948 0 0 1 3 12c0-1.605.42-3.112 1.157-4.417"/></svg>`}
	networkIconLookup  = func() map[string]networkIconAsset {
		lookup := make(map[string]networkIconAsset, len(networkIconDefinitions))
		for _, icon := range networkIconDefinitions {
			lookup[strings.ToLower(icon.Name)] = icon
		}
		return lookup
	}()
)

// NetworkOptions lists the select options in enum order.
func NetworkOptions() []NetworkOption {
	names := model.SocialMediaNetworkNames()
	options := make([]NetworkOption, 0, len(names))
	for _, name := range names {
		label := name
		if icon, ok := networkIconLookup[strings.ToLower(name)]; ok {
			label = icon.Label
		}
		options = append(options, NetworkOption{Value: name, Label: label})
	}
	return options
}

// AvailableNetworkOptions drops networks the developer already linked, since
// a developer has at most one link per network.
func AvailableNetworkOptions(links []model.SocialMediaLink) []NetworkOption {
	used := make(map[string]bool, len(links))
	for _, link := range links {
		used[link.Network.String()] = true
	}
	all := NetworkOptions()
	options := all[:0]
	for _, option := range all {
		if !used[option.Value] {
			options = append(options, option)
		}
	}
	return options
}

// NetworkIconSVG resolves the SVG for a network name, falling back to a link icon.
func NetworkIconSVG(name string) string {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if icon, ok := networkIconLookup[trimmed]; ok {
		return icon.SVG
	}
	return defaultNetworkIcon.SVG
}
