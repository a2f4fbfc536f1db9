package view

import (
	"strings"
	"testing"
	"time"

	"github.com/resumedash/internal/model"
)

func TestFormatInputValueDateRoundTrip(t *testing.T) {
	original := time.Date(2023, 7, 14, 0, 0, 0, 0, time.UTC)

	formatted := FormatInputValue(original, "date")
	if formatted != "2023-07-14" {
		t.Fatalf("expected 2023-07-14, got %q", formatted)
	}
	parsed, err := time.Parse(time.DateOnly, formatted)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !parsed.Equal(original) {
		t.Fatalf("round trip changed the date: %v != %v", parsed, original)
	}
	if again := FormatInputValue(formatted, "date"); again != formatted {
		t.Fatalf("expected YYYY-MM-DD to pass through, got %q", again)
	}
}

func TestFormatInputValue(t *testing.T) {
	var nilTime *time.Time
	iso := "2022-02-03T10:11:12Z"
	cases := []struct {
		name  string
		value any
		typ   string
		want  string
	}{
		{"nil", nil, "text", ""},
		{"iso string date", "2021-05-06T08:00:00Z", "date", "2021-05-06"},
		{"iso pointer date", &iso, "date", "2022-02-03"},
		{"api date without zone", "2020-01-02T00:00:00", "date", "2020-01-02"},
		{"bad date", "yesterday", "date", ""},
		{"nil time pointer", nilTime, "date", ""},
		{"int", 42, "number", "42"},
		{"numeric string", "7.5", "number", "7.5"},
		{"bad number", "seven", "number", ""},
		{"string", "hello", "text", "hello"},
		{"int as text", -1, "text", "-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatInputValue(tc.value, tc.typ); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2024-03-09T00:00:00Z"); got != "09/03/2024" {
		t.Fatalf("expected 09/03/2024, got %q", got)
	}
	if got := FormatDate("nope"); got != "Invalid Date" {
		t.Fatalf("expected Invalid Date, got %q", got)
	}
	if got := FormatOptionalDate(nil, "Present"); got != "Present" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestSkillProficiency(t *testing.T) {
	unrated := SkillProficiency(-1)
	if unrated.Rated || unrated.Label != "No rating" || unrated.Width != "" {
		t.Fatalf("unexpected unrated proficiency %+v", unrated)
	}

	rated := SkillProficiency(75)
	if !rated.Rated || rated.Label != "75%" || rated.Width != "75%" {
		t.Fatalf("unexpected rated proficiency %+v", rated)
	}

	if zero := SkillProficiency(0); !zero.Rated || zero.Width != "0%" {
		t.Fatalf("zero is a rating, got %+v", zero)
	}
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	out, err := RenderMarkdown("**Hello**\n<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<strong>Hello</strong>") {
		t.Fatalf("expected bold text, got %q", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("script tag survived sanitizing: %q", html)
	}
}

func TestNetworkOptionsFollowEnumOrder(t *testing.T) {
	options := NetworkOptions()
	if len(options) != 7 {
		t.Fatalf("expected 7 networks, got %d", len(options))
	}
	if options[0].Value != "Facebook" || options[6].Value != "GitLab" {
		t.Fatalf("unexpected order %+v", options)
	}
	for _, option := range options {
		if NetworkIconSVG(option.Value) == defaultNetworkIcon.SVG {
			t.Fatalf("network %s has no icon", option.Value)
		}
	}
	if NetworkIconSVG("myspace") != defaultNetworkIcon.SVG {
		t.Fatal("unknown network should use the default icon")
	}
}

func TestAvailableNetworkOptions(t *testing.T) {
	options := AvailableNetworkOptions([]model.SocialMediaLink{
		{Network: model.NetworkGithub},
		{Network: model.NetworkX},
	})
	if len(options) != 5 {
		t.Fatalf("expected 5 remaining networks, got %d", len(options))
	}
	for _, option := range options {
		if option.Value == "Github" || option.Value == "X" {
			t.Fatalf("linked network %s still offered", option.Value)
		}
	}
}

func TestNavItems(t *testing.T) {
	items := NavItems("", "/dashboard")
	if len(items) != 2 || items[0].Label != "Dashboard" || !items[0].Active || items[1].Label != "Sign out" {
		t.Fatalf("unexpected items without developer %+v", items)
	}

	items = NavItems("dev-1", "/developer/dev-1/projects")
	if len(items) != 6 {
		t.Fatalf("expected 6 items, got %d", len(items))
	}
	if items[2].Label != "Projects" || !items[2].Active {
		t.Fatalf("expected projects to be active, got %+v", items[2])
	}
	if items[5].Href != "/auth/logout" || !items[5].Action {
		t.Fatalf("unexpected sign out item %+v", items[5])
	}
}
