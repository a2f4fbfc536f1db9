package view

import (
	"strconv"

	"github.com/resumedash/internal/model"
)

// Proficiency is what the skill card header shows.
type Proficiency struct {
	Rated bool
	Label string
	// Width is the CSS width of the bar; empty for unrated skills.
	Width string
}

func SkillProficiency(level int) Proficiency {
	if level == model.UnratedProficiency {
		return Proficiency{Label: "No rating"}
	}
	clamped := min(max(level, 0), 100)
	return Proficiency{
		Rated: true,
		Label: strconv.Itoa(level) + "%",
		Width: strconv.Itoa(clamped) + "%",
	}
}
