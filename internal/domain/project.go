package domain

import (
	"regexp"
	"strings"
)

type ProjectColor string

const (
	ColorBlue   ProjectColor = "blue"
	ColorGreen  ProjectColor = "green"
	ColorPurple ProjectColor = "purple"
	ColorOrange ProjectColor = "orange"
	ColorPink   ProjectColor = "pink"
)

// ValidProjectColors is the canonical set of accepted color tags.
var ValidProjectColors = map[ProjectColor]bool{
	ColorBlue: true, ColorGreen: true, ColorPurple: true,
	ColorOrange: true, ColorPink: true,
}

// Project is a named grouping for tasks. Color is presentation-only.
type Project struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Color ProjectColor `json:"color"`
}

var whitespaceRuns = regexp.MustCompile(`\s+`)

// DeriveProjectID builds a project id from its display name:
// lowercased, runs of whitespace collapsed to a single hyphen.
// Two projects whose names derive the same id collide; the store
// resolves the collision by replacing in place.
func DeriveProjectID(name string) string {
	trimmed := strings.TrimSpace(strings.ToLower(name))
	return whitespaceRuns.ReplaceAllString(trimmed, "-")
}

// DefaultProjects returns a fresh copy of the three seeded projects.
// The store reseeds with these whenever the project slot is empty.
func DefaultProjects() []Project {
	return []Project{
		{ID: "personal", Name: "Personal", Color: ColorBlue},
		{ID: "work", Name: "Work", Color: ColorGreen},
		{ID: "school", Name: "School", Color: ColorPurple},
	}
}
