package domain

// Template is a named styling preset. It never touches document data.
// HeaderBackground and HeaderText are CSS color values; SectionHeaderStyle
// and AccentStyle are CSS declaration lists.
type Template struct {
	ID                 string `json:"id" yaml:"id"`
	Name               string `json:"name" yaml:"name"`
	HeaderBackground   string `json:"headerBackground" yaml:"headerBackground"`
	HeaderText         string `json:"headerText" yaml:"headerText"`
	SectionHeaderStyle string `json:"sectionHeaderStyle" yaml:"sectionHeaderStyle"`
	AccentStyle        string `json:"accentStyle" yaml:"accentStyle"`
}

const DefaultTemplateID = "modern"

// BuiltinTemplates are the presets shipped with the service. Colors use the
// oklch() space the design palette is authored in.
func BuiltinTemplates() []Template {
	return []Template{
		{
			ID:                 "modern",
			Name:               "Modern",
			HeaderBackground:   "oklch(0.546 0.245 262.881)",
			HeaderText:         "oklch(1 0 0)",
			SectionHeaderStyle: "color: oklch(0.488 0.243 264.376); border-bottom: 2px solid oklch(0.809 0.105 251.813)",
			AccentStyle:        "color: oklch(0.546 0.245 262.881)",
		},
		{
			ID:                 "classic",
			Name:               "Classic",
			HeaderBackground:   "oklch(0.278 0.033 256.848)",
			HeaderText:         "oklch(0.985 0.002 247.839)",
			SectionHeaderStyle: "color: oklch(0.21 0.034 264.665); border-bottom: 1px solid oklch(0.551 0.027 264.364)",
			AccentStyle:        "color: oklch(0.446 0.03 256.802)",
		},
		{
			ID:                 "creative",
			Name:               "Creative",
			HeaderBackground:   "oklch(0.558 0.288 302.321)",
			HeaderText:         "oklch(1 0 0)",
			SectionHeaderStyle: "color: oklch(0.496 0.265 301.924); background-color: oklch(0.977 0.014 308.299)",
			AccentStyle:        "color: oklch(0.656 0.241 354.308)",
		},
		{
			ID:                 "minimal",
			Name:               "Minimal",
			HeaderBackground:   "#ffffff",
			HeaderText:         "#111827",
			SectionHeaderStyle: "color: #111827; text-transform: uppercase; letter-spacing: 0.05em",
			AccentStyle:        "color: #4b5563",
		},
	}
}
