package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownSection = errors.New("unknown section")

// SectionID identifies a resume section.
type SectionID string

const (
	SectionPersonal       SectionID = "personal"
	SectionSummary        SectionID = "summary"
	SectionExperience     SectionID = "experience"
	SectionEducation      SectionID = "education"
	SectionSkills         SectionID = "skills"
	SectionCertifications SectionID = "certifications"
	SectionProjects       SectionID = "projects"
)

// sectionNames is the fixed set of known sections in default display order.
var sectionNames = []struct {
	id   SectionID
	name string
}{
	{SectionPersonal, "Personal Information"},
	{SectionSummary, "Professional Summary"},
	{SectionExperience, "Work Experience"},
	{SectionEducation, "Education"},
	{SectionSkills, "Skills"},
	{SectionCertifications, "Certifications"},
	{SectionProjects, "Projects"},
}

// ParseSectionID converts a raw string to a SectionID, returning an error for
// unknown values.
func ParseSectionID(s string) (SectionID, error) {
	for _, n := range sectionNames {
		if string(n.id) == s {
			return n.id, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownSection, s)
}

// IsRequired reports whether the section is pinned and excluded from drag.
func (s SectionID) IsRequired() bool { return s == SectionPersonal }

// IsEntryCollection reports whether the section holds id-addressed entries.
func (s SectionID) IsEntryCollection() bool {
	return s == SectionExperience || s == SectionEducation || s == SectionProjects
}

// IsStringSet reports whether the section is a deduplicated string set.
func (s SectionID) IsStringSet() bool {
	return s == SectionSkills || s == SectionCertifications
}

// SectionEntry is one row of the display order.
type SectionEntry struct {
	ID      SectionID `json:"id"`
	Name    string    `json:"name"`
	Visible bool      `json:"visible"`
}

// SectionOrder is the user-controlled order and visibility of sections. It
// always holds exactly the known section ids.
type SectionOrder []SectionEntry

// DefaultSectionOrder returns every known section, visible, in default order.
func DefaultSectionOrder() SectionOrder {
	out := make(SectionOrder, 0, len(sectionNames))
	for _, n := range sectionNames {
		out = append(out, SectionEntry{ID: n.id, Name: n.name, Visible: true})
	}
	return out
}

// IndexOf returns the position of id or -1.
func (o SectionOrder) IndexOf(id SectionID) int {
	for i, e := range o {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Clone copies the order.
func (o SectionOrder) Clone() SectionOrder { return append(SectionOrder{}, o...) }

// IDs lists the section ids in order.
func (o SectionOrder) IDs() []SectionID {
	out := make([]SectionID, len(o))
	for i, e := range o {
		out[i] = e.ID
	}
	return out
}

// Validate checks that o is a permutation of the known section ids.
func (o SectionOrder) Validate() error {
	if len(o) != len(sectionNames) {
		return fmt.Errorf("section order has %d entries, want %d", len(o), len(sectionNames))
	}
	seen := map[SectionID]bool{}
	for _, e := range o {
		if _, err := ParseSectionID(string(e.ID)); err != nil {
			return err
		}
		if seen[e.ID] {
			return fmt.Errorf("section %q listed twice", e.ID)
		}
		seen[e.ID] = true
	}
	return nil
}
