package domain

import "time"

// ResumeRecord is the shape exchanged with the resume storage API: the full
// document plus its presentation metadata and the server-assigned id.
type ResumeRecord struct {
	ID string `json:"_id,omitempty"`
	ResumeDocument
	Template     string       `json:"template"`
	SectionOrder SectionOrder `json:"sectionOrder"`
	Title        string       `json:"title,omitempty"`
	CreatedAt    *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time   `json:"updatedAt,omitempty"`
}

// DisplayTitle prefers the candidate's name and falls back to "Resume".
func (r *ResumeRecord) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	if r.PersonalInfo.FullName != "" {
		return r.PersonalInfo.FullName
	}
	return "Resume"
}
