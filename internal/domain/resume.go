package domain

import (
	"encoding/json"
	"strings"
)

// PersonalInfo is the header block of a resume. FullName and Email are
// required before a document can be exported.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
	GitHub   string `json:"github"`
}

type EducationEntry struct {
	ID        string `json:"id"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	GPA       string `json:"gpa"`
}

type WorkExperienceEntry struct {
	ID          string      `json:"id"`
	Company     string      `json:"company"`
	Position    string      `json:"position"`
	StartDate   string      `json:"startDate"`
	EndDate     string      `json:"endDate"`
	Description Description `json:"description"`
}

type ProjectEntry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	Link         string `json:"link"`
}

// ResumeDocument is the aggregate being edited.
type ResumeDocument struct {
	PersonalInfo        PersonalInfo          `json:"personalInfo"`
	ProfessionalSummary string                `json:"professionalSummary"`
	Education           []EducationEntry      `json:"education"`
	WorkExperience      []WorkExperienceEntry `json:"workExperience"`
	Skills              []string              `json:"skills"`
	Certifications      []string              `json:"certifications"`
	Projects            []ProjectEntry        `json:"projects"`
	ProfilePicture      string                `json:"profilePicture,omitempty"`
}

// NewResumeDocument returns an empty document with non-nil collections so it
// serializes as empty arrays rather than null.
func NewResumeDocument() ResumeDocument {
	return ResumeDocument{
		Education:      []EducationEntry{},
		WorkExperience: []WorkExperienceEntry{},
		Skills:         []string{},
		Certifications: []string{},
		Projects:       []ProjectEntry{},
	}
}

// HasRequiredFields reports whether fullName and email are both filled in.
func (d *ResumeDocument) HasRequiredFields() bool {
	return strings.TrimSpace(d.PersonalInfo.FullName) != "" && strings.TrimSpace(d.PersonalInfo.Email) != ""
}

// HasOptionalContent reports whether at least one section other than the
// personal header carries data.
func (d *ResumeDocument) HasOptionalContent() bool {
	return strings.TrimSpace(d.ProfessionalSummary) != "" ||
		len(d.Education) > 0 ||
		len(d.WorkExperience) > 0 ||
		len(d.Skills) > 0 ||
		len(d.Certifications) > 0 ||
		len(d.Projects) > 0
}

// Clone returns a deep copy so snapshots can leave the editing lock.
func (d ResumeDocument) Clone() ResumeDocument {
	out := d
	out.Education = append([]EducationEntry{}, d.Education...)
	out.WorkExperience = make([]WorkExperienceEntry, len(d.WorkExperience))
	for i, w := range d.WorkExperience {
		w.Description = w.Description.Clone()
		out.WorkExperience[i] = w
	}
	out.Skills = append([]string{}, d.Skills...)
	out.Certifications = append([]string{}, d.Certifications...)
	out.Projects = append([]ProjectEntry{}, d.Projects...)
	return out
}

// Description holds a work-experience description which is either free text
// or a fixed-size list of bullets. On the wire it is a string or an array of
// strings.
type Description struct {
	Text    string
	Bullets []string
}

// TextDescription builds a free-text description.
func TextDescription(s string) Description { return Description{Text: s} }

// BulletDescription builds a bullet description with exactly n slots.
func BulletDescription(n int, bullets ...string) Description {
	out := make([]string, n)
	copy(out, bullets)
	return Description{Bullets: out}
}

// IsBullets reports whether the description is in bullet form.
func (d Description) IsBullets() bool { return d.Bullets != nil }

// Lines returns the non-empty rendered lines of the description.
func (d Description) Lines() []string {
	if !d.IsBullets() {
		if strings.TrimSpace(d.Text) == "" {
			return nil
		}
		return []string{d.Text}
	}
	out := []string{}
	for _, b := range d.Bullets {
		if strings.TrimSpace(b) != "" {
			out = append(out, b)
		}
	}
	return out
}

func (d Description) Clone() Description {
	if d.Bullets == nil {
		return d
	}
	return Description{Text: d.Text, Bullets: append([]string{}, d.Bullets...)}
}

func (d Description) MarshalJSON() ([]byte, error) {
	if d.IsBullets() {
		return json.Marshal(d.Bullets)
	}
	return json.Marshal(d.Text)
}

func (d *Description) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Description{}
		return nil
	}
	var bullets []string
	if err := json.Unmarshal(b, &bullets); err == nil {
		if bullets == nil {
			bullets = []string{}
		}
		*d = Description{Bullets: bullets}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*d = Description{Text: s}
	return nil
}
