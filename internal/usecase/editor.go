package usecase

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
)

// Editor holds a ResumeDocument and exposes section-scoped mutations. It is
// not safe for concurrent use; Session serialises access to it.
type Editor struct {
	doc      domain.ResumeDocument
	bullets  int
	onChange func()
	newID    func() string
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithBulletDescriptions makes new experience entries use a fixed list of n
// bullets instead of free text.
func WithBulletDescriptions(n int) EditorOption {
	return func(e *Editor) {
		if n > 0 {
			e.bullets = n
		}
	}
}

// WithChangeHook registers fn to run after every successful mutation.
func WithChangeHook(fn func()) EditorOption {
	return func(e *Editor) { e.onChange = fn }
}

// WithIDGenerator replaces the uuid generator, mostly for tests.
func WithIDGenerator(fn func() string) EditorOption {
	return func(e *Editor) { e.newID = fn }
}

// NewEditor wraps doc. Entries without an id get a fresh one so the
// uniqueness invariant holds for imported documents too.
func NewEditor(doc domain.ResumeDocument, opts ...EditorOption) *Editor {
	e := &Editor{newID: newEntryID}
	for _, o := range opts {
		o(e)
	}
	e.doc = normalizeDocument(doc.Clone(), e.newID)
	return e
}

// Document returns a deep copy of the current document.
func (e *Editor) Document() domain.ResumeDocument { return e.doc.Clone() }

func (e *Editor) changed() {
	if e.onChange != nil {
		e.onChange()
	}
}

// AddEntry appends an empty entry to an entry collection and returns its id.
func (e *Editor) AddEntry(section domain.SectionID) (string, error) {
	id := e.newID()
	switch section {
	case domain.SectionEducation:
		e.doc.Education = append(e.doc.Education, domain.EducationEntry{ID: id})
	case domain.SectionExperience:
		entry := domain.WorkExperienceEntry{ID: id}
		if e.bullets > 0 {
			entry.Description = domain.BulletDescription(e.bullets)
		}
		e.doc.WorkExperience = append(e.doc.WorkExperience, entry)
	case domain.SectionProjects:
		e.doc.Projects = append(e.doc.Projects, domain.ProjectEntry{ID: id})
	default:
		return "", fmt.Errorf("add entry to %s: %w", section, ErrInvalidSection)
	}
	e.changed()
	return id, nil
}

// UpdateEntry replaces one field of the entry matching id. The id itself is
// never writable. Experience bullets are addressed as "description.N".
func (e *Editor) UpdateEntry(section domain.SectionID, id, field, value string) error {
	switch section {
	case domain.SectionEducation:
		for i := range e.doc.Education {
			if e.doc.Education[i].ID == id {
				if err := setEducationField(&e.doc.Education[i], field, value); err != nil {
					return err
				}
				e.changed()
				return nil
			}
		}
	case domain.SectionExperience:
		for i := range e.doc.WorkExperience {
			if e.doc.WorkExperience[i].ID == id {
				if err := setExperienceField(&e.doc.WorkExperience[i], field, value); err != nil {
					return err
				}
				e.changed()
				return nil
			}
		}
	case domain.SectionProjects:
		for i := range e.doc.Projects {
			if e.doc.Projects[i].ID == id {
				if err := setProjectField(&e.doc.Projects[i], field, value); err != nil {
					return err
				}
				e.changed()
				return nil
			}
		}
	default:
		return fmt.Errorf("update entry in %s: %w", section, ErrInvalidSection)
	}
	return fmt.Errorf("%s entry %q: %w", section, id, ErrEntryNotFound)
}

// RemoveEntry filters out the entry matching id.
func (e *Editor) RemoveEntry(section domain.SectionID, id string) error {
	removed := false
	switch section {
	case domain.SectionEducation:
		out := e.doc.Education[:0]
		for _, x := range e.doc.Education {
			if x.ID == id {
				removed = true
				continue
			}
			out = append(out, x)
		}
		e.doc.Education = out
	case domain.SectionExperience:
		out := e.doc.WorkExperience[:0]
		for _, x := range e.doc.WorkExperience {
			if x.ID == id {
				removed = true
				continue
			}
			out = append(out, x)
		}
		e.doc.WorkExperience = out
	case domain.SectionProjects:
		out := e.doc.Projects[:0]
		for _, x := range e.doc.Projects {
			if x.ID == id {
				removed = true
				continue
			}
			out = append(out, x)
		}
		e.doc.Projects = out
	default:
		return fmt.Errorf("remove entry from %s: %w", section, ErrInvalidSection)
	}
	if !removed {
		return fmt.Errorf("%s entry %q: %w", section, id, ErrEntryNotFound)
	}
	e.changed()
	return nil
}

// AddSetItem appends value to skills or certifications after trimming.
// Comparison is case-sensitive: "Go" and "go" are distinct.
func (e *Editor) AddSetItem(section domain.SectionID, value string) error {
	set, err := e.stringSet(section)
	if err != nil {
		return err
	}
	v := strings.TrimSpace(value)
	if v == "" {
		return ErrEmptyValue
	}
	for _, existing := range *set {
		if existing == v {
			return fmt.Errorf("%q in %s: %w", v, section, ErrDuplicateValue)
		}
	}
	*set = append(*set, v)
	e.changed()
	return nil
}

// RemoveSetItem removes the first exact match of value.
func (e *Editor) RemoveSetItem(section domain.SectionID, value string) error {
	set, err := e.stringSet(section)
	if err != nil {
		return err
	}
	for i, existing := range *set {
		if existing == value {
			*set = append((*set)[:i:i], (*set)[i+1:]...)
			e.changed()
			return nil
		}
	}
	return fmt.Errorf("%q in %s: %w", value, section, ErrItemNotFound)
}

func (e *Editor) stringSet(section domain.SectionID) (*[]string, error) {
	switch section {
	case domain.SectionSkills:
		return &e.doc.Skills, nil
	case domain.SectionCertifications:
		return &e.doc.Certifications, nil
	}
	return nil, fmt.Errorf("set item in %s: %w", section, ErrInvalidSection)
}

// UpdatePersonal sets one personal-info field.
func (e *Editor) UpdatePersonal(field, value string) error {
	p := &e.doc.PersonalInfo
	switch field {
	case "fullName":
		p.FullName = value
	case "email":
		p.Email = value
	case "phone":
		p.Phone = value
	case "location":
		p.Location = value
	case "linkedin":
		p.LinkedIn = value
	case "website":
		p.Website = value
	case "github":
		p.GitHub = value
	default:
		return fmt.Errorf("personal info %q: %w", field, ErrUnknownField)
	}
	e.changed()
	return nil
}

// SetSummary replaces the professional summary.
func (e *Editor) SetSummary(text string) {
	e.doc.ProfessionalSummary = text
	e.changed()
}

// SetProfilePicture stores an image data URI; an empty string clears it.
func (e *Editor) SetProfilePicture(dataURI string) error {
	if dataURI != "" && !isImageDataURI(dataURI) {
		return ErrInvalidPicture
	}
	e.doc.ProfilePicture = dataURI
	e.changed()
	return nil
}

func isImageDataURI(s string) bool {
	if !strings.HasPrefix(s, "data:image/") {
		return false
	}
	head, _, ok := strings.Cut(s, ",")
	return ok && strings.HasSuffix(head, ";base64")
}

// SortExperienceByRecency orders work experience newest first: entries
// without an end date (current roles) lead, then by end date, then by start
// date. Ties keep their relative order.
func (e *Editor) SortExperienceByRecency() {
	sort.SliceStable(e.doc.WorkExperience, func(i, j int) bool {
		a, b := e.doc.WorkExperience[i], e.doc.WorkExperience[j]
		aCurrent, bCurrent := a.EndDate == "", b.EndDate == ""
		if aCurrent != bCurrent {
			return aCurrent
		}
		if c := compareDates(a.EndDate, b.EndDate); c != 0 {
			return c > 0
		}
		return compareDates(a.StartDate, b.StartDate) > 0
	})
	e.changed()
}

// compareDates compares YYYY[-MM[-DD]] strings numerically, falling back to
// a plain string compare for anything else.
func compareDates(a, b string) int {
	ka, okA := dateKey(a)
	kb, okB := dateKey(b)
	if okA && okB {
		switch {
		case ka > kb:
			return 1
		case ka < kb:
			return -1
		}
		return 0
	}
	return strings.Compare(a, b)
}

func dateKey(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) == 0 || len(parts) > 3 {
		return 0, false
	}
	key := 0
	for i := 0; i < 3; i++ {
		n := 0
		if i < len(parts) {
			v, err := strconv.Atoi(parts[i])
			if err != nil {
				return 0, false
			}
			n = v
		}
		key = key*100 + n
	}
	return key, true
}

func setEducationField(x *domain.EducationEntry, field, value string) error {
	switch field {
	case "school":
		x.School = value
	case "degree":
		x.Degree = value
	case "field":
		x.Field = value
	case "startDate":
		x.StartDate = value
	case "endDate":
		x.EndDate = value
	case "gpa":
		x.GPA = value
	default:
		return fmt.Errorf("education %q: %w", field, ErrUnknownField)
	}
	return nil
}

func setExperienceField(x *domain.WorkExperienceEntry, field, value string) error {
	switch field {
	case "company":
		x.Company = value
	case "position":
		x.Position = value
	case "startDate":
		x.StartDate = value
	case "endDate":
		x.EndDate = value
	case "description":
		if x.Description.IsBullets() {
			return fmt.Errorf("experience description is a bullet list, address bullets as description.N: %w", ErrUnknownField)
		}
		x.Description.Text = value
	default:
		idx, ok := bulletIndex(field)
		if !ok || !x.Description.IsBullets() || idx >= len(x.Description.Bullets) {
			return fmt.Errorf("experience %q: %w", field, ErrUnknownField)
		}
		x.Description.Bullets[idx] = value
	}
	return nil
}

func bulletIndex(field string) (int, bool) {
	rest, ok := strings.CutPrefix(field, "description.")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func setProjectField(x *domain.ProjectEntry, field, value string) error {
	switch field {
	case "name":
		x.Name = value
	case "description":
		x.Description = value
	case "technologies":
		x.Technologies = value
	case "link":
		x.Link = value
	default:
		return fmt.Errorf("project %q: %w", field, ErrUnknownField)
	}
	return nil
}

func newEntryID() string { return uuid.New().String() }

// normalizeDocument fills nil collections, assigns ids to entries that lack
// one (or repeat one) and drops blank or duplicate set items.
func normalizeDocument(doc domain.ResumeDocument, newID func() string) domain.ResumeDocument {
	if doc.Education == nil {
		doc.Education = []domain.EducationEntry{}
	}
	if doc.WorkExperience == nil {
		doc.WorkExperience = []domain.WorkExperienceEntry{}
	}
	if doc.Projects == nil {
		doc.Projects = []domain.ProjectEntry{}
	}

	fresh := func(seen map[string]bool, id string) string {
		if id == "" || seen[id] {
			id = newID()
		}
		seen[id] = true
		return id
	}
	seen := map[string]bool{}
	for i := range doc.Education {
		doc.Education[i].ID = fresh(seen, doc.Education[i].ID)
	}
	seen = map[string]bool{}
	for i := range doc.WorkExperience {
		doc.WorkExperience[i].ID = fresh(seen, doc.WorkExperience[i].ID)
	}
	seen = map[string]bool{}
	for i := range doc.Projects {
		doc.Projects[i].ID = fresh(seen, doc.Projects[i].ID)
	}

	doc.Skills = dedupe(doc.Skills)
	doc.Certifications = dedupe(doc.Certifications)
	return doc
}

func dedupe(in []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
