package usecase

import (
	"fmt"
	"strings"
	"sync"

	"resume-builder/internal/domain"
)

// RequestTokens issues monotonic per-target tokens so a response can be
// checked against the newest request for the same target.
type RequestTokens struct {
	mu     sync.Mutex
	latest map[string]uint64
}

func NewRequestTokens() *RequestTokens {
	return &RequestTokens{latest: map[string]uint64{}}
}

// Issue returns a token newer than every earlier token for target.
func (t *RequestTokens) Issue(target string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest[target]++
	return t.latest[target]
}

// Current reports whether token is still the newest for target.
func (t *RequestTokens) Current(target string, token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[target] == token
}

// SuggestionTarget names the field an AI suggestion is written into:
// "summary", or "<section>/<entryID>/<field>" for an entry field.
type SuggestionTarget struct {
	Section domain.SectionID
	EntryID string
	Field   string
}

func (t SuggestionTarget) String() string {
	if t.Section == domain.SectionSummary {
		return string(domain.SectionSummary)
	}
	return fmt.Sprintf("%s/%s/%s", t.Section, t.EntryID, t.Field)
}

// ParseSuggestionTarget parses the String form.
func ParseSuggestionTarget(s string) (SuggestionTarget, error) {
	if s == string(domain.SectionSummary) {
		return SuggestionTarget{Section: domain.SectionSummary}, nil
	}
	parts := strings.SplitN(s, "/", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return SuggestionTarget{}, fmt.Errorf("suggestion target %q: %w", s, ErrUnknownField)
	}
	section, err := domain.ParseSectionID(parts[0])
	if err != nil {
		return SuggestionTarget{}, err
	}
	if !section.IsEntryCollection() {
		return SuggestionTarget{}, fmt.Errorf("suggestion target %q: %w", s, ErrInvalidSection)
	}
	return SuggestionTarget{Section: section, EntryID: parts[1], Field: parts[2]}, nil
}

// apply writes value into the target field through the editor.
func (t SuggestionTarget) apply(e *Editor, value string) error {
	if t.Section == domain.SectionSummary {
		e.SetSummary(value)
		return nil
	}
	return e.UpdateEntry(t.Section, t.EntryID, t.Field, value)
}

// DefaultSuggestionPrompt builds the prompt used when the caller gives none.
func DefaultSuggestionPrompt(doc domain.ResumeDocument, t SuggestionTarget) string {
	var b strings.Builder
	switch t.Section {
	case domain.SectionSummary:
		b.WriteString("Write a concise professional summary (3 sentences, no preamble) for this candidate.\n")
		if len(doc.WorkExperience) > 0 {
			fmt.Fprintf(&b, "Current role: %s at %s.\n", doc.WorkExperience[0].Position, doc.WorkExperience[0].Company)
		}
		if len(doc.Skills) > 0 {
			fmt.Fprintf(&b, "Skills: %s.\n", strings.Join(doc.Skills, ", "))
		}
	case domain.SectionExperience:
		for _, w := range doc.WorkExperience {
			if w.ID == t.EntryID {
				fmt.Fprintf(&b, "Write one achievement-focused resume bullet for a %s at %s. Reply with the bullet text only.\n", w.Position, w.Company)
				if cur := strings.Join(w.Description.Lines(), " "); cur != "" {
					fmt.Fprintf(&b, "Improve this draft: %s\n", cur)
				}
			}
		}
	case domain.SectionProjects:
		for _, p := range doc.Projects {
			if p.ID == t.EntryID {
				fmt.Fprintf(&b, "Describe the project %q in two sentences for a resume. Technologies: %s. Reply with the text only.\n", p.Name, p.Technologies)
			}
		}
	}
	if b.Len() == 0 {
		fmt.Fprintf(&b, "Write resume text for the %s field. Reply with the text only.\n", t.Field)
	}
	return b.String()
}
