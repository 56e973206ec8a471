package usecase

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"resume-builder/internal/domain"
)

// ATS component weights. They sum to 100.
const (
	WeightContact    = 20
	WeightKeywords   = 25
	WeightFormat     = 20
	WeightExperience = 20
	WeightSkills     = 15
)

const maxJDKeywords = 20

// JobDescription is the extracted text of a job posting.
type JobDescription struct {
	URL         string `json:"url,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ATSReport is the result of an ATS analysis. Each component score is
// bounded by its weight.
type ATSReport struct {
	TotalScore       int      `json:"totalScore"`
	ContactInfoScore int      `json:"contactInfoScore"`
	KeywordsScore    int      `json:"keywordsScore"`
	FormatScore      int      `json:"formatScore"`
	ExperienceScore  int      `json:"experienceScore"`
	SkillsScore      int      `json:"skillsScore"`
	MatchedKeywords  []string `json:"matchedKeywords"`
	MissingKeywords  []string `json:"missingKeywords"`
	Suggestions      []string `json:"suggestions"`
	LastUpdated      string   `json:"lastUpdated"`
}

// ATSScorer grades a document against an optional job description.
type ATSScorer struct {
	Now func() time.Time
}

var (
	wordRe   = regexp.MustCompile(`[a-z][a-z0-9+#.]*[a-z0-9+#]|[a-z]`)
	digitRe  = regexp.MustCompile(`\d`)
	stopWord = map[string]bool{}
)

func init() {
	for _, w := range strings.Fields(`about above after again all also and any are because been before being
		between both but can could did does doing down during each few for from further had has have having
		her here hers him his how into its itself just more most must not now off once only other our ours out
		over own same she should some such than that the their theirs them then there these they this those
		through too under until very was were what when where which while who whom why will with would you
		your yours able work working team teams role job join looking candidate candidates including experience
		years year strong skills using use well new like across within per etc via responsibilities requirements
		preferred required plus ability knowledge an as at be by do if in is it of on or so to up we us`) {
		stopWord[w] = true
	}
}

// Score produces a deterministic report. Every deduction yields a suggestion.
func (s ATSScorer) Score(doc domain.ResumeDocument, jd *JobDescription) ATSReport {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	r := ATSReport{Suggestions: []string{}, MatchedKeywords: []string{}, MissingKeywords: []string{}}

	r.ContactInfoScore = r.add(scoreContact(doc, &r.Suggestions), WeightContact)
	r.KeywordsScore = r.add(scoreKeywords(doc, jd, &r), WeightKeywords)
	r.FormatScore = r.add(scoreFormat(doc, &r.Suggestions), WeightFormat)
	r.ExperienceScore = r.add(scoreExperience(doc, &r.Suggestions), WeightExperience)
	r.SkillsScore = r.add(scoreSkills(doc, &r.Suggestions), WeightSkills)

	r.LastUpdated = now().UTC().Format(time.RFC3339)
	return r
}

func (r *ATSReport) add(score, weight int) int {
	if score > weight {
		score = weight
	}
	if score < 0 {
		score = 0
	}
	r.TotalScore += score
	return score
}

func scoreContact(doc domain.ResumeDocument, sug *[]string) int {
	p := doc.PersonalInfo
	score := 0
	check := func(ok bool, pts int, msg string) {
		if ok {
			score += pts
		} else {
			*sug = append(*sug, msg)
		}
	}
	check(strings.TrimSpace(p.FullName) != "", 5, "Add your full name.")
	check(strings.Contains(p.Email, "@"), 5, "Add a valid email address.")
	check(strings.TrimSpace(p.Phone) != "", 4, "Add a phone number.")
	check(strings.TrimSpace(p.Location) != "", 3, "Add your location (city, country).")
	check(p.LinkedIn != "" || p.Website != "" || p.GitHub != "", 3, "Add a LinkedIn, GitHub or portfolio link.")
	return score
}

func scoreKeywords(doc domain.ResumeDocument, jd *JobDescription, r *ATSReport) int {
	if jd == nil || strings.TrimSpace(jd.Title+" "+jd.Description) == "" {
		r.Suggestions = append(r.Suggestions, "Provide a job description to measure keyword match.")
		n := len(doc.Skills)
		if n > 10 {
			n = 10
		}
		return WeightKeywords * n / 20
	}
	keywords := extractKeywords(jd.Title+" "+jd.Description, maxJDKeywords)
	if len(keywords) == 0 {
		return WeightKeywords
	}
	have := map[string]bool{}
	for _, w := range tokenize(documentText(doc)) {
		have[w] = true
	}
	for _, k := range keywords {
		if have[k] {
			r.MatchedKeywords = append(r.MatchedKeywords, k)
		} else {
			r.MissingKeywords = append(r.MissingKeywords, k)
		}
	}
	if len(r.MissingKeywords) > 0 {
		shown := r.MissingKeywords
		if len(shown) > 5 {
			shown = shown[:5]
		}
		r.Suggestions = append(r.Suggestions, fmt.Sprintf("Work these job keywords into your resume: %s.", strings.Join(shown, ", ")))
	}
	return WeightKeywords * len(r.MatchedKeywords) / len(keywords)
}

func scoreFormat(doc domain.ResumeDocument, sug *[]string) int {
	score := 0
	if strings.TrimSpace(doc.ProfessionalSummary) != "" {
		score += 5
	} else {
		*sug = append(*sug, "Add a professional summary.")
	}
	if len(doc.Education) > 0 {
		score += 5
	} else {
		*sug = append(*sug, "Add your education.")
	}
	datesOK := len(doc.WorkExperience) > 0
	descOK := len(doc.WorkExperience) > 0
	for _, w := range doc.WorkExperience {
		if strings.TrimSpace(w.StartDate) == "" {
			datesOK = false
		}
		if len(w.Description.Lines()) == 0 {
			descOK = false
		}
	}
	if datesOK {
		score += 5
	} else {
		*sug = append(*sug, "Give every role a start date.")
	}
	if descOK {
		score += 5
	} else {
		*sug = append(*sug, "Describe what you did in every role.")
	}
	return score
}

func scoreExperience(doc domain.ResumeDocument, sug *[]string) int {
	n := len(doc.WorkExperience)
	if n > 3 {
		n = 3
	}
	score := n * 4
	if n < 3 {
		*sug = append(*sug, "List more relevant work experience.")
	}
	quantified := false
	for _, w := range doc.WorkExperience {
		for _, line := range w.Description.Lines() {
			if digitRe.MatchString(line) {
				quantified = true
			}
		}
	}
	if quantified {
		score += 8
	} else {
		*sug = append(*sug, "Quantify achievements with numbers (%, $, counts).")
	}
	return score
}

func scoreSkills(doc domain.ResumeDocument, sug *[]string) int {
	n := len(doc.Skills)
	if n >= 10 {
		return WeightSkills
	}
	*sug = append(*sug, fmt.Sprintf("List at least 10 skills (currently %d).", n))
	return WeightSkills * n / 10
}

// extractKeywords returns the most frequent non-stopword terms, ties broken
// alphabetically.
func extractKeywords(text string, limit int) []string {
	counts := map[string]int{}
	for _, w := range tokenize(text) {
		if len(w) < 2 || stopWord[w] {
			continue
		}
		counts[w]++
	}
	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > limit {
		words = words[:limit]
	}
	return words
}

func tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

func documentText(doc domain.ResumeDocument) string {
	parts := []string{doc.ProfessionalSummary}
	parts = append(parts, doc.Skills...)
	parts = append(parts, doc.Certifications...)
	for _, w := range doc.WorkExperience {
		parts = append(parts, w.Position, w.Company)
		parts = append(parts, w.Description.Lines()...)
	}
	for _, e := range doc.Education {
		parts = append(parts, e.Degree, e.Field, e.School)
	}
	for _, p := range doc.Projects {
		parts = append(parts, p.Name, p.Description, p.Technologies)
	}
	return strings.Join(parts, " ")
}
