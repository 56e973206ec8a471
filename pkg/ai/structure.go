package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

const structureInstructions = `You convert the plain text of a resume into JSON.
Return ONLY a single JSON object that conforms to the JSON Schema below. Do NOT include explanatory text or code fences.

Field rules:
 - personalInfo: {fullName, email, phone, location, linkedin, website, github}; use "" for anything not present
 - professionalSummary: string
 - education: array of {school, degree, field, startDate, endDate, gpa}
 - workExperience: array of {company, position, startDate, endDate, description}; description is an array of bullet strings
 - skills: array of short strings, one skill each
 - certifications: array of strings
 - projects: array of {name, description, technologies, link}
 - dates use "YYYY-MM" where the month is known, otherwise "YYYY"; a current role has endDate "Present"
Do not invent facts that are not in the text. Omit ids.`

// StructurePrompt builds the prompt asking the model to turn resume text
// into a document matching schema.
func StructurePrompt(text string, schema []byte) string {
	var b strings.Builder
	b.WriteString(structureInstructions)
	if len(schema) > 0 {
		b.WriteString("\n\nJSON-SCHEMA:\n")
		b.Write(schema)
	}
	b.WriteString("\n\nRESUME TEXT:\n")
	b.WriteString(text)
	return b.String()
}

// SanitizeDocument coerces common model deviations into the document shape.
// It mutates m in place.
func SanitizeDocument(m map[string]interface{}) {
	if m == nil {
		return
	}
	// Records carry presentation fields the import does not own.
	for _, k := range []string{"_id", "template", "sectionOrder", "profilePicture"} {
		delete(m, k)
	}
	if s, ok := m["personalInfo"].(string); ok {
		m["personalInfo"] = map[string]interface{}{"fullName": s}
	}
	if info, ok := m["personalInfo"].(map[string]interface{}); ok {
		stringifyFields(info)
	}
	if v, ok := m["professionalSummary"]; ok {
		m["professionalSummary"] = scalarString(v)
	}
	m["skills"] = stringList(m["skills"], "name")
	m["certifications"] = stringList(m["certifications"], "name")

	for _, key := range []string{"education", "workExperience", "projects"} {
		arr, ok := m[key].([]interface{})
		if !ok {
			delete(m, key)
			continue
		}
		kept := make([]interface{}, 0, len(arr))
		for _, raw := range arr {
			item, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			delete(item, "id")
			desc, hasDesc := item["description"]
			if key == "workExperience" && hasDesc {
				delete(item, "description")
			}
			stringifyFields(item)
			if key == "workExperience" && hasDesc {
				item["description"] = descriptionValue(desc)
			}
			kept = append(kept, item)
		}
		m[key] = kept
	}
}

// stringifyFields turns scalar values into strings and drops nested values.
func stringifyFields(m map[string]interface{}) {
	for k, v := range m {
		switch v.(type) {
		case string:
		case float64, bool, json.Number:
			m[k] = scalarString(v)
		default:
			delete(m, k)
		}
	}
}

func scalarString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// stringList accepts a comma separated string or an array of strings or
// objects carrying nameKey.
func stringList(v interface{}, nameKey string) []string {
	out := []string{}
	switch t := v.(type) {
	case string:
		for _, part := range strings.Split(t, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	case []interface{}:
		for _, raw := range t {
			switch item := raw.(type) {
			case string:
				if s := strings.TrimSpace(item); s != "" {
					out = append(out, s)
				}
			case map[string]interface{}:
				if s, ok := item[nameKey].(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, strings.TrimSpace(s))
				}
			}
		}
	}
	return out
}

func descriptionValue(v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return t
	case []interface{}:
		bullets := make([]interface{}, 0, len(t))
		for _, raw := range t {
			if s, ok := raw.(string); ok {
				bullets = append(bullets, s)
			}
		}
		return bullets
	default:
		return ""
	}
}
