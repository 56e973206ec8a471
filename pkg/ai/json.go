package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSONObject = errors.New("model output contains no JSON object")

// CleanJSON strips surrounding whitespace and a Markdown code fence.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

// DecodeObject unmarshals model output into a map. When the output carries
// commentary around the object, the outermost {...} span is tried.
func DecodeObject(output string) (map[string]interface{}, error) {
	s := CleanJSON(output)
	var out map[string]interface{}
	err := json.Unmarshal([]byte(s), &out)
	if err == nil && out != nil {
		return out, nil
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		if err2 := json.Unmarshal([]byte(s[start:end+1]), &out); err2 == nil && out != nil {
			return out, nil
		}
	}
	if err == nil {
		err = ErrNoJSONObject
	}
	return nil, err
}
