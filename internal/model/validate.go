package model

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema []byte

var schemaLoader = gojsonschema.NewBytesLoader(resumeSchema)

// Schema returns the resume record JSON schema.
func Schema() []byte {
	return append([]byte(nil), resumeSchema...)
}

// ValidateMap validates a generic map against the resume record schema.
func ValidateMap(m map[string]interface{}) error {
	return validate(gojsonschema.NewGoLoader(m))
}

// ValidateJSON validates raw JSON bytes against the resume record schema.
func ValidateJSON(b []byte) error {
	return validate(gojsonschema.NewBytesLoader(b))
}

// Validate marshals v and validates the result. v is usually a
// domain.ResumeRecord or domain.ResumeDocument.
func Validate(v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return ValidateJSON(b)
}

func validate(doc gojsonschema.JSONLoader) error {
	res, err := gojsonschema.Validate(schemaLoader, doc)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
