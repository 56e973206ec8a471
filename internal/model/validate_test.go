package model

import (
	"testing"

	"resume-builder/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestValidate_AcceptsRecord(t *testing.T) {
	rec := domain.ResumeRecord{
		ResumeDocument: domain.NewResumeDocument(),
		Template:       "modern",
		SectionOrder:   domain.DefaultSectionOrder(),
	}
	rec.WorkExperience = append(rec.WorkExperience, domain.WorkExperienceEntry{
		ID: "w1", Company: "Acme", Description: domain.BulletDescription(3, "Shipped"),
	})
	rec.Projects = append(rec.Projects, domain.ProjectEntry{ID: "p1", Name: "CLI", Description: "text"})

	assert.NoError(t, Validate(rec))
}

func TestValidateJSON(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"empty object", `{}`, false},
		{"string description", `{"workExperience":[{"id":"a","description":"did things"}]}`, false},
		{"numeric description", `{"workExperience":[{"id":"a","description":42}]}`, true},
		{"unknown section id", `{"sectionOrder":[{"id":"hobbies","visible":true}]}`, true},
		{"non data uri picture", `{"profilePicture":"http://x/y.png"}`, true},
		{"data uri picture", `{"profilePicture":"data:image/png;base64,AAAA"}`, false},
		{"skills not strings", `{"skills":[1,2]}`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateJSON([]byte(tc.body))
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMap(t *testing.T) {
	assert.NoError(t, ValidateMap(map[string]interface{}{"professionalSummary": "hi"}))
	assert.Error(t, ValidateMap(map[string]interface{}{"professionalSummary": 12}))
}
