package usecase

import (
	"fmt"
	"os"

	"resume-builder/internal/domain"

	"gopkg.in/yaml.v3"
)

// TemplateCatalog resolves templates by id.
type TemplateCatalog struct {
	order []string
	byID  map[string]domain.Template
}

// NewTemplateCatalog indexes templates, later entries replacing earlier ones
// with the same id.
func NewTemplateCatalog(templates ...domain.Template) *TemplateCatalog {
	c := &TemplateCatalog{byID: map[string]domain.Template{}}
	for _, t := range templates {
		if _, exists := c.byID[t.ID]; !exists {
			c.order = append(c.order, t.ID)
		}
		c.byID[t.ID] = t
	}
	return c
}

// DefaultTemplateCatalog holds only the built-in presets.
func DefaultTemplateCatalog() *TemplateCatalog {
	return NewTemplateCatalog(domain.BuiltinTemplates()...)
}

// LoadTemplateCatalog starts from the built-in presets and applies overrides
// from a YAML file holding a list of templates. An empty path yields the
// built-ins.
func LoadTemplateCatalog(path string) (*TemplateCatalog, error) {
	if path == "" {
		return DefaultTemplateCatalog(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template presets: %w", err)
	}
	var file struct {
		Templates []domain.Template `yaml:"templates"`
	}
	if err := yaml.Unmarshal(b, &file); err != nil {
		return nil, fmt.Errorf("parse template presets: %w", err)
	}
	for _, t := range file.Templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template preset %q has no id", t.Name)
		}
	}
	return NewTemplateCatalog(append(domain.BuiltinTemplates(), file.Templates...)...), nil
}

// Get returns the template with id.
func (c *TemplateCatalog) Get(id string) (domain.Template, error) {
	t, ok := c.byID[id]
	if !ok {
		return domain.Template{}, fmt.Errorf("%q: %w", id, ErrUnknownTemplate)
	}
	return t, nil
}

// Resolve returns the template with id or the default one.
func (c *TemplateCatalog) Resolve(id string) domain.Template {
	if t, err := c.Get(id); err == nil {
		return t
	}
	if t, err := c.Get(domain.DefaultTemplateID); err == nil {
		return t
	}
	return domain.BuiltinTemplates()[0]
}

// List returns templates in registration order.
func (c *TemplateCatalog) List() []domain.Template {
	out := make([]domain.Template, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}
