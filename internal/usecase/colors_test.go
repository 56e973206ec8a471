package usecase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resume-builder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceRGBNormalizer(t *testing.T) {
	n := DeviceRGBNormalizer{}
	tests := []struct {
		name  string
		value string
		role  ColorRole
		want  string
	}{
		{"oklch white", "oklch(1 0 0)", RoleForeground, "rgb(255, 255, 255)"},
		{"oklch black", "oklch(0 0 0)", RoleBackground, "rgb(0, 0, 0)"},
		{"oklch percent lightness", "oklch(100% 0 0)", RoleForeground, "rgb(255, 255, 255)"},
		{"oklab", "oklab(0 0 0)", RoleForeground, "rgb(0, 0, 0)"},
		{"alpha", "oklch(0 0 0 / 50%)", RoleForeground, "rgba(0, 0, 0, 0.5)"},
		{"embedded in shorthand", "2px solid oklch(1 0 0)", RoleForeground, "2px solid rgb(255, 255, 255)"},
		{"hex untouched", "#1e40af", RoleBackground, "#1e40af"},
		{"rgb untouched", "rgb(1, 2, 3)", RoleForeground, "rgb(1, 2, 3)"},
		{"bad background falls back to white", "oklch(bogus 0 0)", RoleBackground, fallbackBackground},
		{"bad foreground falls back to black", "oklch(bogus 0 0)", RoleForeground, fallbackForeground},
		{"unsupported color() falls back", "color(display-p3 1 0 0)", RoleBackground, fallbackBackground},
		{"fallback keeps width and style", "2px solid color(display-p3 1 0 0)", RoleForeground, "2px solid " + fallbackForeground},
		{"only the bad function falls back", "oklch(1 0 0) oklch(bogus 0 0)", RoleForeground, "rgb(255, 255, 255) " + fallbackForeground},
		{"lab uses D50 white", "lab(50% 40 59.5)", RoleForeground, "rgb(191, 87, 0)"},
		{"lab white", "lab(100 0 0)", RoleBackground, "rgb(255, 255, 255)"},
		{"lch uses D50 white", "lch(50% 70 40)", RoleForeground, "rgb(206, 71, 45)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.value, tt.role))
		})
	}
}

func TestNormalizeDeclarations(t *testing.T) {
	got := NormalizeDeclarations(DeviceRGBNormalizer{}, "color: oklch(0 0 0); border-bottom: 2px solid oklch(1 0 0);")
	assert.Equal(t, "color: rgb(0, 0, 0); border-bottom: 2px solid rgb(255, 255, 255)", got)

	got = NormalizeDeclarations(DeviceRGBNormalizer{}, "background-color: oklch(x 0 0); color: oklch(x 0 0)")
	assert.Equal(t, "background-color: "+fallbackBackground+"; color: "+fallbackForeground, got)
}

func TestBuiltinTemplatesNormalizeCleanly(t *testing.T) {
	for _, tpl := range domain.BuiltinTemplates() {
		l := Render(domain.NewResumeDocument(), tpl, domain.DefaultSectionOrder(), RenderOptions{Mode: ModeExport}).NormalizeColors(DeviceRGBNormalizer{})
		for _, v := range []string{l.Style.HeaderBackground, l.Style.HeaderText, l.Style.SectionHeaderStyle, l.Style.AccentStyle} {
			assert.NotContains(t, strings.ToLower(v), "oklch", tpl.ID)
		}
	}
}

func TestTemplateCatalog(t *testing.T) {
	c := DefaultTemplateCatalog()
	assert.Len(t, c.List(), 4)
	assert.Equal(t, domain.DefaultTemplateID, c.Resolve("does-not-exist").ID)
	_, err := c.Get("does-not-exist")
	assert.ErrorIs(t, err, ErrUnknownTemplate)

	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`templates:
  - id: minimal
    name: Minimal Override
    headerBackground: "#000000"
    headerText: "#ffffff"
  - id: mono
    name: Mono
    headerBackground: "#222222"
    headerText: "#eeeeee"
`), 0o644))

	loaded, err := LoadTemplateCatalog(path)
	require.NoError(t, err)
	assert.Len(t, loaded.List(), 5)
	minimal, err := loaded.Get("minimal")
	require.NoError(t, err)
	assert.Equal(t, "Minimal Override", minimal.Name)

	require.NoError(t, os.WriteFile(path, []byte("templates:\n  - name: nameless\n"), 0o644))
	_, err = LoadTemplateCatalog(path)
	assert.Error(t, err)
}
