package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrations_Idempotent(t *testing.T) {
	names := map[string]bool{}
	for _, m := range Migrations() {
		assert.False(t, names[m.Name], "duplicate migration %s", m.Name)
		names[m.Name] = true
		assert.Contains(t, m.SQL, "IF NOT EXISTS", m.Name)
	}
	assert.True(t, strings.Contains(Migrations()[0].SQL, "document JSONB"))
}
