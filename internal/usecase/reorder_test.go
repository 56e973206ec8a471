package usecase

import (
	"testing"

	"resume-builder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(o domain.SectionOrder) []domain.SectionID { return o.IDs() }

func TestReorderer_RequiresMode(t *testing.T) {
	r := NewReorderer(domain.DefaultSectionOrder(), nil)
	assert.ErrorIs(t, r.StartDrag(domain.SectionSkills), ErrReorderDisabled)
	assert.ErrorIs(t, r.Drop(domain.SectionSkills), ErrReorderDisabled)
}

func TestReorderer_PinnedSection(t *testing.T) {
	r := NewReorderer(domain.DefaultSectionOrder(), nil)
	r.SetReorderMode(true)
	assert.ErrorIs(t, r.StartDrag(domain.SectionPersonal), ErrSectionPinned)

	before := ids(r.Order())
	require.NoError(t, r.StartDrag(domain.SectionSkills))
	require.NoError(t, r.Drop(domain.SectionPersonal))
	assert.Equal(t, before, ids(r.Order()))
}

func TestReorderer_SelfDropAndNoDragAreNoOps(t *testing.T) {
	changes := 0
	r := NewReorderer(domain.DefaultSectionOrder(), func() { changes++ })
	r.SetReorderMode(true)
	before := ids(r.Order())

	require.NoError(t, r.Drop(domain.SectionEducation))
	require.NoError(t, r.StartDrag(domain.SectionEducation))
	require.NoError(t, r.Drop(domain.SectionEducation))

	assert.Equal(t, before, ids(r.Order()))
	assert.Zero(t, changes)
	_, dragging := r.Dragging()
	assert.False(t, dragging)
}

func TestReorderer_SpliceSemantics(t *testing.T) {
	base := domain.DefaultSectionOrder()
	n := len(base)
	for i := 1; i < n; i++ {
		for j := 1; j < n; j++ {
			if i == j {
				continue
			}
			r := NewReorderer(base, nil)
			r.SetReorderMode(true)
			dragged, target := base[i].ID, base[j].ID
			require.NoError(t, r.StartDrag(dragged))
			require.NoError(t, r.Drop(target))

			got := ids(r.Order())
			assert.Equal(t, dragged, got[j], "drag %d -> %d", i, j)

			var restBefore, restAfter []domain.SectionID
			for _, id := range ids(base) {
				if id != dragged {
					restBefore = append(restBefore, id)
				}
			}
			for _, id := range got {
				if id != dragged {
					restAfter = append(restAfter, id)
				}
			}
			assert.Equal(t, restBefore, restAfter)
		}
	}
}

func TestReorderer_Example(t *testing.T) {
	r := NewReorderer(domain.DefaultSectionOrder(), nil)
	r.SetReorderMode(true)
	require.NoError(t, r.StartDrag(domain.SectionProjects))
	require.NoError(t, r.Drop(domain.SectionSummary))

	assert.Equal(t, []domain.SectionID{
		domain.SectionPersonal, domain.SectionProjects, domain.SectionSummary, domain.SectionExperience,
		domain.SectionEducation, domain.SectionSkills, domain.SectionCertifications,
	}, ids(r.Order()))
}

func TestReorderer_ModeOffAbandonsDrag(t *testing.T) {
	r := NewReorderer(domain.DefaultSectionOrder(), nil)
	r.SetReorderMode(true)
	require.NoError(t, r.StartDrag(domain.SectionSkills))
	r.SetReorderMode(false)
	_, dragging := r.Dragging()
	assert.False(t, dragging)
}

func TestReorderer_ToggleVisibility(t *testing.T) {
	r := NewReorderer(domain.DefaultSectionOrder(), nil)
	require.NoError(t, r.ToggleVisibility(domain.SectionSkills))
	o := r.Order()
	assert.False(t, o[o.IndexOf(domain.SectionSkills)].Visible)
	assert.ErrorIs(t, r.ToggleVisibility(domain.SectionPersonal), ErrSectionPinned)
}

func TestReorderer_InvalidOrderFallsBack(t *testing.T) {
	bad := domain.SectionOrder{{ID: domain.SectionSkills, Visible: true}}
	r := NewReorderer(bad, nil)
	assert.Equal(t, ids(domain.DefaultSectionOrder()), ids(r.Order()))
}
