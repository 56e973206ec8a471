package usecase

import (
	"fmt"

	"resume-builder/internal/domain"
)

// Reorderer is the drag-reorder state machine: idle -> dragging(id) -> idle.
// It only ever permutes the SectionOrder; document content is untouched.
type Reorderer struct {
	order    domain.SectionOrder
	enabled  bool
	dragging domain.SectionID
	onChange func()
}

func NewReorderer(order domain.SectionOrder, onChange func()) *Reorderer {
	if order.Validate() != nil {
		order = domain.DefaultSectionOrder()
	}
	return &Reorderer{order: order.Clone(), onChange: onChange}
}

// Order returns a copy of the current order.
func (r *Reorderer) Order() domain.SectionOrder { return r.order.Clone() }

func (r *Reorderer) Enabled() bool { return r.enabled }

// Dragging returns the section being dragged, if any.
func (r *Reorderer) Dragging() (domain.SectionID, bool) {
	return r.dragging, r.dragging != ""
}

// SetReorderMode turns drag handling on or off. Turning it off abandons any
// drag in progress.
func (r *Reorderer) SetReorderMode(on bool) {
	r.enabled = on
	if !on {
		r.dragging = ""
	}
}

// StartDrag enters dragging(id).
func (r *Reorderer) StartDrag(id domain.SectionID) error {
	if !r.enabled {
		return ErrReorderDisabled
	}
	if id.IsRequired() {
		return fmt.Errorf("drag %s: %w", id, ErrSectionPinned)
	}
	if r.order.IndexOf(id) < 0 {
		return fmt.Errorf("drag %s: %w", id, ErrInvalidSection)
	}
	r.dragging = id
	return nil
}

// EndDrag returns to idle without moving anything.
func (r *Reorderer) EndDrag() { r.dragging = "" }

// Drop moves the dragged section to the target's position using splice
// semantics: remove the dragged entry, then insert it at the index the
// target held before the removal. Dropping onto itself, onto the pinned
// section, or with no drag in progress leaves the order unchanged.
func (r *Reorderer) Drop(target domain.SectionID) error {
	if !r.enabled {
		return ErrReorderDisabled
	}
	dragged := r.dragging
	r.dragging = ""
	if dragged == "" || dragged == target || target.IsRequired() {
		return nil
	}
	from := r.order.IndexOf(dragged)
	to := r.order.IndexOf(target)
	if from < 0 || to < 0 {
		return fmt.Errorf("drop %s on %s: %w", dragged, target, ErrInvalidSection)
	}
	r.order = moveEntry(r.order, from, to)
	if r.onChange != nil {
		r.onChange()
	}
	return nil
}

// ToggleVisibility flips the visible flag of a non-required section.
func (r *Reorderer) ToggleVisibility(id domain.SectionID) error {
	if id.IsRequired() {
		return fmt.Errorf("hide %s: %w", id, ErrSectionPinned)
	}
	i := r.order.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("hide %s: %w", id, ErrInvalidSection)
	}
	r.order[i].Visible = !r.order[i].Visible
	if r.onChange != nil {
		r.onChange()
	}
	return nil
}

func moveEntry(order domain.SectionOrder, from, to int) domain.SectionOrder {
	out := order.Clone()
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append(domain.SectionOrder{moved}, out[to:]...)...)
	return out
}
