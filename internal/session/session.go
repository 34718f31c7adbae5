// Package session owns the mode machine around the purchase-order document.
//
// A State is the triple the rest of the program observes: the document, the
// last published error map, and the Editable/Locked mode. Every operation
// takes a State and returns a replacement; nothing is mutated in place, so a
// caller holding the previous value still sees a consistent snapshot.
package session

import (
	"errors"

	"github.com/podraft/podraft/internal/document"
	"github.com/podraft/podraft/internal/selection"
	"github.com/podraft/podraft/internal/validate"
)

// Mode is the two-state edit gate.
type Mode string

const (
	// ModeEditable accepts mutations.
	ModeEditable Mode = "editable"
	// ModeLocked is the read-only view over the last-saved document.
	ModeLocked Mode = "locked"
)

// ErrLocked is returned by every mutating operation while the session is
// locked. Reset is the only way back to editing.
var ErrLocked = errors.New("session: document is locked")

// State is the session triple published after every action.
type State struct {
	Doc    document.PurchaseOrder `json:"doc"`
	Errors validate.Errors        `json:"errors,omitempty"`
	Mode   Mode                   `json:"mode"`
}

// Valid reports whether the last save (or check) produced no errors.
func (s State) Valid() bool {
	return len(s.Errors) == 0
}

// Session applies operations to states. It carries no document state of its
// own, only the id source for fresh sections.
type Session struct {
	ids document.IDSource
}

// Option customizes a Session.
type Option func(*Session)

// WithIDSource injects a deterministic id generator (primarily for tests).
func WithIDSource(ids document.IDSource) Option {
	return func(s *Session) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// New builds a session applier.
func New(opts ...Option) *Session {
	s := &Session{ids: document.UUIDSource}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewState returns the initial triple: seed document, no errors, editable.
func (s *Session) NewState() State {
	return State{Doc: document.Seed(), Errors: validate.Errors{}, Mode: ModeEditable}
}

// SetField updates a top-level scalar and clears that field's stale error so
// the user sees feedback vanish as they type.
func (s *Session) SetField(state State, field document.OrderField, value string) (State, error) {
	if state.Mode == ModeLocked {
		return state, ErrLocked
	}
	out := state
	out.Doc = document.SetField(state.Doc, field, value)
	if _, ok := state.Errors[field.Key()]; ok {
		out.Errors = cloneErrors(state.Errors)
		delete(out.Errors, field.Key())
	}
	return out, nil
}

// AddSection appends a fresh roster section.
func (s *Session) AddSection(state State) (State, error) {
	if state.Mode == ModeLocked {
		return state, ErrLocked
	}
	out := state
	out.Doc = document.AddSection(state.Doc, s.ids)
	return out, nil
}

// RemoveSection drops a section and its talents.
func (s *Session) RemoveSection(state State, sectionID string) (State, error) {
	return s.applyDoc(state, func(po document.PurchaseOrder) (document.PurchaseOrder, error) {
		return document.RemoveSection(po, sectionID)
	})
}

// SetSectionField updates one section scalar.
func (s *Session) SetSectionField(state State, sectionID string, field document.SectionField, value string) (State, error) {
	return s.applyDoc(state, func(po document.PurchaseOrder) (document.PurchaseOrder, error) {
		return document.SetSectionField(po, sectionID, field, value)
	})
}

// ToggleSectionExpanded flips a section's expanded flag.
func (s *Session) ToggleSectionExpanded(state State, sectionID string) (State, error) {
	return s.applyDoc(state, func(po document.PurchaseOrder) (document.PurchaseOrder, error) {
		return document.ToggleSectionExpanded(po, sectionID)
	})
}

// SetTalentField updates one talent scalar.
func (s *Session) SetTalentField(state State, sectionID, talentID string, field document.TalentField, value string) (State, error) {
	return s.applyDoc(state, func(po document.PurchaseOrder) (document.PurchaseOrder, error) {
		return document.SetTalentField(po, sectionID, talentID, field, value)
	})
}

// RemoveTalent removes one talent line item.
func (s *Session) RemoveTalent(state State, sectionID, talentID string) (State, error) {
	return s.applyDoc(state, func(po document.PurchaseOrder) (document.PurchaseOrder, error) {
		return document.RemoveTalent(po, sectionID, talentID)
	})
}

// ToggleSelection routes through the selection policy.
func (s *Session) ToggleSelection(state State, sectionID, talentID string) (State, error) {
	return s.applyDoc(state, func(po document.PurchaseOrder) (document.PurchaseOrder, error) {
		return selection.Toggle(po, sectionID, talentID)
	})
}

// Save validates the document. A clean result locks the session; a dirty one
// publishes the error map and stays editable with the document untouched.
func (s *Session) Save(state State) State {
	errs := validate.Check(state.Doc)
	out := state
	out.Errors = errs
	if len(errs) == 0 {
		out.Mode = ModeLocked
	}
	return out
}

// Reset discards everything and reinstates the seed triple. It is the only
// operation accepted in both modes.
func (s *Session) Reset(State) State {
	return s.NewState()
}

func (s *Session) applyDoc(state State, op func(document.PurchaseOrder) (document.PurchaseOrder, error)) (State, error) {
	if state.Mode == ModeLocked {
		return state, ErrLocked
	}
	doc, err := op(state.Doc)
	if err != nil {
		return state, err
	}
	out := state
	out.Doc = doc
	return out, nil
}

func cloneErrors(errs validate.Errors) validate.Errors {
	out := make(validate.Errors, len(errs))
	for key, msg := range errs {
		out[key] = msg
	}
	return out
}
