package service

import (
	"time"

	"github.com/tazhate/planner/internal/domain"
)

// PanelState names the authoring panel's lifecycle states
type PanelState int

const (
	PanelClosed PanelState = iota
	PanelCreating
	PanelEditing
)

// Panel models the authoring panel: it opens blank against a selected day for
// creation, or pre-populated from an existing occurrence for editing. Submit
// runs the matching mutation and closes on success; a rejected submit keeps
// the panel open with the fields intact. Cancel discards in-progress edits
// without touching the store.
type Panel struct {
	svc    *EventService
	state  PanelState
	fields domain.Event

	// identity of the occurrence being edited
	editID   string
	editDate time.Time
}

// NewPanel creates a closed panel over the given service
func NewPanel(svc *EventService) *Panel {
	return &Panel{svc: svc}
}

// State returns the current lifecycle state
func (p *Panel) State() PanelState {
	return p.state
}

// Fields exposes the editable field set while the panel is open
func (p *Panel) Fields() *domain.Event {
	return &p.fields
}

// OpenCreate opens the panel with blank fields bound to the selected day
func (p *Panel) OpenCreate(day time.Time) {
	p.state = PanelCreating
	p.fields = domain.Event{Date: domain.DateOf(day)}
	p.editID = ""
	p.editDate = time.Time{}
}

// OpenEdit opens the panel pre-populated with a full copy of the event
func (p *Panel) OpenEdit(e domain.Event) {
	p.state = PanelEditing
	p.fields = e
	p.editID = e.ID
	p.editDate = e.Date
}

// Submit commits the panel's fields: a create admits a new (possibly
// expanded) event, an edit replaces the original occurrence in place. On
// failure the panel stays open so the user can correct the fields.
func (p *Panel) Submit() error {
	switch p.state {
	case PanelCreating:
		if _, err := p.svc.Create(p.fields); err != nil {
			return err
		}
	case PanelEditing:
		if _, err := p.svc.Replace(p.editID, p.editDate, p.fields); err != nil {
			return err
		}
	default:
		return nil
	}

	p.reset()
	return nil
}

// Cancel closes the panel and discards in-progress field edits
func (p *Panel) Cancel() {
	p.reset()
}

func (p *Panel) reset() {
	p.state = PanelClosed
	p.fields = domain.Event{}
	p.editID = ""
	p.editDate = time.Time{}
}
