package display

import (
	"sync"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/marker"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/selection"
)

// MarkerPanel is the map-marker view of a controller. It keeps the records
// to draw and the highlight state, updated only through the controller's
// notifications.
type MarkerPanel struct {
	mu      sync.RWMutex
	records []*model.Record
	state   marker.State
	updates int
}

// NewMarkerPanel creates an empty panel.
func NewMarkerPanel() *MarkerPanel {
	return &MarkerPanel{}
}

// Attach subscribes the panel to c and takes over its current view. A panel
// may be attached to a newer controller after a reload.
func (p *MarkerPanel) Attach(c *selection.Controller) {
	p.mu.Lock()
	p.records = c.SelectionView()
	p.state = c.MarkerState()
	p.updates++
	p.mu.Unlock()

	c.OnSelectionChanged(p.selectionChanged)
	c.OnMarkerStateChanged(p.markerStateChanged)
}

func (p *MarkerPanel) selectionChanged(sel []*model.Record) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = sel
	p.state = marker.State{Mode: marker.Unselected}
	p.updates++
}

func (p *MarkerPanel) markerStateChanged(view []*model.Record, state marker.State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = view
	p.state = state
	p.updates++
}

// Snapshot returns a copy of the records to draw and the highlight state.
func (p *MarkerPanel) Snapshot() ([]*model.Record, marker.State) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*model.Record, len(p.records))
	copy(out, p.records)
	return out, p.state
}

// Updates counts how often the panel was redrawn from a notification.
func (p *MarkerPanel) Updates() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.updates
}
