package dashboard

import (
	"sync"
	"time"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/selection"
)

// StateManager manages application state in a thread-safe manner
type StateManager struct {
	mu sync.RWMutex

	controller *selection.Controller

	// Loading state
	isLoading      bool
	loadingMessage string

	interactionState model.InteractionState

	// Metadata
	lastDataUpdate time.Time
}

// NewStateManager creates a new StateManager instance
func NewStateManager() *StateManager {
	return &StateManager{}
}

// GetController returns the current controller, nil before the first load.
func (sm *StateManager) GetController() *selection.Controller {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.controller
}

// SetController swaps in the controller of a completed load.
func (sm *StateManager) SetController(c *selection.Controller) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.controller = c
	sm.lastDataUpdate = time.Now()
}

// GetLoadingState returns current loading state and message
func (sm *StateManager) GetLoadingState() (bool, string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.isLoading, sm.loadingMessage
}

// SetLoadingState updates loading state and message
func (sm *StateManager) SetLoadingState(isLoading bool, message string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.isLoading = isLoading
	sm.loadingMessage = message
}

// GetInteractionState returns current interaction state
func (sm *StateManager) GetInteractionState() model.InteractionState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	state := sm.interactionState
	state.IsLoading = sm.isLoading
	state.LoadingMessage = sm.loadingMessage
	return state
}

// UpdateInteractionState updates specific fields of interaction state
func (sm *StateManager) UpdateInteractionState(updateFunc func(*model.InteractionState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	updateFunc(&sm.interactionState)
}

// SetStatusMessage replaces the status line.
func (sm *StateManager) SetStatusMessage(msg string) {
	sm.UpdateInteractionState(func(s *model.InteractionState) {
		s.StatusMessage = msg
	})
}

// GetLastDataUpdate returns when the last successful load was installed
func (sm *StateManager) GetLastDataUpdate() time.Time {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.lastDataUpdate
}
