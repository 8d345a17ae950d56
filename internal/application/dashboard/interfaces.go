package dashboard

import (
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/presentation/interaction"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/presentation/layout"
)

// DisplayController handles terminal display operations
type DisplayController interface {
	// EnterAlternateScreen switches to alternate terminal screen
	EnterAlternateScreen()
	// ExitAlternateScreen returns to normal terminal screen
	ExitAlternateScreen()
	// ClearScreen clears the terminal screen
	ClearScreen()
	// RenderWithState renders a dashboard frame with the given interaction state
	RenderWithState(view *layout.DashboardView, state model.InteractionState)
}

// InputHandler processes keyboard and other input events
type InputHandler interface {
	// Events returns a channel of keyboard events
	Events() <-chan interaction.KeyEvent
	// Close cleans up input handler resources
	Close() error
}

// FileMonitor watches for file changes
type FileMonitor interface {
	// Events returns a channel of file change events
	Events() <-chan model.FileEvent
	// Close stops monitoring and cleans up resources
	Close() error
}
