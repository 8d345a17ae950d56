package model

// FileEvent represents a file system event
type FileEvent struct {
	Path      string
	Operation string
}

// ConfirmDialog is a yes/no prompt shown over the dashboard.
type ConfirmDialog struct {
	Title     string
	Message   string
	OnConfirm func()
	OnCancel  func()
}

// InteractionState represents the current UI interaction state
type InteractionState struct {
	ShowHelp       bool
	IsPaused       bool
	IsLoading      bool
	LoadingMessage string
	LayoutStyle    int
	ConfirmDialog  *ConfirmDialog

	Focus         int    // panel receiving cursor keys
	Cursor        int    // index into the rendered marker list
	LegendCursor  int    // index into the category legend
	StatusMessage string // status message to display
}
