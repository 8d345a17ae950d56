package model

// Category name limits
const (
	MaxShortnameLength = 40
	MaxLongnameLength  = 255
)

// Output formats
const (
	FormatTable   = "table"
	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatSummary = "summary"
)

// Data file extensions
const (
	ExtJSON  = ".json"
	ExtJSONL = ".jsonl"
)
