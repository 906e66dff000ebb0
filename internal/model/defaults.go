package model

// Pagination defaults shared by the service and the HTTP layer.
const (
	DefaultPage  = 1
	DefaultLimit = 10

	// SeverityAll disables the severity filter.
	SeverityAll = "all"
)
