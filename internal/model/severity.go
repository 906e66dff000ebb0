package model

import "strings"

// KnownSeverities lists the conventional severity values. The store accepts any string.
var KnownSeverities = []string{"info", "warn", "error", "debug"}

// SeverityLabel maps a free-text severity onto a bounded label set for metrics.
// Common spellings fold onto the known values; anything else is "other".
func SeverityLabel(severity string) string {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case "":
		return "none"
	case "info", "information", "inf", "notice":
		return "info"
	case "warn", "warning", "wrn":
		return "warn"
	case "error", "err", "erro":
		return "error"
	case "debug", "dbg", "debu", "trace":
		return "debug"
	}
	return "other"
}
