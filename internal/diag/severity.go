package diag

import "strings"

// Severity orders diagnostics; SevError marks a syntax or lexical error that
// was recovered from, or one that stopped the parse.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Lower is the lowercase name used by golden listings.
func (s Severity) Lower() string {
	return strings.ToLower(s.String())
}
