package diag

// Severity orders diagnostics; Bag.HasErrors only looks for SevError.
type Severity uint8

const (
	// SevInfo marks facts such as a member body that refers to itself.
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
