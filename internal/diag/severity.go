package diag

// Severity defines the importance of a problem.
type Severity uint8

const (
	// SevInfo is for informational problems.
	SevInfo Severity = iota
	// SevWarning is for warning problems.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
