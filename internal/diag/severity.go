package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevWarning is for advisory diagnostics; they never block generation.
	SevWarning Severity = iota
	// SevError blocks header generation for the packet that carries it.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
