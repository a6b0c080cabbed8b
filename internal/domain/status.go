package domain

import "time"

// Status is the advisory state the engine reports to its callers.
type Status int

const (
	StatusIdle Status = iota
	StatusIndexing
	StatusReady
	StatusQuerying
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusIndexing:
		return "indexing"
	case StatusReady:
		return "ready"
	case StatusQuerying:
		return "querying"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the status by name in JSON and YAML output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StatusEvent is pushed to observers on every status change.
type StatusEvent struct {
	Status Status    `json:"status"`
	Label  string    `json:"label"`
	Err    string    `json:"error,omitempty"`
	At     time.Time `json:"at"`
}
