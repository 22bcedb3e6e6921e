package domain

// Result reports the outcome of a best-effort update.
// Updates on unknown ids are not errors: they yield ResultNotFound and leave
// every entity and counter untouched.
type Result int

const (
	ResultApplied Result = iota
	ResultNotFound
	// ResultRejected marks an update that named a known entity but an
	// impossible transition (e.g. a completed phase going back to active).
	ResultRejected
)

func (r Result) String() string {
	switch r {
	case ResultApplied:
		return "applied"
	case ResultNotFound:
		return "not_found"
	case ResultRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Applied is a shorthand for r == ResultApplied.
func (r Result) Applied() bool { return r == ResultApplied }

// MarshalText lets Result appear as its name in JSON payloads.
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
