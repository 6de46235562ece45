package domain

// EventKind discriminates the payload of an Event.
type EventKind int

const (
	// EventStatus carries a human readable progress or result message.
	EventStatus EventKind = iota
	// EventEntryContents carries the decrypted contents of an entry.
	EventEntryContents
	// EventOneTimePassword carries a freshly derived one-time code.
	EventOneTimePassword
)

// String implements fmt.Stringer.
func (k EventKind) String() string {
	switch k {
	case EventStatus:
		return "status"
	case EventEntryContents:
		return "entry_contents"
	case EventOneTimePassword:
		return "one_time_password"
	default:
		return "unknown"
	}
}

// Event is an immutable message emitted by an operation.
type Event struct {
	Kind      EventKind
	Operation OperationID
	// RunID identifies one execution of Operation.
	RunID string
	// Terminal is set on the last event of a run.
	Terminal bool
	Message  string
	// Err is set on a failed terminal event.
	Err error

	Contents string
	Secret   Secret
	Code     string
}

// Failed reports whether the event ends a run with a failure.
func (e Event) Failed() bool {
	return e.Terminal && e.Err != nil
}

// Status message prefixes.
const (
	PendingMark = "⧗"
	FailureMark = "✗"
)
