package domain

// Status is a document lifecycle state.
type Status string

const (
	StatusInbox        Status = "INBOX"
	StatusRegistered   Status = "REGISTERED"
	StatusClassified   Status = "CLASSIFIED"
	StatusQualified    Status = "QUALIFIED"
	StatusExhibitReady Status = "EXHIBIT_READY"
	StatusFiled        Status = "FILED"
	StatusFrozen       Status = "FROZEN"
	StatusArchived     Status = "ARCHIVED"
	StatusDuplicate    Status = "DUPLICATE"
	StatusDisputed     Status = "DISPUTED"
	StatusRedacted     Status = "REDACTED"
	StatusError        Status = "ERROR"
)

// InitialStatus is assigned at ingestion when the caller supplies none.
const InitialStatus = StatusInbox

// AllStatuses lists every lifecycle state, in pipeline order first and
// exception states after.
var AllStatuses = []Status{
	StatusInbox,
	StatusRegistered,
	StatusClassified,
	StatusQualified,
	StatusExhibitReady,
	StatusFiled,
	StatusFrozen,
	StatusArchived,
	StatusDuplicate,
	StatusDisputed,
	StatusRedacted,
	StatusError,
}

// transitions is the single source of truth for status legality. ARCHIVED is
// terminal. The recovery paths are asymmetric: ERROR may return to INBOX or
// close at ARCHIVED, DISPUTED may resume at CLASSIFIED or close at ARCHIVED.
var transitions = map[Status][]Status{
	StatusInbox:        {StatusRegistered, StatusDuplicate, StatusError, StatusDisputed},
	StatusRegistered:   {StatusClassified, StatusDuplicate, StatusError, StatusDisputed},
	StatusClassified:   {StatusQualified, StatusRedacted, StatusError, StatusDisputed},
	StatusQualified:    {StatusExhibitReady, StatusError, StatusDisputed},
	StatusExhibitReady: {StatusFiled, StatusError, StatusDisputed},
	StatusFiled:        {StatusFrozen, StatusError, StatusDisputed},
	StatusFrozen:       {StatusArchived, StatusError, StatusDisputed},
	StatusArchived:     {},
	StatusDuplicate:    {StatusArchived, StatusError},
	StatusDisputed:     {StatusClassified, StatusError, StatusArchived},
	StatusRedacted:     {StatusQualified, StatusError},
	StatusError:        {StatusInbox, StatusArchived},
}

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s Status) bool {
	_, ok := transitions[s]
	return ok
}

// AllowedNext returns the set of states reachable from s in one transition.
// Unknown states map to the empty set, which blocks all transitions.
func AllowedNext(s Status) []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether from → to appears in the transition table.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
