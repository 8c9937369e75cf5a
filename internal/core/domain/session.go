package domain

// Status is the state of a search session.
type Status string

// Session statuses.
const (
	// StatusIdle means there is no committed query.
	StatusIdle Status = "idle"

	// StatusLoading means a request for the committed query is in flight.
	StatusLoading Status = "loading"

	// StatusSuccess means the live request returned one or more results.
	StatusSuccess Status = "success"

	// StatusNoResults means the live request returned zero results.
	StatusNoResults Status = "no-results"

	// StatusError means the live request failed.
	StatusError Status = "error"
)

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is recognised.
func (s Status) IsValid() bool {
	switch s {
	case StatusIdle, StatusLoading, StatusSuccess, StatusNoResults, StatusError:
		return true
	default:
		return false
	}
}

// Settled returns true once the live request has produced an outcome.
func (s Status) Settled() bool {
	return s == StatusSuccess || s == StatusNoResults || s == StatusError
}

// Message returns the announcement text for the status region.
func (s Status) Message() string {
	switch s {
	case StatusIdle:
		return "Enter a query to search."
	case StatusLoading:
		return "Searching..."
	case StatusSuccess:
		return "Results updated."
	case StatusError:
		return "Search failed. Please try again."
	case StatusNoResults:
		return "No results found."
	default:
		return ""
	}
}

// SessionState is the snapshot a renderer draws from.
type SessionState struct {
	// Status is the current state machine position.
	Status Status

	// Query is the committed query driving the current or most recent request.
	Query string

	// Results holds the last applied results. During loading the previous
	// results stay visible until the new request settles.
	Results []SearchResult

	// ErrorMessage is set only when Status is StatusError.
	ErrorMessage string
}

// IdleState returns the cleared state.
func IdleState() SessionState {
	return SessionState{Status: StatusIdle}
}

// HasResults returns true if there is at least one result.
func (s SessionState) HasResults() bool {
	return len(s.Results) > 0
}

// Clone returns a copy that shares no mutable memory with s.
func (s SessionState) Clone() SessionState {
	if s.Results != nil {
		results := make([]SearchResult, len(s.Results))
		copy(results, s.Results)
		s.Results = results
	}
	return s
}
