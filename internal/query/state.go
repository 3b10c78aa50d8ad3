package query

// FailureMessage is the only error text shown to the user.
const FailureMessage = "Could not fetch subdomains"

// Status is the request status of the controller.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// State is a snapshot of the controller.
//
// Results is only populated in StatusSuccess, Message and Cause only in
// StatusFailure.
type State struct {
	Domain  string
	Status  Status
	Results []string
	Message string
	Cause   error
}

// Loading reports whether a request is outstanding.
func (s State) Loading() bool { return s.Status == StatusLoading }

// Failed reports whether the last request ended in failure.
func (s State) Failed() bool { return s.Status == StatusFailure }

func (s State) clone() State {
	out := s
	if s.Results != nil {
		out.Results = append([]string(nil), s.Results...)
	}
	return out
}
