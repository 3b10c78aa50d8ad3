package query

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// ProgressText is shown while a request is outstanding.
	ProgressText = "Loading..."
	// EmptyHint is shown when there is nothing else to show.
	EmptyHint = "No subdomains found. Try a different domain."
)

// Branch is the part of the view a render selects.
type Branch int

const (
	BranchProgress Branch = iota
	BranchError
	BranchResults
	BranchEmpty
)

func (b Branch) String() string {
	switch b {
	case BranchProgress:
		return "progress"
	case BranchError:
		return "error"
	case BranchResults:
		return "results"
	case BranchEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// View is the derived, display-ready form of a State.
type View struct {
	Branch  Branch
	Message string
	Count   int
	Items   []string
}

// Render picks exactly one branch for s. Items are sorted on every call.
func Render(s State) View {
	switch {
	case s.Status == StatusLoading:
		return View{Branch: BranchProgress, Message: ProgressText}
	case s.Status == StatusFailure:
		return View{Branch: BranchError, Message: s.Message}
	case len(s.Results) > 0:
		items := slices.Clone(s.Results)
		slices.Sort(items)
		return View{Branch: BranchResults, Count: len(items), Items: items}
	default:
		return View{Branch: BranchEmpty, Message: EmptyHint}
	}
}

// String renders v as plain text.
func (v View) String() string {
	if v.Branch != BranchResults {
		return v.Message
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Total Result = %d", v.Count)
	for _, item := range v.Items {
		b.WriteString("\n  ")
		b.WriteString(item)
	}
	return b.String()
}
