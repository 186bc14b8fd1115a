package tui

import "github.com/mmcdole/popcorn/internal/domain"

// Message types for the TUI

// ErrMsg reports a failed user action in the status bar
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SearchResultsMsg signals that search results are ready
type SearchResultsMsg struct {
	Seq     uint64
	Query   string
	Results []domain.MovieSummary
}

// SearchFailedMsg signals a failed search
type SearchFailedMsg struct {
	Seq   uint64
	Query string
	Err   error
}

// DetailLoadedMsg signals that a movie detail is ready
type DetailLoadedMsg struct {
	Seq    uint64
	ID     string
	Detail *domain.MovieDetail
}

// DetailFailedMsg signals a failed detail fetch
type DetailFailedMsg struct {
	Seq uint64
	ID  string
	Err error
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message if it is still message Seq
type ClearStatusMsg struct {
	Seq uint64
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
