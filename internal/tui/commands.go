package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/popcorn/internal/service"
)

// Command factories for async operations.
// A cancelled request yields no message at all.

// SearchCmd runs query under the context of search slot seq
func SearchCmd(ctx context.Context, svc *service.SearchService, seq uint64, query string) tea.Cmd {
	return func() tea.Msg {
		results, err := svc.Search(ctx, query)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return SearchFailedMsg{Seq: seq, Query: query, Err: err}
		}
		return SearchResultsMsg{Seq: seq, Query: query, Results: results}
	}
}

// DetailCmd fetches id under the context of detail slot seq
func DetailCmd(ctx context.Context, svc *service.DetailService, seq uint64, id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := svc.Detail(ctx, id)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return DetailFailedMsg{Seq: seq, ID: id, Err: err}
		}
		return DetailLoadedMsg{Seq: seq, ID: id, Detail: detail}
	}
}

// TickCmd returns a command that sends a tick after the given duration
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd clears status message seq after a delay
func ClearStatusCmd(d time.Duration, seq uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
