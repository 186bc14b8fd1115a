package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/service"
	"github.com/mmcdole/popcorn/internal/tui/components"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// Focus is the component receiving keyboard input
type Focus int

const (
	FocusSearch Focus = iota
	FocusResults
	FocusRight // detail pane or watched list
)

// DefaultWindowTitle is the terminal title while no movie is open
const DefaultWindowTitle = "popcorn"

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool
	Focus Focus

	// Services
	SearchSvc    *service.SearchService
	DetailSvc    *service.DetailService
	WatchlistSvc *service.WatchlistService
	Selection    *service.Selection

	// One cancellation slot per request kind; results from older
	// sequence numbers are dropped
	searchSlot *service.Slot
	detailSlot *service.Slot
	ctx        context.Context

	// UI Components
	SearchBar components.SearchBar
	Results   components.ResultList
	Detail    components.DetailPane
	Watched   components.WatchedList

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	statusSeq    uint64
	SpinnerFrame int
	rightOpen    bool

	logger *slog.Logger
}

// NewModel creates a new application model
func NewModel(
	searchSvc *service.SearchService,
	detailSvc *service.DetailService,
	watchlistSvc *service.WatchlistService,
	logger *slog.Logger,
	showSummary bool,
) Model {
	if logger == nil {
		logger = slog.Default()
	}

	m := Model{
		State:        StateBrowsing,
		Focus:        FocusSearch,
		SearchSvc:    searchSvc,
		DetailSvc:    detailSvc,
		WatchlistSvc: watchlistSvc,
		Selection:    service.NewSelection(watchlistSvc, logger),
		searchSlot:   service.NewSlot(),
		detailSlot:   service.NewSlot(),
		ctx:          context.Background(),
		SearchBar:    components.NewSearchBar(),
		Results:      components.NewResultList(),
		Detail:       components.NewDetailPane(),
		Watched:      components.NewWatchedList(showSummary),
		rightOpen:    true,
		logger:       logger,
	}
	m.SearchBar.Focus(false)
	m.refreshWatched()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.SearchBar.Init(),
		tea.SetWindowTitle(DefaultWindowTitle),
		TickCmd(100*time.Millisecond),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.Results.SetSpinnerFrame(m.SpinnerFrame)
		m.Detail.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(100 * time.Millisecond)

	case SearchResultsMsg:
		if !m.searchSlot.Current(msg.Seq) {
			m.logger.Debug("dropping stale search results", "query", msg.Query, "seq", msg.Seq)
			return m, nil
		}
		m.searchSlot.Done(msg.Seq)
		m.Results.SetItems(msg.Results)
		m.SearchBar.SetCount(len(msg.Results))
		return m, nil

	case SearchFailedMsg:
		if !m.searchSlot.Current(msg.Seq) {
			return m, nil
		}
		m.searchSlot.Done(msg.Seq)
		m.Results.SetError(msg.Err.Error())
		m.SearchBar.SetCount(0)
		return m, nil

	case DetailLoadedMsg:
		if !m.detailSlot.Current(msg.Seq) || msg.ID != m.Selection.SelectedID() {
			m.logger.Debug("dropping stale detail", "id", msg.ID, "seq", msg.Seq)
			return m, nil
		}
		m.detailSlot.Done(msg.Seq)
		m.Detail.SetDetail(msg.Detail)
		if msg.Detail.Title == "" {
			return m, nil
		}
		return m, tea.SetWindowTitle("Movie | " + msg.Detail.Title)

	case DetailFailedMsg:
		if !m.detailSlot.Current(msg.Seq) {
			return m, nil
		}
		m.detailSlot.Done(msg.Seq)
		// Known gap: the failure is only logged. The pane leaves the loading
		// state with neither a detail nor a rating control.
		m.logger.Error("detail fetch failed",
			"id", msg.ID,
			"session", m.Selection.SessionID(),
			"error", msg.Err)
		m.Detail.StopLoading()
		return m, nil

	case ErrMsg:
		text := userMessage(msg.Err)
		if msg.Context != "" {
			text = msg.Context + ": " + text
		}
		cmd := m.setStatus(text, true, 5*time.Second)
		return m, cmd

	case StatusMsg:
		cmd := m.setStatus(msg.Message, msg.IsError, 3*time.Second)
		return m, cmd

	case ClearStatusMsg:
		if msg.Seq != m.statusSeq {
			return m, nil
		}
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Forward anything else (cursor blink) to the search input
	var cmd tea.Cmd
	m.SearchBar, cmd = m.SearchBar.Update(msg)
	return m, cmd
}

// onQueryChanged starts a search for the current query, or clears the
// results when the query is too short
func (m *Model) onQueryChanged() tea.Cmd {
	query := m.SearchBar.Query()

	if !m.SearchSvc.ShouldQuery(query) {
		m.searchSlot.Cancel()
		m.Results.SetItems(nil)
		m.SearchBar.SetCount(0)
		return nil
	}

	ctx, seq := m.searchSlot.Begin(m.ctx)
	m.Results.SetLoading(true)
	return SearchCmd(ctx, m.SearchSvc, seq, query)
}

// selectMovie toggles the detail pane for id
func (m *Model) selectMovie(id string) tea.Cmd {
	if !m.Selection.Select(id) {
		return m.closeDetail()
	}

	ctx, seq := m.detailSlot.Begin(m.ctx)
	m.Detail.SetLoading()
	rating, watched := m.Selection.WatchedRating(id)
	m.Detail.SetWatched(watched, rating)
	m.Results.SetOpenID(id)
	m.updateLayout()

	m.logger.Debug("opening movie", "id", id, "session", m.Selection.SessionID())
	return DetailCmd(ctx, m.DetailSvc, seq, id)
}

// closeDetail cancels any detail fetch and returns to the watched list
func (m *Model) closeDetail() tea.Cmd {
	m.detailSlot.Cancel()
	m.Selection.Close()
	m.Detail.Clear()
	m.Results.SetOpenID("")
	m.refreshWatched()
	m.updateLayout()
	return tea.SetWindowTitle(DefaultWindowTitle)
}

// setRating applies a rating change while an unwatched movie is open
func (m *Model) setRating(rating int) {
	if m.Detail.Detail() == nil || m.Selection.IsWatched() {
		return
	}
	if err := m.Selection.SetRating(rating); err != nil {
		m.logger.Debug("rating rejected", "rating", rating, "error", err)
		return
	}
	m.Detail.SetRating(m.Selection.UserRating())
}

// addWatched confirms the pending rating of the open movie
func (m *Model) addWatched() tea.Cmd {
	detail := m.Detail.Detail()
	if detail == nil {
		return nil
	}

	entry, err := m.Selection.ConfirmAdd(detail)
	if err != nil {
		return errCmd(err)
	}

	m.detailSlot.Cancel()
	m.Detail.Clear()
	m.Results.SetOpenID("")
	m.refreshWatched()
	m.updateLayout()

	return tea.Batch(
		tea.SetWindowTitle(DefaultWindowTitle),
		statusCmd("Added "+entry.Title+" to watched"),
	)
}

// removeWatched removes the highlighted watched entry
func (m *Model) removeWatched() tea.Cmd {
	entry := m.Watched.SelectedEntry()
	if entry == nil {
		return nil
	}

	removed, err := m.Selection.Remove(entry.ID)
	if err != nil {
		return errCmd(err)
	}
	m.refreshWatched()
	if !removed {
		return nil
	}
	return statusCmd("Removed " + entry.Title)
}

// refreshWatched reloads the watched rows and summary from the store
func (m *Model) refreshWatched() {
	rows := m.WatchlistSvc.Filter(m.Watched.FilterQuery())
	m.Watched.SetRows(rows, len(m.WatchlistSvc.Entries()))
	m.Watched.SetSummary(m.WatchlistSvc.Summary())
}

// setFocus moves keyboard focus
func (m *Model) setFocus(f Focus) tea.Cmd {
	m.Focus = f

	var cmd tea.Cmd
	if f == FocusSearch {
		cmd = m.SearchBar.Focus(false)
	} else {
		m.SearchBar.Blur()
	}
	m.Results.SetFocused(f == FocusResults)
	m.Detail.SetFocused(f == FocusRight)
	m.Watched.SetFocused(f == FocusRight)
	return cmd
}

// setStatus shows a footer message and schedules its removal. A newer
// message invalidates the pending clear of an older one.
func (m *Model) setStatus(message string, isErr bool, d time.Duration) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = message
	m.StatusIsErr = isErr
	return ClearStatusCmd(d, m.statusSeq)
}

func statusCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: message}
	}
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrMsg{Err: err}
	}
}

// userMessage maps controller errors to status bar text
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotRated):
		return "Rate the movie before adding it"
	case errors.Is(err, domain.ErrAlreadyWatched):
		return "Already in your watched list"
	case errors.Is(err, domain.ErrNotBrowsing):
		return "Close the movie first"
	case errors.Is(err, domain.ErrNoSelection):
		return "No movie selected"
	default:
		return err.Error()
	}
}
