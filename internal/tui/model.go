// Package tui is the interactive terminal client: a member directory and an
// incoming request inbox, each backed by a listing view.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Marga-Ghale/skill-swap/internal/listing"
	"github.com/Marga-Ghale/skill-swap/internal/types"
	"github.com/Marga-Ghale/skill-swap/internal/view"
)

// API is the backend surface the terminal client needs. *client.Client
// satisfies it.
type API interface {
	view.MemberDirectory
	view.RequestSource
}

type screen int

const (
	screenMembers screen = iota
	screenRequests
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeCompose
)

const requestTimeout = 15 * time.Second

type (
	membersLoadedMsg  struct{ load view.MembersLoad }
	requestsLoadedMsg struct{ load view.RequestsLoad }
	actionDoneMsg     struct{ err error }
)

// toast is the latest notification shown in the status line. Views notify
// from command goroutines, so it is guarded.
type toast struct {
	mu       sync.Mutex
	title    string
	body     string
	severity listing.Severity
}

func (t *toast) Notify(title, description string, severity listing.Severity) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.title, t.body, t.severity = title, description, severity
}

func (t *toast) read() (string, string, listing.Severity) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.title, t.body, t.severity
}

// Model is the root bubbletea model.
type Model struct {
	members  *view.MembersView
	requests *view.RequestsView
	toast    *toast
	logger   *slog.Logger

	screen   screen
	mode     mode
	cursor   int
	loading  bool
	err      error
	search   textinput.Model
	compose  []textinput.Model
	focus    int
	target   listing.Member
	width    int
	quitting bool
}

// New builds the model. Nothing is fetched until Init runs.
func New(api API, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	t := &toast{}

	search := textinput.New()
	search.Placeholder = "search names and skills"
	search.Prompt = "/ "
	search.CharLimit = types.MaxSkillLength

	m := &Model{
		members:  view.NewMembersView(api, t, logger),
		requests: view.NewRequestsView(api, t, logger),
		toast:    t,
		logger:   logger.With(slog.String("component", "tui")),
		search:   search,
		compose:  newComposeInputs(),
	}
	m.requests.Deactivate()
	return m
}

func newComposeInputs() []textinput.Model {
	labels := []string{"Skill you offer", "Skill you want", "Message"}
	limits := []int{types.MaxSkillLength, types.MaxSkillLength, types.MaxMessageLength}
	inputs := make([]textinput.Model, len(labels))
	for i := range inputs {
		in := textinput.New()
		in.Prompt = labels[i] + ": "
		in.CharLimit = limits[i]
		inputs[i] = in
	}
	return inputs
}

func (m *Model) Init() tea.Cmd {
	return m.reload()
}

// reload fetches the data behind the current screen.
func (m *Model) reload() tea.Cmd {
	m.loading = true
	m.err = nil
	if m.screen == screenRequests {
		v := m.requests
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			return requestsLoadedMsg{load: v.Fetch(ctx)}
		}
	}
	v := m.members
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return membersLoadedMsg{load: v.Fetch(ctx)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case membersLoadedMsg:
		m.finishLoad(m.members.Apply(msg.load))
		return m, nil

	case requestsLoadedMsg:
		m.finishLoad(m.requests.Apply(msg.load))
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.logger.Debug("action_failed", slog.Any("error", msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeCompose:
			return m.updateCompose(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *Model) finishLoad(err error) {
	if errors.Is(err, view.ErrStale) {
		return
	}
	m.loading = false
	m.err = err
	m.cursor = 0
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		return m, m.switchScreen()
	case "g":
		return m, m.reload()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.visibleCount()-1 {
			m.cursor++
		}
	case "right", "l", "n":
		m.turnPage(true)
	case "left", "h", "p":
		m.turnPage(false)
	case "f":
		m.cycleFilter()
	case "/":
		if m.screen == screenMembers {
			m.mode = modeSearch
			return m, m.search.Focus()
		}
	case "s":
		if target, ok := m.selectedMember(); ok {
			return m, m.startCompose(target)
		}
	case "a", "enter":
		return m, m.decide(types.RequestAccepted)
	case "x":
		return m, m.decide(types.RequestRejected)
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.members.Listing.SetSearchTerm(m.search.Value())
	m.cursor = 0
	return m, cmd
}

func (m *Model) startCompose(target listing.Member) tea.Cmd {
	m.mode = modeCompose
	m.target = target
	m.focus = 0
	for i := range m.compose {
		m.compose[i].SetValue("")
		m.compose[i].Blur()
	}
	return m.compose[0].Focus()
}

func (m *Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyDown, tea.KeyUp:
		m.compose[m.focus].Blur()
		step := 1
		if msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp {
			step = len(m.compose) - 1
		}
		m.focus = (m.focus + step) % len(m.compose)
		return m, m.compose[m.focus].Focus()
	case tea.KeyEnter:
		offered := m.compose[0].Value()
		requested := m.compose[1].Value()
		if strings.TrimSpace(offered) == "" || strings.TrimSpace(requested) == "" {
			m.toast.Notify("Missing Information", "Please select both skills for the swap.", listing.SeverityError)
			return m, nil
		}
		m.mode = modeBrowse
		v, target, message := m.members, m.target, m.compose[2].Value()
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			return actionDoneMsg{err: v.SendRequest(ctx, target, offered, requested, message)}
		}
	}
	var cmd tea.Cmd
	m.compose[m.focus], cmd = m.compose[m.focus].Update(msg)
	return m, cmd
}

// decide applies the decision locally at once and persists it in the
// background. Non-pending requests are left alone.
func (m *Model) decide(status string) tea.Cmd {
	req, ok := m.selectedRequest()
	if !ok || !m.requests.Decide(req.ID, status) {
		return nil
	}
	m.cursor = 0
	v, id := m.requests, req.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return actionDoneMsg{err: v.Persist(ctx, id, status)}
	}
}

func (m *Model) switchScreen() tea.Cmd {
	if m.screen == screenMembers {
		m.members.Deactivate()
		m.requests.Activate()
		m.screen = screenRequests
	} else {
		m.requests.Deactivate()
		m.members.Activate()
		m.screen = screenMembers
	}
	m.cursor = 0
	return m.reload()
}

func (m *Model) turnPage(forward bool) {
	switch {
	case m.screen == screenMembers && forward:
		m.members.Listing.NextPage()
	case m.screen == screenMembers:
		m.members.Listing.PreviousPage()
	case forward:
		m.requests.Listing.NextPage()
	default:
		m.requests.Listing.PreviousPage()
	}
	m.cursor = 0
}

func (m *Model) cycleFilter() {
	if m.screen == screenMembers {
		ctrl := m.members.Listing
		ctrl.SetFilter(nextChoice(types.AvailabilityFilters, ctrl.FilterValue()))
	} else {
		ctrl := m.requests.Listing
		ctrl.SetFilter(nextChoice(types.RequestStatusFilters, ctrl.FilterValue()))
	}
	m.cursor = 0
}

func nextChoice(choices []string, current string) string {
	i := slices.Index(choices, current)
	return choices[(i+1)%len(choices)]
}

func (m *Model) visibleCount() int {
	if m.screen == screenMembers {
		return len(m.members.Listing.PageItems())
	}
	return len(m.requests.Listing.PageItems())
}

func (m *Model) selectedMember() (listing.Member, bool) {
	if m.screen != screenMembers {
		return listing.Member{}, false
	}
	items := m.members.Listing.PageItems()
	if m.cursor >= len(items) {
		return listing.Member{}, false
	}
	return items[m.cursor], true
}

func (m *Model) selectedRequest() (listing.SwapRequest, bool) {
	if m.screen != screenRequests {
		return listing.SwapRequest{}, false
	}
	items := m.requests.Listing.PageItems()
	if m.cursor >= len(items) {
		return listing.SwapRequest{}, false
	}
	return items[m.cursor], true
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(api API, logger *slog.Logger) error {
	if _, err := tea.NewProgram(New(api, logger), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run terminal client: %w", err)
	}
	return nil
}
