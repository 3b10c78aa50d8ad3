package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"finder/internal/query"
)

type focus int

const (
	focusInput focus = iota
	focusButton
)

// settledMsg carries the outcome of one ticket's fetch back to Update.
type settledMsg struct {
	ticket  query.Ticket
	results []string
	err     error
}

// Option customises a Model.
type Option func(*Model)

// WithSettleHook calls fn with the controller state after every applied settle.
func WithSettleHook(fn func(query.State)) Option {
	return func(m *Model) { m.onSettle = fn }
}

// WithDomain pre-fills the query input.
func WithDomain(d string) Option {
	return func(m *Model) {
		m.input.SetValue(d)
		m.ctrl.SetDomain(d)
	}
}

// Model is the finder form.
type Model struct {
	ctx      context.Context
	ctrl     *query.Controller
	input    textinput.Model
	spin     spinner.Model
	focus    focus
	height   int
	onSettle func(query.State)
}

// New returns a form driven by ctrl. Fetches run under ctx.
func New(ctx context.Context, ctrl *query.Controller, opts ...Option) Model {
	in := textinput.New()
	in.Placeholder = "Enter a domain"
	in.Prompt = "> "
	in.CharLimit = 253
	in.Width = 40
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{ctx: ctx, ctrl: ctrl, input: in, spin: sp}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case settledMsg:
		if m.ctrl.Settle(msg.ticket, msg.results, msg.err) && m.onSettle != nil {
			m.onSettle(m.ctrl.State())
		}
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.State().Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyShiftTab:
		return m.toggleFocus(), nil
	}

	if m.focus == focusButton {
		if msg.Type == tea.KeyEnter || msg.String() == " " {
			return m.click()
		}
		return m, nil
	}

	if t, ok := m.ctrl.OnKey(query.Key(msg.String())); ok {
		return m, m.start(t)
	}
	if msg.Type == tea.KeyEnter {
		return m, nil // inert while loading
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetDomain(m.input.Value())
	return m, cmd
}

// click is the action button. Like Enter, it is inert while loading.
func (m Model) click() (tea.Model, tea.Cmd) {
	if !m.ctrl.CanSubmit() {
		return m, nil
	}
	return m, m.start(m.ctrl.Begin())
}

func (m Model) start(t query.Ticket) tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetch(t))
}

func (m Model) fetch(t query.Ticket) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		results, err := ctrl.Fetch(ctx, t)
		return settledMsg{ticket: t, results: results, err: err}
	}
}

func (m Model) toggleFocus() Model {
	if m.focus == focusInput {
		m.focus = focusButton
		m.input.Blur()
	} else {
		m.focus = focusInput
		m.input.Focus()
	}
	return m
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sub domain finder"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("Welcome! Enter a domain to find its subdomains."))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("  ")
	b.WriteString(m.buttonView())
	b.WriteString("\n\n")

	st := m.ctrl.State()
	v := query.Render(st)
	switch v.Branch {
	case query.BranchProgress:
		b.WriteString(m.spin.View() + " " + v.Message)
	case query.BranchError:
		b.WriteString(errorStyle.Render(v.Message))
	case query.BranchResults:
		b.WriteString(countStyle.Render(fmt.Sprintf("Total Result = %d", v.Count)))
		items, rest := m.fit(v.Items)
		for _, item := range items {
			b.WriteString("\n")
			b.WriteString(itemStyle.Render(item))
		}
		if rest > 0 {
			b.WriteString("\n")
			b.WriteString(subtleStyle.Render(fmt.Sprintf("  … and %d more", rest)))
		}
	case query.BranchEmpty:
		b.WriteString(subtleStyle.Render(v.Message))
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("© Sub Domain Finder · enter: find · tab: switch focus · esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) buttonView() string {
	const label = "Find Subdomains"
	switch {
	case !m.ctrl.CanSubmit():
		return buttonDisabledStyle.Render(label)
	case m.focus == focusButton:
		return buttonFocusedStyle.Render(label)
	default:
		return buttonStyle.Render(label)
	}
}

// fit trims items to the window height, leaving room for the chrome around
// the list. An unknown height shows everything.
func (m Model) fit(items []string) ([]string, int) {
	const chrome = 10
	if m.height == 0 || len(items) <= m.height-chrome {
		return items, 0
	}
	n := max(m.height-chrome, 1)
	return items[:n], len(items) - n
}

// Run starts the form on the terminal and blocks until the user quits.
func Run(ctx context.Context, ctrl *query.Controller, opts ...Option) error {
	p := tea.NewProgram(New(ctx, ctrl, opts...), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
