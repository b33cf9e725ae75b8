// Package tui provides the terminal user interface for figaro.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/figaroapp/figaro/internal/appointment"
	"github.com/figaroapp/figaro/internal/config"
	"github.com/figaroapp/figaro/internal/dateutil"
	"github.com/figaroapp/figaro/internal/drag"
	"github.com/figaroapp/figaro/internal/reconcile"
	"github.com/figaroapp/figaro/internal/schedule"
	"github.com/figaroapp/figaro/internal/tui/commands"
	"github.com/figaroapp/figaro/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDrag        // A drag gesture is in progress
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone     ModalType = iota
	ModalDetail             // View an existing appointment
	ModalConflict           // Confirm a risky move
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	booking commands.Booking
	cache   commands.Cache
	config  *config.Config

	// Theme and styles
	theme   *theme.Theme
	styles  *Styles
	spinner spinner.Model

	// Scheduling engine
	manager   *reconcile.Manager
	validator *schedule.Validator
	session   *drag.Session
	index     *appointment.Index
	analyzer  schedule.Options

	// State
	weekStart time.Time // Monday of current week
	cursor    Cell
	mode      Mode
	loading   bool
	stale     bool // rendering snapshot data, backend fetch pending or failed

	// Modal state
	modalType     ModalType
	detailAppt    *appointment.Appointment // Appointment shown in the detail modal
	proposal      *reconcile.Proposal      // Deferred move awaiting confirmation
	proposalStart time.Time                // Candidate start time for the deferred move
	modalChoice   int                      // 0 = confirm, 1 = cancel

	// Terminal dimensions and layout
	width        int
	height       int
	layout       layout
	scrollOffset int

	// Messages
	statusMsg  string
	statusTime time.Time

	// Error state
	err error

	now func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithNow overrides the model's clock.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
		m.validator = schedule.NewValidator(now)
		m.session = drag.NewSession(m.validator, now)
	}
}

// New creates a new TUI model.
func New(booking commands.Booking, cache commands.Cache, cfg *config.Config, opts ...ModelOption) *Model {
	// Load theme from config
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		// Fallback to mocha on error
		t, _ = theme.Load("mocha")
	}

	styles := NewStyles(t)
	validator := schedule.NewValidator(time.Now)

	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styles.HelpStyle))

	monday, _ := dateutil.WeekRange(time.Now())

	m := &Model{
		booking:   booking,
		cache:     cache,
		config:    cfg,
		theme:     t,
		styles:    styles,
		spinner:   sp,
		manager:   reconcile.NewManager(),
		validator: validator,
		session:   drag.NewSession(validator, time.Now),
		index:     appointment.BuildIndex(nil),
		analyzer: schedule.Options{
			BufferMinutes: cfg.Schedule.BufferMinutes,
			WorkingHours: schedule.HoursRange{
				Start: cfg.Schedule.DayStart,
				End:   cfg.Schedule.DayEnd,
			},
			CheckBarberAvailability: cfg.Schedule.CheckBarberAvailability,
			AllowAdjacent:           cfg.Schedule.AllowAdjacent,
		},
		weekStart: monday,
		mode:      ModeNormal,
		loading:   true,
		layout:    newLayout(cfg.Schedule.DayStart, cfg.Schedule.DayEnd, defaultColWidth),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init initializes the model. Cached data paints first, the backend fetch
// replaces it when it lands.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{commands.LoadWeek(m.booking, m.cache, m.weekStart), m.spinner.Tick}
	if m.cache != nil {
		cmds = append([]tea.Cmd{commands.LoadCachedWeek(m.cache, m.weekStart)}, cmds...)
	}
	return tea.Batch(cmds...)
}

// setAppointments installs a fresh appointment set into the projection and
// derived structures.
func (m *Model) setAppointments(appts []*appointment.Appointment) {
	m.manager.SetAppointments(appts)
	m.index = appointment.BuildIndex(m.manager.All())
	LogSkipped(m.index.Skipped)
	m.validator.InvalidateCache()
}

// apptAt returns the appointment starting at the given cell, or nil.
func (m *Model) apptAt(c Cell) *appointment.Appointment {
	slot := m.layout.slotFor(m.weekStart, c)
	for _, a := range m.index.OnDate(slot.Time().Format("2006-01-02")) {
		if a.StartsAt(slot.Day, slot.Hour, slot.Minute) {
			return a
		}
	}
	return nil
}

// apptCovering returns the appointment whose span covers the cell, or nil.
func (m *Model) apptCovering(c Cell) *appointment.Appointment {
	slot := m.layout.slotFor(m.weekStart, c)
	start := slot.Time()
	end := start.Add(slotMinutes * time.Minute)
	for _, a := range m.index.OnDate(start.Format("2006-01-02")) {
		if a.OverlapsInterval(start, end) {
			return a
		}
	}
	return nil
}

// gridTop returns the first terminal row of the slot grid.
func (m *Model) gridTop() int {
	top := headerLines
	if m.stale {
		top++
	}
	return top
}

// Run starts the TUI.
func Run(booking commands.Booking, cache commands.Cache, cfg *config.Config) error {
	return RunWithDebug(booking, cache, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(booking commands.Booking, cache commands.Cache, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model := New(booking, cache, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
