// Package tui is the terminal front end of the booking wizard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/travelhub/internal/booking"
	"github.com/mark3labs/travelhub/internal/catalog"
	"github.com/mark3labs/travelhub/internal/ledger"
	"github.com/mark3labs/travelhub/internal/logger"
	"github.com/mark3labs/travelhub/internal/metrics"
)

// Search form fields
const (
	searchDestination = iota
	searchCheckIn
	searchCheckOut
	searchGuests
)

// Contact form fields
const (
	contactName = iota
	contactEmail
	contactPhone
)

// Payment form fields
const (
	paymentCard = iota
	paymentExpiry
	paymentCVV
)

// LedgerRecordedMsg reports the outcome of an asynchronous ledger write.
type LedgerRecordedMsg struct {
	Event ledger.Event
	Err   error
}

// Option configures an App.
type Option func(*App)

// WithRecorder records confirmations and restarts in a ledger.
func WithRecorder(r ledger.Recorder) Option {
	return func(a *App) { a.recorder = r }
}

// WithMetrics counts transitions and gate failures.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// WithWizardOptions configures the hosted wizard.
func WithWizardOptions(opts ...booking.Option) Option {
	return func(a *App) { a.wizardOpts = append(a.wizardOpts, opts...) }
}

// App is the main BubbleTea model. It owns one booking wizard and the forms
// that collect its input.
type App struct {
	ctx        context.Context
	wizard     booking.Wizard
	wizardOpts []booking.Option
	recorder   ledger.Recorder
	metrics    *metrics.Metrics

	width  int
	height int

	tabBarFocused bool // Search step: keys switch tabs instead of editing fields
	cursor        int  // Results step: highlighted item
	search        *form
	contact       *form
	payment       *form

	errMsg    string       // Gate failure shown under the current form
	lastSaved ledger.Event // Most recent ledger write, shown on confirmation
	quitting  bool
}

// NewApp creates the booking TUI.
func NewApp(ctx context.Context, opts ...Option) *App {
	a := &App{
		ctx:           ctx,
		width:         100,
		height:        36,
		tabBarFocused: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.wizard = booking.New(a.wizardOpts...)

	a.search = newForm(
		&field{input: newInput("Enter location")},
		&field{input: newInput("YYYY-MM-DD")},
		&field{label: "Check-out", input: newInput("YYYY-MM-DD")},
		&field{input: newInput("2")},
	)
	a.search.SetValue(searchGuests, strconv.Itoa(a.wizard.Criteria().Guests))
	a.applyTabLabels()

	a.contact = newForm(
		&field{label: "Full Name", input: newInput("Jane Doe")},
		&field{label: "Email", input: newInput("jane@example.com")},
		&field{label: "Phone Number", input: newInput("+1 555 0100")},
	)

	cvv := newInput("123")
	cvv.EchoMode = textinput.EchoPassword
	a.payment = newForm(
		&field{label: "Card Number", input: newInput("1234 5678 9012 3456")},
		&field{label: "Expiry Date", input: newInput("MM/YY")},
		&field{label: "CVV", input: cvv},
	)

	a.resize()
	return a
}

// Run starts the TUI program and blocks until the user quits.
func Run(ctx context.Context, opts ...Option) error {
	app := NewApp(ctx, opts...)
	p := tea.NewProgram(app, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}

// Wizard returns the current wizard state.
func (a *App) Wizard() booking.Wizard {
	return a.wizard
}

// Init initializes the app.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update handles messages for the app.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case LedgerRecordedMsg:
		if msg.Err != nil {
			logger.Warn("Failed to record %s in ledger: %v", msg.Event.Type, msg.Err)
			return a, nil
		}
		a.lastSaved = msg.Event
		return a, nil

	case tea.KeyPressMsg:
		// Always allow Ctrl+C to quit
		if msg.String() == "ctrl+c" {
			a.quitting = true
			return a, tea.Quit
		}

		switch a.wizard.Step() {
		case booking.StepSearch:
			return a, a.updateSearch(msg)
		case booking.StepResults:
			return a, a.updateResults(msg)
		case booking.StepDetails:
			return a, a.updateForm(msg, a.contact, a.submitContact)
		case booking.StepPayment:
			return a, a.updateForm(msg, a.payment, a.submitPayment)
		case booking.StepConfirmation:
			return a, a.updateConfirmation(msg)
		}
	}

	// Forward everything else (cursor blink etc.) to the active form
	if f := a.activeForm(); f != nil {
		return a, f.Update(msg)
	}
	return a, nil
}

// activeForm returns the form of the current step, if any.
func (a *App) activeForm() *form {
	switch a.wizard.Step() {
	case booking.StepSearch:
		return a.search
	case booking.StepDetails:
		return a.contact
	case booking.StepPayment:
		return a.payment
	}
	return nil
}

func (a *App) updateSearch(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	if a.tabBarFocused {
		switch key {
		case "left":
			return a.selectTab(catalog.Tab((int(a.wizard.Tab()) + len(catalog.Tabs()) - 1) % len(catalog.Tabs())))
		case "right":
			return a.selectTab(catalog.Tab((int(a.wizard.Tab()) + 1) % len(catalog.Tabs())))
		case "1", "2", "3", "4":
			return a.selectTab(catalog.Tab(int(key[0] - '1')))
		case "tab", "down":
			a.tabBarFocused = false
			return a.search.FocusFirst()
		case "shift+tab", "up":
			a.tabBarFocused = false
			return a.search.FocusLast()
		case "enter":
			return a.submitSearch()
		}
		return nil
	}

	switch key {
	case "enter":
		return a.submitSearch()
	case "esc":
		a.search.Blur()
		a.tabBarFocused = true
		return nil
	case "tab", "down":
		cmd, wrapped := a.search.Next()
		a.tabBarFocused = wrapped
		return cmd
	case "shift+tab", "up":
		cmd, wrapped := a.search.Prev()
		a.tabBarFocused = wrapped
		return cmd
	}
	return a.search.Update(msg)
}

func (a *App) selectTab(tab catalog.Tab) tea.Cmd {
	cmd := a.transition(func(w booking.Wizard) (booking.Wizard, error) {
		return w.SelectTab(tab)
	})
	a.applyTabLabels()
	return cmd
}

// applyTabLabels relabels the search form for the active tab. Visas have a
// single travel date and count applicants instead of guests.
func (a *App) applyTabLabels() {
	tab := a.wizard.Tab()
	a.search.SetLabel(searchDestination, destinationLabel(tab))
	a.search.SetLabel(searchCheckIn, dateLabel(tab))
	a.search.SetLabel(searchGuests, countLabel(tab))
	a.search.SetHidden(searchCheckOut, tab == catalog.TabVisa)
}

func destinationLabel(tab catalog.Tab) string {
	switch tab {
	case catalog.TabCars:
		return "Pick-up Location"
	case catalog.TabTours:
		return "Tour Location"
	case catalog.TabVisa:
		return "Country"
	}
	return "Destination"
}

func dateLabel(tab catalog.Tab) string {
	if tab == catalog.TabVisa {
		return "Travel Date"
	}
	return "Check-in / Pick-up"
}

func countLabel(tab catalog.Tab) string {
	if tab == catalog.TabVisa {
		return "Applicants"
	}
	return "Guests"
}

func (a *App) submitSearch() tea.Cmd {
	c := booking.Criteria{
		Destination: a.search.Value(searchDestination),
		CheckIn:     a.search.Value(searchCheckIn),
		CheckOut:    a.search.Value(searchCheckOut),
		Guests:      booking.ParseGuests(a.search.Value(searchGuests)),
	}
	if a.wizard.Tab() == catalog.TabVisa {
		c.CheckOut = ""
	}
	a.search.SetValue(searchGuests, strconv.Itoa(c.Guests))

	return a.transition(func(w booking.Wizard) (booking.Wizard, error) {
		w, err := w.SetCriteria(c)
		if err != nil {
			return w, err
		}
		return w.SubmitSearch()
	})
}

func (a *App) updateResults(msg tea.KeyPressMsg) tea.Cmd {
	items := a.wizard.Results()
	switch msg.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(items)-1 {
			a.cursor++
		}
	case "enter":
		if a.cursor < len(items) {
			id := items[a.cursor].ID
			return a.transition(func(w booking.Wizard) (booking.Wizard, error) {
				return w.Select(id)
			})
		}
	case "esc", "backspace":
		return a.transition(booking.Wizard.Back)
	}
	return nil
}

// updateForm handles the details and payment steps, which share key handling.
func (a *App) updateForm(msg tea.KeyPressMsg, f *form, submit func() tea.Cmd) tea.Cmd {
	switch msg.String() {
	case "enter":
		return submit()
	case "esc":
		return a.transition(booking.Wizard.Back)
	case "tab", "down":
		return f.Cycle(true)
	case "shift+tab", "up":
		return f.Cycle(false)
	}
	a.errMsg = ""
	return f.Update(msg)
}

func (a *App) submitContact() tea.Cmd {
	c := booking.Contact{
		Name:  a.contact.Raw(contactName),
		Email: a.contact.Raw(contactEmail),
		Phone: a.contact.Raw(contactPhone),
	}
	return a.transition(func(w booking.Wizard) (booking.Wizard, error) {
		return w.SubmitContact(c)
	})
}

func (a *App) submitPayment() tea.Cmd {
	p := booking.Payment{
		CardNumber: a.payment.Raw(paymentCard),
		Expiry:     a.payment.Raw(paymentExpiry),
		CVV:        a.payment.Raw(paymentCVV),
	}
	return a.transition(func(w booking.Wizard) (booking.Wizard, error) {
		return w.SubmitPayment(p)
	})
}

func (a *App) updateConfirmation(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "r":
		return a.transition(booking.Wizard.Restart)
	case "q":
		a.quitting = true
		return tea.Quit
	}
	return nil
}

// transition applies fn to the wizard, surfaces gate failures and prepares
// the screen of the step it lands on.
func (a *App) transition(fn func(booking.Wizard) (booking.Wizard, error)) tea.Cmd {
	prev := a.wizard
	next, err := fn(prev)
	a.metrics.Observe(prev, next, err)
	a.wizard = next

	if err != nil {
		var gateErr *booking.GateError
		if errors.As(err, &gateErr) {
			a.errMsg = gateErr.Message
		} else {
			a.errMsg = err.Error()
		}
		logger.Debug("Wizard transition rejected on %s: %v", prev.Step(), err)
		return nil
	}

	a.errMsg = ""
	if prev.Step() == next.Step() {
		return nil
	}
	logger.Debug("Wizard transition %s -> %s", prev.Step(), next.Step())

	cmds := []tea.Cmd{a.enterStep(prev.Step())}
	switch {
	case next.Step() == booking.StepConfirmation:
		if receipt, ok := next.Receipt(); ok {
			cmds = append(cmds, a.record(ledger.Confirmed(receipt)))
		}
	case prev.Step() == booking.StepConfirmation:
		a.lastSaved = ledger.Event{}
		cmds = append(cmds, a.record(ledger.Restarted(prev.BookingID())))
	}
	return tea.Batch(cmds...)
}

// enterStep sets focus for the step just entered.
func (a *App) enterStep(from booking.Step) tea.Cmd {
	a.search.Blur()
	a.contact.Blur()
	a.payment.Blur()

	switch a.wizard.Step() {
	case booking.StepSearch:
		a.tabBarFocused = true
	case booking.StepResults:
		if from == booking.StepSearch {
			a.cursor = 0
		}
	case booking.StepDetails:
		return a.contact.FocusFirst()
	case booking.StepPayment:
		return a.payment.FocusFirst()
	}
	return nil
}

// record writes an event to the ledger off the update loop.
func (a *App) record(event ledger.Event) tea.Cmd {
	if a.recorder == nil {
		return nil
	}
	recorder, ctx := a.recorder, a.ctx
	return func() tea.Msg {
		stored, err := recorder.Record(ctx, event)
		if err != nil {
			return LedgerRecordedMsg{Event: event, Err: err}
		}
		return LedgerRecordedMsg{Event: stored}
	}
}

// resize fits the inputs to the frame width.
func (a *App) resize() {
	w := a.contentWidth() - 4
	if w < 20 {
		w = 20
	}
	a.search.SetWidth(w)
	a.contact.SetWidth(w)
	a.payment.SetWidth(w)
}

// contentWidth is the usable width inside the frame.
func (a *App) contentWidth() int {
	w := a.width - 10
	if w < 50 {
		w = 50
	}
	if w > 90 {
		w = 90
	}
	return w
}

// View renders the app.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if a.quitting {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	canvas := uv.NewScreenBuffer(a.width, a.height)
	uv.NewStyledString(a.Render()).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: a.width, Y: a.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}
