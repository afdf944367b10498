// Package booking implements the booking wizard: a five-step state machine
// (search, results, details, payment, confirmation) with validation gates on
// the forward transitions into payment and confirmation.
//
// Wizard is a value. Every transition returns the next Wizard and an error;
// the receiver is never modified, so a rejected transition leaves the caller's
// copy exactly as it was.
package booking

import (
	"strconv"
	"strings"

	"github.com/mark3labs/travelhub/internal/catalog"
)

// Step is one screen of the booking flow.
type Step int

const (
	StepSearch Step = iota
	StepResults
	StepDetails
	StepPayment
	StepConfirmation
)

var stepNames = [...]string{"search", "results", "details", "payment", "confirmation"}

func (s Step) String() string {
	if s < StepSearch || s > StepConfirmation {
		return "unknown"
	}
	return stepNames[s]
}

// Criteria are the search form values. They never filter the results.
type Criteria struct {
	Destination string
	CheckIn     string
	CheckOut    string
	Guests      int
}

// DefaultCriteria returns the initial search form: empty fields, two guests.
func DefaultCriteria() Criteria {
	return Criteria{Guests: 2}
}

// ParseGuests converts a typed guest count. Empty, non-numeric and
// non-positive input becomes 1.
func ParseGuests(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Contact holds the traveller's details collected on the details step.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Payment holds the card fields collected on the payment step.
type Payment struct {
	CardNumber string
	Expiry     string
	CVV        string
}

// Draft accumulates contact and payment input across steps.
type Draft struct {
	Contact Contact
	Payment Payment
}

// Option configures a new Wizard.
type Option func(*Wizard)

// WithTab sets the initially active catalog tab.
func WithTab(tab catalog.Tab) Option {
	return func(w *Wizard) {
		if tab.Valid() {
			w.tab = tab
		}
	}
}

// WithGuests sets the initial guest count.
func WithGuests(n int) Option {
	return func(w *Wizard) {
		if n >= 1 {
			w.criteria.Guests = n
		}
	}
}

// WithIDGenerator replaces the random booking ID source.
func WithIDGenerator(gen IDGenerator) Option {
	return func(w *Wizard) {
		if gen != nil {
			w.newID = gen
		}
	}
}

// Wizard is the booking flow state. The zero value is not usable; call New.
type Wizard struct {
	step      Step
	tab       catalog.Tab
	criteria  Criteria
	selected  *catalog.Item
	draft     Draft
	bookingID string
	newID     IDGenerator
}

// New returns a wizard on the search step with the hotels tab active.
func New(opts ...Option) Wizard {
	w := Wizard{
		step:     StepSearch,
		tab:      catalog.TabHotels,
		criteria: DefaultCriteria(),
		newID:    RandomBookingID,
	}
	for _, opt := range opts {
		opt(&w)
	}
	return w
}

func (w Wizard) Step() Step { return w.step }
func (w Wizard) Tab() catalog.Tab { return w.tab }
func (w Wizard) Criteria() Criteria { return w.criteria }
func (w Wizard) Draft() Draft { return w.draft }
func (w Wizard) BookingID() string { return w.bookingID }
func (w Wizard) HasSelection() bool { return w.selected != nil }
func (w Wizard) Contact() Contact { return w.draft.Contact }
func (w Wizard) PaymentDraft() Payment { return w.draft.Payment }

// Selected returns the chosen item. ok is false on the search and results steps.
func (w Wizard) Selected() (item catalog.Item, ok bool) {
	if w.selected == nil {
		return catalog.Item{}, false
	}
	return *w.selected, true
}

// Results lists the active tab's full catalog while on the results step.
func (w Wizard) Results() []catalog.Item {
	if w.step != StepResults {
		return nil
	}
	return catalog.Items(w.tab)
}

// SelectTab switches the active catalog. Only allowed on the search step.
func (w Wizard) SelectTab(tab catalog.Tab) (Wizard, error) {
	if w.step != StepSearch {
		return w, &TransitionError{From: w.step, Action: "switch tab"}
	}
	if !tab.Valid() {
		return w, &TransitionError{From: w.step, Action: "switch to " + tab.String()}
	}
	w.tab = tab
	return w, nil
}

// SetCriteria replaces the search form values. Only allowed on the search step.
func (w Wizard) SetCriteria(c Criteria) (Wizard, error) {
	if w.step != StepSearch {
		return w, &TransitionError{From: w.step, Action: "edit search"}
	}
	if c.Guests < 1 {
		c.Guests = 1
	}
	w.criteria = c
	return w, nil
}

// SubmitSearch moves from search to results. It performs no validation and
// no filtering.
func (w Wizard) SubmitSearch() (Wizard, error) {
	if w.step != StepSearch {
		return w, &TransitionError{From: w.step, Action: "submit search"}
	}
	w.step = StepResults
	return w, nil
}

// Select picks an item of the active tab by id and moves to details.
func (w Wizard) Select(id int) (Wizard, error) {
	if w.step != StepResults {
		return w, &TransitionError{From: w.step, Action: "select an item"}
	}
	item, ok := catalog.Lookup(w.tab, id)
	if !ok {
		return w, ErrUnknownItem
	}
	w.selected = &item
	w.step = StepDetails
	return w, nil
}

// SubmitContact records the contact details and, when the contact gate
// passes, moves to payment. On a gate failure the returned wizard keeps the
// entered details and stays on details.
func (w Wizard) SubmitContact(c Contact) (Wizard, error) {
	if w.step != StepDetails {
		return w, &TransitionError{From: w.step, Action: "submit contact details"}
	}
	w.draft.Contact = c
	if err := ValidateContact(c); err != nil {
		return w, err
	}
	w.step = StepPayment
	return w, nil
}

// SubmitPayment records the card fields and, when the payment gate passes,
// moves to confirmation with a new booking ID. On a gate failure the returned
// wizard keeps the entered fields and stays on payment.
func (w Wizard) SubmitPayment(p Payment) (Wizard, error) {
	if w.step != StepPayment {
		return w, &TransitionError{From: w.step, Action: "submit payment"}
	}
	w.draft.Payment = p
	if err := ValidatePayment(p); err != nil {
		return w, err
	}
	w.step = StepConfirmation
	w.bookingID = w.newID()
	return w, nil
}

// Back steps one screen backwards: results to search, details to results
// (dropping the selection), payment to details.
func (w Wizard) Back() (Wizard, error) {
	switch w.step {
	case StepResults:
		w.step = StepSearch
	case StepDetails:
		w.step = StepResults
		w.selected = nil
	case StepPayment:
		w.step = StepDetails
	default:
		return w, &TransitionError{From: w.step, Action: "go back"}
	}
	return w, nil
}

// Restart returns from confirmation to search. The selection and booking ID
// are cleared; the contact and payment draft is carried over.
func (w Wizard) Restart() (Wizard, error) {
	if w.step != StepConfirmation {
		return w, &TransitionError{From: w.step, Action: "restart"}
	}
	w.step = StepSearch
	w.selected = nil
	w.bookingID = ""
	return w, nil
}

// Receipt summarises a confirmed booking.
type Receipt struct {
	BookingID string
	GuestName string
	Email     string
	Service   string
	ItemKey   string
	Tab       catalog.Tab
	Total     float64
}

// Receipt returns the confirmation summary. ok is false before confirmation.
func (w Wizard) Receipt() (Receipt, bool) {
	if w.step != StepConfirmation || w.selected == nil {
		return Receipt{}, false
	}
	service := w.selected.Name
	if service == "" {
		service = w.draft.Contact.Name
	}
	return Receipt{
		BookingID: w.bookingID,
		GuestName: w.draft.Contact.Name,
		Email:     w.draft.Contact.Email,
		Service:   service,
		ItemKey:   w.selected.Key(),
		Tab:       w.tab,
		Total:     w.selected.Price,
	}, true
}
