package booking

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/mark3labs/travelhub/internal/catalog"
	"github.com/stretchr/testify/require"
)

var (
	validContact = Contact{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100"}
	validPayment = Payment{CardNumber: "4111 1111 1111 1111", Expiry: "12/29", CVV: "123"}
)

// toPayment walks a fresh wizard to the payment step with the given tab and item.
func toPayment(t *testing.T, tab catalog.Tab, id int) Wizard {
	t.Helper()
	w, err := New(WithTab(tab)).SubmitSearch()
	require.NoError(t, err)
	w, err = w.Select(id)
	require.NoError(t, err)
	w, err = w.SubmitContact(validContact)
	require.NoError(t, err)
	require.Equal(t, StepPayment, w.Step())
	return w
}

func requireSelectionInvariant(t *testing.T, w Wizard) {
	t.Helper()
	switch w.Step() {
	case StepSearch, StepResults:
		require.False(t, w.HasSelection(), "no selection expected on %s", w.Step())
	default:
		require.True(t, w.HasSelection(), "selection expected on %s", w.Step())
	}
}

func TestNew(t *testing.T) {
	w := New()
	require.Equal(t, StepSearch, w.Step())
	require.Equal(t, catalog.TabHotels, w.Tab())
	require.Equal(t, 2, w.Criteria().Guests)
	require.False(t, w.HasSelection())
	require.Empty(t, w.BookingID())

	w = New(WithTab(catalog.TabVisa), WithGuests(4))
	require.Equal(t, catalog.TabVisa, w.Tab())
	require.Equal(t, 4, w.Criteria().Guests)

	w = New(WithTab(catalog.Tab(42)), WithGuests(0))
	require.Equal(t, catalog.TabHotels, w.Tab(), "invalid tab option is ignored")
	require.Equal(t, 2, w.Criteria().Guests, "invalid guest option is ignored")
}

func TestSubmitSearch_RevealsFullCatalogRegardlessOfCriteria(t *testing.T) {
	criteria := []Criteria{
		DefaultCriteria(),
		{Destination: "Atlantis", CheckIn: "2030-01-01", CheckOut: "2029-01-01", Guests: 99},
		{Destination: "New York, USA", Guests: 1},
	}

	for _, tab := range catalog.Tabs() {
		for i, c := range criteria {
			t.Run(tab.String()+"/"+strconv.Itoa(i), func(t *testing.T) {
				w, err := New().SelectTab(tab)
				require.NoError(t, err)
				w, err = w.SetCriteria(c)
				require.NoError(t, err)
				w, err = w.SubmitSearch()
				require.NoError(t, err)

				require.Equal(t, StepResults, w.Step())
				require.Equal(t, catalog.Items(tab), w.Results())
				requireSelectionInvariant(t, w)
			})
		}
	}
}

func TestResults_EmptyOutsideResultsStep(t *testing.T) {
	require.Nil(t, New().Results())
}

func TestSelect_SetsExactItem(t *testing.T) {
	for _, tab := range catalog.Tabs() {
		for _, item := range catalog.Items(tab) {
			t.Run(item.Key(), func(t *testing.T) {
				w, err := New(WithTab(tab)).SubmitSearch()
				require.NoError(t, err)
				w, err = w.Select(item.ID)
				require.NoError(t, err)

				require.Equal(t, StepDetails, w.Step())
				got, ok := w.Selected()
				require.True(t, ok)
				require.True(t, got.Same(item))
				require.Equal(t, item.Kind(), got.Kind())
				requireSelectionInvariant(t, w)
			})
		}
	}
}

func TestSelect_UnknownItem(t *testing.T) {
	w, err := New().SubmitSearch()
	require.NoError(t, err)

	next, err := w.Select(99)
	require.ErrorIs(t, err, ErrUnknownItem)
	require.Equal(t, StepResults, next.Step())
	require.False(t, next.HasSelection())
}

func TestContactGate(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		wantErr bool
	}{
		{"all present", validContact, false},
		{"any content is accepted", Contact{Name: "x", Email: "not-an-email", Phone: "abc"}, false},
		{"empty name", Contact{Email: "a@b.c", Phone: "1"}, true},
		{"empty email", Contact{Name: "A", Phone: "1"}, true},
		{"empty phone", Contact{Name: "A", Email: "a@b.c"}, true},
		{"all empty", Contact{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New().SubmitSearch()
			require.NoError(t, err)
			w, err = w.Select(1)
			require.NoError(t, err)

			w, err = w.SubmitContact(tt.contact)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMissingField)
				require.Equal(t, "MissingField", KindName(err))
				require.Equal(t, StepDetails, w.Step())
				require.Equal(t, tt.contact, w.Contact(), "entered details are kept")

				var gateErr *GateError
				require.True(t, errors.As(err, &gateErr))
				require.Equal(t, GateContact, gateErr.Gate)
				require.Equal(t, "Please fill in all required fields", gateErr.Error())
				return
			}
			require.NoError(t, err)
			require.Equal(t, StepPayment, w.Step())
			requireSelectionInvariant(t, w)
		})
	}
}

func TestPaymentGate(t *testing.T) {
	tests := []struct {
		name    string
		payment Payment
		wantErr error
	}{
		{"spaced card number", validPayment, nil},
		{"plain card number", Payment{"4111111111111111", "12/29", "123"}, nil},
		{"tabs and newlines are whitespace", Payment{"4111\t1111\n1111 1111", "12/29", "123"}, nil},
		{"calendar nonsense passes", Payment{"4111111111111111", "99/99", "000"}, nil},
		{"short card", Payment{"4111", "12/29", "123"}, ErrInvalidCardNumber},
		{"seventeen digits", Payment{"41111111111111112", "12/29", "123"}, ErrInvalidCardNumber},
		{"letters in card", Payment{"4111-1111-1111-1111", "12/29", "123"}, ErrInvalidCardNumber},
		{"expiry without slash", Payment{"4111111111111111", "1229", "123"}, ErrInvalidExpiry},
		{"four digit year", Payment{"4111111111111111", "12/2029", "123"}, ErrInvalidExpiry},
		{"short cvv", Payment{"4111111111111111", "12/29", "12"}, ErrInvalidCVV},
		{"four digit cvv", Payment{"4111111111111111", "12/29", "1234"}, ErrInvalidCVV},
		{"missing card", Payment{"", "12/29", "123"}, ErrMissingField},
		{"missing expiry", Payment{"4111111111111111", "", "123"}, ErrMissingField},
		{"missing cvv", Payment{"4111111111111111", "12/29", ""}, ErrMissingField},
		{"missing wins over bad card", Payment{"4111", "12/29", ""}, ErrMissingField},
		{"card wins over expiry and cvv", Payment{"4111", "1229", "1"}, ErrInvalidCardNumber},
		{"expiry wins over cvv", Payment{"4111111111111111", "1229", "1"}, ErrInvalidExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := toPayment(t, catalog.TabHotels, 1)
			next, err := w.SubmitPayment(tt.payment)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Equal(t, StepPayment, next.Step())
				require.Empty(t, next.BookingID())
				require.Equal(t, tt.payment, next.PaymentDraft())

				var gateErr *GateError
				require.True(t, errors.As(err, &gateErr))
				require.Equal(t, GatePayment, gateErr.Gate)
				return
			}
			require.NoError(t, err)
			require.Equal(t, StepConfirmation, next.Step())
			require.Regexp(t, BookingIDPattern, next.BookingID())
			requireSelectionInvariant(t, next)
		})
	}
}

func TestPaymentGate_Messages(t *testing.T) {
	tests := []struct {
		payment Payment
		want    string
		kind    string
	}{
		{Payment{}, "Please fill in all payment details", "MissingField"},
		{Payment{"4111", "12/29", "123"}, "Please enter a valid 16-digit card number", "InvalidCardNumber"},
		{Payment{"4111111111111111", "1229", "123"}, "Please enter expiry date in MM/YY format", "InvalidExpiry"},
		{Payment{"4111111111111111", "12/29", "12"}, "Please enter a valid 3-digit CVV", "InvalidCvv"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			err := ValidatePayment(tt.payment)
			require.EqualError(t, err, tt.want)
			require.Equal(t, tt.kind, KindName(err))
		})
	}
	require.Equal(t, "", KindName(errors.New("other")))
}

func TestValidatePayment_UnicodeSpaces(t *testing.T) {
	tests := []struct {
		name    string
		card    string
		wantErr error
	}{
		{"no-break spaces", "4111\u00a01111\u00a01111\u00a01111", nil},
		{"line separators", "4111\u20281111\u20281111\u20281111", nil},
		{"vertical tab and form feed", "4111\v1111\f1111 1111", nil},
		{"ideographic space", "4111\u30001111\u30001111\u30001111", nil},
		{"byte order mark", "\ufeff4111111111111111", nil},
		{"trailing spaces", "4111111111111111  ", nil},
		{"next line is not a space", "4111\u0085111111111111", ErrInvalidCardNumber},
		{"zero width space is not a space", "4111\u200b111111111111", ErrInvalidCardNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayment(Payment{CardNumber: tt.card, Expiry: "12/29", CVV: "123"})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBookingID_Range(t *testing.T) {
	for i := 0; i < 500; i++ {
		id := RandomBookingID()
		require.Regexp(t, BookingIDPattern, id)
		n, err := strconv.Atoi(strings.TrimPrefix(id, "TH"))
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 1_000_000)
	}
}

func TestSeededIDGenerator_Deterministic(t *testing.T) {
	a := SeededIDGenerator(7, 11)
	b := SeededIDGenerator(7, 11)
	for i := 0; i < 10; i++ {
		require.Equal(t, a(), b())
	}
}

func TestConfirmation_UsesInjectedGenerator(t *testing.T) {
	w, err := New(WithIDGenerator(func() string { return "TH42" })).SubmitSearch()
	require.NoError(t, err)
	w, err = w.Select(2)
	require.NoError(t, err)
	w, err = w.SubmitContact(validContact)
	require.NoError(t, err)
	w, err = w.SubmitPayment(validPayment)
	require.NoError(t, err)

	require.Equal(t, "TH42", w.BookingID())
}

func TestRestart_ClearsSelectionKeepsDraft(t *testing.T) {
	w := toPayment(t, catalog.TabTours, 3)
	w, err := w.SubmitPayment(validPayment)
	require.NoError(t, err)
	require.NotEmpty(t, w.BookingID())

	w, err = w.Restart()
	require.NoError(t, err)
	require.Equal(t, StepSearch, w.Step())
	require.False(t, w.HasSelection())
	require.Empty(t, w.BookingID())
	require.Equal(t, catalog.TabTours, w.Tab(), "tab survives restart")

	// Known carried-over state: the previous booking's draft is still populated.
	require.Equal(t, validContact, w.Contact())
	require.Equal(t, validPayment, w.PaymentDraft())
	requireSelectionInvariant(t, w)
}

func TestBack(t *testing.T) {
	w, err := New().SubmitSearch()
	require.NoError(t, err)

	w, err = w.Back()
	require.NoError(t, err)
	require.Equal(t, StepSearch, w.Step())

	w = toPayment(t, catalog.TabCars, 4)
	w, err = w.Back()
	require.NoError(t, err)
	require.Equal(t, StepDetails, w.Step())
	item, ok := w.Selected()
	require.True(t, ok)
	require.Equal(t, "Ford Mustang", item.Name)

	w, err = w.Back()
	require.NoError(t, err)
	require.Equal(t, StepResults, w.Step())
	requireSelectionInvariant(t, w)
}

func TestInvalidTransitions(t *testing.T) {
	search := New()
	results, _ := search.SubmitSearch()
	payment := toPayment(t, catalog.TabHotels, 1)
	confirmation, err := payment.SubmitPayment(validPayment)
	require.NoError(t, err)

	tests := []struct {
		name string
		from Wizard
		do   func(Wizard) (Wizard, error)
	}{
		{"back from search", search, Wizard.Back},
		{"restart from search", search, Wizard.Restart},
		{"select from search", search, func(w Wizard) (Wizard, error) { return w.Select(1) }},
		{"submit search twice", results, Wizard.SubmitSearch},
		{"switch tab on results", results, func(w Wizard) (Wizard, error) { return w.SelectTab(catalog.TabCars) }},
		{"edit criteria on results", results, func(w Wizard) (Wizard, error) { return w.SetCriteria(DefaultCriteria()) }},
		{"contact from results", results, func(w Wizard) (Wizard, error) { return w.SubmitContact(validContact) }},
		{"payment from results", results, func(w Wizard) (Wizard, error) { return w.SubmitPayment(validPayment) }},
		{"back from confirmation", confirmation, Wizard.Back},
		{"pay twice", confirmation, func(w Wizard) (Wizard, error) { return w.SubmitPayment(validPayment) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := tt.do(tt.from)
			require.ErrorIs(t, err, ErrInvalidTransition)
			require.Equal(t, tt.from.Step(), next.Step())
			require.Equal(t, tt.from.HasSelection(), next.HasSelection())
		})
	}
}

func TestSelectTab_Invalid(t *testing.T) {
	_, err := New().SelectTab(catalog.Tab(-1))
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSetCriteria_ClampsGuests(t *testing.T) {
	w, err := New().SetCriteria(Criteria{Destination: "Paris", Guests: 0})
	require.NoError(t, err)
	require.Equal(t, 1, w.Criteria().Guests)
	require.Equal(t, "Paris", w.Criteria().Destination)
}

func TestParseGuests(t *testing.T) {
	tests := map[string]int{
		"":    1,
		"3":   3,
		" 5 ": 5,
		"abc": 1,
		"0":   1,
		"-2":  1,
	}
	for in, want := range tests {
		require.Equal(t, want, ParseGuests(in), "ParseGuests(%q)", in)
	}
}

func TestReceipt(t *testing.T) {
	_, ok := New().Receipt()
	require.False(t, ok)

	w := toPayment(t, catalog.TabVisa, 2)
	w, err := w.SubmitPayment(validPayment)
	require.NoError(t, err)

	r, ok := w.Receipt()
	require.True(t, ok)
	require.Equal(t, w.BookingID(), r.BookingID)
	require.Equal(t, "Ada Lovelace", r.GuestName)
	require.Equal(t, "ada@example.com", r.Email)
	require.Equal(t, "Business Visa", r.Service)
	require.Equal(t, "business-visa-2", r.ItemKey)
	require.Equal(t, catalog.TabVisa, r.Tab)
	require.Equal(t, 140.0, r.Total)
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	w := New()
	_, err := w.SubmitSearch()
	require.NoError(t, err)
	require.Equal(t, StepSearch, w.Step())

	p := toPayment(t, catalog.TabHotels, 1)
	_, err = p.SubmitPayment(Payment{CardNumber: "1", Expiry: "1", CVV: "1"})
	require.Error(t, err)
	require.Equal(t, Payment{}, p.PaymentDraft())
}

func TestStepString(t *testing.T) {
	require.Equal(t, "confirmation", StepConfirmation.String())
	require.Equal(t, "unknown", Step(12).String())

	err := &TransitionError{From: StepSearch, Action: "restart"}
	require.EqualError(t, err, "cannot restart from search step")
}
