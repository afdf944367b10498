package mcpserver

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/travelhub/internal/booking"
	"github.com/mark3labs/travelhub/internal/catalog"
	"github.com/mark3labs/travelhub/internal/ledger"
	"github.com/mark3labs/travelhub/internal/metrics"
	"github.com/mark3labs/travelhub/internal/nats"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedger keeps events in memory and can be told to fail writes.
type fakeLedger struct {
	events []ledger.Event
	fail   bool
}

func (f *fakeLedger) Record(ctx context.Context, event ledger.Event) (ledger.Event, error) {
	if f.fail {
		return ledger.Event{}, errors.New("ledger unavailable")
	}
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeLedger) List(ctx context.Context) ([]ledger.Event, error) {
	return f.events, nil
}

func setupTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	opts = append([]Option{
		WithWizardOptions(booking.WithIDGenerator(func() string { return "TH42" })),
	}, opts...)
	return New("test", opts...)
}

// call invokes a tool handler by name with the given arguments.
func call(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	handlers := map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"catalog-list":   srv.handleCatalogList,
		"wizard-status":  srv.handleWizardStatus,
		"search-submit":  srv.handleSearchSubmit,
		"item-select":    srv.handleItemSelect,
		"contact-submit": srv.handleContactSubmit,
		"payment-submit": srv.handlePaymentSubmit,
		"wizard-back":    srv.handleWizardBack,
		"wizard-restart": srv.handleWizardRestart,
		"bookings-list":  srv.handleBookingsList,
	}
	handler, ok := handlers[name]
	require.True(t, ok, "unknown tool %s", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

// extractText extracts text from CallToolResult.Content[0]
func extractText(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if textContent, ok := result.Content[0].(mcp.TextContent); ok {
		return textContent.Text
	}
	return ""
}

var (
	validContact = map[string]any{"name": "Jane Doe", "email": "jane@example.com", "phone": "555-0100"}
	validPayment = map[string]any{"card_number": "4111 1111 1111 1111", "expiry": "12/29", "cvv": "123"}
)

func bookThrough(t *testing.T, srv *Server, tab, item string) {
	t.Helper()
	for _, step := range []struct {
		tool string
		args map[string]any
	}{
		{"search-submit", map[string]any{"tab": tab, "destination": "Anywhere"}},
		{"item-select", map[string]any{"item": item}},
		{"contact-submit", validContact},
		{"payment-submit", validPayment},
	} {
		result := call(t, srv, step.tool, step.args)
		require.False(t, result.IsError, "%s failed: %s", step.tool, extractText(result))
	}
}

func TestFullBooking(t *testing.T) {
	fl := &fakeLedger{}
	m := metrics.New()
	srv := setupTestServer(t, WithLedger(fl), WithMetrics(m))

	bookThrough(t, srv, "visa", "business-visa-2")

	w := srv.Wizard()
	require.Equal(t, booking.StepConfirmation, w.Step())
	require.Equal(t, "TH42", w.BookingID())

	text := extractText(call(t, srv, "wizard-status", nil))
	assert.Contains(t, text, "Step: confirmation")
	assert.Contains(t, text, "Booking ID: TH42")
	assert.Contains(t, text, "Service: Business Visa")
	assert.Contains(t, text, "Total Paid: $140")
	assert.Contains(t, text, "A confirmation email has been sent to jane@example.com")

	require.Len(t, fl.events, 1)
	assert.Equal(t, nats.EventTypeBookingConfirmed, fl.events[0].Type)
	assert.Equal(t, "business-visa-2", fl.events[0].ItemKey)
	assert.Equal(t, "visa", fl.events[0].Tab)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsConfirmed.WithLabelValues("visa")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("details", "payment")))
}

func TestSearchSubmit_SetsCriteria(t *testing.T) {
	srv := setupTestServer(t)

	result := call(t, srv, "search-submit", map[string]any{
		"tab":         "tours",
		"destination": "Paris",
		"check_in":    "2026-05-01",
		"guests":      float64(0),
	})
	require.False(t, result.IsError)

	w := srv.Wizard()
	assert.Equal(t, booking.StepResults, w.Step())
	assert.Equal(t, catalog.TabTours, w.Tab())
	assert.Equal(t, "Paris", w.Criteria().Destination)
	assert.Equal(t, 1, w.Criteria().Guests)

	text := extractText(result)
	for _, item := range catalog.Items(catalog.TabTours) {
		assert.Contains(t, text, item.Key())
	}
}

func TestSearchSubmit_InvalidTab(t *testing.T) {
	srv := setupTestServer(t)

	result := call(t, srv, "search-submit", map[string]any{"tab": "flights"})
	assert.True(t, result.IsError)
	assert.Equal(t, booking.StepSearch, srv.Wizard().Step())
}

func TestSearchSubmit_WrongStepLeavesWizardUnchanged(t *testing.T) {
	srv := setupTestServer(t)
	call(t, srv, "search-submit", map[string]any{"tab": "cars"})

	result := call(t, srv, "search-submit", map[string]any{"tab": "hotels"})
	assert.True(t, result.IsError)
	assert.Equal(t, catalog.TabCars, srv.Wizard().Tab())
	assert.Equal(t, booking.StepResults, srv.Wizard().Step())
}

func TestItemSelect(t *testing.T) {
	tests := []struct {
		name    string
		item    string
		wantErr bool
		wantID  int
	}{
		{"by id", "3", false, 3},
		{"by key", "mountain-lodge-3", false, 3},
		{"key from another tab", "toyota-camry-1", true, 0},
		{"unknown key", "moon-base-9", true, 0},
		{"unknown id", "99", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := setupTestServer(t)
			call(t, srv, "search-submit", nil)

			result := call(t, srv, "item-select", map[string]any{"item": tt.item})
			if tt.wantErr {
				assert.True(t, result.IsError)
				assert.Equal(t, booking.StepResults, srv.Wizard().Step())
				return
			}
			require.False(t, result.IsError, extractText(result))
			item, ok := srv.Wizard().Selected()
			require.True(t, ok)
			assert.Equal(t, tt.wantID, item.ID)
		})
	}
}

func TestContactSubmit_MissingField(t *testing.T) {
	m := metrics.New()
	srv := setupTestServer(t, WithMetrics(m))
	call(t, srv, "search-submit", nil)
	call(t, srv, "item-select", map[string]any{"item": "1"})

	result := call(t, srv, "contact-submit", map[string]any{"name": "Jane", "email": "", "phone": "1"})
	require.True(t, result.IsError)
	assert.Contains(t, extractText(result), "Please fill in all required fields")
	assert.Contains(t, extractText(result), "MissingField")

	w := srv.Wizard()
	assert.Equal(t, booking.StepDetails, w.Step())
	assert.Equal(t, "Jane", w.Contact().Name)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GateFailures.WithLabelValues("MissingField")))
}

func TestPaymentSubmit_GateFailures(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		message string
	}{
		{"short card", map[string]any{"card_number": "4111", "expiry": "12/29", "cvv": "123"}, "Please enter a valid 16-digit card number"},
		{"bad expiry", map[string]any{"card_number": "4111111111111111", "expiry": "1229", "cvv": "123"}, "Please enter expiry date in MM/YY format"},
		{"bad cvv", map[string]any{"card_number": "4111111111111111", "expiry": "12/29", "cvv": "12"}, "Please enter a valid 3-digit CVV"},
		{"missing", map[string]any{"card_number": "", "expiry": "12/29", "cvv": "123"}, "Please fill in all payment details"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fl := &fakeLedger{}
			srv := setupTestServer(t, WithLedger(fl))
			call(t, srv, "search-submit", nil)
			call(t, srv, "item-select", map[string]any{"item": "1"})
			call(t, srv, "contact-submit", validContact)

			result := call(t, srv, "payment-submit", tt.args)
			require.True(t, result.IsError)
			assert.Contains(t, extractText(result), tt.message)
			assert.Equal(t, booking.StepPayment, srv.Wizard().Step())
			assert.Empty(t, fl.events)
		})
	}
}

func TestContactSubmit_WhitespaceCountsAsContent(t *testing.T) {
	srv := setupTestServer(t)
	call(t, srv, "search-submit", nil)
	call(t, srv, "item-select", map[string]any{"item": "1"})

	result := call(t, srv, "contact-submit", map[string]any{"name": " ", "email": "jane@example.com", "phone": "555-0100"})
	require.False(t, result.IsError, extractText(result))
	assert.Equal(t, booking.StepPayment, srv.Wizard().Step())
	assert.Equal(t, " ", srv.Wizard().Contact().Name)
}

func TestPaymentSubmit_FieldsAreNotTrimmed(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		message string
	}{
		{"cvv with trailing space", map[string]any{"card_number": "4111 1111 1111 1111", "expiry": "12/29", "cvv": "123 "}, "Please enter a valid 3-digit CVV"},
		{"expiry with leading space", map[string]any{"card_number": "4111 1111 1111 1111", "expiry": " 12/29", "cvv": "123"}, "Please enter expiry date in MM/YY format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := setupTestServer(t)
			call(t, srv, "search-submit", nil)
			call(t, srv, "item-select", map[string]any{"item": "1"})
			call(t, srv, "contact-submit", validContact)

			result := call(t, srv, "payment-submit", tt.args)
			require.True(t, result.IsError)
			assert.Contains(t, extractText(result), tt.message)
			assert.Equal(t, booking.StepPayment, srv.Wizard().Step())
		})
	}
}

func TestStringArg(t *testing.T) {
	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: map[string]any{
		"tab":    " cars ",
		"guests": float64(3),
	}}}

	v, ok := stringArg(req, "tab")
	assert.True(t, ok)
	assert.Equal(t, "cars", v)

	v, ok = rawStringArg(req, "tab")
	assert.True(t, ok)
	assert.Equal(t, " cars ", v)

	v, ok = rawStringArg(req, "guests")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	_, ok = rawStringArg(req, "missing")
	assert.False(t, ok)
}

func TestWizardBack(t *testing.T) {
	srv := setupTestServer(t)

	result := call(t, srv, "wizard-back", nil)
	assert.True(t, result.IsError, "back from search is not allowed")

	call(t, srv, "search-submit", nil)
	call(t, srv, "item-select", map[string]any{"item": "2"})

	result = call(t, srv, "wizard-back", nil)
	require.False(t, result.IsError)
	assert.Equal(t, booking.StepResults, srv.Wizard().Step())
	assert.False(t, srv.Wizard().HasSelection())
}

func TestWizardRestart(t *testing.T) {
	fl := &fakeLedger{}
	srv := setupTestServer(t, WithLedger(fl))

	result := call(t, srv, "wizard-restart", nil)
	assert.True(t, result.IsError)

	bookThrough(t, srv, "hotels", "1")
	result = call(t, srv, "wizard-restart", nil)
	require.False(t, result.IsError)

	w := srv.Wizard()
	assert.Equal(t, booking.StepSearch, w.Step())
	assert.False(t, w.HasSelection())
	assert.Equal(t, "Jane Doe", w.Contact().Name)

	require.Len(t, fl.events, 2)
	assert.Equal(t, nats.EventTypeWizardRestart, fl.events[1].Type)
	assert.Equal(t, "TH42", fl.events[1].BookingID)
}

func TestLedgerFailureDoesNotBlockConfirmation(t *testing.T) {
	srv := setupTestServer(t, WithLedger(&fakeLedger{fail: true}))

	bookThrough(t, srv, "cars", "toyota-camry-1")
	assert.Equal(t, booking.StepConfirmation, srv.Wizard().Step())
}

func TestBookingsList(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		srv := setupTestServer(t)
		result := call(t, srv, "bookings-list", nil)
		assert.True(t, result.IsError)
	})

	t.Run("empty", func(t *testing.T) {
		srv := setupTestServer(t, WithLedger(&fakeLedger{}))
		result := call(t, srv, "bookings-list", nil)
		assert.Equal(t, "No bookings recorded yet", extractText(result))
	})

	t.Run("embedded ledger", func(t *testing.T) {
		l, err := ledger.Open(context.Background())
		require.NoError(t, err)
		defer func() { _ = l.Close() }()

		srv := setupTestServer(t, WithLedger(l))
		bookThrough(t, srv, "tours", "desert-safari-2")
		call(t, srv, "wizard-restart", nil)
		bookThrough(t, srv, "hotels", "ocean-view-resort-2")

		text := extractText(call(t, srv, "bookings-list", nil))
		assert.Contains(t, text, "2 booking(s):")
		assert.Contains(t, text, "Desert Safari")
		assert.Contains(t, text, "Ocean View Resort")
		assert.Contains(t, text, "$320")
	})
}

func TestCatalogList(t *testing.T) {
	srv := setupTestServer(t)

	all := extractText(call(t, srv, "catalog-list", nil))
	for _, tab := range catalog.Tabs() {
		assert.Contains(t, all, tab.Title()+":")
	}

	cars := extractText(call(t, srv, "catalog-list", map[string]any{"tab": "car"}))
	assert.Contains(t, cars, "Tesla Model 3")
	assert.NotContains(t, cars, "Grand Plaza Hotel")

	bad := call(t, srv, "catalog-list", map[string]any{"tab": "boats"})
	assert.True(t, bad.IsError)
}
