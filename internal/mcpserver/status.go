package mcpserver

import (
	"fmt"
	"strings"

	"github.com/mark3labs/travelhub/internal/booking"
	"github.com/mark3labs/travelhub/internal/catalog"
)

// formatStatus describes the wizard in plain text, including the next tool
// that moves it forward.
func formatStatus(w booking.Wizard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Step: %s\n", w.Step())
	fmt.Fprintf(&b, "Tab: %s\n", w.Tab())

	c := w.Criteria()
	fmt.Fprintf(&b, "Search: destination=%q check_in=%q", c.Destination, c.CheckIn)
	if w.Tab() != catalog.TabVisa {
		fmt.Fprintf(&b, " check_out=%q", c.CheckOut)
	}
	fmt.Fprintf(&b, " %s=%d\n", countLabel(w.Tab()), c.Guests)

	if item, ok := w.Selected(); ok {
		fmt.Fprintf(&b, "Selected: %s\n", item.Line())
	}

	switch w.Step() {
	case booking.StepSearch:
		b.WriteString("Next: search-submit\n")
	case booking.StepResults:
		b.WriteString("Results:\n")
		for _, item := range w.Results() {
			fmt.Fprintf(&b, "  %s\n", item.Line())
		}
		b.WriteString("Next: item-select\n")
	case booking.StepDetails:
		b.WriteString("Next: contact-submit\n")
	case booking.StepPayment:
		if item, ok := w.Selected(); ok {
			fmt.Fprintf(&b, "Total Amount: %s\n", catalog.FormatPrice(item.Price))
		}
		b.WriteString("Next: payment-submit\n")
	case booking.StepConfirmation:
		if r, ok := w.Receipt(); ok {
			fmt.Fprintf(&b, "Booking Confirmed!\n")
			fmt.Fprintf(&b, "Booking ID: %s\n", r.BookingID)
			fmt.Fprintf(&b, "Guest Name: %s\n", r.GuestName)
			fmt.Fprintf(&b, "Service: %s\n", r.Service)
			fmt.Fprintf(&b, "Total Paid: %s\n", catalog.FormatPrice(r.Total))
			fmt.Fprintf(&b, "A confirmation email has been sent to %s\n", r.Email)
		}
		b.WriteString("Next: wizard-restart\n")
	}
	return b.String()
}

func countLabel(tab catalog.Tab) string {
	if tab == catalog.TabVisa {
		return "applicants"
	}
	return "guests"
}
