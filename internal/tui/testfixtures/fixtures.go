package testfixtures

import (
	"github.com/mark3labs/travelhub/internal/booking"
)

// Fixed test values for consistent rendering
const (
	FixedBookingID = "TH424242"
	FixedName      = "Jane Doe"
	FixedEmail     = "jane@example.com"
	FixedPhone     = "555-0100"
)

// FixedIDGenerator always returns FixedBookingID.
func FixedIDGenerator() string {
	return FixedBookingID
}

// ValidContact returns contact details that pass the contact gate.
func ValidContact() booking.Contact {
	return booking.Contact{Name: FixedName, Email: FixedEmail, Phone: FixedPhone}
}

// ValidPayment returns card details that pass the payment gate.
func ValidPayment() booking.Payment {
	return booking.Payment{CardNumber: "4111 1111 1111 1111", Expiry: "12/29", CVV: "123"}
}
