package booking

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	cardRe   = regexp.MustCompile(`^\d{16}$`)
	expiryRe = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvRe    = regexp.MustCompile(`^\d{3}$`)
)

// ValidateContact checks that name, email and phone are all non-empty.
// Contents are not format-checked.
func ValidateContact(c Contact) error {
	if c.Name == "" || c.Email == "" || c.Phone == "" {
		return &GateError{Gate: GateContact, Kind: ErrMissingField, Message: "Please fill in all required fields"}
	}
	return nil
}

// ValidatePayment runs the payment checks in order and returns the first failure.
// Expiry is checked for shape only; "99/99" passes.
func ValidatePayment(p Payment) error {
	if p.CardNumber == "" || p.Expiry == "" || p.CVV == "" {
		return &GateError{Gate: GatePayment, Kind: ErrMissingField, Message: "Please fill in all payment details"}
	}
	if !cardRe.MatchString(stripSpaces(p.CardNumber)) {
		return &GateError{Gate: GatePayment, Kind: ErrInvalidCardNumber, Message: "Please enter a valid 16-digit card number"}
	}
	if !expiryRe.MatchString(p.Expiry) {
		return &GateError{Gate: GatePayment, Kind: ErrInvalidExpiry, Message: "Please enter expiry date in MM/YY format"}
	}
	if !cvvRe.MatchString(p.CVV) {
		return &GateError{Gate: GatePayment, Kind: ErrInvalidCVV, Message: "Please enter a valid 3-digit CVV"}
	}
	return nil
}

// stripSpaces removes every whitespace rune from s, including no-break and
// other Unicode spaces, and the byte order mark. NEL (U+0085) is kept.
func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\uFEFF' || (unicode.IsSpace(r) && r != '\u0085') {
			return -1
		}
		return r
	}, s)
}
