package booking

import (
	"errors"
	"fmt"
)

// Validation failure kinds. Test with errors.Is.
var (
	ErrMissingField      = errors.New("missing field")
	ErrInvalidCardNumber = errors.New("invalid card number")
	ErrInvalidExpiry     = errors.New("invalid expiry")
	ErrInvalidCVV        = errors.New("invalid cvv")
)

// Driver errors: a caller asked for something the current state does not allow.
var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnknownItem       = errors.New("unknown item")
)

// Gate identifies the validation checkpoint that rejected a transition.
type Gate int

const (
	GateContact Gate = iota
	GatePayment
)

func (g Gate) String() string {
	if g == GatePayment {
		return "payment"
	}
	return "contact"
}

// GateError is returned when a forward transition fails validation.
// Message is the text shown to the user.
type GateError struct {
	Gate    Gate
	Kind    error
	Message string
}

func (e *GateError) Error() string { return e.Message }

func (e *GateError) Unwrap() error { return e.Kind }

// KindName returns the taxonomy name of a validation failure, for example
// "MissingField". It returns "" for errors outside the taxonomy.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrMissingField):
		return "MissingField"
	case errors.Is(err, ErrInvalidCardNumber):
		return "InvalidCardNumber"
	case errors.Is(err, ErrInvalidExpiry):
		return "InvalidExpiry"
	case errors.Is(err, ErrInvalidCVV):
		return "InvalidCvv"
	}
	return ""
}

// TransitionError reports an action attempted from a step that does not allow it.
type TransitionError struct {
	From   Step
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s from %s step", e.Action, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
