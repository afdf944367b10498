package booking

import (
	"fmt"
	"math/rand/v2"
	"regexp"
)

// bookingIDSpace bounds the numeric part of a booking ID to [0, 1000000).
const bookingIDSpace = 1_000_000

// BookingIDPattern matches every ID the generators in this package produce.
var BookingIDPattern = regexp.MustCompile(`^TH\d{1,6}$`)

// IDGenerator returns a fresh booking ID. IDs are decorative and not unique.
type IDGenerator func() string

// RandomBookingID draws from the global random source.
func RandomBookingID() string {
	return formatBookingID(rand.IntN(bookingIDSpace))
}

// SeededIDGenerator returns a deterministic generator, for tests and demos.
func SeededIDGenerator(seed1, seed2 uint64) IDGenerator {
	r := rand.New(rand.NewPCG(seed1, seed2))
	return func() string {
		return formatBookingID(r.IntN(bookingIDSpace))
	}
}

func formatBookingID(n int) string {
	return fmt.Sprintf("TH%d", n)
}
