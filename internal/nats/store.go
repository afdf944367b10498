package nats

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	// StreamName is the JetStream stream holding booking ledger events.
	StreamName = "travelhub_bookings"

	// Event types
	EventTypeBookingConfirmed = "booking.confirmed"
	EventTypeWizardRestart    = "wizard.restart"
)

// SubjectForEvent returns the subject an event type is published on.
// Example: "travelhub.booking.confirmed"
func SubjectForEvent(eventType string) string {
	return fmt.Sprintf("travelhub.%s", eventType)
}

// SetupStream creates or updates the booking stream.
// Subject pattern: travelhub.> matches every event type.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{"travelhub.>"},
		Storage:  jetstream.MemoryStorage,
	})
}

// CreateReplayConsumer creates an ordered consumer that delivers the whole
// stream from the first message.
func CreateReplayConsumer(ctx context.Context, stream jetstream.Stream) (jetstream.Consumer, error) {
	return stream.OrderedConsumer(ctx, jetstream.OrderedConsumerConfig{
		DeliverPolicy: jetstream.DeliverAllPolicy,
	})
}
