// Package ledger keeps an in-memory, append-only log of booking events on an
// embedded JetStream server. Events are lost when the process exits.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/travelhub/internal/booking"
	"github.com/mark3labs/travelhub/internal/logger"
	tnats "github.com/mark3labs/travelhub/internal/nats"
	"github.com/nats-io/nats.go/jetstream"
)

// Event is one ledger entry.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	BookingID string    `json:"booking_id,omitempty"`
	Tab       string    `json:"tab,omitempty"`
	ItemKey   string    `json:"item_key,omitempty"`
	ItemName  string    `json:"item_name,omitempty"`
	Price     float64   `json:"price,omitempty"`
	GuestName string    `json:"guest_name,omitempty"`
	Email     string    `json:"email,omitempty"`
}

// Confirmed builds a booking.confirmed event from a receipt.
func Confirmed(r booking.Receipt) Event {
	return Event{
		Type:      tnats.EventTypeBookingConfirmed,
		BookingID: r.BookingID,
		Tab:       r.Tab.String(),
		ItemKey:   r.ItemKey,
		ItemName:  r.Service,
		Price:     r.Total,
		GuestName: r.GuestName,
		Email:     r.Email,
	}
}

// Restarted builds a wizard.restart event for the booking being left.
func Restarted(bookingID string) Event {
	return Event{
		Type:      tnats.EventTypeWizardRestart,
		BookingID: bookingID,
	}
}

// Recorder is the write side of the ledger, as used by the TUI and MCP hosts.
type Recorder interface {
	Record(ctx context.Context, event Event) (Event, error)
}

// Ledger owns the embedded server, its connection and the booking stream.
type Ledger struct {
	server  *tnats.Embedded
	js      jetstream.JetStream
	stream  jetstream.Stream
	dataDir string
}

// Open starts an embedded server and sets up the booking stream.
func Open(ctx context.Context) (*Ledger, error) {
	dataDir, err := os.MkdirTemp("", "travelhub-ledger-")
	if err != nil {
		return nil, fmt.Errorf("creating ledger dir: %w", err)
	}

	srv, err := tnats.Start(tnats.Options{StoreDir: dataDir})
	if err != nil {
		_ = os.RemoveAll(dataDir)
		return nil, fmt.Errorf("starting ledger server: %w", err)
	}

	l := &Ledger{server: srv, js: srv.JetStream(), dataDir: dataDir}

	l.stream, err = tnats.SetupStream(ctx, l.js)
	if err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("setting up booking stream: %w", err)
	}

	logger.Debug("Ledger ready: stream=%s", tnats.StreamName)
	return l, nil
}

// Record appends an event. ID and Timestamp are filled in when empty and the
// stored event is returned.
func (l *Ledger) Record(ctx context.Context, event Event) (Event, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Type == "" {
		return Event{}, fmt.Errorf("ledger event has no type")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := tnats.SubjectForEvent(event.Type)
	ack, err := l.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Error("Failed to publish event to subject %s: %v", subject, err)
		return Event{}, fmt.Errorf("failed to publish event: %w", err)
	}

	logger.WithField("booking_id", event.BookingID).
		WithField("seq", ack.Sequence).
		Debugf("ledger event %s recorded", event.Type)
	return event, nil
}

// List replays every event in the order it was recorded.
func (l *Ledger) List(ctx context.Context) ([]Event, error) {
	consumer, err := tnats.CreateReplayConsumer(ctx, l.stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}
	return readEvents(consumer)
}

// fetcher is the part of a JetStream consumer readEvents needs.
type fetcher interface {
	FetchNoWait(batch int) (jetstream.MessageBatch, error)
}

const batchSize = 256

// readEvents drains f in batches until a short batch arrives. Malformed
// payloads are skipped; fetch and batch errors end the replay.
func readEvents(f fetcher) ([]Event, error) {
	var events []Event
	for {
		msgs, err := f.FetchNoWait(batchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch events: %w", err)
		}

		n := 0
		for msg := range msgs.Messages() {
			n++
			var event Event
			if err := json.Unmarshal(msg.Data(), &event); err != nil {
				logger.Warn("Skipping malformed ledger event on %s: %v", msg.Subject(), err)
				continue
			}
			events = append(events, event)
		}
		if err := msgs.Error(); err != nil && !errors.Is(err, jetstream.ErrNoMessages) {
			return nil, fmt.Errorf("failed to read events: %w", err)
		}

		if n < batchSize {
			return events, nil
		}
	}
}

// Count returns the number of stored events.
func (l *Ledger) Count(ctx context.Context) (uint64, error) {
	info, err := l.stream.Info(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading stream info: %w", err)
	}
	return info.State.Msgs, nil
}

// Close shuts the embedded server down and removes its scratch directory.
func (l *Ledger) Close() error {
	err := l.server.Close()
	if rmErr := os.RemoveAll(l.dataDir); rmErr != nil && err == nil {
		err = rmErr
	}
	return err
}
