package mqtt

import (
	"time"

	"github.com/sweeney/thermostatd/internal/control"
)

// FakePublisher records published updates for test assertions.
type FakePublisher struct {
	// Updates contains all control updates that were published.
	Updates []control.Update

	// Topics contains the topic each update was formatted for.
	Topics []string

	// Payloads contains the JSON payloads that were published.
	Payloads [][]byte

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for system events.
	SystemPayloads [][]byte

	// PublishError, if set, will be returned by Publish.
	PublishError error

	// PublishSystemError, if set, will be returned by PublishSystem.
	PublishSystemError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// Publish records the update.
func (f *FakePublisher) Publish(update control.Update, now time.Time) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	topic, payload, err := FormatPayload(update, now)
	if err != nil {
		return err
	}

	f.Updates = append(f.Updates, update)
	f.Topics = append(f.Topics, topic)
	f.Payloads = append(f.Payloads, payload)

	return nil
}

// PublishSystem records the system event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}

	f.SystemEvents = append(f.SystemEvents, event)

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemPayloads = append(f.SystemPayloads, payload)

	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// Reset clears recorded updates.
func (f *FakePublisher) Reset() {
	f.Updates = nil
	f.Topics = nil
	f.Payloads = nil
	f.SystemEvents = nil
	f.SystemPayloads = nil
	f.Closed = false
	f.PublishError = nil
	f.PublishSystemError = nil
	f.Connected = false
}
