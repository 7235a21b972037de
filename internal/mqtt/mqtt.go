// Package mqtt publishes thermostat status updates with abstraction for
// testing. It is a pure telemetry sink: nothing received over MQTT ever
// feeds back into the control core.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sweeney/thermostatd/internal/control"
)

// TopicStatus carries the human-readable status line.
const TopicStatus = "home/hvac/thermostat/status"

// TopicTemperature carries current-temperature readings.
const TopicTemperature = "home/hvac/thermostat/temperature"

// TopicSystem carries system lifecycle events.
const TopicSystem = "home/hvac/thermostat/system"

// Publisher publishes control-core updates to MQTT.
type Publisher interface {
	// Publish sends a status or temperature update to the broker.
	// Returns error if publishing fails (must not crash the process).
	Publish(update control.Update, now time.Time) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g. startup, shutdown,
// heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g. "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g. "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// StatusPayload is the MQTT message for a status update.
type StatusPayload struct {
	Thermostat StatusInner `json:"thermostat"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

// TempPayload is the MQTT message for a temperature update.
type TempPayload struct {
	Thermostat TempInner `json:"thermostat"`
}

// TempInner contains the temperature details.
type TempInner struct {
	Timestamp string  `json:"timestamp"`
	Celsius   float64 `json:"celsius"`
}

// FormatPayload creates the topic and JSON payload for an update.
func FormatPayload(update control.Update, now time.Time) (string, []byte, error) {
	ts := now.UTC().Format(time.RFC3339)

	switch u := update.(type) {
	case control.StatusUpdate:
		payload, err := json.Marshal(StatusPayload{
			Thermostat: StatusInner{Timestamp: ts, Status: u.Message},
		})
		return TopicStatus, payload, err

	case control.TempUpdate:
		payload, err := json.Marshal(TempPayload{
			Thermostat: TempInner{Timestamp: ts, Celsius: u.TempC},
		})
		return TopicTemperature, payload, err

	default:
		return "", nil, fmt.Errorf("unknown update type %T", update)
	}
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status
// snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
