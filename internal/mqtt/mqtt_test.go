package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/thermostatd/internal/control"
)

var testTime = time.Date(2026, 6, 2, 22, 18, 12, 0, time.UTC)

func TestFormatStatusPayload(t *testing.T) {
	topic, payload, err := FormatPayload(control.StatusUpdate{Message: "Heating"}, testTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topic != TopicStatus {
		t.Errorf("expected topic %s, got %s", TopicStatus, topic)
	}

	var parsed StatusPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Thermostat.Timestamp != "2026-06-02T22:18:12Z" {
		t.Errorf("unexpected timestamp: %s", parsed.Thermostat.Timestamp)
	}
	if parsed.Thermostat.Status != "Heating" {
		t.Errorf("unexpected status: %s", parsed.Thermostat.Status)
	}
}

func TestFormatTempPayload(t *testing.T) {
	topic, payload, err := FormatPayload(control.TempUpdate{TempC: 21.4}, testTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topic != TopicTemperature {
		t.Errorf("expected topic %s, got %s", TopicTemperature, topic)
	}

	var parsed TempPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Thermostat.Celsius != 21.4 {
		t.Errorf("unexpected celsius: %v", parsed.Thermostat.Celsius)
	}
}

func TestFormatStatusPayloadVariants(t *testing.T) {
	for _, msg := range []string{
		"Waiting for 72.1°F",
		"Cooling",
		"Defrosting for 29:45",
		"Idling",
	} {
		_, payload, err := FormatPayload(control.StatusUpdate{Message: msg}, testTime)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", msg, err)
		}
		var parsed StatusPayload
		if err := json.Unmarshal(payload, &parsed); err != nil {
			t.Fatalf("%q: invalid JSON: %v", msg, err)
		}
		if parsed.Thermostat.Status != msg {
			t.Errorf("expected %q, got %q", msg, parsed.Thermostat.Status)
		}
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: testTime,
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed SystemPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.System.Event != "SHUTDOWN" {
		t.Errorf("unexpected event: %s", parsed.System.Event)
	}
	if parsed.System.Reason != "SIGTERM" {
		t.Errorf("unexpected reason: %s", parsed.System.Reason)
	}
	if parsed.System.Timestamp != "2026-06-02T22:18:12Z" {
		t.Errorf("unexpected timestamp: %s", parsed.System.Timestamp)
	}
}

func TestFormatSystemPayloadRawPassthrough(t *testing.T) {
	raw := []byte(`{"status":{"event":"HEARTBEAT"}}`)
	payload, err := FormatSystemPayload(SystemEvent{RawPayload: raw})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != string(raw) {
		t.Errorf("raw payload should pass through unchanged, got %s", payload)
	}
}

func TestFormatSystemPayloadOmitsEmptyReason(t *testing.T) {
	payload, err := FormatSystemPayload(SystemEvent{Timestamp: testTime, Event: "STARTUP"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var generic map[string]map[string]any
	if err := json.Unmarshal(payload, &generic); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, present := generic["system"]["reason"]; present {
		t.Error("empty reason should be omitted")
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()

	if err := f.Publish(control.StatusUpdate{Message: "Cooling"}, testTime); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Publish(control.TempUpdate{TempC: 23.0}, testTime); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.Updates) != 2 || len(f.Payloads) != 2 {
		t.Fatalf("expected 2 recorded updates, got %d/%d", len(f.Updates), len(f.Payloads))
	}
	if f.Topics[0] != TopicStatus || f.Topics[1] != TopicTemperature {
		t.Errorf("unexpected topics: %v", f.Topics)
	}
}

func TestFakePublisherErrorInjection(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("broker down")

	if err := f.Publish(control.StatusUpdate{Message: "Heating"}, testTime); err == nil {
		t.Fatal("expected injected error")
	}
	if len(f.Updates) != 0 {
		t.Error("failed publish should not be recorded")
	}
}

func TestFakePublisherSystemEvents(t *testing.T) {
	f := NewFakePublisher()

	event := SystemEvent{Timestamp: testTime, Event: "STARTUP", Retained: true}
	if err := f.PublishSystem(event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.SystemEvents) != 1 {
		t.Fatalf("expected 1 system event, got %d", len(f.SystemEvents))
	}
	if f.SystemEvents[0].Event != "STARTUP" || !f.SystemEvents[0].Retained {
		t.Errorf("unexpected system event: %+v", f.SystemEvents[0])
	}
}

func TestFakePublisherReset(t *testing.T) {
	f := NewFakePublisher()
	f.Publish(control.TempUpdate{TempC: 20.0}, testTime)
	f.Close()

	f.Reset()

	if f.Updates != nil || f.Payloads != nil || f.Closed {
		t.Error("reset should clear all recorded state")
	}
}
