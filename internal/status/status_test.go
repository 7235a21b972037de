package status

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/thermostatd/internal/control"
)

var testStart = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{
		TickMs:      1000,
		HeartbeatMs: 900000,
		Broker:      "tcp://broker:1883",
		HTTPAddr:    ":8080",
		SensorType:  "ds18b20",
	}
}

func testControlSnap() control.Snapshot {
	return control.Snapshot{
		TempC:         21.5,
		TargetC:       22.0,
		Mode:          control.ModeHeat,
		Diff:          control.DiffNormal,
		Rest:          control.RestOff,
		Fan:           control.FanAuto,
		UseFahrenheit: false,
		State:         control.StateHeating,
		TotalCooling:  5 * time.Minute,
		TotalHeating:  12 * time.Minute,
	}
}

func TestTrackerUpdateAndSnapshot(t *testing.T) {
	tr := NewTracker(testStart, testConfig())

	tr.Update(testControlSnap(), "Heating", Relays{Heat: true, Fan: true}, true)
	tr.SetMQTTConnected(true)

	snap := tr.Snapshot()
	if snap.Control.State != control.StateHeating {
		t.Errorf("expected heating state, got %s", snap.Control.State)
	}
	if snap.StatusLine != "Heating" {
		t.Errorf("expected Heating status line, got %q", snap.StatusLine)
	}
	if !snap.Relays.Heat || snap.Relays.Cool || !snap.Relays.Fan {
		t.Errorf("unexpected relays: %+v", snap.Relays)
	}
	if !snap.MQTTConnected {
		t.Error("expected MQTT connected")
	}
	if !snap.SensorOK {
		t.Error("expected sensor ok")
	}
	if snap.Config.Broker != "tcp://broker:1883" {
		t.Errorf("unexpected broker: %s", snap.Config.Broker)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	tr := NewTracker(testStart, testConfig())
	tr.Update(testControlSnap(), "Heating", Relays{Heat: true}, true)

	snap := tr.Snapshot()

	// Mutating the tracker afterwards must not affect the taken snapshot.
	cooling := testControlSnap()
	cooling.State = control.StateCooling
	tr.Update(cooling, "Cooling", Relays{Cool: true}, true)

	if snap.Control.State != control.StateHeating || snap.StatusLine != "Heating" {
		t.Error("snapshot must be an isolated copy")
	}
}

func TestSnapshotUptime(t *testing.T) {
	tr := NewTracker(time.Now().Add(-90*time.Second), testConfig())
	snap := tr.Snapshot()

	if up := snap.Uptime(); up < 89*time.Second || up > 92*time.Second {
		t.Errorf("expected ~90s uptime, got %v", up)
	}
}

func TestFormatJSON(t *testing.T) {
	tr := NewTracker(testStart, testConfig())
	tr.Update(testControlSnap(), "Heating", Relays{Heat: true, Fan: true}, true)

	var parsed StatusJSON
	if err := json.Unmarshal(FormatJSON(tr.Snapshot()), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	inner := parsed.Status
	if inner.State != "heating" {
		t.Errorf("unexpected state: %s", inner.State)
	}
	if inner.StatusLine != "Heating" {
		t.Errorf("unexpected status line: %s", inner.StatusLine)
	}
	if inner.TempC != 21.5 || inner.TargetC != 22.0 {
		t.Errorf("unexpected temps: %v / %v", inner.TempC, inner.TargetC)
	}
	if inner.Mode != "heat" || inner.Diff != "normal" || inner.Rest != "off" || inner.Fan != "auto" {
		t.Errorf("unexpected config enums: %s %s %s %s", inner.Mode, inner.Diff, inner.Rest, inner.Fan)
	}
	if inner.DisplayUnit != "celsius" {
		t.Errorf("unexpected display unit: %s", inner.DisplayUnit)
	}
	if !inner.Relays.Heat || inner.Relays.Cool || !inner.Relays.Fan {
		t.Errorf("unexpected relays: %+v", inner.Relays)
	}
	if inner.CoolingSecs != 300 || inner.HeatingSecs != 720 {
		t.Errorf("unexpected runtime counters: %d / %d", inner.CoolingSecs, inner.HeatingSecs)
	}
	if inner.Event != "" || inner.Reason != "" {
		t.Error("web JSON must not carry event/reason")
	}
}

func TestFormatStatusEvent(t *testing.T) {
	tr := NewTracker(testStart, testConfig())
	tr.Update(testControlSnap(), "Heating", Relays{}, true)

	var parsed StatusJSON
	if err := json.Unmarshal(FormatStatusEvent(tr.Snapshot(), "SHUTDOWN", "SIGTERM"), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Event != "SHUTDOWN" {
		t.Errorf("unexpected event: %s", parsed.Status.Event)
	}
	if parsed.Status.Reason != "SIGTERM" {
		t.Errorf("unexpected reason: %s", parsed.Status.Reason)
	}
}

func TestFormatStatusEventFahrenheitUnit(t *testing.T) {
	tr := NewTracker(testStart, testConfig())
	ctl := testControlSnap()
	ctl.UseFahrenheit = true
	tr.Update(ctl, "Heating", Relays{}, true)

	var parsed StatusJSON
	if err := json.Unmarshal(FormatStatusEvent(tr.Snapshot(), "HEARTBEAT", ""), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.DisplayUnit != "fahrenheit" {
		t.Errorf("unexpected display unit: %s", parsed.Status.DisplayUnit)
	}
	// Temperatures stay canonical Celsius even with Fahrenheit display.
	if parsed.Status.TempC != 21.5 {
		t.Errorf("temp_c must remain Celsius, got %v", parsed.Status.TempC)
	}
}
