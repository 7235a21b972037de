package control

import (
	"testing"
	"time"
)

func TestConversionRoundTrip(t *testing.T) {
	for _, tempF := range []float64{-40, 0, 32, 72.5, 100} {
		got := CelsiusToFahrenheit(FahrenheitToCelsius(tempF))
		if !closeTo(got, tempF) {
			t.Errorf("round trip of %v°F gave %v", tempF, got)
		}
	}
}

func TestConversionKnownPoints(t *testing.T) {
	tests := []struct {
		c, f float64
	}{
		{0, 32},
		{100, 212},
		{-40, -40},
		{21, 69.8},
	}
	for _, tt := range tests {
		if got := CelsiusToFahrenheit(tt.c); !closeTo(got, tt.f) {
			t.Errorf("%v°C: expected %v°F, got %v", tt.c, tt.f, got)
		}
		if got := FahrenheitToCelsius(tt.f); !closeTo(got, tt.c) {
			t.Errorf("%v°F: expected %v°C, got %v", tt.f, tt.c, got)
		}
	}
}

func TestFormatTemp(t *testing.T) {
	stat, _, _, _ := newTestThermostat()

	stat.useFahrenheit = true
	if got := stat.FormatTemp(21.0); got != "69.8°F" {
		t.Errorf("expected 69.8°F, got %q", got)
	}

	stat.useFahrenheit = false
	if got := stat.FormatTemp(21.0); got != "21.0°C" {
		t.Errorf("expected 21.0°C, got %q", got)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{90 * time.Second, "01:30"},
		{30 * time.Minute, "30:00"},
		{29*time.Minute + 45*time.Second, "29:45"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.d); got != tt.want {
			t.Errorf("%v: expected %q, got %q", tt.d, tt.want, got)
		}
	}
}

func TestStatusMessages(t *testing.T) {
	stat, _, _, _ := newTestThermostat()
	stat.useFahrenheit = false
	stat.mode = ModeHeat
	stat.targetTempC = 22.0
	now := testStart.Add(time.Minute)

	stat.state = StateWaiting
	if got := stat.StatusMessage(now); got != "Waiting for 21.6°C" {
		t.Errorf("waiting: got %q", got)
	}

	stat.state = StateHeating
	if got := stat.StatusMessage(now); got != "Heating" {
		t.Errorf("heating: got %q", got)
	}

	stat.state = StateCooling
	if got := stat.StatusMessage(now); got != "Cooling" {
		t.Errorf("cooling: got %q", got)
	}

	stat.state = StateIdle
	if got := stat.StatusMessage(now); got != "Idling" {
		t.Errorf("idle: got %q", got)
	}

	stat.state = StateResting
	stat.lastRestStart = now.Add(-10 * time.Minute)
	if got := stat.StatusMessage(now); got != "Defrosting for 20:00" {
		t.Errorf("resting: got %q", got)
	}
}

func TestRemainingRestClampsAtZero(t *testing.T) {
	stat, _, _, _ := newTestThermostat()
	stat.state = StateResting
	stat.lastRestStart = testStart

	got := stat.StatusMessage(testStart.Add(45 * time.Minute))
	if got != "Defrosting for 00:00" {
		t.Errorf("expected clamped remaining time, got %q", got)
	}
}
