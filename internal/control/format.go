package control

import (
	"fmt"
	"time"
)

// CelsiusToFahrenheit converts degrees Celsius to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FahrenheitToCelsius converts degrees Fahrenheit to Celsius.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// FormatTemp renders a Celsius value in the user's preferred display unit.
// Display only: comparisons always happen in Celsius.
func (t *Thermostat) FormatTemp(tempC float64) string {
	if t.useFahrenheit {
		return fmt.Sprintf("%.1f°F", CelsiusToFahrenheit(tempC))
	}
	return fmt.Sprintf("%.1f°C", tempC)
}

// formatClock renders a duration as mm:ss.
func formatClock(d time.Duration) string {
	secs := int(d.Truncate(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// remainingRest returns how much of the current rest period is left,
// clamped at zero.
func (t *Thermostat) remainingRest(now time.Time) time.Duration {
	remaining := RestDuration - now.Sub(t.lastRestStart)
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// StatusMessage returns the human-readable status line for the current
// runtime state. Opaque to the core's own decisions; the presentation layer
// renders it verbatim.
func (t *Thermostat) StatusMessage(now time.Time) string {
	switch t.state {
	case StateWaiting:
		return "Waiting for " + t.FormatTemp(t.WaitingTargetTemp())
	case StateHeating:
		return "Heating"
	case StateCooling:
		return "Cooling"
	case StateResting:
		return "Defrosting for " + formatClock(t.remainingRest(now))
	default:
		return "Idling"
	}
}
