package sensor

import "errors"

// FakeSensor is a test double that returns scripted temperature readings.
type FakeSensor struct {
	// TempsC contains scripted Celsius values. Each Read consumes the next
	// one; when exhausted, the last value repeats.
	TempsC []float64

	// index tracks current position in TempsC.
	index int

	// ReadError, if set, will be returned by Read.
	ReadError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeSensor creates a FakeSensor with the given readings.
func NewFakeSensor(tempsC ...float64) *FakeSensor {
	return &FakeSensor{TempsC: tempsC}
}

// Read returns the next scripted reading.
func (f *FakeSensor) Read() (float64, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}

	if len(f.TempsC) == 0 {
		return 0, errors.New("no readings configured")
	}

	tempC := f.TempsC[f.index]
	if f.index < len(f.TempsC)-1 {
		f.index++
	}

	return tempC, nil
}

// Close marks the sensor as closed.
func (f *FakeSensor) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the sensor to the beginning of its readings.
func (f *FakeSensor) Reset() {
	f.index = 0
	f.Closed = false
	f.ReadError = nil
}
