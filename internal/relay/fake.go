package relay

import "fmt"

// FakeDriver is a test double that records every relay command.
type FakeDriver struct {
	// Heat, Cool, Fan hold the currently commanded states.
	Heat, Cool, Fan bool

	// Commands records each state-changing command in order, e.g. "heat=on".
	// Suppressed duplicate writes are not recorded, matching the real
	// driver's behavior.
	Commands []string

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeDriver creates a FakeDriver with all relays off.
func NewFakeDriver() *FakeDriver {
	return &FakeDriver{}
}

// SetHeating switches the fake heat relay.
func (f *FakeDriver) SetHeating(on bool) {
	if f.Heat == on {
		return
	}
	f.Heat = on
	f.record("heat", on)
}

// SetCooling switches the fake cool relay.
func (f *FakeDriver) SetCooling(on bool) {
	if f.Cool == on {
		return
	}
	f.Cool = on
	f.record("cool", on)
}

// SetFan switches the fake fan relay.
func (f *FakeDriver) SetFan(on bool) {
	if f.Fan == on {
		return
	}
	f.Fan = on
	f.record("fan", on)
}

func (f *FakeDriver) record(name string, on bool) {
	state := "off"
	if on {
		state = "on"
	}
	f.Commands = append(f.Commands, fmt.Sprintf("%s=%s", name, state))
}

// States returns the currently commanded (heat, cool, fan) states.
func (f *FakeDriver) States() (bool, bool, bool) {
	return f.Heat, f.Cool, f.Fan
}

// Close marks the driver as closed.
func (f *FakeDriver) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded commands and states.
func (f *FakeDriver) Reset() {
	f.Heat = false
	f.Cool = false
	f.Fan = false
	f.Commands = nil
	f.Closed = false
}
