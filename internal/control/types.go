// Package control contains the pure thermostat control core: the runtime
// state machine, hysteresis computation, defrost duty-cycle accounting and
// debounced configuration ingestion.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package control

// Mode is the user-selected HVAC mode.
type Mode int

const (
	ModeHeat Mode = iota
	ModeCool
	ModeOff
)

func (m Mode) String() string {
	switch m {
	case ModeHeat:
		return "heat"
	case ModeCool:
		return "cool"
	default:
		return "off"
	}
}

// DiffMode selects the hysteresis aggressiveness. Slow trades wider
// temperature swings for fewer relay cycles, Fast the reverse.
type DiffMode int

const (
	DiffSlow DiffMode = iota
	DiffNormal
	DiffFast
)

func (d DiffMode) String() string {
	switch d {
	case DiffSlow:
		return "slow"
	case DiffFast:
		return "fast"
	default:
		return "normal"
	}
}

// RestMode selects the cumulative-cooling threshold after which the
// compressor must rest to defrost the coil. RestOff disables the policy.
type RestMode int

const (
	RestShort RestMode = iota
	RestMedium
	RestLong
	RestOff
)

func (r RestMode) String() string {
	switch r {
	case RestShort:
		return "short"
	case RestMedium:
		return "medium"
	case RestLong:
		return "long"
	default:
		return "off"
	}
}

// FanMode controls whether the fan runs only during active heating/cooling
// (Auto) or continuously (On).
type FanMode int

const (
	FanAuto FanMode = iota
	FanOn
)

func (f FanMode) String() string {
	if f == FanOn {
		return "on"
	}
	return "auto"
}

// RuntimeState is the current control state of the thermostat.
type RuntimeState int

const (
	StateWaiting RuntimeState = iota
	StateHeating
	StateCooling
	StateResting
	StateIdle
)

func (s RuntimeState) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateHeating:
		return "heating"
	case StateCooling:
		return "cooling"
	case StateResting:
		return "resting"
	default:
		return "idle"
	}
}

// Event is a user-originated configuration change delivered through the
// inbox. It is a closed sum: exactly the types below implement it, and every
// value carries an already-validated enum or a Celsius float.
type Event interface {
	isEvent()
}

// ModeUpdate changes the HVAC mode.
type ModeUpdate struct{ Mode Mode }

// UnitUpdate changes the display-unit preference. It never affects control
// decisions.
type UnitUpdate struct{ UseFahrenheit bool }

// DiffUpdate changes the hysteresis aggressiveness.
type DiffUpdate struct{ Diff DiffMode }

// RestUpdate changes the defrost duty-cycle tier.
type RestUpdate struct{ Rest RestMode }

// FanUpdate changes the fan mode.
type FanUpdate struct{ Fan FanMode }

// TargetTempUpdate changes the setpoint. Celsius, always.
type TargetTempUpdate struct{ TempC float64 }

func (ModeUpdate) isEvent()       {}
func (UnitUpdate) isEvent()       {}
func (DiffUpdate) isEvent()       {}
func (RestUpdate) isEvent()       {}
func (FanUpdate) isEvent()        {}
func (TargetTempUpdate) isEvent() {}

// Update is a message from the core to the presentation layer.
type Update interface {
	isUpdate()
}

// TempUpdate reports the current temperature in Celsius.
type TempUpdate struct{ TempC float64 }

// StatusUpdate reports the human-readable status line.
type StatusUpdate struct{ Message string }

func (TempUpdate) isUpdate()   {}
func (StatusUpdate) isUpdate() {}

// Inbox is the receive side of the configuration queue. TryReceiveAll must
// never block; it returns every pending event in arrival order.
type Inbox interface {
	TryReceiveAll() []Event
}

// Outbox is the send side of the status queue. TrySend must never block; a
// false return means the update was dropped, which the core ignores — relay
// behavior never depends on observers.
type Outbox interface {
	TrySend(Update) bool
}

// Controller is the relay command surface of the hardware collaborator.
// Setters are idempotent: the implementation suppresses duplicate writes, so
// the core issues desired states unconditionally on every transition.
type Controller interface {
	SetHeating(bool)
	SetCooling(bool)
	SetFan(bool)
}
