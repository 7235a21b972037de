package control

import "time"

const (
	// RestDuration is the mandatory compressor-off period once a defrost
	// rest begins. Unconditional: temperature changes cannot cut it short.
	RestDuration = 30 * time.Minute

	// DebounceInterval is the quiescence the inbox drain requires since the
	// previous executed drain. Prevents relay chatter while a user drags a
	// setpoint slider, at the cost of up to one interval of input latency.
	DebounceInterval = 5 * time.Second
)

// Cumulative-cooling thresholds per RestMode.
const (
	restAfterShort  = 60 * time.Minute
	restAfterMedium = 90 * time.Minute
	restAfterLong   = 120 * time.Minute
)

// Thermostat owns all control state. It is created once at startup and
// mutated only by Tick; the driver loop invokes Tick to completion before
// the next tick begins, so no locking is needed.
type Thermostat struct {
	inbox  Inbox
	outbox Outbox

	// Canonical unit is Celsius. Fahrenheit exists only at render time.
	currentTempC float64
	targetTempC  float64

	mode          Mode
	diff          DiffMode
	rest          RestMode
	fan           FanMode
	useFahrenheit bool

	state RuntimeState

	// totalCooling accumulates only while StateCooling and resets to zero
	// exactly when a completed rest period elapses. totalHeating is the
	// symmetric counter, kept for reporting.
	totalCooling time.Duration
	totalHeating time.Duration

	// Monotonic anchors for elapsed-time comparisons. Never persisted,
	// never compared across restarts.
	lastRestStart time.Time
	lastDrain     time.Time
	lastTickEnd   time.Time
}

// New creates a Thermostat with conservative defaults: mode off, 21 °C
// setpoint, normal differential, defrost disabled, fan auto, Fahrenheit
// display. start anchors the internal timestamps; pass the same clock that
// later feeds Tick.
func New(inbox Inbox, outbox Outbox, start time.Time) *Thermostat {
	return &Thermostat{
		inbox:         inbox,
		outbox:        outbox,
		currentTempC:  21.0,
		targetTempC:   21.0,
		mode:          ModeOff,
		diff:          DiffNormal,
		rest:          RestOff,
		fan:           FanAuto,
		useFahrenheit: true,
		state:         StateWaiting,
		lastRestStart: start,
		// Predate the drain anchor so configuration queued before the first
		// tick (e.g. from command-line flags) applies immediately.
		lastDrain:   start.Add(-DebounceInterval - time.Second),
		lastTickEnd: start,
	}
}

// WaitingTargetTemp returns the Celsius threshold that must be crossed to
// leave StateWaiting. Heating starts below target minus an offset, cooling
// above target plus an offset; the offset widens with slower differential
// modes. Active states exit at the setpoint itself, not at this value.
func (t *Thermostat) WaitingTargetTemp() float64 {
	switch t.mode {
	case ModeHeat:
		switch t.diff {
		case DiffSlow:
			return t.targetTempC - 1.0
		case DiffFast:
			return t.targetTempC - 0.3
		default:
			return t.targetTempC - 0.4
		}
	case ModeCool:
		switch t.diff {
		case DiffSlow:
			return t.targetTempC + 0.9
		case DiffFast:
			return t.targetTempC + 0.5
		default:
			return t.targetTempC + 0.7
		}
	default:
		// No meaningful threshold when off; used only for display.
		return t.currentTempC
	}
}

// shouldRest reports whether cumulative cooling runtime has exceeded the
// active rest tier. The compressor coil ices up without enough airflow, so
// this fires regardless of how temperatures evolve.
func (t *Thermostat) shouldRest() bool {
	if t.mode != ModeCool {
		return false
	}
	switch t.rest {
	case RestShort:
		return t.totalCooling > restAfterShort
	case RestMedium:
		return t.totalCooling > restAfterMedium
	case RestLong:
		return t.totalCooling > restAfterLong
	default:
		return false
	}
}

// drainEvents applies all pending configuration events in arrival order,
// last writer wins per field. The drain is gated on DebounceInterval having
// elapsed since the previous executed drain; the anchor only advances when
// the drain actually runs.
func (t *Thermostat) drainEvents(now time.Time) {
	if now.Sub(t.lastDrain) <= DebounceInterval {
		return
	}
	for _, ev := range t.inbox.TryReceiveAll() {
		t.apply(ev)
	}
	t.lastDrain = now
}

func (t *Thermostat) apply(ev Event) {
	switch e := ev.(type) {
	case ModeUpdate:
		t.mode = e.Mode
	case UnitUpdate:
		t.useFahrenheit = e.UseFahrenheit
	case DiffUpdate:
		t.diff = e.Diff
	case RestUpdate:
		t.rest = e.Rest
	case FanUpdate:
		t.fan = e.Fan
	case TargetTempUpdate:
		t.targetTempC = e.TempC
	}
}

func (t *Thermostat) startHeating(ctrl Controller) {
	t.state = StateHeating
	ctrl.SetHeating(true)
	ctrl.SetCooling(false)
	ctrl.SetFan(true)
}

func (t *Thermostat) startCooling(ctrl Controller) {
	t.state = StateCooling
	ctrl.SetCooling(true)
	ctrl.SetHeating(false)
	ctrl.SetFan(true)
}

func (t *Thermostat) startIdle(ctrl Controller) {
	t.state = StateIdle
	ctrl.SetHeating(false)
	ctrl.SetCooling(false)
	// Fan stays on in FanOn mode; heating and cooling turn it back on anyway.
	if t.fan == FanAuto {
		ctrl.SetFan(false)
	}
}

func (t *Thermostat) startResting(ctrl Controller, now time.Time) {
	t.state = StateResting
	t.lastRestStart = now
	ctrl.SetHeating(false)
	ctrl.SetCooling(false)
	// Fan forced on regardless of fan mode so the coil actually thaws.
	ctrl.SetFan(true)
}

func (t *Thermostat) startWaiting(ctrl Controller, now time.Time) {
	t.state = StateWaiting
	t.lastRestStart = now
	ctrl.SetHeating(false)
	ctrl.SetCooling(false)
	if t.fan == FanAuto {
		ctrl.SetFan(false)
	}
}

// dispatchMode enters the active state matching the current mode. Used when
// leaving StateResting and StateIdle.
func (t *Thermostat) dispatchMode(ctrl Controller) {
	switch t.mode {
	case ModeHeat:
		t.startHeating(ctrl)
	case ModeCool:
		t.startCooling(ctrl)
	default:
		t.startIdle(ctrl)
	}
}

// Tick runs one control evaluation: drain the inbox (subject to debounce),
// ingest the temperature reading, evaluate the state machine, command the
// relays and emit status. tempC is the latest sensor reading in Celsius;
// now is the wall clock for this tick. Correct for any tick cadence because
// all timing is elapsed-time arithmetic, never tick counting.
func (t *Thermostat) Tick(ctrl Controller, tempC float64, now time.Time) {
	t.drainEvents(now)
	t.currentTempC = tempC

	switch t.state {
	case StateWaiting:
		// Waiting isn't resting, but a quiescent period this long already
		// satisfied the defrost requirement.
		if now.Sub(t.lastRestStart) > RestDuration {
			t.totalCooling = 0
		}
		switch t.mode {
		case ModeHeat:
			if t.currentTempC < t.WaitingTargetTemp() {
				t.startHeating(ctrl)
			}
		case ModeCool:
			if t.currentTempC > t.WaitingTargetTemp() {
				t.startCooling(ctrl)
			}
		default:
			t.startIdle(ctrl)
		}

	case StateHeating:
		t.totalHeating += now.Sub(t.lastTickEnd)
		if t.currentTempC >= t.targetTempC {
			t.startWaiting(ctrl, now)
		}

	case StateCooling:
		t.totalCooling += now.Sub(t.lastTickEnd)
		if t.shouldRest() {
			t.startResting(ctrl, now)
		} else if t.currentTempC <= t.targetTempC {
			t.startWaiting(ctrl, now)
		}

	case StateResting:
		// Unconditional once started: only elapsed time ends a rest.
		if now.Sub(t.lastRestStart) > RestDuration {
			t.totalCooling = 0
			t.dispatchMode(ctrl)
		}

	case StateIdle:
		t.dispatchMode(ctrl)
	}

	// Dropped updates are fine; relays must not depend on observers.
	t.outbox.TrySend(TempUpdate{TempC: t.currentTempC})
	t.outbox.TrySend(StatusUpdate{Message: t.StatusMessage(now)})

	t.lastTickEnd = now
}

// State returns the current runtime state.
func (t *Thermostat) State() RuntimeState {
	return t.state
}

// Snapshot is a point-in-time copy of the control state, safe to hand to
// other goroutines.
type Snapshot struct {
	TempC         float64
	TargetC       float64
	Mode          Mode
	Diff          DiffMode
	Rest          RestMode
	Fan           FanMode
	UseFahrenheit bool
	State         RuntimeState
	TotalCooling  time.Duration
	TotalHeating  time.Duration
}

// Snapshot returns a copy of the current control state.
func (t *Thermostat) Snapshot() Snapshot {
	return Snapshot{
		TempC:         t.currentTempC,
		TargetC:       t.targetTempC,
		Mode:          t.mode,
		Diff:          t.diff,
		Rest:          t.rest,
		Fan:           t.fan,
		UseFahrenheit: t.useFahrenheit,
		State:         t.state,
		TotalCooling:  t.totalCooling,
		TotalHeating:  t.totalHeating,
	}
}
