// Package status provides a thread-safe status tracker for the thermostatd
// daemon. The control loop writes it every tick; HTTP handlers and MQTT
// system events read point-in-time snapshots.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/thermostatd/internal/control"
)

// Relays holds the currently commanded relay states.
type Relays struct {
	Heat bool
	Cool bool
	Fan  bool
}

// Config contains daemon configuration for display.
type Config struct {
	TickMs      int64
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
	SensorType  string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Control       control.Snapshot
	StatusLine    string
	Relays        Relays
	SensorOK      bool
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the control snapshot, status line, relay states and sensor
// health. Called from the run loop on every tick.
func (t *Tracker) Update(ctl control.Snapshot, statusLine string, relays Relays, sensorOK bool) {
	t.mu.Lock()
	t.snap.Control = ctl
	t.snap.StatusLine = statusLine
	t.snap.Relays = relays
	t.snap.SensorOK = sensorOK
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
