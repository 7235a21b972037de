// Package sensor provides temperature acquisition with hardware abstraction.
// Real implementations read a DS18B20 over the sysfs 1-wire interface or a
// DHT22 by bit-banging its GPIO line. The fake implementation returns
// scripted readings for tests.
//
// Readings are always Celsius, the control core's canonical unit.
package sensor

// Sensor reads the ambient temperature.
type Sensor interface {
	// Read returns the current temperature in Celsius. Best-effort: a
	// failed read returns an error and the caller falls back to the last
	// known value.
	Read() (float64, error)

	// Close releases sensor resources.
	Close() error
}

// DefaultTempC is the documented fallback used before any reading ever
// succeeds, so the control core always has a well-defined input.
const DefaultTempC = 25.0

// Cached wraps a Sensor so reads never fail from the caller's point of
// view: a read error yields the last successful value (or DefaultTempC if
// none yet) alongside the error for logging.
type Cached struct {
	sensor Sensor
	lastC  float64
	everOK bool
}

// NewCached wraps sensor with last-known-value fallback.
func NewCached(sensor Sensor) *Cached {
	return &Cached{sensor: sensor, lastC: DefaultTempC}
}

// Read returns a usable Celsius value on every call. The error, when
// non-nil, is informational: the value is then the cached fallback.
func (c *Cached) Read() (float64, error) {
	tempC, err := c.sensor.Read()
	if err != nil {
		return c.lastC, err
	}
	c.lastC = tempC
	c.everOK = true
	return tempC, nil
}

// EverSucceeded reports whether any underlying read has succeeded.
func (c *Cached) EverSucceeded() bool {
	return c.everOK
}

// Close releases the underlying sensor.
func (c *Cached) Close() error {
	return c.sensor.Close()
}
