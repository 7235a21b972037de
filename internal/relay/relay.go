// Package relay drives the heat, cool and fan relay outputs with hardware
// abstraction. The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
//
// All drivers suppress duplicate writes: asking for a state the relay is
// already in is a no-op, so callers may set desired states unconditionally.
package relay

// Driver commands the three relay outputs.
type Driver interface {
	// SetHeating switches the heat relay. Idempotent.
	SetHeating(on bool)

	// SetCooling switches the cool relay. Idempotent.
	SetCooling(on bool)

	// SetFan switches the fan relay. Idempotent.
	SetFan(on bool)

	// States returns the currently commanded (heat, cool, fan) states.
	States() (bool, bool, bool)

	// Close switches every relay off and releases GPIO resources.
	Close() error
}

// Default line offsets (BCM numbering).
const (
	DefaultLineHeat = 17
	DefaultLineCool = 27
	DefaultLineFan  = 22
)
