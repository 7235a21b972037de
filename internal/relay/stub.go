//go:build !linux

package relay

import "errors"

// RealDriver is not available on non-Linux platforms.
type RealDriver struct{}

// NewRealDriver returns an error on non-Linux platforms.
func NewRealDriver(lineHeat, lineCool, lineFan int) (*RealDriver, error) {
	return nil, errors.New("relay: not supported on this platform (requires Linux)")
}

// SetHeating is not implemented on non-Linux platforms.
func (d *RealDriver) SetHeating(on bool) {}

// SetCooling is not implemented on non-Linux platforms.
func (d *RealDriver) SetCooling(on bool) {}

// SetFan is not implemented on non-Linux platforms.
func (d *RealDriver) SetFan(on bool) {}

// States is not implemented on non-Linux platforms.
func (d *RealDriver) States() (bool, bool, bool) {
	return false, false, false
}

// Close is not implemented on non-Linux platforms.
func (d *RealDriver) Close() error {
	return nil
}
