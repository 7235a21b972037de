package sensor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultW1Device is the sysfs glob most Pi images expose a single DS18B20
// under. Pass a concrete path when more than one probe is attached.
const DefaultW1Device = "/sys/bus/w1/devices/28-*/w1_slave"

// DS18B20 reads a Dallas 1-wire temperature probe through the kernel w1
// driver. No userspace bit-banging: the kernel handles the wire protocol
// and exposes readings as a text file.
type DS18B20 struct {
	path string
}

// NewDS18B20 creates a reader for the w1_slave file at path. A glob is
// resolved once at construction.
func NewDS18B20(path string) (*DS18B20, error) {
	matches, err := filepath.Glob(path)
	if err != nil {
		return nil, fmt.Errorf("resolve w1 device %q: %w", path, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no w1 device matches %q", path)
	}
	return &DS18B20{path: matches[0]}, nil
}

// Read parses a w1_slave report:
//
//	6e 01 4b 46 7f ff 02 10 dd : crc=dd YES
//	6e 01 4b 46 7f ff 02 10 dd t=22875
//
// The first line carries the CRC verdict, the second the temperature in
// millidegrees Celsius.
func (s *DS18B20) Read() (float64, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", s.path, err)
	}

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) < 2 {
		return 0, fmt.Errorf("short w1_slave report (%d lines)", len(lines))
	}
	if !strings.HasSuffix(strings.TrimSpace(lines[0]), "YES") {
		return 0, errors.New("w1 crc check failed")
	}

	_, value, found := strings.Cut(lines[1], "t=")
	if !found {
		return 0, errors.New("w1_slave report missing t= field")
	}
	milli, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("parse temperature %q: %w", value, err)
	}

	return float64(milli) / 1000.0, nil
}

// Close is a no-op; the kernel owns the bus.
func (s *DS18B20) Close() error {
	return nil
}
