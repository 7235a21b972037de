//go:build linux

package sensor

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	rpio "github.com/stianeikeland/go-rpio"
)

// Spin budget while waiting for a single pulse to end. The DHT22 pulses are
// 26–70µs; the character device is far too slow for this, hence direct
// memory-mapped GPIO.
const dhtMaxWait = int64(time.Millisecond)

// DHT22 reads a DHT22/AM2302 probe by bit-banging its data line. Each Read
// performs the full handshake-and-40-bit exchange; the sensor itself limits
// sampling to roughly once per two seconds, which a 1s control tick with a
// cached wrapper tolerates fine.
type DHT22 struct {
	pin     rpio.Pin
	retries int
}

// NewDHT22 opens the memory-mapped GPIO range and prepares the data pin
// (BCM numbering).
func NewDHT22(pin int) (*DHT22, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio mem: %w", err)
	}
	return &DHT22{pin: rpio.Pin(pin), retries: 3}, nil
}

// Read performs up to a few exchanges until one passes the checksum.
func (s *DHT22) Read() (float64, error) {
	for i := 0; i < s.retries; i++ {
		tempC, ok := s.readOnce()
		if ok {
			return tempC, nil
		}
	}
	return 0, errors.New("dht22: no reading passed checksum")
}

// readOnce runs one handshake and bit exchange. GC is paused around the
// timing-critical section; a pause mid-pulse corrupts the whole frame.
func (s *DHT22) readOnce() (float64, bool) {
	pulseLen := make([]int64, 82)

	s.pin.Mode(rpio.Output)
	s.pin.High()
	time.Sleep(250 * time.Millisecond)

	// Pull low for 20ms to request a reading.
	s.pin.Low()
	start := time.Now().UnixNano()
	hold := int64(20 * time.Millisecond)
	for time.Now().UnixNano()-start < hold {
	}
	s.pin.Mode(rpio.Input)
	s.pin.PullUp()
	defer s.pin.PullOff()

	debug.SetGCPercent(-1)
	defer debug.SetGCPercent(100)

	// Sensor acknowledges by pulling low within ~5ms.
	start = time.Now().UnixNano()
	ackWait := int64(5 * time.Millisecond)
	for s.pin.Read() == rpio.High {
		if time.Now().UnixNano()-start > ackWait {
			return 0, false
		}
	}

	// 80µs low + 80µs high preamble, then 40 (low, high) pulse pairs where
	// the high duration encodes the bit. Spin counts stand in for time.
	var ticks int64
READER:
	for i := 0; i < 81; i += 2 {
		ticks = 0
		for s.pin.Read() == rpio.Low {
			if ticks > dhtMaxWait {
				break READER
			}
			ticks++
		}
		pulseLen[i] = ticks

		ticks = 0
		for s.pin.Read() == rpio.High {
			if ticks > dhtMaxWait {
				break READER
			}
			ticks++
		}
		pulseLen[i+1] = ticks
	}

	// A bit is 1 when its high pulse outlasts the mean low-pulse width.
	var threshold int64
	for i := 2; i < 82; i += 2 {
		threshold += pulseLen[i]
	}
	threshold /= 40

	var frame [5]uint8
	for i := 3; i < 82; i += 2 {
		bi := (i - 3) / 16
		frame[bi] <<= 1
		if pulseLen[i] > threshold {
			frame[bi] |= 0x01
		}
	}

	if !dhtChecksum(frame) {
		return 0, false
	}

	tempC := float64((uint16(frame[2])&0x7F)*256+uint16(frame[3])) / 10.0
	if frame[2]&0x80 != 0 {
		tempC = -tempC
	}
	return tempC, true
}

func dhtChecksum(frame [5]uint8) bool {
	var sum uint8
	for i := 0; i < 4; i++ {
		sum += frame[i]
	}
	return sum == frame[4]
}

// Close releases the memory-mapped GPIO range.
func (s *DHT22) Close() error {
	return rpio.Close()
}
