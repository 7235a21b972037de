// Command thermostatd drives a residential HVAC system: it reads a
// temperature sensor once per tick, runs the thermostat control core and
// switches the heat, cool and fan relays, publishing status over MQTT and a
// read-only HTTP page.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sweeney/thermostatd/internal/control"
	"github.com/sweeney/thermostatd/internal/mqtt"
	"github.com/sweeney/thermostatd/internal/queue"
	"github.com/sweeney/thermostatd/internal/relay"
	"github.com/sweeney/thermostatd/internal/sensor"
	"github.com/sweeney/thermostatd/internal/status"
	"github.com/sweeney/thermostatd/internal/web"
)

const (
	inboxCapacity  = 32
	outboxCapacity = 64
)

func main() {
	tick := flag.Duration("tick", time.Second, "Control tick interval")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	lineHeat := flag.Int("line-heat", relay.DefaultLineHeat, "GPIO line offset for the heat relay")
	lineCool := flag.Int("line-cool", relay.DefaultLineCool, "GPIO line offset for the cool relay")
	lineFan := flag.Int("line-fan", relay.DefaultLineFan, "GPIO line offset for the fan relay")
	sensorType := flag.String("sensor", "ds18b20", "Temperature sensor type (ds18b20 or dht22)")
	w1Device := flag.String("w1-device", sensor.DefaultW1Device, "w1_slave path or glob for ds18b20")
	dhtPin := flag.Int("dht-pin", 4, "GPIO pin for dht22")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")
	printTemp := flag.Bool("print-temp", false, "Print current temperature and exit")

	mode := flag.String("mode", "off", "Initial HVAC mode (heat, cool or off)")
	targetC := flag.Float64("target", 21.0, "Initial target temperature in Celsius")
	diff := flag.String("diff", "normal", "Initial differential speed (slow, normal or fast)")
	rest := flag.String("rest", "off", "Initial defrost rest tier (short, medium, long or off)")
	fan := flag.String("fan", "auto", "Initial fan mode (auto or on)")
	fahrenheit := flag.Bool("fahrenheit", true, "Display temperatures in Fahrenheit")

	flag.Parse()

	initial, err := initialEvents(*mode, *diff, *rest, *fan, *targetC, *fahrenheit)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(*tick, *broker, *heartbeat, *lineHeat, *lineCool, *lineFan,
		*sensorType, *w1Device, *dhtPin, *httpAddr, *printTemp, initial); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(tick time.Duration, broker string, heartbeat time.Duration, lineHeat, lineCool, lineFan int,
	sensorType, w1Device string, dhtPin int, httpAddr string, printTemp bool, initial []control.Event) error {

	// Initialize the temperature sensor
	probe, err := newSensor(sensorType, w1Device, dhtPin)
	if err != nil {
		return fmt.Errorf("init sensor: %w", err)
	}
	cached := sensor.NewCached(probe)
	defer cached.Close()

	// Print temperature mode
	if printTemp {
		tempC, err := cached.Read()
		if err != nil {
			return fmt.Errorf("read sensor: %w", err)
		}
		fmt.Printf("%.3f°C (%.1f°F)\n", tempC, control.CelsiusToFahrenheit(tempC))
		return nil
	}

	// Initialize the relay driver; relays must end up off no matter how we exit.
	drv, err := relay.NewRealDriver(lineHeat, lineCool, lineFan)
	if err != nil {
		return fmt.Errorf("init relays: %w", err)
	}
	defer drv.Close()

	// Initialize MQTT
	publisher, err := mqtt.NewRealPublisher(broker)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	// Queues and control core
	inbox := queue.New[control.Event](inboxCapacity)
	outbox := queue.New[control.Update](outboxCapacity)
	for _, ev := range initial {
		inbox.TrySend(ev)
	}

	startTime := time.Now()
	core := control.New(inbox, outbox, startTime)

	// Status tracker (before STARTUP so a snapshot is available)
	tracker := status.NewTracker(startTime, status.Config{
		TickMs:      tick.Milliseconds(),
		HeartbeatMs: heartbeat.Milliseconds(),
		Broker:      broker,
		HTTPAddr:    httpAddr,
		SensorType:  sensorType,
	})

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: tick=%v sensor=%s broker=%s heartbeat=%v", tick, sensorType, broker, heartbeat)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(core, drv, cached, outbox, publisher, publisher, tracker, heartbeat, time.Now, ticker.C, sigCh)
}

func runLoop(core *control.Thermostat, drv relay.Driver, cached *sensor.Cached,
	outbox *queue.Queue[control.Update], publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus,
	tracker *status.Tracker, heartbeat time.Duration, now func() time.Time,
	tick <-chan time.Time, sig <-chan os.Signal) error {

	lastHeartbeat := now()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}

			// Relays off before anything else; observers can wait.
			drv.SetHeating(false)
			drv.SetCooling(false)
			drv.SetFan(false)

			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			tempC, readErr := cached.Read()
			if readErr != nil {
				log.Printf("sensor read error: %v (using %.1f°C)", readErr, tempC)
			}

			before := core.State()
			core.Tick(drv, tempC, t)
			if after := core.State(); after != before {
				heat, cool, fan := drv.States()
				log.Printf("transition: %s -> %s (temp=%.1f°C heat=%t cool=%t fan=%t)",
					before, after, tempC, heat, cool, fan)
			}

			// Fan the outbox out to MQTT. Dropped or failed sends never
			// affect relay state.
			for _, update := range outbox.TryReceiveAll() {
				if err := publisher.Publish(update, t); err != nil {
					log.Printf("publish error: %v", err)
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				heat, cool, fan := drv.States()
				tracker.Update(core.Snapshot(), core.StatusMessage(t),
					status.Relays{Heat: heat, Cool: cool, Fan: fan}, readErr == nil)
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			// Check for heartbeat
			if heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat {
				lastHeartbeat = t
				hbEvent := mqtt.SystemEvent{
					Timestamp: t,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}

// newSensor constructs the configured temperature probe.
func newSensor(sensorType, w1Device string, dhtPin int) (sensor.Sensor, error) {
	switch strings.ToLower(sensorType) {
	case "ds18b20":
		return sensor.NewDS18B20(w1Device)
	case "dht22":
		return sensor.NewDHT22(dhtPin)
	default:
		return nil, fmt.Errorf("unknown sensor type %q", sensorType)
	}
}

// initialEvents validates the configuration flags and converts them into
// inbox events. Malformed values are rejected here; the core only ever sees
// valid enums.
func initialEvents(mode, diff, rest, fan string, targetC float64, fahrenheit bool) ([]control.Event, error) {
	m, err := parseMode(mode)
	if err != nil {
		return nil, err
	}
	d, err := parseDiff(diff)
	if err != nil {
		return nil, err
	}
	r, err := parseRest(rest)
	if err != nil {
		return nil, err
	}
	f, err := parseFan(fan)
	if err != nil {
		return nil, err
	}

	return []control.Event{
		control.ModeUpdate{Mode: m},
		control.DiffUpdate{Diff: d},
		control.RestUpdate{Rest: r},
		control.FanUpdate{Fan: f},
		control.TargetTempUpdate{TempC: targetC},
		control.UnitUpdate{UseFahrenheit: fahrenheit},
	}, nil
}

func parseMode(s string) (control.Mode, error) {
	switch strings.ToLower(s) {
	case "heat":
		return control.ModeHeat, nil
	case "cool":
		return control.ModeCool, nil
	case "off":
		return control.ModeOff, nil
	default:
		return 0, fmt.Errorf("invalid mode %q", s)
	}
}

func parseDiff(s string) (control.DiffMode, error) {
	switch strings.ToLower(s) {
	case "slow":
		return control.DiffSlow, nil
	case "normal":
		return control.DiffNormal, nil
	case "fast":
		return control.DiffFast, nil
	default:
		return 0, fmt.Errorf("invalid diff mode %q", s)
	}
}

func parseRest(s string) (control.RestMode, error) {
	switch strings.ToLower(s) {
	case "short":
		return control.RestShort, nil
	case "medium":
		return control.RestMedium, nil
	case "long":
		return control.RestLong, nil
	case "off":
		return control.RestOff, nil
	default:
		return 0, fmt.Errorf("invalid rest mode %q", s)
	}
}

func parseFan(s string) (control.FanMode, error) {
	switch strings.ToLower(s) {
	case "auto":
		return control.FanAuto, nil
	case "on":
		return control.FanOn, nil
	default:
		return 0, fmt.Errorf("invalid fan mode %q", s)
	}
}
