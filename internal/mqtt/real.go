package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/sweeney/thermostatd/internal/control"
)

// Capacity of the offline replay buffer. At one status and one temperature
// update per second this covers a few minutes of broker outage.
const replayCapacity = 512

// RealPublisher publishes to an actual MQTT broker. While the broker is
// unreachable, updates are parked in a fixed-capacity ring buffer and
// replayed on reconnect, oldest dropped first on overflow.
type RealPublisher struct {
	client paho.Client

	mu     sync.Mutex
	replay *ringBuffer
}

// NewRealPublisher creates a publisher connected to the given broker.
func NewRealPublisher(broker string) (*RealPublisher, error) {
	p := &RealPublisher{replay: newRingBuffer(replayCapacity)}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("thermostatd").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(p.onConnect)

	p.client = paho.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return p, nil
}

// onConnect replays anything buffered while disconnected.
func (p *RealPublisher) onConnect(client paho.Client) {
	p.mu.Lock()
	msgs := p.replay.drainAll()
	p.mu.Unlock()

	if len(msgs) == 0 {
		return
	}
	log.Printf("mqtt: reconnected, replaying %d buffered messages", len(msgs))
	for _, msg := range msgs {
		token := client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
		if !token.WaitTimeout(5 * time.Second) {
			log.Printf("mqtt: replay timeout on %s", msg.topic)
			return
		}
	}
}

// Publish sends a status or temperature update to the MQTT broker. If the
// connection is down, the update is buffered for replay instead of failing.
func (p *RealPublisher) Publish(update control.Update, now time.Time) error {
	topic, payload, err := FormatPayload(update, now)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	if !p.client.IsConnected() {
		p.mu.Lock()
		p.replay.push(bufferedMsg{topic: topic, payload: payload})
		p.mu.Unlock()
		return nil
	}

	// QoS 0 (at-most-once), not retained: the next tick supersedes.
	token := p.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}

	// QoS 1 (at-least-once) for lifecycle events - we want to ensure delivery
	token := p.client.Publish(TopicSystem, 1, event.Retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish system timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish system: %w", err)
	}

	return nil
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
