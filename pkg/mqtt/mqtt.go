// Package mqtt wraps the paho client behind a publish channel. The
// engine state republisher drops messages into C and never waits for
// the broker.
package mqtt

import (
	mqttlib "github.com/eclipse/paho.mqtt.golang"
	"github.com/womat/debug"
)

// quiesce is the number of milliseconds Disconnect waits for existing
// work to be completed.
const quiesce = 250

// Handler contains the handler of the mqtt broker.
type Handler struct {
	client mqttlib.Client

	// C is the channel to service the mqtt messages;
	// sending a message to channel C will publish it.
	C chan Message
}

// Message contains the properties of one mqtt message.
type Message struct {
	Topic    string
	Payload  []byte
	Qos      byte
	Retained bool
}

// New generates a new mqtt broker client.
func New() *Handler {
	return &Handler{
		C: make(chan Message),
	}
}

// Connect connects to the mqtt broker.
// If no broker is defined, messages are silently discarded.
func (m *Handler) Connect(broker string) error {
	if broker == "" {
		return nil
	}

	opts := mqttlib.NewClientOptions().AddBroker(broker)
	m.client = mqttlib.NewClient(opts)
	return m.reconnect()
}

// Disconnect ends the connection to the broker.
func (m *Handler) Disconnect() error {
	if m.client == nil {
		return nil
	}

	m.client.Disconnect(quiesce)
	return nil
}

// Service listens on channel C and publishes each message. Designed to
// run as its own goroutine; it returns when C is closed.
func (m *Handler) Service() {
	for msg := range m.C {
		if m.client == nil || msg.Topic == "" {
			continue
		}

		go m.publish(msg)
	}
}

func (m *Handler) reconnect() error {
	t := m.client.Connect()
	<-t.Done()
	return t.Error()
}

// publish sends one message, reconnecting first if the broker
// connection has dropped. Errors are logged, not surfaced; the next
// state change produces the next message anyway.
func (m *Handler) publish(msg Message) {
	if !m.client.IsConnected() {
		debug.DebugLog.Print("mqtt broker isn't connected, reconnect it")

		if err := m.reconnect(); err != nil {
			debug.ErrorLog.Printf("can't reconnect to mqtt broker %v", err)
			return
		}
	}

	debug.DebugLog.Printf("publishing %v bytes to topic %v", len(msg.Payload), msg.Topic)

	t := m.client.Publish(msg.Topic, msg.Qos, msg.Retained, msg.Payload)
	<-t.Done()
	if err := t.Error(); err != nil {
		debug.ErrorLog.Printf("publishing topic %v: %v", msg.Topic, err)
	}
}
