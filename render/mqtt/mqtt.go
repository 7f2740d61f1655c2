// Package mqtt publishes frames to an MQTT broker, one topic per controller.
package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

var ErrTimeout = errors.New("mqtt: timed out")

// Client is the part of paho.Client the renderer needs.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// Renderer publishes the values of every frame as JSON to <prefix>/<id>.
type Renderer struct {
	client  Client
	prefix  string
	qos     byte
	retain  bool
	timeout time.Duration
	logger  *slog.Logger
}

type Option func(*Renderer)

func WithQoS(qos byte) Option {
	return func(r *Renderer) { r.qos = qos }
}

// WithRetain publishes retained messages, so late subscribers get the last frame.
func WithRetain(retain bool) Option {
	return func(r *Renderer) { r.retain = retain }
}

func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) { r.timeout = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

func New(client Client, prefix string, opts ...Option) *Renderer {
	r := &Renderer{
		client:  client,
		prefix:  prefix,
		timeout: time.Second,
		logger:  slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Renderer) Topic(id string) string {
	if r.prefix == "" {
		return id
	}
	return r.prefix + "/" + id
}

func (r *Renderer) Render(id string, values map[string]any) {
	if err := r.Publish(id, values); err != nil {
		r.logger.Error("publish frame", "id", id, "err", err)
	}
}

// Publish sends values and waits for the broker to take them.
func (r *Renderer) Publish(id string, values map[string]any) error {
	payload, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	topic := r.Topic(id)
	token := r.client.Publish(topic, r.qos, r.retain, payload)
	if !token.WaitTimeout(r.timeout) {
		return fmt.Errorf("%w: publish to %s", ErrTimeout, topic)
	}
	return token.Error()
}

// Dial connects to the broker at url.
func Dial(url, clientID string, timeout time.Duration) (paho.Client, error) {
	options := paho.NewClientOptions().
		AddBroker(url).
		SetClientID(clientID).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second)

	client := paho.NewClient(options)
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("%w: connect to %s", ErrTimeout, url)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", url, err)
	}
	return client, nil
}
