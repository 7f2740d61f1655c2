package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
)

type token struct {
	done bool
	err  error
}

func (t *token) Wait() bool                     { return t.done }
func (t *token) WaitTimeout(time.Duration) bool { return t.done }
func (t *token) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *token) Error() error { return t.err }

type message struct {
	topic   string
	qos     byte
	payload []byte
}

type client struct {
	sent  []message
	token *token
}

func (c *client) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.sent = append(c.sent, message{topic, qos, payload.([]byte)})
	return c.token
}

func TestRenderer(t *testing.T) {
	t.Run("publishes json under the prefix", func(t *testing.T) {
		c := &client{token: &token{done: true}}
		r := New(c, "lights", WithQoS(1))

		r.Render("strip", map[string]any{"x": 1.5})

		assert.Len(t, c.sent, 1)
		assert.Equal(t, "lights/strip", c.sent[0].topic)
		assert.Equal(t, byte(1), c.sent[0].qos)

		var got map[string]any
		assert.NoError(t, json.Unmarshal(c.sent[0].payload, &got))
		assert.Equal(t, map[string]any{"x": 1.5}, got)
	})

	t.Run("topic without prefix is the id", func(t *testing.T) {
		r := New(&client{}, "")
		assert.Equal(t, "strip", r.Topic("strip"))
	})

	t.Run("reports timeouts", func(t *testing.T) {
		c := &client{token: &token{}}
		err := New(c, "lights").Publish("strip", map[string]any{})
		assert.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("reports broker errors", func(t *testing.T) {
		boom := errors.New("boom")
		c := &client{token: &token{done: true, err: boom}}
		err := New(c, "lights").Publish("strip", map[string]any{})
		assert.ErrorIs(t, err, boom)
	})
}
