package stream

import (
	"bytes"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// recordingClient keeps what was published; every other method is left to
// the embedded nil interface.
type recordingClient struct {
	mqtt.Client
	topics   []string
	payloads [][]byte
}

func (c *recordingClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	b, _ := payload.([]byte)
	c.topics = append(c.topics, topic)
	c.payloads = append(c.payloads, b)
	return doneToken{}
}

type doneToken struct{ mqtt.Token }

func (doneToken) Wait() bool { return true }

func TestParseScrub(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{" 3 \n", 3},
		{`{"time": 7.25}`, 7.25},
		{`{"time": 0}`, 0},
	}
	for _, tc := range cases {
		got, err := ParseScrub([]byte(tc.in))
		if err != nil {
			t.Errorf("ParseScrub(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseScrub(%q) = %g, want %g", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "soon", `{"t": 1}`, `{"time": "1"}`, "NaN", "+Inf"} {
		if _, err := ParseScrub([]byte(bad)); err == nil {
			t.Errorf("ParseScrub(%q): expected error", bad)
		}
	}
}

func TestStreamerScrubQueue(t *testing.T) {
	s := NewStreamer(DefaultConfig(), nil, nil, NewClock(true))
	for i := 0; i < cap(s.scrubs); i++ {
		if !s.Scrub(float64(i)) {
			t.Fatalf("scrub %d rejected", i)
		}
	}
	if s.Scrub(99) {
		t.Error("full queue accepted a scrub")
	}
	if got := <-s.scrubs; got != 0 {
		t.Errorf("first queued scrub = %g, want 0", got)
	}
}

func TestStreamerSendFramePublishesControllerFrame(t *testing.T) {
	c, show := newTestController(t, false)
	client := &recordingClient{}
	config := DefaultConfig()
	s := NewStreamer(config, client, c, NewClock(true))

	c.Scrub(1)
	s.SendFrame(time.Now())

	if len(client.topics) != 1 || client.topics[0] != config.Mqtt.Topics.Stream {
		t.Fatalf("published to %v, want [%s]", client.topics, config.Mqtt.Topics.Stream)
	}
	want, _ := show.Frame.MarshalBinary()
	if !bytes.Equal(client.payloads[0], want) {
		t.Error("published payload is not the controller's frame")
	}
	if s.Status().Generation == 0 {
		t.Error("status not refreshed from the controller")
	}
}
