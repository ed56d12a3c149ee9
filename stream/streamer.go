package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

// Streamer that streams RGB data frames to an ledrx device. It owns the
// frame loop: scrub requests from MQTT or the api are queued and handed to
// the controller on the loop goroutine, so the timeline is only ever touched
// from there.
type Streamer struct {
	config     Config
	client     mqtt.Client
	controller *Controller
	clock      *Clock
	scrubs     chan float64
	status     atomic.Pointer[Status]
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client mqtt.Client, controller *Controller, clock *Clock) *Streamer {
	s := new(Streamer)
	s.config = config
	s.client = client
	s.controller = controller
	s.clock = clock
	s.scrubs = make(chan float64, 16)
	s.status.Store(&Status{})
	return s
}

// Subscribe listens for scrub requests. Call it whenever the client
// (re)connects.
func (s *Streamer) Subscribe() {
	topic := s.config.Mqtt.Topics.Scrub
	if token := s.client.Subscribe(topic, 0, s.handleScrub); token.Wait() && token.Error() != nil {
		log.Printf("Subscribing to %s: %v", topic, token.Error())
	}
}

func (s *Streamer) handleScrub(client mqtt.Client, msg mqtt.Message) {
	t, err := ParseScrub(msg.Payload())
	if err != nil {
		log.Printf("Ignoring scrub on %s: %v", msg.Topic(), err)
		return
	}
	if !s.Scrub(t) {
		log.Printf("Scrub queue full, dropped %g", t)
	}
}

// Scrub queues a scrub to t seconds. It returns false if the queue is full.
func (s *Streamer) Scrub(t float64) bool {
	select {
	case s.scrubs <- t:
		return true
	default:
		return false
	}
}

// Status returns the state as of the last frame.
func (s *Streamer) Status() Status {
	return *s.status.Load()
}

// SendFrame calculates the next frame and sends it as binary over MQTT to an
// ledrx device.
func (s *Streamer) SendFrame(now time.Time) {
	s.clock.Advance(now)
	f := s.controller.CalculateFrame(s.clock.Now().Milliseconds())
	st := s.controller.Status()
	s.status.Store(&st)

	b, _ := f.MarshalBinary()
	token := s.client.Publish(s.config.Mqtt.Topics.Stream, 2, false, b)
	token.Wait()
}

func (s *Streamer) sendStatus() {
	b, err := json.Marshal(s.Status())
	if err != nil {
		log.Printf("Encoding status: %v", err)
		return
	}
	s.client.Publish(s.config.Mqtt.Topics.Status, 0, false, b)
}

// Run causes the Streamer to send Frames continuously until ctx is done. The
// timeline is cleared on the way out.
func (s *Streamer) Run(ctx context.Context) error {
	defer s.controller.Close()

	interval := time.Duration(float64(time.Second) / s.config.FrameRate)
	publishTimer := time.NewTicker(interval)
	defer publishTimer.Stop()
	statusTimer := time.NewTicker(time.Second)
	defer statusTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-s.scrubs:
			s.controller.Scrub(t)
		case now := <-publishTimer.C:
			s.SendFrame(now)
		case <-statusTimer.C:
			s.sendStatus()
		}
	}
}

// ParseScrub reads a scrub time in seconds, either as a bare number or as
// {"time": n}.
func ParseScrub(payload []byte) (float64, error) {
	text := strings.TrimSpace(string(payload))

	var t float64
	if strings.HasPrefix(text, "{") {
		var msg struct {
			Time *float64 `json:"time"`
		}
		if err := json.Unmarshal([]byte(text), &msg); err != nil {
			return 0, err
		}
		if msg.Time == nil {
			return 0, fmt.Errorf("missing time in %q", text)
		}
		t = *msg.Time
	} else {
		var err error
		if t, err = strconv.ParseFloat(text, 64); err != nil {
			return 0, err
		}
	}

	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, fmt.Errorf("scrub time %q is not finite", text)
	}
	return t, nil
}
