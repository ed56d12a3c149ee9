package stream

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the streamer configuration file.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientID"`
		Topics   struct {
			Stream string `yaml:"stream"`
			Scrub  string `yaml:"scrub"`
			Status string `yaml:"status"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Api struct {
		Listen string `yaml:"listen"`
	} `yaml:"api"`

	Pixels    int     `yaml:"pixels"`
	FrameRate float64 `yaml:"frameRate"`
	Timeline  string  `yaml:"timeline"`
	Autoplay  bool    `yaml:"autoplay"`
	Preview   bool    `yaml:"preview"`
	Smoothing float64 `yaml:"smoothing"`
	Intro     float64 `yaml:"intro"`
}

// DefaultConfig returns the settings used for anything the file leaves out.
func DefaultConfig() Config {
	var c Config
	c.Mqtt.ClientID = "ledscrub"
	c.Mqtt.Topics.Stream = "home/xmastree/stream"
	c.Mqtt.Topics.Scrub = "home/xmastree/scrub"
	c.Mqtt.Topics.Status = "home/xmastree/status"
	c.Api.Listen = ":3000"
	c.Pixels = 500
	c.FrameRate = 30
	c.Timeline = "timeline.yaml"
	c.Autoplay = true
	return c
}

// ReadConfig reads a YAML config file over the defaults.
func ReadConfig(path string) (Config, error) {
	c := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&c); err != nil {
		return c, fmt.Errorf("decoding %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks the values the streamer cannot run without.
func (c Config) Validate() error {
	switch {
	case c.Pixels <= 0 || c.Pixels > 0xffff:
		return fmt.Errorf("pixels must be in 1..65535, got %d", c.Pixels)
	case c.FrameRate <= 0:
		return fmt.Errorf("frameRate must be positive, got %g", c.FrameRate)
	case c.Smoothing < 0 || c.Smoothing >= 1:
		return fmt.Errorf("smoothing must be in [0,1), got %g", c.Smoothing)
	case c.Intro < 0:
		return fmt.Errorf("intro must not be negative, got %g", c.Intro)
	}
	return nil
}
