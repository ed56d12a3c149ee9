package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/ledscrub/api"
	"github.com/matt-g-everett/ledscrub/stream"
	"github.com/matt-g-everett/ledscrub/timeline"
	"golang.org/x/sync/errgroup"
)

type app struct {
	Config   stream.Config
	Client   mqtt.Client
	Streamer *stream.Streamer
	Api      *api.Api
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	a.Streamer.Subscribe()
}

func (a *app) readConfig(configPath string) {
	config, err := stream.ReadConfig(configPath)
	if err != nil {
		panic(err)
	}
	a.Config = config
}

func (a *app) run(ctx context.Context) error {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer a.Client.Disconnect(250)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Streamer.Run(ctx)
	})
	g.Go(func() error {
		return a.Api.Serve(ctx, a.Config.Api.Listen)
	})
	return g.Wait()
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	timelinePath := flag.String("timeline", "", "YAML timeline file, overrides the config.")
	flag.Parse()

	// Read the config
	a := newApp()
	a.readConfig(*configPath)
	if *timelinePath != "" {
		a.Config.Timeline = *timelinePath
	}
	log.Printf("Config: %+v", a.Config)

	// Load the show
	frame := stream.NewFrame(a.Config.Pixels)
	registry := timeline.NewRegistry()
	ephemerals := new(timeline.Ephemerals)
	show, err := stream.LoadShow(a.Config.Timeline, frame, registry, ephemerals)
	if err != nil {
		panic(err)
	}
	log.Printf("Loaded %d clips on %d segments", len(show.Clips), len(show.Segments))

	orch := timeline.NewOrchestrator(registry, ephemerals)
	clock := stream.NewClock(!a.Config.Preview)
	controller := stream.NewController(a.Config, show, orch, clock)
	controller.Intro(time.Duration(a.Config.Intro * float64(time.Second)))

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)
	a.Streamer = stream.NewStreamer(a.Config, a.Client, controller, clock)
	a.Api = api.NewApi(a.Streamer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := a.run(ctx); err != nil {
		log.Fatal(err)
	}
	show.Unregister(orch)
}
