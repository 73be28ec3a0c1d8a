package main

import (
	"context"
	"errors"
	"flag"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/ledanim/anim"
	"github.com/matt-g-everett/ledanim/api"
	"github.com/matt-g-everett/ledanim/config"
	"github.com/matt-g-everett/ledanim/logging"
	"github.com/matt-g-everett/ledanim/metrics"
	"github.com/matt-g-everett/ledanim/stream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type app struct {
	Config   *config.Config
	Client   mqtt.Client
	Looper   *stream.Looper
	Engine   *stream.Engine
	Streamer *stream.Streamer
	Showcase *showcase
	Api      *api.Api
	logger   zerolog.Logger
}

func newApp(cfg *config.Config) *app {
	a := new(app)
	a.Config = cfg
	a.logger = logging.WithComponent("main")
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	a.logger.Info().Str("broker", a.Config.Mqtt.URL).Msg("Connected")
}

func (a *app) handleConnectionLost(client mqtt.Client, err error) {
	a.logger.Warn().Err(err).Msg("Connection lost")
}

func (a *app) connect() error {
	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(a.handleOnConnect).
		SetConnectionLostHandler(a.handleConnectionLost)
	a.Client = mqtt.NewClient(options)

	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (a *app) build(sink stream.Sink) error {
	cfg := a.Config
	background, err := cfg.BackgroundColour()
	if err != nil {
		return err
	}

	strip := stream.NewStrip(cfg.Strip.Pixels, background)
	strip.Split(cfg.Strip.Segments, stream.Rainbow)
	strip.Layout()

	m := metrics.New(prometheus.DefaultRegisterer)

	a.Looper = stream.NewLooper()
	a.Engine = stream.NewEngine(a.Looper, cfg.Strip.FrameRate, logging.WithComponent("engine"))
	a.Streamer = stream.NewStreamer(strip, sink, cfg.Strip.FrameRate, logging.WithComponent("streamer"))
	a.Streamer.OnPublish(m.FramePublished)

	animator := anim.New(a.Engine,
		anim.WithLayout(strip),
		anim.WithLooper(a.Looper),
		anim.WithDensity(anim.FixedDensity(cfg.Strip.Density)),
		anim.WithLogger(logging.WithComponent("anim")))

	a.Showcase = newShowcase(animator, strip, a.Looper, m,
		cfg.Showcase.Interval, cfg.ShowcaseDuration(), logging.WithComponent("showcase"))
	a.Api = api.NewApi(a.Showcase, promhttp.Handler(), cfg.API.StaticDir, logging.WithComponent("api"))
	return nil
}

func (a *app) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Looper.Run(ctx) })
	g.Go(func() error { return a.Engine.Run(ctx) })
	g.Go(func() error { return a.Streamer.Run(ctx) })
	g.Go(func() error { return a.Showcase.Run(ctx) })
	g.Go(func() error { return a.Api.Serve(ctx, a.Config.API.Listen) })

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	// Read the config
	cfg, err := config.Load(*configPath)
	if err != nil {
		l := logging.New(logging.Config{})
		l.Fatal().Err(err).Str("path", *configPath).Msg("config")
	}
	logging.Configure(logging.Config{Level: cfg.Log.Level})

	mqtt.ERROR = stdlog.New(logging.WithComponent("mqtt"), "", 0)

	a := newApp(cfg)
	a.logger.Info().
		Str("broker", cfg.Mqtt.URL).
		Int("pixels", cfg.Strip.Pixels).
		Int("segments", cfg.Strip.Segments).
		Msg("Config")

	if err := a.connect(); err != nil {
		a.logger.Fatal().Err(err).Msg("mqtt connect")
	}
	defer a.Client.Disconnect(250)

	if err := a.build(stream.MQTTSink(a.Client, cfg.Mqtt.Topics.Stream, 0)); err != nil {
		a.logger.Fatal().Err(err).Msg("build")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.run(ctx); err != nil {
		a.logger.Error().Err(err).Msg("stopped")
	}
}
