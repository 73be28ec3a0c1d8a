package stream

import (
	"context"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

// Sink receives encoded frames.
type Sink func(payload []byte) error

// MQTTSink publishes frames to topic and waits for each publish to complete.
func MQTTSink(client mqtt.Client, topic string, qos byte) Sink {
	return func(payload []byte) error {
		token := client.Publish(topic, qos, false, payload)
		token.Wait()
		return token.Error()
	}
}

// Streamer renders the strip and streams RGB data frames to an ledrx device.
type Streamer struct {
	strip     *Strip
	sink      Sink
	interval  time.Duration
	logger    zerolog.Logger
	onPublish func(err error)
}

// NewStreamer creates an instance of a Streamer sending frameRate frames a second.
func NewStreamer(strip *Strip, sink Sink, frameRate float64, logger zerolog.Logger) *Streamer {
	s := new(Streamer)
	s.strip = strip
	s.sink = sink
	if frameRate <= 0 {
		frameRate = 30
	}
	s.interval = time.Duration(float64(time.Second) / frameRate)
	s.logger = logger
	return s
}

// OnPublish registers fn to observe the outcome of every publish.
func (s *Streamer) OnPublish(fn func(err error)) {
	s.onPublish = fn
}

// SendFrame renders the current frame and hands it to the sink.
func (s *Streamer) SendFrame() error {
	f := NewFrame(s.strip.Pixels)
	f.Render(s.strip)
	b, err := f.MarshalBinary()
	if err == nil {
		err = s.sink(b)
	}
	if s.onPublish != nil {
		s.onPublish(err)
	}
	return err
}

// Run causes the Streamer to send Frames continuously until ctx is done.
func (s *Streamer) Run(ctx context.Context) error {
	publishTimer := time.NewTicker(s.interval)
	defer publishTimer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-publishTimer.C:
			if err := s.SendFrame(); err != nil {
				s.logger.Warn().Err(err).Msg("frame not sent")
			}
		}
	}
}
