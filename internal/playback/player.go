package playback

import (
	"context"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player owns the audio device context and a single output voice.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	stream *Stream
}

// NewPlayer opens the default output device. oto allows one context per
// process, so a program should create at most one Player.
func NewPlayer(sampleRate, channels int, stream *Stream) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("playback: open device: %w", err)
	}
	<-ready

	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(stream),
		stream: stream,
	}, nil
}

// Play starts or resumes output.
func (p *Player) Play() { p.player.Play() }

// Pause suspends output.
func (p *Player) Pause() { p.player.Pause() }

// IsPlaying reports whether the device is still consuming the stream.
func (p *Player) IsPlaying() bool { return p.player.IsPlaying() }

// Wait blocks until the stream has drained or ctx is done.
func (p *Player) Wait(ctx context.Context) error {
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()

	for p.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}

	return nil
}

// Close stops output and releases the voice.
func (p *Player) Close() error {
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("playback: %w", err)
	}
	return nil
}
