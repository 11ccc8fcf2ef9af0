//go:build !headless

package effects

import (
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const otoSampleRate = 44100

// OtoAudioBackend is the Effects Layer's optional real audio backend: a
// square-wave tone per active channel, mixed and streamed through oto/v3's
// io.Reader player interface. It demonstrates that channel state flows
// through to real audio output; it is not a reproduction of the original
// engine's mixing DSP (explicitly out of scope).
type OtoAudioBackend struct {
	mu       sync.Mutex
	ctx      *oto.Context
	player   *oto.Player
	channels map[int]*otoChannel
	phaseAcc float64
}

type otoChannel struct {
	freqHz float64
	volume float64
	phase  float64
}

func NewOtoAudioBackend() (*OtoAudioBackend, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   otoSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	b := &OtoAudioBackend{ctx: ctx, channels: make(map[int]*otoChannel)}
	b.player = ctx.NewPlayer(b)
	b.player.Play()
	return b, nil
}

func (b *OtoAudioBackend) PlayTone(channel int, freqHz float64, volume float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if freqHz == 0 {
		delete(b.channels, channel)
		return
	}
	b.channels[channel] = &otoChannel{freqHz: freqHz, volume: volume}
}

func (b *OtoAudioBackend) StopChannel(channel int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.channels, channel)
}

// Read implements io.Reader for oto's player: mixes one square wave per
// active channel into p, interpreted as little-endian float32 samples.
func (b *OtoAudioBackend) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	numSamples := len(p) / 4
	for i := 0; i < numSamples; i++ {
		var mix float64
		for _, ch := range b.channels {
			step := ch.freqHz / otoSampleRate
			ch.phase += step
			if ch.phase >= 1 {
				ch.phase -= math.Floor(ch.phase)
			}
			sample := 1.0
			if ch.phase >= 0.5 {
				sample = -1.0
			}
			mix += sample * ch.volume
		}
		if mix > 1 {
			mix = 1
		} else if mix < -1 {
			mix = -1
		}
		putFloat32LE(p[i*4:], float32(mix))
	}
	return len(p), nil
}

func putFloat32LE(dst []byte, f float32) {
	bits := math.Float32bits(f)
	dst[0] = byte(bits)
	dst[1] = byte(bits >> 8)
	dst[2] = byte(bits >> 16)
	dst[3] = byte(bits >> 24)
}

func (b *OtoAudioBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player != nil {
		return b.player.Close()
	}
	return nil
}
