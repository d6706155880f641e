// Package audio plays the board completion chime.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

const (
	SampleRate = beep.SampleRate(48000)
	noteLength = 120 * time.Millisecond
	gain       = 0.3
)

// C major arpeggio.
var notes = []float64{523.25, 659.25, 783.99}

// Sink is an opened audio output.
type Sink interface {
	Play(s beep.Streamer)
}

// Chime plays the completion melody on a sink. It stays silent without a
// sink or while muted.
type Chime struct {
	mu      sync.Mutex
	sink    Sink
	enabled bool
}

func New(sink Sink, enabled bool) *Chime {
	return &Chime{sink: sink, enabled: enabled}
}

func (c *Chime) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

func (c *Chime) SetEnabled(on bool) {
	c.mu.Lock()
	c.enabled = on
	c.mu.Unlock()
}

// Play queues one chime. It reports whether anything was queued.
func (c *Chime) Play() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sink == nil || !c.enabled {
		return false
	}
	s, err := Melody(SampleRate)
	if err != nil {
		return false
	}
	c.sink.Play(s)
	return true
}

// Melody builds the chime at the given rate.
func Melody(rate beep.SampleRate) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	n := rate.N(noteLength)
	for _, f := range notes {
		tone, err := generators.SineTone(rate, f)
		if err != nil {
			return nil, fmt.Errorf("audio: tone %.2f: %w", f, err)
		}
		parts = append(parts, &decay{s: beep.Take(n, tone), total: n})
	}
	return beep.Seq(parts...), nil
}

// decay fades a note linearly to silence.
type decay struct {
	s     beep.Streamer
	pos   int
	total int
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := gain * (1 - float64(d.pos)/float64(d.total))
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.s.Err() }
