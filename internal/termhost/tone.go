package termhost

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"lightning/internal/core"
)

const (
	toneSampleRate = beep.SampleRate(44100)
	toneLength     = 40 * time.Millisecond
)

// Tone plays short click feedback through the system speaker. A nil *Tone
// is silent.
type Tone struct {
	sr beep.SampleRate
}

// NewTone initializes the speaker.
func NewTone() (*Tone, error) {
	if err := speaker.Init(toneSampleRate, toneSampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Tone{sr: toneSampleRate}, nil
}

// Play emits a short sine tone at freq Hz.
func (t *Tone) Play(freq float64) {
	if t == nil || freq <= 0 {
		return
	}
	sine, err := generators.SineTone(t.sr, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(t.sr.N(toneLength), sine))
}

// toneFor picks a pitch per charge type; placement-disabled clicks are silent.
func toneFor(chargeType int) float64 {
	if chargeType == core.NoCharge {
		return 0
	}
	return 660 + 220*float64(chargeType)
}
