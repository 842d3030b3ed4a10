package port

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

// Speaker plays the port channel as audible beep codes.
type Speaker struct {
	rate beep.SampleRate
}

// OpenSpeaker initializes the audio output.
func OpenSpeaker() (*Speaker, error) {
	rate := beep.SampleRate(toneSampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}

	return &Speaker{rate: rate}, nil
}

// Write plays the beep code for p and returns once playback completes.
func (s *Speaker) Write(p []byte) (int, error) {
	samples := synthesize(p)
	if len(samples) == 0 {
		return len(p), nil
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(&sampleStreamer{samples: samples}, beep.Callback(func() {
		close(done)
	})))
	<-done

	return len(p), nil
}

// Close shuts the audio output down.
func (s *Speaker) Close() error {
	speaker.Close()
	return nil
}

// sampleStreamer streams a mono sample buffer to both channels.
type sampleStreamer struct {
	samples []float64
	pos     int
}

func (s *sampleStreamer) Stream(out [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}

	for n < len(out) && s.pos < len(s.samples) {
		out[n][0] = s.samples[s.pos]
		out[n][1] = s.samples[s.pos]
		n++
		s.pos++
	}

	return n, true
}

func (s *sampleStreamer) Err() error { return nil }
