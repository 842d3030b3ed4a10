package port

import (
	"math"
	"time"
)

// Beep code timing. Each hex digit n is signalled as n+1 short tones, digits
// are separated by a longer pause and a line feed is a single long tone.
const (
	toneSampleRate = 44100
	toneFreq       = 880.0
	toneAmplitude  = 0.5

	shortTone = 60 * time.Millisecond
	longTone  = 400 * time.Millisecond
	toneGap   = 60 * time.Millisecond
	digitGap  = 300 * time.Millisecond
)

// beepCount returns the number of short tones used to signal ch and whether
// ch is a hex digit.
func beepCount(ch byte) (int, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch-'0') + 1, true
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 11, true
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 11, true
	}

	return 0, false
}

func samplesFor(d time.Duration) int {
	return int(int64(toneSampleRate) * int64(d) / int64(time.Second))
}

// synthesize renders the beep code for p as mono samples in [-1, 1]. Bytes
// other than hex digits and '\n' are skipped.
func synthesize(p []byte) []float64 {
	var out []float64

	tone := func(d time.Duration) {
		n := samplesFor(d)
		for i := 0; i < n; i++ {
			out = append(out, toneAmplitude*math.Sin(2*math.Pi*toneFreq*float64(i)/toneSampleRate))
		}
	}
	silence := func(d time.Duration) {
		out = append(out, make([]float64, samplesFor(d))...)
	}

	for _, ch := range p {
		if ch == '\n' {
			tone(longTone)
			silence(digitGap)
			continue
		}

		count, ok := beepCount(ch)
		if !ok {
			continue
		}

		for i := 0; i < count; i++ {
			tone(shortTone)
			silence(toneGap)
		}
		silence(digitGap)
	}

	return out
}
