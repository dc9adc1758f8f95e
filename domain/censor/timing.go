package censor

import (
	"math"
	"time"

	"video-censor/domain/audio"
	"video-censor/domain/transcript"
)

// Default timing calibration, tuned against faster-whisper large-v3 output
const (
	DefaultPrePad = 100 * time.Millisecond
	DefaultShift  = 300 * time.Millisecond
)

// Timing holds the calibration used to turn word timestamps into silence spans
type Timing struct {
	// PrePad widens both ends of a word because recognizer boundaries are imprecise
	PrePad time.Duration
	// Shift moves both ends forward to compensate for the recognizer's timebase offset
	Shift time.Duration
}

// DefaultTiming returns the standard calibration
func DefaultTiming() Timing {
	return Timing{PrePad: DefaultPrePad, Shift: DefaultShift}
}

// Adjuster converts matched words into silence spans
type Adjuster struct {
	timing Timing
}

// NewAdjuster creates an Adjuster with the given calibration
func NewAdjuster(timing Timing) *Adjuster {
	return &Adjuster{timing: timing}
}

// Pad returns the padded interval in seconds: start is pulled earlier by
// PrePad (never below zero) and end is pushed later by PrePad
func (a *Adjuster) Pad(w transcript.Word) (start, end float64) {
	pad := a.timing.PrePad.Seconds()
	start = math.Max(0, w.Start-pad)
	end = w.End + pad
	return start, end
}

// Span returns the shifted millisecond span for a word, clamped so that it
// never has negative length
func (a *Adjuster) Span(w transcript.Word) audio.SilenceSpan {
	start, end := a.Pad(w)
	if !isFinite(start) || !isFinite(end) {
		return audio.SilenceSpan{}
	}
	shift := a.timing.Shift.Milliseconds()
	span := audio.SilenceSpan{
		StartMs: secondsToMs(start) + shift,
		EndMs:   secondsToMs(end) + shift,
	}
	return span.Clamp()
}

// maxSpanMs bounds converted offsets, leaving headroom for the shift
const maxSpanMs = 1 << 53

// secondsToMs rounds to the nearest millisecond so float error in values
// like 10.5 cannot lose a millisecond. Non-finite input yields 0.
func secondsToMs(s float64) int64 {
	if !isFinite(s) {
		return 0
	}
	ms := math.Round(s * 1000)
	switch {
	case ms > maxSpanMs:
		return maxSpanMs
	case ms < -maxSpanMs:
		return -maxSpanMs
	}
	return int64(ms)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
