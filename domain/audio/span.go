package audio

import (
	"fmt"
	"sort"
)

// SilenceSpan is a millisecond interval [StartMs, EndMs) to be zeroed
type SilenceSpan struct {
	StartMs int64
	EndMs   int64
}

// Clamp returns the span with an inverted start pulled down to its end,
// producing a zero-length span instead of a negative one
func (s SilenceSpan) Clamp() SilenceSpan {
	if s.StartMs > s.EndMs {
		s.StartMs = s.EndMs
	}
	return s
}

// Length returns the span duration in milliseconds
func (s SilenceSpan) Length() int64 {
	return s.EndMs - s.StartMs
}

// String returns the span in seconds, e.g. "10.20s-10.80s"
func (s SilenceSpan) String() string {
	return fmt.Sprintf("%.2fs-%.2fs", float64(s.StartMs)/1000, float64(s.EndMs)/1000)
}

// MergeSpans clamps, sorts and coalesces overlapping or adjacent spans.
// Zero-length spans are dropped and negative offsets are moved to zero.
// The input slice is not modified.
func MergeSpans(spans []SilenceSpan) []SilenceSpan {
	clamped := make([]SilenceSpan, 0, len(spans))
	for _, s := range spans {
		s = s.Clamp()
		if s.StartMs < 0 {
			s.StartMs = 0
		}
		if s.EndMs < 0 {
			s.EndMs = 0
		}
		if s.Length() == 0 {
			continue
		}
		clamped = append(clamped, s)
	}
	if len(clamped) == 0 {
		return nil
	}

	sort.Slice(clamped, func(i, j int) bool {
		return clamped[i].StartMs < clamped[j].StartMs
	})

	merged := []SilenceSpan{clamped[0]}
	for _, s := range clamped[1:] {
		last := &merged[len(merged)-1]
		if s.StartMs <= last.EndMs {
			if s.EndMs > last.EndMs {
				last.EndMs = s.EndMs
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
