package audio

// Silence returns a copy of src in which every sample inside any span is zero.
// Samples outside all spans are copied unchanged and src is never modified.
// Spans may arrive unsorted, overlapping, inverted or past the end of the
// buffer; they are clamped to the buffer before being applied.
func Silence(src *Buffer, spans []SilenceSpan) *Buffer {
	out := src.Clone()
	channels := out.NumChannels
	if channels <= 0 {
		return out
	}

	for _, s := range MergeSpans(spans) {
		from := out.FrameAt(s.StartMs) * channels
		to := out.FrameAt(s.EndMs) * channels
		clear(out.Data[from:to])
	}
	return out
}
