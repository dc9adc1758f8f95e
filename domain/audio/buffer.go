package audio

// Buffer is an interleaved PCM sample timeline addressable by millisecond offset
type Buffer struct {
	Data        []int
	SampleRate  int
	NumChannels int
	BitDepth    int
}

// Frames returns the number of sample frames (one sample per channel) in the buffer
func (b *Buffer) Frames() int {
	if b.NumChannels <= 0 {
		return 0
	}
	return len(b.Data) / b.NumChannels
}

// DurationMs returns the buffer length in whole milliseconds
func (b *Buffer) DurationMs() int64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return int64(b.Frames()) * 1000 / int64(b.SampleRate)
}

// FrameAt converts a millisecond offset to a frame index, bounded to [0, Frames()]
func (b *Buffer) FrameAt(ms int64) int {
	if ms <= 0 || b.SampleRate <= 0 {
		return 0
	}
	if ms > b.DurationMs() {
		return b.Frames()
	}
	frame := ms * int64(b.SampleRate) / 1000
	if frames := int64(b.Frames()); frame > frames {
		return int(frames)
	}
	return int(frame)
}

// Clone returns a deep copy of the buffer
func (b *Buffer) Clone() *Buffer {
	data := make([]int, len(b.Data))
	copy(data, b.Data)
	return &Buffer{
		Data:        data,
		SampleRate:  b.SampleRate,
		NumChannels: b.NumChannels,
		BitDepth:    b.BitDepth,
	}
}
