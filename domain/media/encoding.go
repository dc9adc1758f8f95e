package media

import "fmt"

// Default codec priority lists. Video codecs are the outer loop of negotiation.
var (
	DefaultVideoCodecs = []string{"copy", "libx264"}
	DefaultAudioCodecs = []string{"aac", "libmp3lame", "libopus"}
)

// EncodingAttempt is one video/audio codec pair offered to the encoder
type EncodingAttempt struct {
	VideoCodec string
	AudioCodec string
}

// String returns the pair as "video/audio"
func (a EncodingAttempt) String() string {
	return fmt.Sprintf("%s/%s", a.VideoCodec, a.AudioCodec)
}

// Candidates returns the Cartesian product of the codec lists in priority
// order: every audio codec is tried for a video codec before the next video
// codec is considered
func Candidates(videoCodecs, audioCodecs []string) []EncodingAttempt {
	attempts := make([]EncodingAttempt, 0, len(videoCodecs)*len(audioCodecs))
	for _, v := range videoCodecs {
		for _, a := range audioCodecs {
			attempts = append(attempts, EncodingAttempt{VideoCodec: v, AudioCodec: a})
		}
	}
	return attempts
}
